package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vis-editor/samengine/config"
	"github.com/vis-editor/samengine/samlog"
)

// globalFlags mirrors GlitterOptions: one struct holding every
// persistent flag value, bound with pflag instead of the teacher's
// hand-rolled flag.Var calls in cmd/glitter/glitter.go's init().
type globalFlags struct {
	verbose  bool
	trace    bool
	force    bool
	confPath string
	rcPath   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "samctl",
		Short:         "run sam structural-regex commands against files on disk",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	var pf *pflag.FlagSet = root.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug-level logging")
	pf.BoolVar(&flags.trace, "trace", false, "print each invocation's correlation id to stderr")
	pf.BoolVarP(&flags.force, "force", "f", false, "override write/read conflicts (bound to the Force command flag)")
	pf.StringVar(&flags.confPath, "config", config.DefaultTOMLPath(), "samctl.toml path")
	pf.StringVar(&flags.rcPath, "samrc", config.DefaultRCPath(), ".samrc path")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		samlog.Init(flags.verbose)
	}

	root.AddCommand(newRunCmd(flags))
	root.AddCommand(newCheckCmd())
	return root
}

// loadOptions seeds a config.Registry from the TOML defaults and the
// project-local .samrc, in that order, same precedence glitter's
// ReadConfig/Config map defaulting gave the weave config.
func loadOptions(flags *globalFlags) (*config.Registry, error) {
	reg := config.NewRegistry()
	if err := reg.LoadTOML(flags.confPath); err != nil {
		return nil, err
	}
	if err := reg.LoadRC(flags.rcPath); err != nil {
		return nil, err
	}
	return reg, nil
}
