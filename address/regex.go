package address

import (
	"regexp"

	"github.com/pkg/errors"
)

// maxSubgroups bounds the capture-group array, matching the "up to 10
// subgroups" ceiling on the regex engine required by spec.md §6.1.
const maxSubgroups = 10

// Match describes one successful regex match: the overall span plus up to
// maxSubgroups capture-group spans (Groups[0] is the whole match, same as
// Go's regexp convention).
type Match struct {
	Start, End int
	Groups     [][2]int
}

// Regex wraps the module's regex engine. No example repo in the corpus
// vendors a third-party ERE/backreference engine (see SPEC_FULL.md §C),
// so this is the module's one deliberate standard-library dependency; the
// Matcher-shaped API below keeps the "regex engine is an external
// collaborator" boundary from spec.md §6.1 explicit so a different engine
// could be substituted without touching callers.
type Regex struct {
	re   *regexp.Regexp
	nsub int
}

// Compile compiles pattern. A compile failure is reported as "bad
// regular expression" per the SamError taxonomy in spec.md §6.3.
func Compile(pattern string) (*Regex, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrap(err, "bad regular expression")
	}
	return &Regex{re: re, nsub: re.NumSubexp()}, nil
}

// NumSubexp returns the number of capture groups in the pattern.
func (r *Regex) NumSubexp() int { return r.nsub }

// SearchForward returns the first match in text at or after from, or
// ok==false if there is none.
func (r *Regex) SearchForward(text []byte, from int) (Match, bool) {
	if from < 0 {
		from = 0
	}
	if from > len(text) {
		return Match{}, false
	}
	loc := r.re.FindSubmatchIndex(text[from:])
	if loc == nil {
		return Match{}, false
	}
	return toMatch(loc, from), true
}

// SearchBackward returns the last match in text that ends at or before
// before, or ok==false if there is none.
func (r *Regex) SearchBackward(text []byte, before int) (Match, bool) {
	if before < 0 {
		return Match{}, false
	}
	if before > len(text) {
		before = len(text)
	}
	all := r.re.FindAllSubmatchIndex(text, -1)
	found := false
	var best []int
	for _, loc := range all {
		if loc[1] <= before {
			best = loc
			found = true
		} else {
			break
		}
	}
	if !found {
		return Match{}, false
	}
	return toMatch(best, 0), true
}

func toMatch(loc []int, offset int) Match {
	m := Match{Start: loc[0] + offset, End: loc[1] + offset}
	m.Groups = make([][2]int, 0, maxSubgroups)
	for i := 0; i*2 < len(loc) && i < maxSubgroups; i++ {
		if loc[2*i] < 0 {
			m.Groups = append(m.Groups, [2]int{-1, -1})
			continue
		}
		m.Groups = append(m.Groups, [2]int{loc[2*i] + offset, loc[2*i+1] + offset})
	}
	return m
}
