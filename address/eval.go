package address

// Evaluate maps an Address into a concrete Range, given the file text, a
// mark source, which selection (by index) dot belongs to, and dot itself
// (the prior range / current selection), following spec.md §4.3.
func Evaluate(addr Address, text TextSource, marks MarkSource, selIndex int, dot Range) Range {
	switch addr.Delim {
	case '+', '-':
		return evalPlusMinus(addr, text, marks, selIndex, dot)
	case ',':
		left := Invalid()
		if addr.Left.Kind != SideInvalid {
			left = evalSide(addr.Left, text, marks, selIndex, dot)
		} else {
			left = Range{Start: 0, End: 0}
		}
		right := evalRightOrEOF(addr, text, marks, selIndex, dot)
		return Union(left, right)
	default: // ';' including the zero value / default
		left := Invalid()
		if addr.Left.Kind != SideInvalid {
			left = evalSide(addr.Left, text, marks, selIndex, dot)
			dot = left
		} else {
			left = Range{Start: 0, End: 0}
		}
		right := evalRightOrEOF(addr, text, marks, selIndex, dot)
		return Union(left, right)
	}
}

func evalRightOrEOF(addr Address, text TextSource, marks MarkSource, selIndex int, dot Range) Range {
	if addr.Right.Kind != SideInvalid {
		return evalSide(addr.Right, text, marks, selIndex, dot)
	}
	size := text.Size()
	return Range{Start: size, End: size}
}

func evalPlusMinus(addr Address, text TextSource, marks MarkSource, selIndex int, dot Range) Range {
	var right Range
	if addr.Right.Kind != SideInvalid {
		right = evalSide(addr.Right, text, marks, selIndex, dot)
	} else {
		right = Invalid()
	}

	var line int
	if addr.Delim == '+' {
		offset := 1
		if right.Valid() {
			offset = right.End
		}
		start, end := dot.Start, dot.End
		if start < end {
			if c, ok := text.ByteAt(end - 1); ok && c == '\n' {
				end--
			}
		}
		lineNo := text.LineByPos(end)
		line = text.PosByLine(lineNo + offset)
	} else {
		offset := 1
		if right.Valid() {
			offset = right.Start
		}
		lineNo := text.LineByPos(dot.Start)
		if offset < lineNo {
			line = text.PosByLine(lineNo - offset)
		} else {
			line = 0
		}
	}
	return Range{Start: line, End: text.LineNext(line)}
}

func evalSide(side AddressSide, text TextSource, marks MarkSource, selIndex int, dot Range) Range {
	switch side.Kind {
	case SideByte:
		n := int(side.Num)
		return Range{Start: n, End: n}
	case SideCharacter:
		switch side.Char {
		case '$':
			size := text.Size()
			return Range{Start: size, End: size}
		case '.':
			return dot
		case '%':
			return Range{Start: 0, End: text.Size()}
		}
		return Invalid()
	case SideLine:
		if side.Num <= 0 {
			return Range{Start: 0, End: 0}
		}
		begin := text.PosByLine(int(side.Num))
		return Range{Start: begin, End: text.LineNext(begin)}
	case SideMark:
		pos := EPOS
		if marks != nil {
			if p, ok := marks.Mark(side.Mark, selIndex); ok {
				pos = p
			}
		}
		return Range{Start: pos, End: pos}
	case SideRegexForward:
		if m, ok := side.Regex.SearchForward(text.Bytes(0, text.Size()), dot.End); ok {
			return Range{Start: m.Start, End: m.End}
		}
		return Invalid()
	case SideRegexBackward:
		if m, ok := side.Regex.SearchBackward(text.Bytes(0, text.Size()), dot.Start); ok {
			return Range{Start: m.Start, End: m.End}
		}
		return Invalid()
	default:
		return Invalid()
	}
}
