package parse

import (
	"strings"
	"unicode"
)

// Segment is one source line split into its operator and remainder.
type Segment struct {
	// Line is the 1-based position of this line in the original source,
	// counting skipped blank lines.
	Line int

	// Raw is the unmodified line text.
	Raw string

	// Operator is the first maximal run of non-whitespace characters.
	Operator string

	// Rest is everything after the operator, with leading whitespace removed.
	Rest string
}

// SegmentSource splits source into per-line segments. Zero-length lines are
// skipped. A non-empty line made entirely of whitespace has no operator and
// cannot be split; segmentation stops there and every remaining line is
// discarded. The second return value is the 1-based line number where the
// split failed, or zero when the full source was segmented.
func SegmentSource(source string) ([]Segment, int) {
	var segments []Segment
	lineNo := 0
	for line := range strings.SplitSeq(source, "\n") {
		lineNo++
		if line == "" {
			continue
		}
		operator, rest, ok := splitOperator(line)
		if !ok {
			return segments, lineNo
		}
		segments = append(segments, Segment{
			Line:     lineNo,
			Raw:      line,
			Operator: operator,
			Rest:     rest,
		})
	}
	return segments, 0
}

// splitOperator separates the leading operator token from the remainder of
// the line. Reports false when the line holds no non-whitespace run.
func splitOperator(line string) (string, string, bool) {
	start := strings.IndexFunc(line, func(r rune) bool { return !unicode.IsSpace(r) })
	if start < 0 {
		return "", "", false
	}

	length := strings.IndexFunc(line[start:], unicode.IsSpace)
	if length < 0 {
		return line[start:], "", true
	}

	operator := line[start : start+length]
	rest := strings.TrimLeftFunc(line[start+length:], unicode.IsSpace)
	return operator, rest, true
}
