package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	// declarationNameRe captures the variable name, which must be directly
	// followed by the literal " as <".
	declarationNameRe = regexp.MustCompile(`(\w+) as <`)

	// numberRe accepts decimal literals with an optional fraction and
	// exponent. Hex, infinity and NaN spellings are rejected.
	numberRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

	// quotedTokenRe matches a double-quoted token with no internal
	// whitespace or quotes.
	quotedTokenRe = regexp.MustCompile(`"([^"\s]*)"`)
)

// ParseDeclaration matches a variable declaration of the form
// "declare NAME as <VALUE>". The line must begin with the declare keyword.
// The value is everything between the first angle-bracket pair, captured
// verbatim, surrounding quotes included.
func ParseDeclaration(line string) (string, string, error) {
	if !strings.HasPrefix(line, "declare") {
		return "", "", fmt.Errorf("%w: missing declare keyword", ErrMalformedDeclaration)
	}

	open := strings.IndexByte(line, '<')
	if open < 0 {
		return "", "", fmt.Errorf("%w: missing value brackets", ErrMalformedDeclaration)
	}
	length := strings.IndexByte(line[open+1:], '>')
	if length < 0 {
		return "", "", fmt.Errorf("%w: missing value brackets", ErrMalformedDeclaration)
	}

	m := declarationNameRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", fmt.Errorf("%w: missing variable name", ErrMalformedDeclaration)
	}

	return m[1], line[open+1 : open+1+length], nil
}

// ParseConditionHeader extracts the comparison text between the first curly
// brace pair. The first closing brace always terminates the header; nested
// braces are not supported.
func ParseConditionHeader(line string) (string, error) {
	open := strings.IndexByte(line, '{')
	if open < 0 {
		return "", fmt.Errorf("%w: missing opening brace", ErrMalformedCondition)
	}
	length := strings.IndexByte(line[open+1:], '}')
	if length < 0 {
		return "", fmt.Errorf("%w: missing closing brace", ErrMalformedCondition)
	}
	return line[open+1 : open+1+length], nil
}

// EvaluateComparison resolves an expression of the form "NUMBER OP NUMBER"
// to a boolean. Both operands must be decimal literals; variable references
// are not substituted here.
func EvaluateComparison(expr string) (bool, error) {
	fields := strings.Fields(expr)
	if len(fields) != 3 {
		return false, fmt.Errorf(
			"%w: want NUMBER OP NUMBER, got %q",
			ErrMalformedComparison,
			expr,
		)
	}

	left, err := parseOperand(fields[0])
	if err != nil {
		return false, err
	}
	right, err := parseOperand(fields[2])
	if err != nil {
		return false, err
	}

	switch fields[1] {
	case "==", "is":
		return left == right, nil
	case "~=", "!=":
		return left != right, nil
	case ">":
		return left > right, nil
	case "<":
		return left < right, nil
	case ">=":
		return left >= right, nil
	case "<=":
		return left <= right, nil
	default:
		return false, fmt.Errorf(
			"%w: unknown operator %q",
			ErrMalformedComparison,
			fields[1],
		)
	}
}

func parseOperand(token string) (float64, error) {
	if !numberRe.MatchString(token) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedComparison, token)
	}
	n, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedComparison, token)
	}
	return n, nil
}

// ParseActionTail extracts the bracketed action following a condition block.
// The required shape is "{...}" then optional whitespace then "[...]". The
// first closing square bracket terminates the action.
func ParseActionTail(line string) (string, error) {
	braceOpen := strings.IndexByte(line, '{')
	if braceOpen < 0 {
		return "", fmt.Errorf("%w: missing condition block", ErrMalformedAction)
	}
	braceLen := strings.IndexByte(line[braceOpen+1:], '}')
	if braceLen < 0 {
		return "", fmt.Errorf("%w: missing condition block", ErrMalformedAction)
	}

	tail := strings.TrimLeftFunc(line[braceOpen+1+braceLen+1:], unicode.IsSpace)
	if !strings.HasPrefix(tail, "[") {
		return "", fmt.Errorf("%w: missing action brackets", ErrMalformedAction)
	}
	end := strings.IndexByte(tail, ']')
	if end < 0 {
		return "", fmt.Errorf("%w: missing action brackets", ErrMalformedAction)
	}
	return tail[1:end], nil
}

// ParseCallSignature reports whether text has a balanced-parenthesis call
// shape and extracts its parameters. Parameters are double-quoted tokens
// with no internal whitespace found strictly inside the parentheses;
// anything else between them is ignored.
func ParseCallSignature(text string) ([]string, bool) {
	open := strings.IndexByte(text, '(')
	if open < 0 {
		return nil, false
	}

	depth := 0
	end := -1
	for i := open; i < len(text) && end < 0; i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				end = i
			}
		}
	}
	if end < 0 {
		return nil, false
	}

	matches := quotedTokenRe.FindAllStringSubmatch(text[open+1:end], -1)
	params := make([]string, 0, len(matches))
	for _, m := range matches {
		params = append(params, m[1])
	}
	return params, true
}
