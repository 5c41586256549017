package mpip

import "strings"

// Row is a data line split into its label and its numeric tail.
type Row struct {
	// Label is the leading run of non-numeric tokens joined by single
	// spaces. It is empty when the line starts with a number.
	Label string
	// Fields holds every token from the first numeric-like one onwards.
	Fields []string
}

// Tokenize splits whitespace-separated tokens into a Row. The label ends at
// the first numeric-like token; everything after it, numeric or not, goes
// to Fields. The line is rejected when fewer than k fields remain.
func Tokenize(tokens []string, k int) (Row, bool) {
	i := 0
	for i < len(tokens) && !IsNumericLike(tokens[i]) {
		i++
	}

	fields := tokens[i:]
	if len(fields) < k {
		return Row{}, false
	}

	return Row{
		Label:  strings.Join(tokens[:i], " "),
		Fields: append([]string(nil), fields...),
	}, true
}

// TokenizeLine is Tokenize applied to strings.Fields(line).
func TokenizeLine(line string, k int) (Row, bool) {
	return Tokenize(strings.Fields(line), k)
}
