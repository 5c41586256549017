package mpip

import "strings"

// ruleLine is the prefix of the dashed rule that closes a section.
const ruleLine = "-----------"

// splitLines normalizes line endings and splits text into lines.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// isRule reports whether line is a section terminator.
func isRule(line string) bool {
	return strings.HasPrefix(line, ruleLine)
}

// LocateSection returns the text between the first line containing marker
// and the nearest rule line after it. mpiP underlines every section header
// with a rule, so a rule directly beneath the header is skipped rather than
// treated as the end of an empty section.
//
// The second return value is false when the marker does not occur or the
// section is never closed.
func LocateSection(text, marker string) (string, bool) {
	lines, ok := sectionLines(splitLines(text), marker)
	if !ok {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}

func sectionLines(lines []string, marker string) ([]string, bool) {
	header := -1
	for i, line := range lines {
		if strings.Contains(line, marker) {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, false
	}

	start := header + 1
	if start < len(lines) && isRule(lines[start]) {
		start++
	}

	for end := start; end < len(lines); end++ {
		if isRule(lines[end]) {
			return lines[start:end], true
		}
	}
	return nil, false
}
