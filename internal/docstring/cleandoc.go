package docstring

import (
	"strings"
)

const tabWidth = 8

// CleanDoc normalizes a docstring as written in source: tabs are expanded,
// the first line loses its leading whitespace, the common indentation of the
// remaining lines is removed, and blank lines at both ends are dropped.
func CleanDoc(raw string) string {
	lines := strings.Split(expandTabs(raw), "\n")

	margin := -1
	for _, line := range lines[1:] {
		if isBlank(line) {
			continue
		}
		if w := indentation(line); margin < 0 || w < margin {
			margin = w
		}
	}

	lines[0] = strings.TrimLeft(lines[0], " ")
	if margin > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= margin {
				lines[i] = lines[i][margin:]
			} else {
				lines[i] = strings.TrimLeft(lines[i], " ")
			}
		}
	}

	return strings.Join(trimBlankLines(lines), "\n")
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}

	var buf strings.Builder
	column := 0
	for _, r := range s {
		switch r {
		case '\t':
			spaces := tabWidth - column%tabWidth
			buf.WriteString(strings.Repeat(" ", spaces))
			column += spaces
		case '\n':
			buf.WriteRune(r)
			column = 0
		default:
			buf.WriteRune(r)
			column++
		}
	}
	return buf.String()
}
