package docstring

import (
	"strings"
	"unicode"
)

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// indentation returns the width of the leading whitespace of line.
func indentation(line string) int {
	return len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
}

// skipBlank returns the index of the first non-blank line at or after start,
// or len(lines) if there is none.
func skipBlank(lines []string, start int) int {
	i := start
	for i < len(lines) && isBlank(lines[i]) {
		i++
	}
	return i
}

// ReadBlock reads one indented block starting at start. The indentation of
// the first non-blank line is removed from every line of the block; deeper
// indentation is kept. It returns the block text and the index of the last
// consumed line. An empty text means there was no indented block.
func ReadBlock(lines []string, start int) (string, int) {
	if start >= len(lines) {
		return "", start
	}

	i := skipBlank(lines, start)
	if i == len(lines) {
		return "", start
	}

	indent := indentation(lines[i])
	if indent == 0 {
		return "", i - 1
	}

	block := []string{lines[i][indent:]}
	i++

	for ; i < len(lines); i++ {
		line := lines[i]
		if isBlank(line) {
			block = append(block, "")
			continue
		}
		if indentation(line) < indent {
			break
		}
		block = append(block, line[indent:])
	}

	return strings.TrimRight(strings.Join(block, "\n"), "\n"), i - 1
}

// ReadBlockItems splits an indented block into items. A line indented
// exactly like the first one starts a new item; a line indented at least
// twice as deep continues the current one. Lines in between are accepted as
// continuations and reported to log. Whitespace-only lines are classified by
// their width like any other line. It returns the items and the index of the
// last consumed line.
func ReadBlockItems(lines []string, start int, log *ErrorLog) ([]string, int) {
	if start >= len(lines) {
		return nil, start
	}

	i := skipBlank(lines, start)
	if i == len(lines) {
		return nil, start
	}

	indent := indentation(lines[i])
	if indent == 0 {
		return nil, i - 1
	}

	var items []string
	current := []string{lines[i][indent:]}
	i++

scan:
	for ; i < len(lines); i++ {
		line := lines[i]
		width := indentation(line)
		switch {
		case width >= indent*2:
			current = append(current, line[indent*2:])
		case width > indent:
			current = append(current, line[width:])
			log.Errorf(
				"Confusing indentation for continuation line %d in docstring, should be %d * 2 = %d spaces, not %d",
				i+1, indent, indent*2, width,
			)
		case width == indent:
			items = append(items, joinItem(current))
			current = []string{line[indent:]}
		case isBlank(line):
			current = append(current, "")
		default:
			break scan
		}
	}

	items = append(items, joinItem(current))
	return items, i - 1
}

func joinItem(lines []string) string {
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
