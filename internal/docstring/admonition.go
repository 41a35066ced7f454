package docstring

import (
	"regexp"
	"strings"
)

var admonitionRegex = regexp.MustCompile(`^(?P<indent>\s*)(?P<label>[\w-]+):(?:\s+(?P<title>.+))?$`)

// admonitionDepth is how much deeper the next line must be indented for a
// "label:" line to open an admonition.
const admonitionDepth = 4

// rewriteAdmonition turns "Note: Title" followed by an indented block into
// the callout header `!!! note "Title"`.
func rewriteAdmonition(line, next string) (string, bool) {
	match := admonitionRegex.FindStringSubmatch(line)
	if match == nil {
		return line, false
	}

	indent := match[admonitionRegex.SubexpIndex("indent")]
	if !strings.HasPrefix(next, indent+strings.Repeat(" ", admonitionDepth)) {
		return line, false
	}

	label := strings.ToLower(match[admonitionRegex.SubexpIndex("label")])
	rewritten := indent + "!!! " + label
	if title := match[admonitionRegex.SubexpIndex("title")]; title != "" {
		rewritten += ` "` + title + `"`
	}

	return rewritten, true
}
