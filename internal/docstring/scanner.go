package docstring

import (
	"strings"
)

const fenceMarker = "```"

// Input is everything one parse depends on besides the dialect.
type Input struct {
	Text       string
	Signature  *Signature
	ReturnType string
}

type Result struct {
	Sections []Section `json:"sections"`
	Errors   []string  `json:"errors"`
}

// Parser splits docstrings into sections using a Dialect. A Parser holds no
// per-parse state and may be shared between goroutines.
type Parser struct {
	dialect            Dialect
	replaceAdmonitions bool
}

func NewParser(d Dialect, replaceAdmonitions bool) *Parser {
	if d == nil {
		d = Google{}
	}
	return &Parser{dialect: d, replaceAdmonitions: replaceAdmonitions}
}

// NewGoogleParser returns a Google-style parser with admonition rewriting on.
func NewGoogleParser() *Parser {
	return NewParser(Google{}, true)
}

func (p *Parser) Dialect() Dialect {
	return p.dialect
}

// Parse scans in.Text line by line. It never fails: malformed parts are
// skipped and reported in Result.Errors.
func (p *Parser) Parse(in Input) *Result {
	lines := strings.Split(in.Text, "\n")
	st := &State{
		Lines:      lines,
		Signature:  in.Signature,
		ReturnType: in.ReturnType,
		Log:        &ErrorLog{},
	}

	var sections []Section
	var run []string
	inCodeBlock := false

	flush := func() {
		if text := trimBlankLines(run); len(text) > 0 {
			sections = append(sections, Section{Kind: SectionMarkdown, Text: strings.Join(text, "\n")})
		}
		run = nil
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if inCodeBlock {
			run = append(run, line)
			if isFence(line) {
				inCodeBlock = false
			}
			continue
		}

		if kind, ok := p.dialect.SectionTitle(line); ok {
			flush()
			section, end := p.dialect.ReadSection(st, kind, i+1)
			if section != nil {
				sections = append(sections, *section)
			}
			i = end
			continue
		}

		if isFence(line) {
			inCodeBlock = true
			run = append(run, line)
			continue
		}

		if p.replaceAdmonitions && i+1 < len(lines) {
			if rewritten, ok := p.dialect.RewriteAdmonition(line, lines[i+1]); ok {
				lines[i] = rewritten
				line = rewritten
			}
		}
		run = append(run, line)
	}
	flush()

	if sections == nil {
		sections = []Section{}
	}

	return &Result{Sections: sections, Errors: st.Log.Entries()}
}

func isFence(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " "), fenceMarker)
}

// trimBlankLines drops leading and trailing blank lines. An all-blank run
// comes back empty.
func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && isBlank(lines[start]) {
		start++
	}
	for end > start && isBlank(lines[end-1]) {
		end--
	}
	return lines[start:end]
}
