package pysource

import "strings"

var escapeReplacer = strings.NewReplacer(
	`\\`, `\`,
	`\"`, `"`,
	`\'`, `'`,
	`\n`, "\n",
	`\t`, "\t",
)

// unquote strips the prefix and quotes of a Python string literal. Common
// escapes are decoded unless the literal is raw.
func unquote(literal string) string {
	body := strings.TrimLeft(literal, "rRuUbBfF")
	raw := strings.ContainsAny(literal[:len(literal)-len(body)], "rR")

	for _, quote := range []string{`"""`, `'''`, `"`, `'`} {
		if len(body) >= 2*len(quote) && strings.HasPrefix(body, quote) && strings.HasSuffix(body, quote) {
			body = body[len(quote) : len(body)-len(quote)]
			break
		}
	}

	if raw {
		return body
	}
	return escapeReplacer.Replace(body)
}
