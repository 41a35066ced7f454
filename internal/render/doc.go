// Package render turns parsed docstring sections into Markdown and HTML, and
// extracts summaries from Markdown text.
package render
