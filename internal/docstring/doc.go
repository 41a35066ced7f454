// Package docstring splits documentation comments into typed sections:
// free markdown text, parameter lists, exception lists and return values.
//
// Parsing is a single pass over the docstring lines. Section bodies are
// found by relative indentation: inside a list, a line indented like the
// first item starts a new item and a line indented twice as deep continues
// it. Malformed input never aborts a parse; problems are reported as
// diagnostics next to the sections that could be read.
package docstring
