package docstring_test

import (
	"strings"
	"testing"

	"github.com/g5becks/docsect/internal/docstring"
)

func doc(lines ...string) string {
	return strings.Join(lines, "\n")
}

func ptr(s string) *string {
	return &s
}

func parse(text string, sig *docstring.Signature) *docstring.Result {
	return docstring.NewGoogleParser().Parse(docstring.Input{Text: text, Signature: sig})
}

// untyped builds a signature whose parameters carry no annotations.
func untyped(names ...string) *docstring.Signature {
	sig := &docstring.Signature{Parameters: map[string]docstring.SignatureParameter{}}
	for _, name := range names {
		sig.Parameters[name] = docstring.SignatureParameter{Kind: docstring.KindPositionalOrKeyword}
	}
	return sig
}

func assertErrorCount(t *testing.T, result *docstring.Result, want int) {
	t.Helper()
	if len(result.Errors) != want {
		t.Fatalf("got %d errors, want %d: %q", len(result.Errors), want, result.Errors)
	}
}

func assertKinds(t *testing.T, result *docstring.Result, want ...docstring.SectionKind) {
	t.Helper()
	if len(result.Sections) != len(want) {
		t.Fatalf("got %d sections, want %d: %+v", len(result.Sections), len(want), result.Sections)
	}
	for i, kind := range want {
		if result.Sections[i].Kind != kind {
			t.Errorf("Sections[%d].Kind = %q, want %q", i, result.Sections[i].Kind, kind)
		}
	}
}

func TestParse_PlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"single line", "A simple docstring.", "A simple docstring."},
		{
			name: "multiple paragraphs",
			text: doc("A somewhat longer docstring.", "", "Blablablabla."),
			want: doc("A somewhat longer docstring.", "", "Blablablabla."),
		},
		{
			name: "surrounding blank lines",
			text: doc("", "  ", "Body.", "", ""),
			want: "Body.",
		},
		{
			name: "colon line without indented block",
			text: doc("Example:", "not indented."),
			want: doc("Example:", "not indented."),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := parse(tt.text, nil)
			assertErrorCount(t, result, 0)
			assertKinds(t, result, docstring.SectionMarkdown)

			if result.Sections[0].Text != tt.want {
				t.Errorf("Text = %q, want %q", result.Sections[0].Text, tt.want)
			}
		})
	}
}

func TestParse_EmptyInput(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "\n\n", "   \n\t"} {
		result := parse(text, nil)
		if len(result.Sections) != 0 {
			t.Errorf("Parse(%q) produced %d sections, want 0", text, len(result.Sections))
		}
		assertErrorCount(t, result, 0)
	}
}

func TestParse_SectionsWithoutSignature(t *testing.T) {
	t.Parallel()

	result := parse(doc(
		"Sections without signature.",
		"",
		"Parameters:",
		"    void: SEGFAULT.",
		"    niet: SEGFAULT.",
		"    nada: SEGFAULT.",
		"    rien: SEGFAULT.",
		"",
		"Exceptions:",
		"    GlobalError: when nothing works as expected.",
		"",
		"Returns:",
		"    Itself.",
	), nil)

	assertKinds(t, result,
		docstring.SectionMarkdown,
		docstring.SectionParameters,
		docstring.SectionExceptions,
		docstring.SectionReturn,
	)
	assertErrorCount(t, result, 5)

	for i, name := range []string{"void", "niet", "nada", "rien"} {
		want := "No type annotation for parameter '" + name + "'"
		if result.Errors[i] != want {
			t.Errorf("Errors[%d] = %q, want %q", i, result.Errors[i], want)
		}
	}
	if result.Errors[4] != "No type in return description" {
		t.Errorf("Errors[4] = %q", result.Errors[4])
	}

	exc := result.Sections[2].Exceptions
	if len(exc) != 1 || exc[0].Annotation != "GlobalError" || exc[0].Description != "when nothing works as expected." {
		t.Errorf("Exceptions = %+v", exc)
	}

	ret := result.Sections[3].Return
	if ret.Annotation != "" || ret.Description != "Itself." {
		t.Errorf("Return = %+v, want no annotation and full text", ret)
	}
}

func sumDocstring() string {
	return doc(
		"Parameters:",
		"    x: X value.",
		"    y: Y value.",
		"",
		"Returns:",
		"    Sum.",
	)
}

func TestParse_SignatureAnnotations(t *testing.T) {
	t.Parallel()

	sig := &docstring.Signature{
		Parameters: map[string]docstring.SignatureParameter{
			"x": {Annotation: "int", Kind: docstring.KindPositionalOrKeyword},
			"y": {Annotation: "int", Kind: docstring.KindPositionalOrKeyword},
		},
		ReturnAnnotation: "int",
	}

	result := parse(sumDocstring(), sig)
	assertErrorCount(t, result, 0)
	assertKinds(t, result, docstring.SectionParameters, docstring.SectionReturn)

	params := result.Sections[0].Parameters
	wantDesc := []string{"X value.", "Y value."}
	for i, name := range []string{"x", "y"} {
		p := params[i]
		if p.Name != name || p.Annotation != "int" || p.Description != wantDesc[i] {
			t.Errorf("Parameters[%d] = %+v", i, p)
		}
		if p.Kind != docstring.KindPositionalOrKeyword {
			t.Errorf("Parameters[%d].Kind = %q", i, p.Kind)
		}
		if p.Default != nil {
			t.Errorf("Parameters[%d].Default = %q, want nil", i, *p.Default)
		}
	}

	ret := result.Sections[1].Return
	if ret.Annotation != "int" || ret.Description != "Sum." {
		t.Errorf("Return = %+v", ret)
	}
}

func TestParse_NoSignature(t *testing.T) {
	t.Parallel()

	result := parse(sumDocstring(), nil)
	assertKinds(t, result, docstring.SectionParameters, docstring.SectionReturn)

	want := []string{
		"No type annotation for parameter 'x'",
		"No type annotation for parameter 'y'",
		"No type in return description",
	}
	assertErrorCount(t, result, len(want))
	for i := range want {
		if result.Errors[i] != want[i] {
			t.Errorf("Errors[%d] = %q, want %q", i, result.Errors[i], want[i])
		}
	}
}

func TestParse_UnannotatedSignature(t *testing.T) {
	t.Parallel()

	result := parse(doc(
		"This function has no annotations.",
		"",
		"Parameters:",
		"    x: X value.",
		"    y: Y value.",
		"",
		"Returns:",
		"    Sum X + Y.",
	), untyped("x", "y"))

	assertKinds(t, result, docstring.SectionMarkdown, docstring.SectionParameters, docstring.SectionReturn)
	assertErrorCount(t, result, 1)
	if !strings.Contains(result.Errors[0], "No type in return") {
		t.Errorf("Errors[0] = %q", result.Errors[0])
	}
}

func TestParse_TypesInDocstring(t *testing.T) {
	t.Parallel()

	sig := untyped("x", "y")
	sig.Parameters["x"] = docstring.SignatureParameter{Default: ptr("1"), Kind: docstring.KindPositionalOrKeyword}
	sig.Parameters["y"] = docstring.SignatureParameter{Default: ptr("None"), Kind: docstring.KindPositionalOrKeyword}

	result := parse(doc(
		"The types are written in the docstring.",
		"",
		"Parameters:",
		"    x (int): X value.",
		"    y (int, optional): Y value.",
		"",
		"Returns:",
		"    int: Sum X + Y.",
	), sig)

	assertErrorCount(t, result, 0)
	assertKinds(t, result, docstring.SectionMarkdown, docstring.SectionParameters, docstring.SectionReturn)

	params := result.Sections[1].Parameters
	x, y := params[0], params[1]

	if x.Name != "x" || x.Annotation != "int" || x.Description != "X value." {
		t.Errorf("x = %+v", x)
	}
	if x.Default == nil || *x.Default != "1" {
		t.Errorf("x.Default = %v, want 1", x.Default)
	}
	if y.Name != "y" || y.Annotation != "int" || y.Description != "Y value." {
		t.Errorf("y = %+v", y)
	}
	if y.Default == nil || *y.Default != "None" {
		t.Errorf("y.Default = %v, want None", y.Default)
	}

	ret := result.Sections[2].Return
	if ret.Annotation != "int" || ret.Description != "Sum X + Y." {
		t.Errorf("Return = %+v", ret)
	}
}

func TestParse_SignatureOverridesDocstringType(t *testing.T) {
	t.Parallel()

	sig := &docstring.Signature{
		Parameters: map[string]docstring.SignatureParameter{
			"x": {Annotation: "float", Kind: docstring.KindKeywordOnly},
		},
		ReturnAnnotation: "float",
	}

	result := parse(doc(
		"Args:",
		"    x (int): X value.",
		"Returns:",
		"    int: Doubled.",
	), sig)

	assertErrorCount(t, result, 0)
	assertKinds(t, result, docstring.SectionParameters, docstring.SectionReturn)

	if got := result.Sections[0].Parameters[0]; got.Annotation != "float" || got.Kind != docstring.KindKeywordOnly {
		t.Errorf("Parameters[0] = %+v, want annotation from signature", got)
	}

	// The declared annotation wins and the text is kept as written.
	if got := result.Sections[1].Return; got.Annotation != "float" || got.Description != "int: Doubled." {
		t.Errorf("Return = %+v", got)
	}
}

func TestParse_DeclaredReturnType(t *testing.T) {
	t.Parallel()

	p := docstring.NewGoogleParser()
	text := doc("Returns:", "    The answer.")

	result := p.Parse(docstring.Input{Text: text, ReturnType: "int"})
	assertErrorCount(t, result, 0)
	if got := result.Sections[0].Return; got.Annotation != "int" || got.Description != "The answer." {
		t.Errorf("Return = %+v", got)
	}

	// A signature without a return annotation takes precedence over the
	// declared type.
	result = p.Parse(docstring.Input{Text: text, ReturnType: "int", Signature: untyped()})
	assertErrorCount(t, result, 1)
	if got := result.Sections[0].Return; got.Annotation != "" {
		t.Errorf("Return.Annotation = %q, want empty", got.Annotation)
	}
}

func TestParse_RepeatedSectionsAreNotMerged(t *testing.T) {
	t.Parallel()

	result := parse(doc(
		"Parameters:",
		"    x: X.",
		"Parameters:",
		"    y: Y.",
		"",
		"Parameters:",
		"    z: Z.",
		"Exceptions:",
		"    Error2: error.",
		"Exceptions:",
		"    Error1: error.",
		"Returns:",
		"    1.",
		"Returns:",
		"    2.",
	), untyped("x", "y", "z"))

	assertKinds(t, result,
		docstring.SectionParameters,
		docstring.SectionParameters,
		docstring.SectionParameters,
		docstring.SectionExceptions,
		docstring.SectionExceptions,
		docstring.SectionReturn,
		docstring.SectionReturn,
	)
	assertErrorCount(t, result, 2)

	if got := result.Sections[5].Return.Description; got != "1." {
		t.Errorf("first return = %q", got)
	}
	if got := result.Sections[6].Return.Description; got != "2." {
		t.Errorf("second return = %q", got)
	}
}

func TestParse_CodeBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{
			name: "fenced",
			text: doc(
				"This docstring contains a docstring in a code block o_O!",
				"",
				"```python",
				`"""`,
				"This docstring is contained in another docstring O_o!",
				"",
				"Parameters:",
				"    s: A string.",
				`"""`,
				"```",
			),
		},
		{
			name: "indented",
			text: doc(
				"This docstring contains a docstring in a code block o_O!",
				"",
				`    """`,
				"    This docstring is contained in another docstring O_o!",
				"",
				"    Parameters:",
				"        s: A string.",
				`    """`,
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := parse(tt.text, untyped("s"))
			assertErrorCount(t, result, 0)
			assertKinds(t, result, docstring.SectionMarkdown)
		})
	}
}

func TestParse_FencedCodeKeepsLinesVerbatim(t *testing.T) {
	t.Parallel()

	text := doc(
		"```",
		"Note:",
		"    not an admonition",
		"```",
		"after",
	)

	result := parse(text, nil)
	assertKinds(t, result, docstring.SectionMarkdown)
	if result.Sections[0].Text != text {
		t.Errorf("Text = %q, want %q", result.Sections[0].Text, text)
	}
}

func TestParse_ExtraParameter(t *testing.T) {
	t.Parallel()

	result := parse(doc("Parameters:", "    x: Integer.", "    y: Integer."), untyped("x"))
	assertKinds(t, result, docstring.SectionParameters)
	assertErrorCount(t, result, 1)
	if result.Errors[0] != "No type annotation for parameter 'y'" {
		t.Errorf("Errors[0] = %q", result.Errors[0])
	}
}

func TestParse_MissingParameterIsNotReported(t *testing.T) {
	t.Parallel()

	result := parse(doc("Parameters:", "    x: Integer."), untyped("x", "y"))
	assertKinds(t, result, docstring.SectionParameters)
	assertErrorCount(t, result, 0)
}

func TestParse_ParameterWithoutColon(t *testing.T) {
	t.Parallel()

	sig := &docstring.Signature{Parameters: map[string]docstring.SignatureParameter{"x": {Annotation: "int"}}}
	result := parse(doc("Parameters:", "    x is an integer."), sig)

	if len(result.Sections) != 0 {
		t.Fatalf("got %d sections, want 0", len(result.Sections))
	}

	want := []string{
		"Failed to get 'name: description' pair from 'x is an integer.'",
		"Empty parameters section at line 1",
	}
	assertErrorCount(t, result, len(want))
	for i := range want {
		if result.Errors[i] != want[i] {
			t.Errorf("Errors[%d] = %q, want %q", i, result.Errors[i], want[i])
		}
	}
}

func TestParse_WhitespaceLineAtItemIndent(t *testing.T) {
	t.Parallel()

	sig := &docstring.Signature{Parameters: map[string]docstring.SignatureParameter{
		"x": {Annotation: "int"},
		"y": {Annotation: "str"},
	}}
	result := parse(doc("Args:", "    x: first", "    ", "    y: second"), sig)

	assertKinds(t, result, docstring.SectionParameters)
	if got := len(result.Sections[0].Parameters); got != 2 {
		t.Errorf("got %d parameters, want 2", got)
	}

	assertErrorCount(t, result, 1)
	if want := "Failed to get 'name: description' pair from ''"; result.Errors[0] != want {
		t.Errorf("Errors[0] = %q, want %q", result.Errors[0], want)
	}
}

func TestParse_ExceptionWithoutSeparator(t *testing.T) {
	t.Parallel()

	result := parse(doc(
		"Raises:",
		"    ValueError:",
		"    KeyError: when the key is missing.",
	), nil)

	assertKinds(t, result, docstring.SectionExceptions)
	assertErrorCount(t, result, 1)
	if result.Errors[0] != "Failed to get 'exception: description' pair from 'ValueError:'" {
		t.Errorf("Errors[0] = %q", result.Errors[0])
	}
	if got := result.Sections[0].Exceptions; len(got) != 1 || got[0].Annotation != "KeyError" {
		t.Errorf("Exceptions = %+v", got)
	}
}

func TestParse_Admonitions(t *testing.T) {
	t.Parallel()

	result := parse(doc(
		"Note:",
		"    Hello.",
		"",
		"Note: With title.",
		"    Hello again.",
		"",
		"Something:",
		"    Something.",
	), nil)

	assertErrorCount(t, result, 0)
	assertKinds(t, result, docstring.SectionMarkdown)

	want := doc(
		"!!! note",
		"    Hello.",
		"",
		`!!! note "With title."`,
		"    Hello again.",
		"",
		"!!! something",
		"    Something.",
	)
	if result.Sections[0].Text != want {
		t.Errorf("Text = %q, want %q", result.Sections[0].Text, want)
	}
}

func TestParse_AdmonitionRequiresIndentedBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "indented paragraph",
			text: doc("Warning:", "    Be careful."),
			want: doc("!!! warning", "    Be careful."),
		},
		{
			name: "plain paragraph",
			text: doc("Warning:", "Be careful."),
			want: doc("Warning:", "Be careful."),
		},
		{
			name: "shallow indentation",
			text: doc("Warning:", "  Be careful."),
			want: doc("Warning:", "  Be careful."),
		},
		{
			name: "nested admonition keeps indent",
			text: doc("Text.", "  Tip: Faster", "      Use a cache."),
			want: doc("Text.", `  !!! tip "Faster"`, "      Use a cache."),
		},
		{
			name: "last line",
			text: doc("Text.", "Warning:"),
			want: doc("Text.", "Warning:"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := parse(tt.text, nil)
			assertKinds(t, result, docstring.SectionMarkdown)
			if result.Sections[0].Text != tt.want {
				t.Errorf("Text = %q, want %q", result.Sections[0].Text, tt.want)
			}
		})
	}
}

func TestParse_AdmonitionsDisabled(t *testing.T) {
	t.Parallel()

	text := doc("Warning:", "    Be careful.")
	result := docstring.NewParser(docstring.Google{}, false).Parse(docstring.Input{Text: text})

	assertKinds(t, result, docstring.SectionMarkdown)
	if result.Sections[0].Text != text {
		t.Errorf("Text = %q, want %q", result.Sections[0].Text, text)
	}
}

func TestParse_InvalidSections(t *testing.T) {
	t.Parallel()

	result := parse(doc(
		"Parameters:",
		"Exceptions:",
		"Exceptions:",
		"",
		"Returns:",
		"Note:",
		"",
		"Important:",
	), untyped())

	assertKinds(t, result, docstring.SectionMarkdown)
	if result.Sections[0].Text != doc("Note:", "", "Important:") {
		t.Errorf("Text = %q", result.Sections[0].Text)
	}

	want := []string{
		"Empty parameters section at line 1",
		"Empty exceptions section at line 2",
		"Empty exceptions section at line 3",
		"No return type annotation",
		"Empty return section at line 5",
	}
	assertErrorCount(t, result, len(want))
	for i := range want {
		if result.Errors[i] != want[i] {
			t.Errorf("Errors[%d] = %q, want %q", i, result.Errors[i], want[i])
		}
	}
}

func TestParse_TitleAtEndOfInput(t *testing.T) {
	t.Parallel()

	result := parse(doc("Summary.", "", "Returns:"), nil)
	assertKinds(t, result, docstring.SectionMarkdown)
	assertErrorCount(t, result, 2)
}

func TestParse_MultilineItems(t *testing.T) {
	t.Parallel()

	sig := &docstring.Signature{Parameters: map[string]docstring.SignatureParameter{
		"p": {Annotation: "str"},
		"q": {Annotation: "str"},
	}}

	result := parse(doc(
		"Hi.",
		"",
		"Arguments:",
		"    p: This argument",
		"       has a description",
		"      spawning on multiple lines.",
		"",
		"       It even has blank lines in it.",
		"               Some of these lines",
		"           are indented for no reason.",
		"    q:",
		"      What if the first line is blank?",
	), sig)

	assertKinds(t, result, docstring.SectionMarkdown, docstring.SectionParameters)

	params := result.Sections[1].Parameters
	if len(params) != 2 {
		t.Fatalf("got %d parameters, want 2", len(params))
	}

	wantP := doc(
		"This argument",
		"has a description",
		"spawning on multiple lines.",
		"",
		"It even has blank lines in it.",
		"       Some of these lines",
		"   are indented for no reason.",
	)
	if params[0].Description != wantP {
		t.Errorf("p description = %q, want %q", params[0].Description, wantP)
	}
	if params[1].Description != "What if the first line is blank?" {
		t.Errorf("q description = %q", params[1].Description)
	}

	assertErrorCount(t, result, 4)
	for _, err := range result.Errors {
		if !strings.Contains(err, "should be 4 * 2 = 8 spaces, not") {
			t.Errorf("unexpected error %q", err)
		}
	}
	if result.Errors[0] != "Confusing indentation for continuation line 5 in docstring, should be 4 * 2 = 8 spaces, not 7" {
		t.Errorf("Errors[0] = %q", result.Errors[0])
	}
}

func TestParse_StarredParameters(t *testing.T) {
	t.Parallel()

	sig := &docstring.Signature{Parameters: map[string]docstring.SignatureParameter{
		"a":      {Kind: docstring.KindPositionalOrKeyword},
		"args":   {Kind: docstring.KindVarPositional},
		"kwargs": {Kind: docstring.KindVarKeyword},
	}}

	result := parse(doc(
		"Arguments:",
		"    a: a parameter.",
		"    *args: args parameters.",
		"    **kwargs: kwargs parameters.",
	), sig)

	assertErrorCount(t, result, 0)
	assertKinds(t, result, docstring.SectionParameters)

	want := []struct {
		name string
		desc string
		kind docstring.ParameterKind
	}{
		{"a", "a parameter.", docstring.KindPositionalOrKeyword},
		{"*args", "args parameters.", docstring.KindVarPositional},
		{"**kwargs", "kwargs parameters.", docstring.KindVarKeyword},
	}
	for i, w := range want {
		p := result.Sections[0].Parameters[i]
		if p.Name != w.name || p.Description != w.desc || p.Kind != w.kind {
			t.Errorf("Parameters[%d] = %+v, want %+v", i, p, w)
		}
	}
}

func TestParse_DifferentIndentation(t *testing.T) {
	t.Parallel()

	result := parse(doc(
		"Hello.",
		"",
		"Raises:",
		"     StartAt5: this section's items starts with 5 spaces of indentation.",
		"          Well indented continuation line.",
		"      Badly indented continuation line (will trigger an error).",
		"",
		"              Empty lines are preserved, as well as extra-indentation (this line is a code block).",
		"     AnyOtherLine: ...starting with exactly 5 spaces is a new item.",
		"    AnyLine: ...indented with less than 5 spaces signifies the end of the section.",
	), nil)

	assertKinds(t, result, docstring.SectionMarkdown, docstring.SectionExceptions, docstring.SectionMarkdown)

	exc := result.Sections[1].Exceptions
	if len(exc) != 2 {
		t.Fatalf("got %d exceptions, want 2", len(exc))
	}

	want := doc(
		"this section's items starts with 5 spaces of indentation.",
		"Well indented continuation line.",
		"Badly indented continuation line (will trigger an error).",
		"",
		"    Empty lines are preserved, as well as extra-indentation (this line is a code block).",
	)
	if exc[0].Description != want {
		t.Errorf("Description = %q, want %q", exc[0].Description, want)
	}

	tail := "    AnyLine: ...indented with less than 5 spaces signifies the end of the section."
	if result.Sections[2].Text != tail {
		t.Errorf("trailing markdown = %q, want %q", result.Sections[2].Text, tail)
	}

	assertErrorCount(t, result, 1)
	if !strings.Contains(result.Errors[0], "should be 5 * 2 = 10 spaces, not 6") {
		t.Errorf("Errors[0] = %q", result.Errors[0])
	}
}

func TestParse_TitleCaseInsensitive(t *testing.T) {
	t.Parallel()

	for _, title := range []string{"ARGS:", "Params:", "parameters:  ", "Arguments:"} {
		result := parse(doc(title, "    x: X."), untyped("x"))
		assertKinds(t, result, docstring.SectionParameters)
	}
	for _, title := range []string{"RAISES:", "raise:", "Except:", "exceptions:"} {
		result := parse(doc(title, "    E: e."), nil)
		assertKinds(t, result, docstring.SectionExceptions)
	}
}

func TestParse_IndentedTitleIsNotASection(t *testing.T) {
	t.Parallel()

	result := parse(doc("Summary.", "    Returns:", "        int: The count."), nil)

	assertErrorCount(t, result, 0)
	assertKinds(t, result, docstring.SectionMarkdown)

	want := doc("Summary.", "    !!! returns", "        int: The count.")
	if result.Sections[0].Text != want {
		t.Errorf("Text = %q, want %q", result.Sections[0].Text, want)
	}

	result = docstring.NewParser(docstring.Google{}, false).Parse(docstring.Input{Text: doc("  Raises:", "    E: e.")})
	assertKinds(t, result, docstring.SectionMarkdown)
}

func TestParse_ConcurrentUse(t *testing.T) {
	t.Parallel()

	p := docstring.NewGoogleParser()
	done := make(chan *docstring.Result)
	for range 8 {
		go func() {
			done <- p.Parse(docstring.Input{Text: sumDocstring()})
		}()
	}
	for range 8 {
		result := <-done
		assertErrorCount(t, result, 3)
	}
}
