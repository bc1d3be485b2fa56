package errors

import (
	"strings"
	"testing"

	"github.com/somlang/somc/internal/lexer"
	"github.com/tidwall/gjson"
)

func TestFormatIncludesCaretAtColumn(t *testing.T) {
	src := "a: i32: 1 @ 2;"
	e := New(lexer.Position{Line: 1, StartCol: 10, EndCol: 11}, "unrecognized character '@'", src, "main.som")

	out := e.Format(false)

	if !strings.Contains(out, "main.som:1:11") {
		t.Errorf("Format() = %q, want it to mention main.som:1:11", out)
	}
	if !strings.Contains(out, "unrecognized character '@'") {
		t.Errorf("Format() = %q, want message present", out)
	}

	lines := strings.Split(out, "\n")
	var caretLine string
	for _, l := range lines {
		if strings.Contains(l, "^") {
			caretLine = l
		}
	}
	if caretLine == "" {
		t.Fatal("Format() produced no caret line")
	}
	if strings.Index(caretLine, "^") != strings.Index(lines[1], "@") {
		t.Errorf("caret at %d, want it under '@' at %d", strings.Index(caretLine, "^"), strings.Index(lines[1], "@"))
	}
}

func TestFormatWithNoSourceOmitsCaret(t *testing.T) {
	e := New(lexer.Position{Line: 3, StartCol: 0}, "boom", "", "")
	out := e.Format(false)
	if strings.Contains(out, "^") {
		t.Errorf("Format() with empty source should not emit a caret: %q", out)
	}
}

func TestFormatWithContextShowsSurroundingLines(t *testing.T) {
	src := "a: i32: 1;\nb: i32: 2;\nc: i32: 3;"
	e := New(lexer.Position{Line: 2, StartCol: 0}, "bad", src, "main.som")

	out := e.FormatWithContext(1, false)

	if !strings.Contains(out, "a: i32: 1;") || !strings.Contains(out, "c: i32: 3;") {
		t.Errorf("FormatWithContext() missing surrounding lines: %q", out)
	}
}

func TestFormatErrorsSingleVsBatch(t *testing.T) {
	one := []*CompilerError{New(lexer.Position{Line: 1, StartCol: 0}, "only one", "", "")}
	if got := FormatErrors(one, false); strings.Contains(got, "Compilation failed") {
		t.Errorf("single error should not be wrapped in a batch header: %q", got)
	}

	two := []*CompilerError{
		New(lexer.Position{Line: 1, StartCol: 0}, "first", "", ""),
		NewContinuable(lexer.Position{Line: 2, StartCol: 0}, "second", "", ""),
	}
	got := FormatErrors(two, false)
	if !strings.Contains(got, "2 error(s)") {
		t.Errorf("FormatErrors() batch header missing count: %q", got)
	}
	if !strings.Contains(got, "[Error 1 of 2]") || !strings.Contains(got, "[Error 2 of 2]") {
		t.Errorf("FormatErrors() missing per-error headers: %q", got)
	}
}

func TestToJSONRoundTrips(t *testing.T) {
	errs := []*CompilerError{
		New(lexer.Position{Line: 4, StartCol: 2}, "mismatched paren", "", "main.som"),
		NewContinuable(lexer.Position{Line: 7, StartCol: 9}, "arity mismatch", "", "main.som"),
	}

	out, err := ToJSON(errs)
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	if !gjson.Valid(out) {
		t.Fatalf("ToJSON() produced invalid JSON: %s", out)
	}

	items := gjson.Parse(out).Array()
	if len(items) != 2 {
		t.Fatalf("ToJSON() = %d item(s), want 2", len(items))
	}

	first, second := items[0], items[1]
	if got := first.Get("message").String(); got != "mismatched paren" {
		t.Errorf("item[0].message = %q, want %q", got, "mismatched paren")
	}
	if got := first.Get("severity").String(); got != "halt" {
		t.Errorf("item[0].severity = %q, want %q", got, "halt")
	}
	if got := first.Get("line").Int(); got != 4 {
		t.Errorf("item[0].line = %d, want 4", got)
	}
	if got := first.Get("col").Int(); got != 3 {
		t.Errorf("item[0].col = %d, want 3", got)
	}
	if got := second.Get("severity").String(); got != "continue" {
		t.Errorf("item[1].severity = %q, want %q", got, "continue")
	}
}
