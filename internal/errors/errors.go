// Package errors renders compiler diagnostics with source context and
// a caret pointing at the offending column (spec.md §7).
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/tidwall/sjson"

	"github.com/somlang/somc/internal/lexer"
)

// Severity distinguishes the diagnostics that abort the pipeline from
// the handful of sites spec.md §7/§9 explicitly allows to report and
// continue (mismatched parens in shunting-yard, call arity mismatches).
type Severity int

const (
	Halt Severity = iota
	Continue
)

// CompilerError is a single diagnostic: what went wrong, where, and in
// which file/source it was found.
type CompilerError struct {
	Message  string
	Source   string
	File     string
	Pos      lexer.Position
	Severity Severity
}

// New creates a halting CompilerError.
func New(pos lexer.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file, Severity: Halt}
}

// NewContinuable creates a CompilerError that does not abort the
// pipeline.
func NewContinuable(pos lexer.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file, Severity: Continue}
}

func (e *CompilerError) Error() string { return e.Format(false) }

var (
	boldStyle  = color.New(color.Bold)
	caretStyle = color.New(color.Bold, color.FgRed)
	dimStyle   = color.New(color.Faint)
)

// Format renders the error with its single source line and a caret.
// When color is true, the message and caret use fatih/color styling;
// callers gate this on isatty (see cmd/somc).
func (e *CompilerError) Format(enableColor bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.StartCol+1)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.StartCol+1)
	}

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.StartCol))
		if enableColor {
			sb.WriteString(caretStyle.Sprint("^"))
		} else {
			sb.WriteString("^")
		}
		sb.WriteString("\n")
	}

	if enableColor {
		sb.WriteString(boldStyle.Sprint(e.Message))
	} else {
		sb.WriteString(e.Message)
	}

	return sb.String()
}

func (e *CompilerError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func (e *CompilerError) getSourceContext(lineNum, before, after int) []string {
	if e.Source == "" {
		return nil
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return nil
	}
	start := lineNum - before
	if start < 1 {
		start = 1
	}
	end := lineNum + after
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start-1 : end]
}

// FormatWithContext renders the error with contextLines of surrounding
// source above and below the error line.
func (e *CompilerError) FormatWithContext(contextLines int, enableColor bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.StartCol+1)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.StartCol+1)
	}

	ctx := e.getSourceContext(e.Pos.Line, contextLines, contextLines)
	if len(ctx) == 0 {
		return e.Format(enableColor)
	}

	startLine := e.Pos.Line - contextLines
	if startLine < 1 {
		startLine = 1
	}

	for i, line := range ctx {
		currentLine := startLine + i
		lineNumStr := fmt.Sprintf("%4d | ", currentLine)

		if currentLine == e.Pos.Line {
			if enableColor {
				sb.WriteString(boldStyle.Sprint(lineNumStr + line))
			} else {
				sb.WriteString(lineNumStr + line)
			}
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.StartCol))
			if enableColor {
				sb.WriteString(caretStyle.Sprint("^"))
			} else {
				sb.WriteString("^")
			}
			sb.WriteString("\n")
		} else {
			if enableColor {
				sb.WriteString(dimStyle.Sprint(lineNumStr + line))
			} else {
				sb.WriteString(lineNumStr + line)
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	if enableColor {
		sb.WriteString(boldStyle.Sprint(e.Message))
	} else {
		sb.WriteString(e.Message)
	}

	return sb.String()
}

// FormatErrors formats a batch of diagnostics, numbering them when
// there is more than one.
func FormatErrors(errs []*CompilerError, enableColor bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(enableColor)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Compilation failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(errs))
		sb.WriteString(e.Format(enableColor))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

func (s Severity) String() string {
	if s == Continue {
		return "continue"
	}
	return "halt"
}

// ToJSON renders a batch of diagnostics as a JSON array for the
// --errors-json CLI flag (SPEC_FULL.md §2), one object per error:
// {"message","file","line","col","severity"}.
func ToJSON(errs []*CompilerError) (string, error) {
	json := "[]"
	var err error
	for i, e := range errs {
		prefix := fmt.Sprintf("%d.", i)
		if json, err = sjson.Set(json, prefix+"message", e.Message); err != nil {
			return "", err
		}
		if json, err = sjson.Set(json, prefix+"file", e.File); err != nil {
			return "", err
		}
		if json, err = sjson.Set(json, prefix+"line", e.Pos.Line); err != nil {
			return "", err
		}
		if json, err = sjson.Set(json, prefix+"col", e.Pos.StartCol+1); err != nil {
			return "", err
		}
		if json, err = sjson.Set(json, prefix+"severity", e.Severity.String()); err != nil {
			return "", err
		}
	}
	return json, nil
}
