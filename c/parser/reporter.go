package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ErrorReporter collects diagnostics in order, keeping at most MaxErrors of
// them. Reports past the cap are counted and dropped.
type ErrorReporter struct {
	MaxErrors int

	diagnostics []*ParseError
	dropped     int
}

func NewErrorReporter(maxErrors int) *ErrorReporter {
	return &ErrorReporter{MaxErrors: maxErrors}
}

// Report records err and reports whether it was kept.
func (r *ErrorReporter) Report(err *ParseError) bool {
	if r.MaxErrors > 0 && len(r.diagnostics) >= r.MaxErrors {
		r.dropped++
		return false
	}
	r.diagnostics = append(r.diagnostics, err)
	return true
}

// Diagnostics returns every kept report, warnings included.
func (r *ErrorReporter) Diagnostics() []*ParseError {
	return r.diagnostics
}

// Errors returns the kept reports of error severity or worse.
func (r *ErrorReporter) Errors() []*ParseError {
	var out []*ParseError
	for _, d := range r.diagnostics {
		if d.IsError() {
			out = append(out, d)
		}
	}
	return out
}

func (r *ErrorReporter) Warnings() []*ParseError {
	var out []*ParseError
	for _, d := range r.diagnostics {
		if !d.IsError() {
			out = append(out, d)
		}
	}
	return out
}

func (r *ErrorReporter) Dropped() int {
	return r.dropped
}

func (r *ErrorReporter) Full() bool {
	return r.MaxErrors > 0 && len(r.diagnostics) >= r.MaxErrors
}

func (r *ErrorReporter) Reset() {
	r.diagnostics = nil
	r.dropped = 0
}

// Format renders err like a compiler diagnostic. When src is the text the
// error points into, the offending line is quoted with a caret under the
// error column.
func (r *ErrorReporter) Format(err *ParseError, src []byte) string {
	var b strings.Builder
	prefix := err.Severity.String()
	if err.Severity == SeverityFatal {
		prefix = "fatal error"
	}
	fmt.Fprintf(&b, "%s: %s: %s\n", err.Range.Start, prefix, err.Message)

	if line, ok := sourceLine(src, err.Range.Start.Line); ok {
		gutter := fmt.Sprintf("%5d | ", err.Range.Start.Line)
		fmt.Fprintf(&b, "%s%s\n", gutter, line)
		fmt.Fprintf(&b, "%s| %s%s\n", strings.Repeat(" ", len(gutter)-2), caretPad(line, err.Range.Start.Column), carets(err))
	}
	for _, note := range err.Notes {
		fmt.Fprintf(&b, "note: %s\n", note)
	}
	for _, s := range err.Suggestions {
		fmt.Fprintf(&b, "help: %s\n", s)
	}
	return b.String()
}

// Print writes every kept diagnostic followed by a summary line.
func (r *ErrorReporter) Print(w io.Writer, src []byte) error {
	for _, d := range r.diagnostics {
		if _, err := io.WriteString(w, r.Format(d, src)); err != nil {
			return err
		}
	}
	if r.dropped > 0 {
		if _, err := fmt.Fprintf(w, "%d more diagnostics not shown\n", r.dropped); err != nil {
			return err
		}
	}
	return nil
}

func sourceLine(src []byte, line int) (string, bool) {
	if len(src) == 0 || line <= 0 {
		return "", false
	}
	for i := 1; i < line; i++ {
		nl := bytes.IndexByte(src, '\n')
		if nl < 0 {
			return "", false
		}
		src = src[nl+1:]
	}
	if nl := bytes.IndexByte(src, '\n'); nl >= 0 {
		src = src[:nl]
	}
	return strings.TrimRight(string(src), "\r"), true
}

// caretPad reproduces the whitespace before byte column col so tabs line up.
func caretPad(line string, col int) string {
	if col <= 1 {
		return ""
	}
	if col-1 < len(line) {
		line = line[:col-1]
	}
	var b strings.Builder
	for _, r := range line {
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func carets(err *ParseError) string {
	n := 1
	if err.Range.End.Line == err.Range.Start.Line {
		n = utf8.RuneCountInString(err.Actual.Lexeme)
	}
	if n < 1 {
		n = 1
	}
	return "^" + strings.Repeat("~", n-1)
}
