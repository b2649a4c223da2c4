// Package report renders import order diagnostics for humans and machines.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"

	"github.com/siyuan-infoblox/js-imports-order/pkg/order"
)

// ErrUnknownFormat is returned for an output format name that is not supported.
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects how findings are rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML}
}

// ParseFormat resolves a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w %q (want one of text, json, yaml)", ErrUnknownFormat, s)
}

// FileResult holds what processing one file produced.
type FileResult struct {
	Path        string
	Diagnostics []order.Diagnostic
	Fixed       int
}

var (
	pathFmt    = color.New(color.Bold).SprintFunc()
	errorFmt   = color.New(color.FgRed).SprintFunc()
	warningFmt = color.New(color.FgYellow).SprintFunc()
	kindFmt    = color.New(color.FgHiBlack).SprintFunc()
	fixableFmt = color.New(color.FgCyan).SprintFunc()
	summaryFmt = color.New(color.FgRed, color.Bold).SprintfFunc()
	fixedFmt   = color.New(color.FgGreen).SprintfFunc()
	cleanFmt   = color.New(color.FgGreen, color.Bold).SprintFunc()
)

// Reporter writes findings to an output stream in one format.
type Reporter struct {
	out    io.Writer
	format Format
}

// New returns a reporter for the given writer and format.
func New(out io.Writer, format Format) *Reporter {
	return &Reporter{out: out, format: format}
}

// Record is the serialized form of one diagnostic. Columns are 1-based.
type Record struct {
	Path      string `json:"path" yaml:"path"`
	Line      int    `json:"line" yaml:"line"`
	Column    int    `json:"column" yaml:"column"`
	EndLine   int    `json:"endLine" yaml:"endLine"`
	EndColumn int    `json:"endColumn" yaml:"endColumn"`
	Rule      string `json:"rule" yaml:"rule"`
	Kind      string `json:"kind" yaml:"kind"`
	Severity  string `json:"severity" yaml:"severity"`
	Message   string `json:"message" yaml:"message"`
	Fixable   bool   `json:"fixable" yaml:"fixable"`
}

// Summary is the document written by the json and yaml formats.
type Summary struct {
	Files      int      `json:"files" yaml:"files"`
	Problems   int      `json:"problems" yaml:"problems"`
	Fixable    int      `json:"fixable" yaml:"fixable"`
	Fixed      int      `json:"fixed" yaml:"fixed"`
	Violations []Record `json:"violations" yaml:"violations"`
}

// Summarize flattens results into a Summary.
func Summarize(results []FileResult) Summary {
	s := Summary{Files: len(results), Violations: []Record{}}
	for _, r := range results {
		s.Fixed += r.Fixed
		for _, d := range r.Diagnostics {
			s.Problems++
			if d.Fixable() {
				s.Fixable++
			}
			s.Violations = append(s.Violations, Record{
				Path:      r.Path,
				Line:      d.Pos.Line,
				Column:    d.Pos.Column + 1,
				EndLine:   d.EndPos.Line,
				EndColumn: d.EndPos.Column + 1,
				Rule:      d.RuleID,
				Kind:      d.Kind.String(),
				Severity:  d.Severity.String(),
				Message:   d.Message,
				Fixable:   d.Fixable(),
			})
		}
	}
	return s
}

// Report renders results.
func (r *Reporter) Report(results []FileResult) error {
	if r.format == FormatText || r.format == "" {
		return r.text(results)
	}
	return Encode(r.out, r.format, Summarize(results))
}

// Encode writes v as a json or yaml document.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal to YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, format)
}

func (r *Reporter) text(results []FileResult) error {
	s := Summarize(results)
	for _, v := range s.Violations {
		line := fmt.Sprintf("%s:%d:%d: %s %s %s",
			pathFmt(v.Path), v.Line, v.Column, severity(v.Severity), v.Message, kindFmt(v.Kind))
		if v.Fixable {
			line += " " + fixableFmt("[fixable]")
		}
		if _, err := fmt.Fprintln(r.out, line); err != nil {
			return err
		}
	}

	if s.Fixed > 0 {
		if _, err := fmt.Fprintln(r.out, fixedFmt("fixed %d %s", s.Fixed, plural(s.Fixed, "problem"))); err != nil {
			return err
		}
	}
	if s.Problems == 0 {
		_, err := fmt.Fprintln(r.out, cleanFmt("no import order problems"))
		return err
	}
	msg := summaryFmt("%d %s in %d %s", s.Problems, plural(s.Problems, "problem"), filesWith(results), plural(filesWith(results), "file"))
	if s.Fixable > 0 {
		msg += fmt.Sprintf(" (%d fixable with --fix)", s.Fixable)
	}
	_, err := fmt.Fprintln(r.out, msg)
	return err
}

func severity(s string) string {
	if s == order.SeverityError.String() {
		return errorFmt(s)
	}
	return warningFmt(s)
}

func filesWith(results []FileResult) int {
	n := 0
	for _, r := range results {
		if len(r.Diagnostics) > 0 {
			n++
		}
	}
	return n
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
