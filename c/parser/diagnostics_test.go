package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/cfront/c/token"
	"github.com/nalgeon/be"
	"gopkg.in/yaml.v3"
)

type diagnosticSpec struct {
	Kind     string   `yaml:"kind,omitempty"`
	Severity string   `yaml:"severity,omitempty"`
	Line     int      `yaml:"line,omitempty"`
	Column   int      `yaml:"column,omitempty"`
	Message  string   `yaml:"message,omitempty"`
	Notes    []string `yaml:"notes,omitempty"`
}

type diagnosticCase struct {
	Name        string           `yaml:"name"`
	Std         string           `yaml:"std,omitempty"`
	Entry       string           `yaml:"entry,omitempty"`
	Input       string           `yaml:"input"`
	Diagnostics []diagnosticSpec `yaml:"diagnostics"`
}

type diagnosticFile struct {
	Tests []diagnosticCase `yaml:"tests"`
}

func TestDiagnosticsYAML(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "diagnostics.yaml"))
	be.Err(t, err, nil)

	var file diagnosticFile
	be.Err(t, yaml.Unmarshal(data, &file), nil)
	be.True(t, len(file.Tests) > 0)

	for _, tc := range file.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			std := token.C17
			if tc.Std != "" {
				s, err := token.ParseStandard(tc.Std)
				be.Err(t, err, nil)
				std = s
			}

			p := newParser(t, std)
			ts := lex(t, tc.Input, std)
			if tc.Entry == "stmt" {
				p.ParseStatement(ts)
			} else {
				p.Parse(ts)
			}

			got := p.Diagnostics()
			be.Equal(t, len(got), len(tc.Diagnostics))
			for i, want := range tc.Diagnostics {
				checkDiagnostic(t, got[i], want)
			}
		})
	}
}

func checkDiagnostic(t *testing.T, got *ParseError, want diagnosticSpec) {
	t.Helper()
	if want.Kind != "" {
		be.Equal(t, got.Kind.String(), want.Kind)
	}
	if want.Severity != "" {
		be.Equal(t, got.Severity.String(), want.Severity)
	}
	if want.Line != 0 {
		be.Equal(t, got.Range.Start.Line, want.Line)
	}
	if want.Column != 0 {
		be.Equal(t, got.Range.Start.Column, want.Column)
	}
	if want.Message != "" {
		be.Equal(t, got.Message, want.Message)
	}
	if want.Notes != nil {
		be.Equal(t, got.Notes, want.Notes)
	}
}
