package parser

import (
	"fmt"
	"strings"

	"github.com/dhamidi/cfront/c/token"
	"github.com/tliron/commonlog"
)

const (
	DefaultMaxErrors = 100
	DefaultMaxDepth  = 256

	// maxTopLevelFailures bounds failed external declarations per translation
	// unit. Successful iterations are not counted: each one consumes tokens,
	// so the input length already bounds them, and a long valid file must
	// not be cut off.
	maxTopLevelFailures = 300
	// maxBlockFailures bounds failed items inside one compound statement,
	// counted the same way.
	maxBlockFailures = 50
	// maxDeclaratorDepth bounds nested parenthesized declarators.
	maxDeclaratorDepth = 10
)

// Config selects the dialect and limits of a parse. It is read once, when
// the parser is created or reset.
type Config struct {
	Standard  token.Standard `yaml:"-"`
	MaxErrors int            `yaml:"max_errors"`
	Recovery  bool           `yaml:"recovery"`
	Verbosity int            `yaml:"verbosity"`
	MaxDepth  int            `yaml:"max_depth"`
}

func DefaultConfig() Config {
	return Config{
		Standard:  token.C17,
		MaxErrors: DefaultMaxErrors,
		Recovery:  true,
		MaxDepth:  DefaultMaxDepth,
	}
}

// ConfigError describes an invalid Config. It is only ever returned at setup.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return "invalid parser configuration: " + strings.Join(e.Problems, "; ")
}

func (c Config) Validate() error {
	var problems []string
	if !c.Standard.IsValid() {
		problems = append(problems, fmt.Sprintf("unknown standard %d", int(c.Standard)))
	}
	if c.MaxErrors <= 0 {
		problems = append(problems, fmt.Sprintf("max errors must be positive, got %d", c.MaxErrors))
	}
	if c.MaxDepth < 16 {
		problems = append(problems, fmt.Sprintf("max depth must be at least 16, got %d", c.MaxDepth))
	}
	if c.Verbosity < 0 {
		problems = append(problems, fmt.Sprintf("verbosity must not be negative, got %d", c.Verbosity))
	}
	if len(problems) > 0 {
		return &ConfigError{Problems: problems}
	}
	return nil
}

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithLogger replaces the default "cfront.parser" logger.
func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// WithRecoveryStrategies replaces the default strategy list, in order.
func WithRecoveryStrategies(strategies ...RecoveryStrategy) Option {
	return func(p *Parser) {
		p.strategies = strategies
	}
}
