// SPDX-License-Identifier: MIT
package calculator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"

	"gitlab.com/fisherprime/calculator/lexer"
	"gitlab.com/fisherprime/calculator/parser"
)

type (
	// Config defines configuration options for evaluating expressions.
	Config struct {
		// Logger for lexer, parser & batch messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger
		Debug  bool

		// Separators lists the runes accepted as a decimal point.
		Separators []rune

		// AllowTrailingInput ignores input following a complete expression.
		AllowTrailingInput bool

		// TrimSpace drops whitespace surrounding an expression, e.g. a file's trailing newline.
		TrimSpace bool

		// Workers bounds the goroutines used by EvaluateAll.
		Workers int
	}
)

// maxIntegral is the magnitude above which integral results are printed in exponent form.
const maxIntegral = 1e21

// DefConfig obtains the package's default Config.
func DefConfig() *Config {
	return &Config{
		Logger:     logrus.New(),
		Separators: lexer.DefaultSeparators,
		Workers:    runtime.NumCPU(),
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
	if len(c.Separators) < 1 {
		c.Separators = lexer.DefaultSeparators
	}
	if c.Workers < 1 {
		c.Workers = runtime.NumCPU()
	}
}

// Evaluate parses & evaluates the single expression read from src.
func Evaluate(ctx context.Context, cfg *Config, src io.RuneReader) (value float64, err error) {
	if cfg == nil {
		cfg = DefConfig()
	}
	cfg.Validate()

	return evaluate(ctx, cfg, src)
}

// EvaluateString evaluates an expression held in a string.
func EvaluateString(ctx context.Context, cfg *Config, input string) (value float64, err error) {
	if cfg == nil {
		cfg = DefConfig()
	}
	cfg.Validate()

	return evaluateString(ctx, cfg, input)
}

// EvaluateFile evaluates the expression stored in the file at path.
func EvaluateFile(ctx context.Context, cfg *Config, path string) (value float64, err error) {
	if cfg == nil {
		cfg = DefConfig()
	}
	cfg.Validate()

	return evaluateFile(ctx, cfg, path)
}

// FormatResult renders a result, integral values are printed without a fraction.
func FormatResult[T constraints.Float](value T) string {
	v := float64(value)
	if v == math.Trunc(v) && math.Abs(v) < maxIntegral {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}

func evaluate(ctx context.Context, cfg *Config, src io.RuneReader) (value float64, err error) {
	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
		var l *lexer.Lexer
		if l, err = lexer.New(
			lexer.WithSource(src),
			lexer.WithConfig(&lexer.Config{
				Logger:     cfg.Logger,
				Debug:      cfg.Debug,
				Separators: cfg.Separators,
			}),
		); err != nil {
			return
		}

		var p *parser.Parser
		if p, err = parser.New(l,
			parser.WithLogger(cfg.Logger),
			parser.WithDebug(cfg.Debug),
			parser.WithTrailingInput(cfg.AllowTrailingInput),
		); err != nil {
			return
		}

		value, err = p.Statement()
	}

	return
}

func evaluateString(ctx context.Context, cfg *Config, input string) (value float64, err error) {
	if cfg.TrimSpace {
		input = strings.TrimSpace(input)
	}

	return evaluate(ctx, cfg, strings.NewReader(input))
}

func evaluateFile(ctx context.Context, cfg *Config, path string) (value float64, err error) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	if !cfg.TrimSpace {
		return evaluate(ctx, cfg, bufio.NewReader(file))
	}

	var content []byte
	if content, err = io.ReadAll(file); err != nil {
		err = fmt.Errorf("%w: %v", lexer.ErrRead, err)
		return
	}

	return evaluateString(ctx, cfg, string(content))
}
