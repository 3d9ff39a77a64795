// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"gitlab.com/fisherprime/calculator"
)

type (
	// calcFlags defines the commandline flags of calc.
	calcFlags struct {
		Debug   bool
		Lenient bool
		Trim    bool
		Workers int
	}
)

const (
	defaultFile = "file.txt"
	exprFlag    = "expr"
)

// ErrFailedEvaluations reports the count of inputs that could not be evaluated.
var ErrFailedEvaluations = errors.New("failed evaluations")

// AsCliFlags binds calcFlags to cli.Flags.
func (flags *calcFlags) AsCliFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    exprFlag,
			Aliases: []string{"e"},
			Usage:   "Evaluate an expression instead of reading a file, repeatable.",
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "Log lexer & parser activity.",
			EnvVars:     []string{"CALC_DEBUG"},
			Destination: &flags.Debug,
		},
		&cli.BoolFlag{
			Name:        "lenient",
			Usage:       "Ignore input following a complete expression.",
			Destination: &flags.Lenient,
		},
		&cli.BoolFlag{
			Name:        "trim",
			Value:       true,
			Usage:       "Drop whitespace surrounding each expression.",
			Destination: &flags.Trim,
		},
		&cli.IntFlag{
			Name:        "workers",
			Usage:       "Number of concurrent evaluations, defaults to the CPU count.",
			EnvVars:     []string{"CALC_WORKERS"},
			Destination: &flags.Workers,
		},
	}
}

// config converts calcFlags to a calculator.Config.
func (flags *calcFlags) config() *calculator.Config {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if flags.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	return &calculator.Config{
		Logger:             logger,
		Debug:              flags.Debug,
		AllowTrailingInput: flags.Lenient,
		TrimSpace:          flags.Trim,
		Workers:            flags.Workers,
	}
}

// run evaluates the expressions & files, printing one result per line to w.
func run(ctx context.Context, w io.Writer, flags *calcFlags, exprs, paths []string) (err error) {
	if w == nil {
		w = os.Stdout
	}

	sources := make([]calculator.Source, 0, len(exprs)+len(paths))
	for _, expr := range exprs {
		sources = append(sources, calculator.Source{Name: expr, Expression: expr})
	}
	for _, path := range paths {
		sources = append(sources, calculator.Source{Name: path, Path: path})
	}
	if len(sources) < 1 {
		sources = append(sources, calculator.Source{Name: defaultFile, Path: defaultFile})
	}

	cfg := flags.config()

	results, err := calculator.EvaluateAll(ctx, cfg, sources)
	if err != nil {
		return
	}

	for _, resl := range results {
		if resl.Err != nil {
			cfg.Logger.WithField("source", resl.Name).Error(resl.Err)
			continue
		}

		if len(results) == 1 {
			_, err = fmt.Fprintln(w, calculator.FormatResult(resl.Value))
		} else {
			_, err = fmt.Fprintf(w, "%s: %s\n", resl.Name, calculator.FormatResult(resl.Value))
		}
		if err != nil {
			return
		}
	}

	if failed := results.Failed(); failed > 0 {
		err = fmt.Errorf("%w: %d of %d", ErrFailedEvaluations, failed, len(results))
	}

	return
}
