// SPDX-License-Identifier: MIT
package calculator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/panjf2000/ants/v2"
	"golang.org/x/exp/slices"
)

type (
	// Source defines an expression to be evaluated by EvaluateAll.
	//
	// Path takes precedence over Expression.
	Source struct {
		Name       string
		Path       string
		Expression string
	}

	// Result holds the outcome of evaluating a Source.
	Result struct {
		Err   error
		Name  string
		Value float64
		Index int // Position of the Source in the EvaluateAll input
	}

	// Results is a type wrapper for []Result.
	Results []Result
)

// Batch evaluation errors.
var (
	ErrEmptyBatch = errors.New("empty batch")
	ErrSubmit     = errors.New("failed to schedule evaluation")
)

// EvaluateAll evaluates independent expressions concurrently.
//
// Every Source is parsed by its own lexer & parser; the Results follow the order of sources.
func EvaluateAll(ctx context.Context, cfg *Config, sources []Source) (results Results, err error) {
	if len(sources) < 1 {
		err = ErrEmptyBatch
		return
	}

	if cfg == nil {
		cfg = DefConfig()
	}
	cfg.Validate()

	pool, err := ants.NewPool(cfg.Workers,
		ants.WithLogger(cfg.Logger),
		ants.WithPanicHandler(func(r interface{}) { cfg.Logger.Errorf("evaluation panicked: %v", r) }),
	)
	if err != nil {
		return
	}
	defer pool.Release()

	resultChan := make(chan Result, len(sources))
	wg := new(sync.WaitGroup)

	for index := range sources {
		index, src := index, sources[index]

		wg.Add(1)
		if err = pool.Submit(func() {
			defer wg.Done()
			resultChan <- src.evaluate(ctx, cfg, index)
		}); err != nil {
			wg.Done()
			err = fmt.Errorf("%w (%s): %v", ErrSubmit, src.Name, err)

			break
		}
	}

	wg.Wait()
	close(resultChan)

	if err != nil {
		return
	}

	results = make(Results, 0, len(sources))
	for resl := range resultChan {
		results = append(results, resl)
	}
	slices.SortFunc(results, func(a, b Result) int { return a.Index - b.Index })

	if cfg.Debug {
		cfg.Logger.Debugf("batch results: %s", spew.Sdump(results))
	}

	return
}

// Failed counts the Results holding an error.
func (r Results) Failed() (count int) {
	for index := range r {
		if r[index].Err != nil {
			count++
		}
	}

	return
}

func (s Source) evaluate(ctx context.Context, cfg *Config, index int) (resl Result) {
	resl = Result{Index: index, Name: s.Name}

	if s.Path != "" {
		resl.Value, resl.Err = evaluateFile(ctx, cfg, s.Path)
	} else {
		resl.Value, resl.Err = evaluateString(ctx, cfg, s.Expression)
	}

	if resl.Err != nil {
		cfg.Logger.WithField("source", s.Name).Debugf("evaluation failed: %v", resl.Err)
	}

	return
}
