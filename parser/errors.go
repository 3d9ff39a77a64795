// SPDX-License-Identifier: MIT
package parser

import (
	"errors"
	"fmt"
)

// ErrCalculator is wrapped by every grammar violation.
var ErrCalculator = errors.New("calculator")

// Grammar errors.
var (
	ErrUnmatchedParenthesis = fmt.Errorf("%w: no matching parenthesis found", ErrCalculator)
	ErrIncompleteExpression = fmt.Errorf("%w: expression is incomplete", ErrCalculator)
	ErrDecimalFormat        = fmt.Errorf("%w: decimals cannot have two dots", ErrCalculator)
	ErrUnexpectedSymbol     = fmt.Errorf("%w: unexpected symbol", ErrCalculator)
	ErrTrailingInput        = fmt.Errorf("%w: unexpected input after expression", ErrCalculator)
)

// Parser errors.
var (
	ErrNilTokenizer = errors.New("tokenizer unavailable")
	ErrReused       = errors.New("parser already used")
	ErrPanicked     = errors.New("recovery from panic")
)
