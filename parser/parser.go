// SPDX-License-Identifier: MIT
package parser

// REF: https://en.wikipedia.org/wiki/Recursive_descent_parser
//
// REF: https://en.wikipedia.org/wiki/Operator-precedence_parser#Precedence_climbing_method

import (
	"fmt"
	"math"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/calculator/lexer"
)

type (
	// Tokenizer defines the Item source driven by the Parser.
	Tokenizer interface {
		// Next obtains the next lexer.Item, the Parser holds a single Item at any time.
		Next() (lexer.Item, error)
	}

	// Parser evaluates an expression while descending its grammar, no tree is built.
	//
	// A Parser is single-shot: Statement may only be called once.
	Parser struct {
		debug  bool
		logger logrus.FieldLogger

		tokenizer Tokenizer

		// symbol is the current Item.
		symbol lexer.Item

		allowTrailingInput bool
		used               bool
	}

	// Option defines the Parser functional option type.
	Option func(*Parser)
)

// New instantiates a Parser driving the supplied Tokenizer.
func New(t Tokenizer, opts ...Option) (p *Parser, err error) {
	if t == nil {
		err = ErrNilTokenizer
		return
	}

	p = &Parser{
		tokenizer: t,
		logger:    logrus.New(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return
}

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(p *Parser) { p.debug = debug } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(p *Parser) { p.logger = logger } }

// WithTrailingInput configures whether input following a complete expression is ignored.
//
// Trailing input is rejected with ErrTrailingInput by default.
func WithTrailingInput(allow bool) Option {
	return func(p *Parser) { p.allowTrailingInput = allow }
}

// Statement parses & evaluates a full expression.
//
//	statement := expr
//	expr      := divRem ( (PLUS | MINUS) divRem )*
//	divRem    := mul ( (DIV | REMAINDER) mul )*
//	mul       := exponent ( MUL exponent )*
//	exponent  := operand ( EXP operand )*
//	operand   := NUMBER | LPAR expr RPAR | MINUS operand
func (p *Parser) Statement() (value float64, err error) {
	if p.used {
		err = ErrReused
		return
	}
	p.used = true

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}

		if err != nil {
			value = 0
			if p.debug {
				p.logger.Debugf("parse failed at: %s", spew.Sdump(p.symbol))
			}
		}
	}()

	if err = p.consume(); err != nil {
		return
	}

	if value, err = p.expr(); err != nil {
		return
	}

	if p.symbol.ID != lexer.ItemEOF && !p.allowTrailingInput {
		err = fmt.Errorf("%w: %s", ErrTrailingInput, p.symbol)
	}

	return
}

// expr folds additions & subtractions.
func (p *Parser) expr() (value float64, err error) {
	if value, err = p.divRem(); err != nil {
		return
	}

	for p.symbol.ID == lexer.ItemPlus || p.symbol.ID == lexer.ItemMinus {
		op := p.symbol.ID
		if err = p.consume(); err != nil {
			return
		}

		var rhs float64
		if rhs, err = p.divRem(); err != nil {
			return
		}

		if op == lexer.ItemPlus {
			value += rhs
		} else {
			value -= rhs
		}
	}

	return
}

// divRem folds divisions & remainders, both share a tier.
func (p *Parser) divRem() (value float64, err error) {
	if value, err = p.mul(); err != nil {
		return
	}

	for p.symbol.ID == lexer.ItemDiv || p.symbol.ID == lexer.ItemRemainder {
		op := p.symbol.ID
		if err = p.consume(); err != nil {
			return
		}

		var rhs float64
		if rhs, err = p.mul(); err != nil {
			return
		}

		if op == lexer.ItemDiv {
			value /= rhs
		} else {
			// The result takes the sign of the dividend.
			value = math.Mod(value, rhs)
		}
	}

	return
}

func (p *Parser) mul() (value float64, err error) {
	if value, err = p.exponent(); err != nil {
		return
	}

	for p.symbol.ID == lexer.ItemMul {
		if err = p.consume(); err != nil {
			return
		}

		var rhs float64
		if rhs, err = p.exponent(); err != nil {
			return
		}
		value *= rhs
	}

	return
}

// exponent folds exponentiation left to right; `a^b^c` is `(a^b)^c`.
func (p *Parser) exponent() (value float64, err error) {
	if value, err = p.operand(); err != nil {
		return
	}

	for p.symbol.ID == lexer.ItemExp {
		if err = p.consume(); err != nil {
			return
		}

		var rhs float64
		if rhs, err = p.operand(); err != nil {
			return
		}
		value = math.Pow(value, rhs)
	}

	return
}

// operand evaluates a number, a parenthesized expression or a negation.
func (p *Parser) operand() (value float64, err error) {
	switch p.symbol.ID {
	case lexer.ItemNumber:
		value = p.symbol.Val
		if err = p.consume(); err != nil {
			return
		}

		// The lexer consumes a number's only separator.
		if p.symbol.ID == lexer.ItemDot {
			err = fmt.Errorf("%w: at %d", ErrDecimalFormat, p.symbol.Pos)
		}
	case lexer.ItemLPar:
		if err = p.consume(); err != nil {
			return
		}

		if value, err = p.expr(); err != nil {
			return
		}

		if p.symbol.ID != lexer.ItemRPar {
			err = fmt.Errorf("%w: found %s", ErrUnmatchedParenthesis, p.symbol)
			return
		}
		err = p.consume()
	case lexer.ItemMinus:
		if err = p.consume(); err != nil {
			return
		}

		if value, err = p.operand(); err != nil {
			return
		}
		value = -value
	case lexer.ItemEOF:
		err = ErrIncompleteExpression
	default:
		err = fmt.Errorf("%w: %s", ErrUnexpectedSymbol, p.symbol)
	}

	return
}

// consume replaces the current symbol with the Tokenizer's next Item.
func (p *Parser) consume() (err error) {
	if p.symbol, err = p.tokenizer.Next(); err != nil {
		return
	}

	if p.debug {
		p.logger.Debug("parser symbol: ", p.symbol)
	}

	return
}
