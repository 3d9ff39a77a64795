// SPDX-License-Identifier: MIT
package lexer

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"
)

type (
	// Lexer converts a rune source into Items, one Item per Next call.
	//
	// The Lexer holds exactly one rune of lookahead; it is not reusable once ItemEOF has been
	// emitted.
	Lexer struct {
		debug  bool
		logger logrus.FieldLogger

		// source is the input source.
		source io.RuneReader

		// current is the lookahead rune, eof once the source is exhausted.
		current rune
		// width is the byte length of current.
		width int
		// pos is the byte offset of current.
		pos int

		// separators flags the runes accepted as decimal points.
		separators [256]bool

		// value holds the value of the last scanned number.
		value float64

		// err holds a sticky read failure.
		err error
	}

	// Option defines the Lexer functional option type
	Option func(*Lexer)
)

// eof is the lookahead sentinel for an exhausted source; no valid input rune is negative.
const eof rune = -1

// Lexing errors.
var (
	ErrNilSource        = errors.New("source unavailable")
	ErrRead             = errors.New("reading failed")
	ErrUnknownSymbol    = errors.New("unknown symbol")
	ErrInvalidSeparator = errors.New("invalid decimal separator")
)

// Improves on performance compared to ORs.
var operators = [256]ItemID{
	'+': ItemPlus,
	'-': ItemMinus,
	'*': ItemMul,
	'/': ItemDiv,
	'%': ItemRemainder,
	'^': ItemExp,
	'(': ItemLPar,
	')': ItemRPar,
}

// New creates a Lexer & primes its lookahead from the configured source.
func New(opts ...Option) (l *Lexer, err error) {
	l = &Lexer{logger: logrus.New()}
	for _, r := range DefaultSeparators {
		l.separators[r] = true
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.source == nil {
		l, err = nil, ErrNilSource
		return
	}
	for r := range l.separators {
		if l.separators[r] && (isDigit(rune(r)) || operators[r] != 0) {
			l, err = nil, fmt.Errorf("%w: %q", ErrInvalidSeparator, rune(r))
			return
		}
	}

	l.consume()
	if l.err != nil {
		err, l = l.err, nil
	}

	return
}

// WithConfig configures the logger, debug & separator options from a Config.
func WithConfig(cfg *Config) Option {
	return func(l *Lexer) {
		if cfg == nil {
			return
		}
		cfg.Validate()

		l.logger, l.debug = cfg.Logger, cfg.Debug
		WithSeparators(cfg.Separators...)(l)
	}
}

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(l *Lexer) { l.debug = debug } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(l *Lexer) { l.logger = logger } }

// WithSource configures the source option.
func WithSource(source io.RuneReader) Option { return func(l *Lexer) { l.source = source } }

// WithSeparators replaces the accepted decimal separators.
//
// Separators outside of the single byte range are ignored.
func WithSeparators(separators ...rune) Option {
	return func(l *Lexer) {
		if len(separators) < 1 {
			return
		}

		l.separators = [256]bool{}
		for _, r := range separators {
			if r >= 0 && r < 256 {
				l.separators[r] = true
			}
		}
	}
}

// Logger obtains the logger.
func (l *Lexer) Logger() logrus.FieldLogger { return l.logger }

// Value obtains the value of the most recently scanned number.
//
// The value is reset at the start of every Next call; it is meaningless before an ItemNumber
// has been emitted.
func (l *Lexer) Value() float64 { return l.value }

// Next scans the next Item from the source.
func (l *Lexer) Next() (item Item, err error) {
	l.value = 0
	if err = l.err; err != nil {
		return
	}

	item.Pos = l.pos

	switch r := l.current; {
	case r == eof:
		// Repeated calls keep yielding ItemEOF.
		item.ID = ItemEOF
	case isDigit(r):
		item.ID, item.Val = ItemNumber, l.scanNumber()
		l.value = item.Val
	case l.isSeparator(r):
		l.consume()
		item.ID = ItemDot
	case r < 256 && operators[r] != 0:
		l.consume()
		item.ID = operators[r]
	default:
		err = fmt.Errorf("%w: %q at %d", ErrUnknownSymbol, r, l.pos)
		return
	}

	if err = l.err; err != nil {
		item = Item{}
		return
	}

	if l.debug {
		l.logger.Debug("lexer emit: ", item)
	}

	return
}

// scanNumber consumes a literal of the form `digits [separator digits]`.
//
// Fractional digit k is scaled by 10^-k; a trailing separator with no digits adds nothing.
func (l *Lexer) scanNumber() (value float64) {
	for isDigit(l.current) {
		value = value*10 + float64(l.current-'0')
		l.consume()
	}

	if !l.isSeparator(l.current) {
		return
	}
	l.consume()

	for k := 1; isDigit(l.current); k++ {
		value += float64(l.current-'0') / math.Pow10(k)
		l.consume()
	}

	return
}

// consume advances the lookahead by one rune.
func (l *Lexer) consume() {
	l.pos += l.width

	r, size, err := l.source.ReadRune()
	if err != nil {
		l.current, l.width = eof, 0

		// NOTE: A failed read is not retried.
		if !errors.Is(err, io.EOF) {
			l.err = fmt.Errorf("%w: %v", ErrRead, err)
		}

		return
	}

	l.current, l.width = r, size
}

func (l *Lexer) isSeparator(r rune) bool { return r >= 0 && r < 256 && l.separators[r] }

// isDigit return true for an ASCII decimal digit.
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
