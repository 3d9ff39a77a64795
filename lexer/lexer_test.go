// SPDX-License-Identifier: MIT
package lexer

import (
	"bufio"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBrokenSource = errors.New("broken source")

// lexAll collects Items up to & including ItemEOF or the first error.
func lexAll(t *testing.T, l *Lexer) (items []Item, err error) {
	t.Helper()

	for index := 0; index < 64; index++ {
		var item Item
		if item, err = l.Next(); err != nil {
			return
		}

		items = append(items, item)
		if item.ID == ItemEOF {
			return
		}
	}
	t.Fatal("lexer did not reach EOF")

	return
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{
			name:    "missing source",
			opts:    []Option{WithLogger(logrus.New())},
			wantErr: ErrNilSource,
		},
		{
			name: "valid",
			opts: []Option{WithSource(strings.NewReader("1"))},
		},
		{
			name:    "digit separator",
			opts:    []Option{WithSource(strings.NewReader("1")), WithSeparators('1')},
			wantErr: ErrInvalidSeparator,
		},
		{
			name:    "operator separator",
			opts:    []Option{WithSource(strings.NewReader("1")), WithSeparators('+')},
			wantErr: ErrInvalidSeparator,
		},
		{
			name:    "unreadable source",
			opts:    []Option{WithSource(bufio.NewReader(iotest.ErrReader(errBrokenSource)))},
			wantErr: ErrRead,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if (got == nil) != (tt.wantErr != nil) {
				t.Errorf("New() = %v, wantErr %v", got, tt.wantErr)
			}
		})
	}
}

func TestLexer_Next(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantItems []Item
		wantErr   error
	}{
		{
			name:      "empty",
			src:       "",
			wantItems: []Item{{ID: ItemEOF}},
		},
		{
			name: "operators",
			src:  "+-*/%^()",
			wantItems: []Item{
				{ID: ItemPlus, Pos: 0},
				{ID: ItemMinus, Pos: 1},
				{ID: ItemMul, Pos: 2},
				{ID: ItemDiv, Pos: 3},
				{ID: ItemRemainder, Pos: 4},
				{ID: ItemExp, Pos: 5},
				{ID: ItemLPar, Pos: 6},
				{ID: ItemRPar, Pos: 7},
				{ID: ItemEOF, Pos: 8},
			},
		},
		{
			name:      "integer",
			src:       "120",
			wantItems: []Item{{ID: ItemNumber, Val: 120}, {ID: ItemEOF, Pos: 3}},
		},
		{
			name:      "decimal",
			src:       "2.5",
			wantItems: []Item{{ID: ItemNumber, Val: 2.5}, {ID: ItemEOF, Pos: 3}},
		},
		{
			name:      "comma decimal",
			src:       "2,5",
			wantItems: []Item{{ID: ItemNumber, Val: 2.5}, {ID: ItemEOF, Pos: 3}},
		},
		{
			name:      "trailing separator",
			src:       "7.",
			wantItems: []Item{{ID: ItemNumber, Val: 7}, {ID: ItemEOF, Pos: 2}},
		},
		{
			name: "second separator",
			src:  "1.5.5",
			wantItems: []Item{
				{ID: ItemNumber, Val: 1.5},
				{ID: ItemDot, Pos: 3},
				{ID: ItemNumber, Val: 5, Pos: 4},
				{ID: ItemEOF, Pos: 5},
			},
		},
		{
			name:      "leading separator",
			src:       ".5",
			wantItems: []Item{{ID: ItemDot}, {ID: ItemNumber, Val: 5, Pos: 1}, {ID: ItemEOF, Pos: 2}},
		},
		{
			name: "expression",
			src:  "3*(4-1)",
			wantItems: []Item{
				{ID: ItemNumber, Val: 3},
				{ID: ItemMul, Pos: 1},
				{ID: ItemLPar, Pos: 2},
				{ID: ItemNumber, Val: 4, Pos: 3},
				{ID: ItemMinus, Pos: 4},
				{ID: ItemNumber, Val: 1, Pos: 5},
				{ID: ItemRPar, Pos: 6},
				{ID: ItemEOF, Pos: 7},
			},
		},
		{
			name:    "unknown symbol",
			src:     "?",
			wantErr: ErrUnknownSymbol,
		},
		{
			name:      "whitespace",
			src:       "1 +1",
			wantItems: []Item{{ID: ItemNumber, Val: 1}},
			wantErr:   ErrUnknownSymbol,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(WithSource(strings.NewReader(tt.src)))
			require.NoError(t, err)

			gotItems, err := lexAll(t, l)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Lexer.Next() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(gotItems, tt.wantItems) {
				t.Errorf("Lexer.Next() = %v, want %v", gotItems, tt.wantItems)
			}
		})
	}
}

func TestLexer_Value(t *testing.T) {
	l, err := New(WithSource(strings.NewReader("5+6,125")))
	require.NoError(t, err)

	item, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, ItemNumber, item.ID)
	assert.Equal(t, 5.0, l.Value())

	_, err = l.Next()
	require.NoError(t, err)
	assert.Zero(t, l.Value(), "value is reset for non-number items")

	_, err = l.Next()
	require.NoError(t, err)
	assert.InDelta(t, 6.125, l.Value(), 1e-12)
}

func TestLexer_DigitsOnly(t *testing.T) {
	for _, src := range []string{"0", "5", "42", "120", "9007199254740"} {
		l, err := New(WithSource(strings.NewReader(src)))
		require.NoError(t, err)

		item, err := l.Next()
		require.NoError(t, err)

		var want float64
		for _, r := range src {
			want = want*10 + float64(r-'0')
		}
		assert.Equal(t, want, item.Val, src)
		assert.Equal(t, want, l.Value(), src)
	}
}

func TestLexer_StickyEOF(t *testing.T) {
	l, err := New(WithSource(strings.NewReader("1")))
	require.NoError(t, err)

	_, err = l.Next()
	require.NoError(t, err)

	for index := 0; index < 3; index++ {
		item, err := l.Next()
		require.NoError(t, err)
		assert.Equal(t, ItemEOF, item.ID)
	}
}

func TestLexer_ReadFailure(t *testing.T) {
	src := bufio.NewReader(io.MultiReader(strings.NewReader("12"), iotest.ErrReader(errBrokenSource)))

	l, err := New(WithSource(src))
	require.NoError(t, err)

	_, err = l.Next()
	require.ErrorIs(t, err, ErrRead)

	// Failures are not retried.
	_, err = l.Next()
	require.ErrorIs(t, err, ErrRead)
}

func TestLexer_Separators(t *testing.T) {
	l, err := New(WithSource(strings.NewReader("1,5")), WithConfig(&Config{Separators: []rune{'.'}}))
	require.NoError(t, err)

	items, err := lexAll(t, l)
	require.ErrorIs(t, err, ErrUnknownSymbol)
	assert.Equal(t, []Item{{ID: ItemNumber, Val: 1}}, items)
}

func TestItemID_String(t *testing.T) {
	assert.Equal(t, "^", ItemExp.String())
	assert.Equal(t, "EOF", ItemEOF.String())
	assert.Equal(t, "ItemID(0)", ItemID(0).String())
	assert.Equal(t, "NUMBER(2.5)@3", Item{ID: ItemNumber, Val: 2.5, Pos: 3}.String())
}

func BenchmarkLexer_Next(b *testing.B) {
	src := "(2*(15/((4+5)-(8*(2+1)))))+3.25"

	logger := logrus.New()

	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		b.StopTimer()
		l, _ := New(WithLogger(logger), WithSource(strings.NewReader(src)))
		b.StartTimer()

		for {
			if item, err := l.Next(); err != nil || item.ID == ItemEOF {
				break
			}
		}
	}
}
