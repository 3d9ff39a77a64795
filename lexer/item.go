// SPDX-License-Identifier: MIT
package lexer

import "fmt"

type (
	// ItemID int holding an identifier for the Item tokens
	ItemID int

	// Item type holding the identity, value & position of a scanned symbol.
	Item struct {
		Val float64 // The value of a number Item, 0 otherwise
		ID  ItemID  // The type of this Item
		Pos int     // The starting position, (in bytes) of this Item
	}
)

// iota is used to define an incrementing number sequence for const
// declarations
const (
	_ ItemID = iota // Consume 0 to start actual numbering at 1.
	ItemError       // Notify occurrence of an `error`.
	ItemPlus        // '+'.
	ItemMinus       // '-'.
	ItemMul         // '*'.
	ItemDiv         // '/'.
	ItemRemainder   // '%'.
	ItemExp         // '^'.
	ItemLPar        // '('.
	ItemRPar        // ')'.
	ItemDot         // A decimal separator outside of a number literal.
	ItemNumber      // Number literal, value held in Item.Val.
	ItemEOF         // End of the file
)

var itemNames = [...]string{
	ItemError:     "ERROR",
	ItemPlus:      "+",
	ItemMinus:     "-",
	ItemMul:       "*",
	ItemDiv:       "/",
	ItemRemainder: "%",
	ItemExp:       "^",
	ItemLPar:      "(",
	ItemRPar:      ")",
	ItemDot:       ".",
	ItemNumber:    "NUMBER",
	ItemEOF:       "EOF",
}

// String is the fmt.Stringer implementation for ItemID.
func (i ItemID) String() string {
	if i < ItemError || int(i) >= len(itemNames) {
		return fmt.Sprintf("ItemID(%d)", int(i))
	}

	return itemNames[i]
}

// String is the fmt.Stringer implementation for Item.
func (i Item) String() string {
	if i.ID == ItemNumber {
		return fmt.Sprintf("%s(%v)@%d", i.ID, i.Val, i.Pos)
	}

	return fmt.Sprintf("%s@%d", i.ID, i.Pos)
}
