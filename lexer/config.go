// SPDX-License-Identifier: MIT
package lexer

import (
	"github.com/sirupsen/logrus"
)

type (
	// Config defines configuration options for the Lexer's operations.
	Config struct {
		Logger logrus.FieldLogger
		Debug  bool

		// Separators lists the runes accepted as a decimal point.
		Separators []rune
	}
)

// DefaultSeparators holds the decimal separators accepted when none are configured.
var DefaultSeparators = []rune{'.', ','}

// DefaultConfig configures the lexer's Config.
func DefaultConfig() *Config {
	return &Config{
		Separators: DefaultSeparators,
		Logger:     logrus.New(),
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if len(c.Separators) < 1 {
		c.Separators = DefaultSeparators
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
}
