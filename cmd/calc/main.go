// SPDX-License-Identifier: MIT

// Command calc evaluates arithmetic expressions stored in files or passed as flags.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	var flags calcFlags

	app := &cli.App{
		Name:      "calc",
		Usage:     "Evaluate arithmetic expressions.",
		ArgsUsage: "[file...]",
		Description: "Evaluates the expression held in each file (" + defaultFile + " when no input is given). " +
			"Supported: + - * / % ^, parentheses, unary minus & decimals using '.' or ','.",
		Flags: flags.AsCliFlags(),
		Action: func(c *cli.Context) error {
			return run(c.Context, c.App.Writer, &flags, c.StringSlice(exprFlag), c.Args().Slice())
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
