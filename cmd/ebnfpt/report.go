package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dhamidi/ebnfpt/config"
	"github.com/dhamidi/ebnfpt/parse"
)

var (
	pathColor  = color.New(color.Bold)
	errorColor = color.New(color.FgRed)
	okColor    = color.New(color.FgGreen)
	faintColor = color.New(color.Faint)
)

func configureColor(mode string) {
	switch mode {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorColor.Sprint("error:"), err)
}

// printParseError writes err as file:line:col: message.
func printParseError(w io.Writer, path string, err error) {
	var perr *parse.Error
	if errors.As(err, &perr) {
		fmt.Fprintf(w, "%s: %s\n", pathColor.Sprintf("%s:%s", path, perr.Pos), errorColor.Sprint(perr.Error()))
		return
	}
	fmt.Fprintf(w, "%s: %s\n", pathColor.Sprint(path), errorColor.Sprint(err.Error()))
}

func printOK(w io.Writer, path string) {
	fmt.Fprintf(w, "%s: %s\n", pathColor.Sprint(path), okColor.Sprint("ok"))
}
