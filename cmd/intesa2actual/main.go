package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/actual-tools/intesa2actual/internal/commands"
	"github.com/actual-tools/intesa2actual/internal/statement"
	"github.com/actual-tools/intesa2actual/internal/transform"
)

// Exit codes let scripts tell conversion failures apart.
const (
	exitOK = iota
	exitFailure
	exitUnsupportedFormat
	exitHeaderNotFound
	exitMissingColumn
	exitMalformedRow
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var formatErr statement.UnsupportedFormatError
	if errors.As(err, &formatErr) {
		return exitUnsupportedFormat
	}

	if errors.Is(err, transform.ErrHeaderNotFound) {
		return exitHeaderNotFound
	}

	var columnErr transform.MissingColumnError
	if errors.As(err, &columnErr) {
		return exitMissingColumn
	}

	var rowErr transform.MalformedRowError
	if errors.As(err, &rowErr) {
		return exitMalformedRow
	}

	return exitFailure
}
