package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

var errStdinNotPiped = errors.New("stdin is a terminal, pipe the message in")

// readStdinIfPiped reads all of r when it is not an interactive terminal.
func readStdinIfPiped(r io.Reader) (string, error) {
	if f, ok := r.(*os.File); ok {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return "", errStdinNotPiped
		}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
