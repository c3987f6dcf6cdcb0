package iojson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrNoInput is returned by ReadStream when no file is given and stdin is a terminal.
var ErrNoInput = errors.New("no input provided")

// FileReader decodes JSON values from the file named by its flag, or from
// piped stdin.
type FileReader[T any] struct {
	fileFlagValue string
	stdin         io.Reader
}

// Flag returns the --results/-f flag bound to the reader.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "results",
		Aliases:     []string{"f"},
		Usage:       "path to ranked results JSON (reads from stdin when piped)",
		Destination: &fr.fileFlagValue,
	}
}

// Provided reports whether input is available without blocking on a terminal.
func (fr *FileReader[T]) Provided() bool {
	if fr.fileFlagValue != "" || fr.stdin != nil {
		return true
	}
	return !term.IsTerminal(int(os.Stdin.Fd()))
}

// ReadStream decodes consecutive JSON values, such as JSON lines, until EOF.
// A stream holding a single JSON array of T is accepted as well.
func (fr *FileReader[T]) ReadStream() ([]T, error) {
	reader, closer, err := fr.open()
	if err != nil {
		return nil, err
	}
	defer closer()

	var out []T
	dec := json.NewDecoder(reader)
	for {
		var raw json.RawMessage
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}

		if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
			var batch []T
			if err := json.Unmarshal(raw, &batch); err != nil {
				return nil, fmt.Errorf("decode JSON: %w", err)
			}
			out = append(out, batch...)
			continue
		}

		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
		out = append(out, v)
	}

	return out, nil
}

func (fr *FileReader[T]) open() (io.Reader, func(), error) {
	switch {
	case fr.fileFlagValue != "":
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return nil, nil, fmt.Errorf("open file: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	case fr.stdin != nil:
		return fr.stdin, func() {}, nil
	default:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, fmt.Errorf("%w (stdin is a terminal); use -f flag or pipe JSON input", ErrNoInput)
		}
		return os.Stdin, func() {}, nil
	}
}
