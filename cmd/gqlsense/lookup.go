package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/sevigo/gqlsense/query"
)

var (
	errNoResult           = errors.New("nothing found at position")
	errPositionOutOfRange = errors.New("position is past the end of the file")
)

func newDefinitionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "definition <file> <line:col>",
		Short: "Print where the identifier at a position is declared",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, offset, err := readAt(args[0], args[1])
			if err != nil {
				return err
			}
			r, ok := query.Locate(text, offset)
			if !ok {
				a.logger.Debug("No declaration found", "file", args[0], "position", args[1])
				return fmt.Errorf("%w %s", errNoResult, args[1])
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s:%d:%d\n", args[0], r.Start.Line+1, r.Start.Character+1)
			return err
		},
	}
}

func newHoverCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hover <file> <line:col>",
		Short: "Print documentation for the identifier at a position as markdown",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, offset, err := readAt(args[0], args[1])
			if err != nil {
				return err
			}
			h, ok := query.Describe(text, offset)
			if !ok {
				a.logger.Debug("No documentation found", "file", args[0], "position", args[1])
				return fmt.Errorf("%w %s", errNoResult, args[1])
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), h.Value)
			return err
		},
	}
}

// readAt loads path and converts a 1-based "line:col" (col in UTF-16 units,
// as editors report it) to a byte offset.
func readAt(path, position string) (string, int, error) {
	pos, err := parsePosition(position)
	if err != nil {
		return "", 0, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, err
	}
	text := string(data)
	if lines := strings.Count(text, "\n") + 1; int(pos.Line) >= lines {
		return "", 0, fmt.Errorf("%w: %s has %d lines", errPositionOutOfRange, path, lines)
	}
	return text, pos.IndexIn(text), nil
}

func parsePosition(s string) (protocol.Position, error) {
	lineStr, colStr, ok := strings.Cut(s, ":")
	if !ok {
		return protocol.Position{}, fmt.Errorf("invalid position %q: want line:col", s)
	}
	line, err := strconv.ParseUint(lineStr, 10, 32)
	if err != nil || line == 0 {
		return protocol.Position{}, fmt.Errorf("invalid line in position %q", s)
	}
	col, err := strconv.ParseUint(colStr, 10, 32)
	if err != nil || col == 0 {
		return protocol.Position{}, fmt.Errorf("invalid column in position %q", s)
	}
	return protocol.Position{
		Line:      protocol.UInteger(line - 1),
		Character: protocol.UInteger(col - 1),
	}, nil
}
