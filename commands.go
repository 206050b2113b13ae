package main

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Command is one drive instruction: turn in place, then drive straight
type Command struct {
	Turn     float64 `json:"turn"`     // Degrees, the negated change in heading
	Distance float64 `json:"distance"` // Straight-line travel after the turn
}

// TranslateToCommands converts a path into (turn, distance) pairs, one per consecutive pair of
// waypoints. The robot starts with heading 0; a single-point path yields no commands.
func TranslateToCommands(path Path) []Command {
	if len(path) < 2 {
		return []Command{}
	}

	commands := make([]Command, 0, len(path)-1)
	prevHeading := 0.0
	for i := 1; i < len(path); i++ {
		d := path[i].vec().Sub(path[i-1].vec())
		heading := math.Atan2(d.Y, d.X) * 180 / math.Pi
		commands = append(commands, Command{
			Turn:     -(heading - prevHeading),
			Distance: d.Norm(),
		})
		prevHeading = heading
	}
	return commands
}

// WriteCommands writes turn and distance values alternately, one per line, with no newline
// after the last value
func WriteCommands(w io.Writer, commands []Command) error {
	values := lo.FlatMap(commands, func(c Command, _ int) []string {
		return []string{formatValue(c.Turn), formatValue(c.Distance)}
	})
	if _, err := io.WriteString(w, strings.Join(values, "\n")); err != nil {
		return errors.Wrap(err, "failed to write commands")
	}
	return nil
}

func formatValue(v float64) string {
	if v == 0 {
		// Avoid printing negative zero for straight-ahead turns
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
