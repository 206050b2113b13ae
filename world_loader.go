package main

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// World is the planning input: a boundary, obstacles, and the start and goal points
type World struct {
	Boundary  Polygon   `json:"boundary"`
	Obstacles []Polygon `json:"obstacles"`
	Start     Point     `json:"start"`
	Goal      Point     `json:"goal"`
}

// Environment validates the world and wraps it in an Environment
func (w World) Environment(opts ...Option) (*Environment, error) {
	return NewEnvironment(w.Boundary, w.Obstacles, w.Start, w.Goal, opts...)
}

// LoadWorldFiles reads a world file and a start/goal file
func LoadWorldFiles(worldPath, startGoalPath string) (World, error) {
	worldFile, err := os.Open(worldPath)
	if err != nil {
		return World{}, errors.Wrap(err, "failed to open world file")
	}
	defer worldFile.Close()

	boundary, obstacles, err := ReadWorld(worldFile)
	if err != nil {
		return World{}, errors.Wrapf(err, "%s", worldPath)
	}

	startGoalFile, err := os.Open(startGoalPath)
	if err != nil {
		return World{}, errors.Wrap(err, "failed to open start/goal file")
	}
	defer startGoalFile.Close()

	start, goal, err := ReadStartGoal(startGoalFile)
	if err != nil {
		return World{}, errors.Wrapf(err, "%s", startGoalPath)
	}

	return World{Boundary: boundary, Obstacles: obstacles, Start: start, Goal: goal}, nil
}

// ReadWorld parses a polygon count followed by, for each polygon, a vertex count and that many
// "x y" lines. The first polygon is the boundary and the rest are obstacles. Blank lines are
// ignored. Vertex rings are normalized before validation.
func ReadWorld(r io.Reader) (Polygon, []Polygon, error) {
	lr := newLineReader(r)

	numPolygons, err := lr.nextInt()
	if err != nil {
		return Polygon{}, nil, err
	}
	if numPolygons < 1 {
		return Polygon{}, nil, lr.malformed("need at least a boundary polygon, got %d polygons", numPolygons)
	}

	polygons := make([]Polygon, 0, numPolygons)
	for i := 0; i < numPolygons; i++ {
		numVertices, err := lr.nextInt()
		if err != nil {
			return Polygon{}, nil, err
		}
		if numVertices < 1 {
			return Polygon{}, nil, lr.malformed("polygon %d has %d vertices", i, numVertices)
		}
		startLine := lr.line

		vertices := make([]Point, 0, numVertices)
		for j := 0; j < numVertices; j++ {
			p, err := lr.nextPoint()
			if err != nil {
				return Polygon{}, nil, err
			}
			vertices = append(vertices, p)
		}

		normalized, err := normalizePolygon(vertices)
		if err != nil {
			return Polygon{}, nil, errors.Wrapf(err, "polygon %d (line %d)", i, startLine)
		}
		poly, err := NewPolygon(normalized)
		if err != nil {
			return Polygon{}, nil, errors.Wrapf(err, "polygon %d (line %d)", i, startLine)
		}
		polygons = append(polygons, poly)
	}

	return polygons[0], polygons[1:], nil
}

// ReadStartGoal parses two "x y" lines: the start point, then the goal point
func ReadStartGoal(r io.Reader) (Point, Point, error) {
	lr := newLineReader(r)

	start, err := lr.nextPoint()
	if err != nil {
		return Point{}, Point{}, errors.Wrap(err, "start")
	}
	goal, err := lr.nextPoint()
	if err != nil {
		return Point{}, Point{}, errors.Wrap(err, "goal")
	}
	return start, goal, nil
}

// lineReader yields non-blank lines and tracks the line number for error messages
type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{scanner: bufio.NewScanner(r)}
}

func (lr *lineReader) malformed(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedInput, "line %d: "+format, append([]interface{}{lr.line}, args...)...)
}

func (lr *lineReader) next() (string, error) {
	for lr.scanner.Scan() {
		lr.line++
		line := strings.TrimSpace(lr.scanner.Text())
		if line != "" {
			return line, nil
		}
	}
	if err := lr.scanner.Err(); err != nil {
		return "", errors.Wrap(err, "failed to read input")
	}
	return "", lr.malformed("unexpected end of input")
}

func (lr *lineReader) nextInt() (int, error) {
	line, err := lr.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, lr.malformed("expected a count, got %q", line)
	}
	return n, nil
}

func (lr *lineReader) nextPoint() (Point, error) {
	line, err := lr.next()
	if err != nil {
		return Point{}, err
	}
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return Point{}, lr.malformed("expected \"x y\", got %q", line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Point{}, lr.malformed("bad x coordinate %q", parts[0])
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Point{}, lr.malformed("bad y coordinate %q", parts[1])
	}
	return Point{X: x, Y: y}, nil
}
