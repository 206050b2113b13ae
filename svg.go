package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jbeda/geom"
	"github.com/pkg/errors"
)

// Layer styles for RenderSVG
const (
	boundaryStyle   = "stroke: dimgray"
	obstacleStyle   = "stroke: darkcyan; fill: lightcyan"
	grownStyle      = "stroke: magenta"
	safeGrownStyle  = "stroke: pink"
	visibilityStyle = "stroke: gray; stroke-opacity: 0.5"
	pathStyle       = "stroke: orange"
	startStyle      = "stroke: green"
	goalStyle       = "stroke: red"
)

// SVG serialization helper
type SVG struct {
	writer io.Writer
	err    error
}

func NewSVG(w io.Writer) *SVG {
	return &SVG{writer: w}
}

// printf remembers the first write error so callers can check once at the end
func (svg *SVG) printf(format string, a ...interface{}) {
	if svg.err != nil {
		return
	}
	_, svg.err = fmt.Fprintf(svg.writer, format, a...)
}

// extraparams turns "k='v'" strings into attributes and anything else into a style attribute
func extraparams(s []string) string {
	ep := ""
	for i := 0; i < len(s); i++ {
		if strings.Index(s[i], "=") > 0 {
			ep += (s[i]) + " "
		} else if len(s[i]) > 0 {
			ep += fmt.Sprintf("style='%s' ", s[i])
		}
	}
	return ep
}

func (svg *SVG) Start(viewBox geom.Rect, s ...string) {
	svg.printf(`<?xml version="1.0"?>
<svg version="1.1"
     viewBox="%f %f %f %f"
     xmlns="http://www.w3.org/2000/svg" %s>
`, viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height(), extraparams(s))
}

func (svg *SVG) End() {
	svg.printf("</svg>\n")
}

func (svg *SVG) Line(p1 geom.Coord, p2 geom.Coord, s ...string) {
	svg.printf("<line x1='%f' y1='%f' x2='%f' y2='%f' %s/>\n", p1.X, p1.Y, p2.X, p2.Y, extraparams(s))
}

func (svg *SVG) Circle(c geom.Coord, r float64, s ...string) {
	svg.printf("<circle cx='%f' cy='%f' r='%f' %s/>\n", c.X, c.Y, r, extraparams(s))
}

func (svg *SVG) StartPath(p1 geom.Coord, s ...string) {
	svg.printf("<path %sd='M%f,%f", extraparams(s), p1.X, p1.Y)
}

func (svg *SVG) EndPath(closed bool) {
	if closed {
		svg.printf(" Z")
	}
	svg.printf("'/>\n")
}

func (svg *SVG) PathLineTo(p geom.Coord) {
	svg.printf("\n  L%f,%f", p.X, p.Y)
}

// Err returns the first write error
func (svg *SVG) Err() error {
	return svg.err
}

// toCoord flips the y axis so the workspace reads upright in SVG space
func toCoord(p Point) geom.Coord {
	return geom.Coord{X: p.X, Y: -p.Y}
}

// RenderSVG draws the environment and whatever has been computed so far: obstacles, grown sets,
// visibility edges, the path, and the start and goal regions with all their region edges.
func RenderSVG(w io.Writer, env *Environment) error {
	bounds := geom.Rect{Min: toCoord(env.Boundary.Vertices[0]), Max: toCoord(env.Boundary.Vertices[0])}
	for _, v := range env.Boundary.Vertices {
		bounds.ExpandToContainCoord(toCoord(v))
	}
	size := bounds.Width()
	if bounds.Height() > size {
		size = bounds.Height()
	}
	margin := size * 0.05
	viewBox := geom.Rect{
		Min: geom.Coord{X: bounds.Min.X - margin, Y: bounds.Min.Y - margin},
		Max: geom.Coord{X: bounds.Max.X + margin, Y: bounds.Max.Y + margin},
	}
	strokeWidth := size * 0.003

	s := NewSVG(w)
	s.Start(viewBox, fmt.Sprintf("stroke-width: %f; stroke-linecap: round; fill: none", strokeWidth))

	drawPolygon := func(p Polygon, style string) {
		if len(p.Vertices) == 0 {
			return
		}
		s.StartPath(toCoord(p.Vertices[0]), style)
		for _, v := range p.Vertices[1:] {
			s.PathLineTo(toCoord(v))
		}
		s.EndPath(true)
	}

	drawPolygon(env.Boundary, boundaryStyle)
	for _, o := range env.Obstacles {
		drawPolygon(o, obstacleStyle)
	}

	if vg := env.VisibilityGraph(); vg != nil {
		for _, e := range vg.Edges {
			s.Line(toCoord(e.P1), toCoord(e.P2), visibilityStyle)
		}
	}

	for _, o := range env.GrownObstacles() {
		drawPolygon(o, grownStyle)
	}
	for _, o := range env.SafeGrownObstacles() {
		drawPolygon(o, safeGrownStyle)
	}

	if path := env.Path(); len(path) > 1 {
		s.StartPath(toCoord(path[0]), pathStyle, fmt.Sprintf("stroke-width='%f'", 2*strokeWidth))
		for _, p := range path[1:] {
			s.PathLineTo(toCoord(p))
		}
		s.EndPath(false)
	}

	for _, e := range env.StartRegion.RegionEdges() {
		s.Line(toCoord(e.P1), toCoord(e.P2), startStyle)
	}
	for _, e := range env.GoalRegion.RegionEdges() {
		s.Line(toCoord(e.P1), toCoord(e.P2), goalStyle)
	}
	s.Circle(toCoord(env.Start), strokeWidth*2, startStyle)
	s.Circle(toCoord(env.Goal), strokeWidth*2, goalStyle)

	s.End()

	if err := s.Err(); err != nil {
		return errors.Wrap(err, "failed to write svg")
	}
	return nil
}
