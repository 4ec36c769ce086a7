// Package svgrender renders a tolerant CAMM-GL III token stream
// (camm/parse) to an SVG document (spec.md §4.9, C10's renderer half):
// a per-command handler table builds path data against a rendering
// context, unimplemented recognized commands warn and no-op, unknown
// commands warn and are ignored, and the result is wrapped in a group
// with a negative-y transform to compensate for SVG's flipped axis.
package svgrender

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/viant/dxfcut/camm/parse"
	"github.com/viant/dxfcut/diag"
	"github.com/viant/dxfcut/geom"
)

const opRender = "svgrender.Render"

// Mode mirrors the device's absolute/relative coordinate mode.
type Mode int

const (
	Absolute Mode = iota
	Relative
)

// context is the renderer's rendering state (spec.md §4.9).
type context struct {
	point      geom.Point
	penDown    bool
	mode       Mode
	escapeChar byte
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSplit enables per-pen-up path breaks with HSV-ring coloring by
// path index, for visual stroke-order inspection.
func WithSplit() Option { return func(r *Renderer) { r.split = true } }

// WithPageBreaks makes a "!PG" page-feed command (spec.md §9 Open
// Question) start a new SVG document instead of the default no-op,
// surfaced through Documents.
func WithPageBreaks() Option { return func(r *Renderer) { r.pageBreaks = true } }

// Renderer consumes tokens and accumulates SVG path data.
type Renderer struct {
	diags      *diag.Collector
	split      bool
	pageBreaks bool

	ctx      context
	paths    []strings.Builder
	circles  []circle
	window   [4]float64
	hasWin   bool
	finished []string // completed pages, when pageBreaks is on
}

type circle struct {
	center geom.Point
	radius float64
}

// New creates a Renderer reporting unimplemented/unknown commands to
// diags.
func New(diags *diag.Collector, opts ...Option) *Renderer {
	r := &Renderer{diags: diags}
	for _, o := range opts {
		o(r)
	}
	r.paths = append(r.paths, strings.Builder{})
	return r
}

type handler func(*Renderer, parse.Token)

var handlers map[string]handler

func init() {
	handlers = map[string]handler{
		"IN": func(r *Renderer, t parse.Token) {},
		"DT": func(r *Renderer, t parse.Token) { r.ctx.escapeChar = t.EscChar },
		"PA": func(r *Renderer, t parse.Token) { r.handleMove(t, modePtr(Absolute), nil) },
		"PR": func(r *Renderer, t parse.Token) { r.handleMove(t, modePtr(Relative), nil) },
		"PU": func(r *Renderer, t parse.Token) { r.handleMove(t, nil, boolPtr(false)) },
		"PD": func(r *Renderer, t parse.Token) { r.handleMove(t, nil, boolPtr(true)) },
		"AA": func(r *Renderer, t parse.Token) { r.handleArc(t, Absolute) },
		"AR": func(r *Renderer, t parse.Token) { r.handleArc(t, Relative) },
		"CI": func(r *Renderer, t parse.Token) { r.handleCircle(t) },
		"IW": func(r *Renderer, t parse.Token) { r.handleWindow(t) },
	}
}

func modePtr(m Mode) *Mode { return &m }
func boolPtr(b bool) *bool { return &b }

// unimplementedRecognized names mnemonics the real device supports but
// this renderer has no visual contribution for.
var unimplementedRecognized = map[string]bool{
	"SP": true, "VS": true, "FS": true, "SI": true, "SL": true, "LB": true, "WD": true,
}

// Handle dispatches one token to its handler, or warns per spec.md
// §4.9's unimplemented/unknown distinction.
func (r *Renderer) Handle(tok parse.Token) {
	if tok.Kind == parse.BadInput {
		return
	}
	if tok.Kind == parse.Bang && tok.Command == "PG" {
		if r.pageBreaks {
			r.newPage()
		}
		return
	}
	cmd := tok.Command
	if h, ok := handlers[cmd]; ok {
		h(r, tok)
		return
	}
	if unimplementedRecognized[cmd] {
		r.diags.Warnf(opRender, "unimplemented command %s: no-op", cmd)
		return
	}
	r.diags.Warnf(opRender, "ignoring unknown command %s", cmd)
}

// handleMove implements the unified PA/PR/PU/PD handler: an override
// to mode or pen state, then an even number of coordinate pairs
// (trailing odd one discarded), each drawn as an L (pen down) or M
// (pen up) against the current mode.
func (r *Renderer) handleMove(t parse.Token, modeOverride *Mode, penOverride *bool) {
	if modeOverride != nil {
		r.ctx.mode = *modeOverride
	}
	if penOverride != nil {
		r.ctx.penDown = *penOverride
	}
	coords := parseFloats(t.Args)
	if len(coords)%2 != 0 {
		coords = coords[:len(coords)-1]
	}
	for i := 0; i+1 < len(coords); i += 2 {
		x, y := coords[i], coords[i+1]
		var next geom.Point
		if r.ctx.mode == Absolute {
			next = geom.Point{X: x, Y: y}
		} else {
			next = r.ctx.point.Add(geom.Point{X: x, Y: y})
		}
		if r.ctx.penDown {
			r.lineTo(next)
		} else {
			r.moveTo(next)
		}
		r.ctx.point = next
	}
}

func (r *Renderer) current() *strings.Builder { return &r.paths[len(r.paths)-1] }

func (r *Renderer) moveTo(p geom.Point) {
	if r.split && r.current().Len() > 0 {
		r.paths = append(r.paths, strings.Builder{})
	}
	fmt.Fprintf(r.current(), "M%s,%s ", fmtF(p.X), fmtF(p.Y))
}

func (r *Renderer) lineTo(p geom.Point) {
	fmt.Fprintf(r.current(), "L%s,%s ", fmtF(p.X), fmtF(p.Y))
}

// handleArc renders AA (absolute center) / AR (relative center): both
// require a current point, radius = |centre-point|, and a signed
// sweep angle in degrees.
func (r *Renderer) handleArc(t parse.Token, mode Mode) {
	coords := parseFloats(t.Args)
	if len(coords) < 3 {
		return
	}
	var center geom.Point
	if mode == Absolute {
		center = geom.Point{X: coords[0], Y: coords[1]}
	} else {
		center = r.ctx.point.Add(geom.Point{X: coords[0], Y: coords[1]})
	}
	sweepDeg := coords[2]

	start := r.ctx.point
	radius := geom.Dist(start, center)
	startAngle := start.Sub(center).Angle()
	endAngle := startAngle + sweepDeg*math.Pi/180
	end := geom.Point{X: center.X + radius*math.Cos(endAngle), Y: center.Y + radius*math.Sin(endAngle)}

	largeArc := 0
	if math.Abs(sweepDeg) > 180 {
		largeArc = 1
	}
	sweepFlag := 0
	if sweepDeg > 0 {
		sweepFlag = 1
	}
	fmt.Fprintf(r.current(), "A%s,%s 0 %d %d %s,%s ", fmtF(radius), fmtF(radius), largeArc, sweepFlag, fmtF(end.X), fmtF(end.Y))
	r.ctx.point = end
}

// handleCircle renders CI (full circle at the current point) as a
// plain <circle> element — SVG's arc command cannot express a full
// 360-degree sweep in one segment.
func (r *Renderer) handleCircle(t parse.Token) {
	coords := parseFloats(t.Args)
	if len(coords) < 1 {
		return
	}
	r.circles = append(r.circles, circle{center: r.ctx.point, radius: coords[0]})
}

// handleWindow records IW's input window for the SVG viewBox.
func (r *Renderer) handleWindow(t parse.Token) {
	coords := parseFloats(t.Args)
	if len(coords) < 4 {
		return
	}
	copy(r.window[:], coords[:4])
	r.hasWin = true
}

// newPage finishes the current document into finished and resets
// accumulated path/circle/window state for the next page.
func (r *Renderer) newPage() {
	r.finished = append(r.finished, r.SVG())
	r.paths = []strings.Builder{{}}
	r.circles = nil
	r.hasWin = false
}

// Documents returns one SVG document per page-feed when WithPageBreaks
// is set (plus the current, still-open page); otherwise a single
// document equal to SVG().
func (r *Renderer) Documents() []string {
	if !r.pageBreaks {
		return []string{r.SVG()}
	}
	return append(append([]string{}, r.finished...), r.SVG())
}

func parseFloats(args string) []float64 {
	if strings.TrimSpace(args) == "" {
		return nil
	}
	parts := strings.Split(args, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			continue
		}
		out = append(out, f)
	}
	return out
}

func fmtF(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// SVG renders the accumulated paths and circles as a complete SVG
// document, flipping y at the group level to compensate for SVG's
// top-left-origin coordinate system (spec.md §4.9).
func (r *Renderer) SVG() string {
	var b strings.Builder
	viewBox := "0 0 100 100"
	if r.hasWin {
		w, h := r.window[2]-r.window[0], r.window[3]-r.window[1]
		viewBox = fmt.Sprintf("%s %s %s %s", fmtF(r.window[0]), fmtF(r.window[1]), fmtF(w), fmtF(h))
	}
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s">`, viewBox)
	fmt.Fprint(&b, `<g transform="scale(1,-1)">`)
	for i, p := range r.paths {
		d := strings.TrimSpace(p.String())
		if d == "" {
			continue
		}
		color := "black"
		if r.split {
			color = hsvRingColor(i, len(r.paths))
		}
		fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s"/>`, d, color)
	}
	for _, c := range r.circles {
		fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="none" stroke="black"/>`, fmtF(c.center.X), fmtF(c.center.Y), fmtF(c.radius))
	}
	fmt.Fprint(&b, `</g></svg>`)
	return b.String()
}

// hsvRingColor picks the i-th of n colors evenly spaced around the HSV
// hue ring, for --split mode's per-pen-up path coloring.
func hsvRingColor(i, n int) string {
	if n <= 1 {
		return "black"
	}
	h := float64(i) / float64(n) * 360
	r, g, bch := hsvToRGB(h, 1, 1)
	return fmt.Sprintf("rgb(%d,%d,%d)", r, g, bch)
}

func hsvToRGB(h, s, v float64) (int, int, int) {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return int((r + m) * 255), int((g + m) * 255), int((b + m) * 255)
}
