package emit

import (
	"fmt"

	"github.com/viant/dxfcut/geom"
)

// Header opens a job: establishes absolute mode with the pen up
// (spec.md §4.8 table). No precondition.
func (e *Emitter) Header() {
	e.execute(operation{postMode: modePtr(Absolute), postPen: penPtr(false)}, func() {
		fmt.Fprint(e.w, "IN;")
	})
}

// Footer closes a job, requiring absolute mode and leaving the pen up.
func (e *Emitter) Footer() {
	e.execute(operation{requireMode: modePtr(Absolute), postPen: penPtr(false)}, func() {
		fmt.Fprint(e.w, "PU;SP0;")
	})
}

// ToolUp lifts the pen. No precondition.
func (e *Emitter) ToolUp() {
	e.execute(operation{postPen: penPtr(false)}, func() { fmt.Fprint(e.w, "PU;") })
}

// ToolDown lowers the pen. No precondition.
func (e *Emitter) ToolDown() {
	e.execute(operation{postPen: penPtr(true)}, func() { fmt.Fprint(e.w, "PD;") })
}

// MoveTo requires absolute mode and lifts the pen before moving.
func (e *Emitter) MoveTo(p geom.Point) {
	e.execute(operation{requireMode: modePtr(Absolute), postPen: penPtr(false)}, func() {
		fmt.Fprintf(e.w, "PU%s;", fmtCoord(p))
	})
}

// LineTo requires absolute mode and lowers the pen while cutting.
func (e *Emitter) LineTo(p geom.Point) {
	e.execute(operation{requireMode: modePtr(Absolute), postPen: penPtr(true)}, func() {
		fmt.Fprintf(e.w, "PD%s;", fmtCoord(p))
	})
}

// PolylineTo requires absolute mode and cuts a connected chain of
// points with the pen down.
func (e *Emitter) PolylineTo(pts []geom.Point) {
	e.execute(operation{requireMode: modePtr(Absolute), postPen: penPtr(true)}, func() {
		fmt.Fprint(e.w, "PD")
		for i, p := range pts {
			if i > 0 {
				fmt.Fprint(e.w, ",")
			}
			fmt.Fprint(e.w, fmtCoord(p))
		}
		fmt.Fprint(e.w, ";")
	})
}

// MoveToRelative requires relative mode and lifts the pen.
func (e *Emitter) MoveToRelative(d geom.Point) {
	e.execute(operation{requireMode: modePtr(Relative), postPen: penPtr(false)}, func() {
		fmt.Fprintf(e.w, "PU%s;", fmtCoord(d))
	})
}

// LineToRelative requires relative mode and lowers the pen.
func (e *Emitter) LineToRelative(d geom.Point) {
	e.execute(operation{requireMode: modePtr(Relative), postPen: penPtr(true)}, func() {
		fmt.Fprintf(e.w, "PD%s;", fmtCoord(d))
	})
}

// Circle requires the pen already down; it has no post-condition.
func (e *Emitter) Circle(radius float64) {
	e.execute(operation{requirePen: penPtr(true)}, func() {
		fmt.Fprintf(e.w, "CI%s;", fmtFloat(radius))
	})
}

// Arc cuts an absolute-center arc; requires the pen down, and its
// instruction itself establishes absolute mode as a side effect.
func (e *Emitter) Arc(center geom.Point, sweepDeg float64) {
	e.execute(operation{requirePen: penPtr(true), postMode: modePtr(Absolute)}, func() {
		fmt.Fprintf(e.w, "AA%s,%s;", fmtCoord(center), fmtFloat(sweepDeg))
	})
}

// ArcRelative cuts a relative-center arc; requires the pen down, and
// establishes relative mode as a side effect.
func (e *Emitter) ArcRelative(center geom.Point, sweepDeg float64) {
	e.execute(operation{requirePen: penPtr(true), postMode: modePtr(Relative)}, func() {
		fmt.Fprintf(e.w, "AR%s,%s;", fmtCoord(center), fmtFloat(sweepDeg))
	})
}

// Speed sets the carriage speed.
func (e *Emitter) Speed(v float64) {
	e.execute(operation{}, func() { fmt.Fprintf(e.w, "VS%s;", fmtFloat(v)) })
	e.state.Speed = v
}

// ForceSetting sets the blade force.
func (e *Emitter) ForceSetting(v float64) {
	e.execute(operation{}, func() { fmt.Fprintf(e.w, "FS%s;", fmtFloat(v)) })
	e.state.Force = v
}

// ToolSelect selects the tool/pen number.
func (e *Emitter) ToolSelect(n int) {
	e.execute(operation{}, func() { fmt.Fprintf(e.w, "SP%d;", n) })
	e.state.Tool = n
}

// CharSize sets text character size.
func (e *Emitter) CharSize(size float64) {
	e.execute(operation{}, func() { fmt.Fprintf(e.w, "SI%s;", fmtFloat(size)) })
	e.state.CharSize = size
}

// CharSlant sets text character slant.
func (e *Emitter) CharSlant(slant float64) {
	e.execute(operation{}, func() { fmt.Fprintf(e.w, "SL%s;", fmtFloat(slant)) })
	e.state.CharSlant = slant
}

// EscapeChar sets the device's current escape/terminator byte (the
// DT command), used by text commands (LB/WD) to know where they end.
func (e *Emitter) EscapeChar(c byte) {
	e.execute(operation{}, func() { fmt.Fprintf(e.w, "DT%c;", c) })
	e.state.EscapeChar = c
}

func fmtCoord(p geom.Point) string {
	return fmt.Sprintf("%s,%s", fmtFloat(p.X), fmtFloat(p.Y))
}

func fmtFloat(f float64) string {
	return fmt.Sprintf("%g", f)
}
