// Package emit implements the CAMM-GL III stateful emitter (spec.md
// §4.8, C9): a state machine that knows each operation's declared
// preconditions and post-conditions, and the knife-offset compensation
// algorithm for cutting polylines with a blade that trails the
// carriage.
package emit

import (
	"bufio"
	"fmt"
	"io"
	"time"
)

// Mode is the plotter's coordinate mode.
type Mode int

const (
	Absolute Mode = iota
	Relative
)

// idleTimeout is how long the device waits before auto-lifting the pen.
const idleTimeout = 10 * time.Second

// State is the machine state the emitter tracks so it only emits the
// commands an operation actually needs (spec.md §4.8).
type State struct {
	PenDown    bool
	Mode       Mode
	Speed      float64
	Tool       int
	Force      float64
	CharSize   float64
	CharSlant  float64
	EscapeChar byte
	LastEmit   time.Time
}

// Config configures an Emitter via functional options, following the
// teacher's analyzer.Option pattern (_examples/viant-linager/analyzer/option.go).
type Config struct {
	liveStream      bool
	idleGuard       bool
	offset          float64
	offsetlessStart bool
	epsilon         float64
	shortLine       float64
	smallAngle      float64
	now             func() time.Time
}

// Option configures an Emitter.
type Option func(*Config)

// WithLiveStream marks the output sink as a live device stream rather
// than a buffer, enabling the idle-timeout guard.
func WithLiveStream() Option { return func(c *Config) { c.liveStream = true } }

// WithoutIdleGuard disables the idle-timeout PD prefix even on a live
// stream.
func WithoutIdleGuard() Option { return func(c *Config) { c.idleGuard = false } }

// WithKnifeOffset records a blade-trail distance in the Emitter's
// Config. The Emitter's own commands do not read it; knife-offset
// compensation takes its offset from NewKnifeCompensator.
func WithKnifeOffset(offset float64) Option { return func(c *Config) { c.offset = offset } }

// WithOffsetlessStart records the --offsetless-start setting in the
// Emitter's Config. The Emitter's own commands do not read it.
func WithOffsetlessStart() Option { return func(c *Config) { c.offsetlessStart = true } }

// WithEpsilon records the knife-offset coincidence tolerance in the
// Emitter's Config. The Emitter's own commands do not read it;
// NewKnifeCompensator takes its own epsilon.
func WithEpsilon(eps float64) Option { return func(c *Config) { c.epsilon = eps } }

// WithShortLine records the knife-offset segment-length threshold in
// the Emitter's Config. The Emitter's own commands do not read it;
// NewKnifeCompensator takes its own shortLine.
func WithShortLine(v float64) Option { return func(c *Config) { c.shortLine = v } }

// WithSmallAngle records the knife-offset turn-angle threshold (radians)
// in the Emitter's Config. The Emitter's own commands do not read it;
// NewKnifeCompensator takes its own smallAngle.
func WithSmallAngle(v float64) Option { return func(c *Config) { c.smallAngle = v } }

// withClock overrides the idle-guard clock for deterministic tests.
func withClock(now func() time.Time) Option { return func(c *Config) { c.now = now } }

// Emitter writes CAMM-GL III commands to w, tracking State and
// applying the idle-timeout guard. Knife-offset compensation is done by
// a KnifeCompensator driving an Emitter.
type Emitter struct {
	w     *bufio.Writer
	state State
	cfg   Config
}

// New creates an Emitter writing to w.
func New(w io.Writer, opts ...Option) *Emitter {
	cfg := Config{idleGuard: true, now: time.Now}
	for _, o := range opts {
		o(&cfg)
	}
	return &Emitter{w: bufio.NewWriter(w), cfg: cfg}
}

// Flush flushes any buffered output.
func (e *Emitter) Flush() error { return e.w.Flush() }

// State returns a copy of the current tracked state.
func (e *Emitter) State() State { return e.state }

// operation declares one public drawing operation's preconditions and
// post-conditions (spec.md §4.8's table), dispatched uniformly by
// execute.
type operation struct {
	requireMode *Mode
	requirePen  *bool
	postMode    *Mode
	postPen     *bool
}

func modePtr(m Mode) *Mode { return &m }
func penPtr(p bool) *bool  { return &p }

// execute emits the minimal commands to satisfy op's preconditions,
// runs emitCmd, then applies op's post-conditions to the tracked
// state (spec.md §4.8 steps 1-3).
func (e *Emitter) execute(op operation, emitCmd func()) {
	if op.requireMode != nil && e.state.Mode != *op.requireMode {
		e.emitMode(*op.requireMode)
	}
	if op.requirePen != nil && e.state.PenDown != *op.requirePen {
		e.emitPen(*op.requirePen)
	}
	e.guardIdle()
	emitCmd()
	e.state.LastEmit = e.cfg.now()
	if op.postMode != nil {
		e.state.Mode = *op.postMode
	}
	if op.postPen != nil {
		e.state.PenDown = *op.postPen
	}
}

// guardIdle prefixes a PD when the device may have auto-lifted the
// pen during an idle live-stream gap (spec.md §4.8).
func (e *Emitter) guardIdle() {
	if !e.cfg.liveStream || !e.cfg.idleGuard || !e.state.PenDown {
		return
	}
	if e.state.LastEmit.IsZero() {
		return
	}
	if e.cfg.now().Sub(e.state.LastEmit) > idleTimeout {
		fmt.Fprint(e.w, "PD;")
	}
}

func (e *Emitter) emitMode(m Mode) {
	if m == Absolute {
		fmt.Fprint(e.w, "PA;")
	} else {
		fmt.Fprint(e.w, "PR;")
	}
	e.state.Mode = m
}

func (e *Emitter) emitPen(down bool) {
	if down {
		fmt.Fprint(e.w, "PD;")
	} else {
		fmt.Fprint(e.w, "PU;")
	}
	e.state.PenDown = down
}
