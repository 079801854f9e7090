// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggplot

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/gogpu/ggplot/curve"
	"github.com/gogpu/ggplot/eval"
	"github.com/gogpu/ggplot/internal/reactive"
	"github.com/gogpu/ggplot/layer"
	"github.com/gogpu/ggplot/scale"
	"github.com/gogpu/ggplot/surface"
)

// Surface group names, in drawing order.
const (
	GroupAxes       = "axes"
	GroupCurves     = "curves"
	GroupIntercepts = "intercepts"
)

// State is the lifecycle state of a Controller.
type State uint8

const (
	// AwaitingEvaluator is the initial state: every equation is empty and
	// only the axes are drawn.
	AwaitingEvaluator State = iota

	// Ready means an evaluator is attached and equations are evaluated.
	Ready
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case AwaitingEvaluator:
		return "awaiting-evaluator"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Result is the latest evaluation outcome of one equation.
type Result struct {
	ID   EquationID
	Text string
	Kind eval.Kind

	// Value is the evaluator result; eval.Empty{} when Kind is KindEmpty.
	Value eval.Result

	// Display is the text shown next to a scalar equation, e.g. "a = 3".
	Display string

	// Err is the evaluator error for this equation, if any.
	Err error
}

// batch is the outcome of evaluating the whole equation list once.
type batch struct {
	seq        uint64
	minX, maxX float64
	results    []Result
	intercepts []eval.Point
}

// pair is the selected intercept pair.
type pair struct {
	a, b EquationID
	set  bool
}

// Controller turns an equation list and a domain into a plot.
//
// It owns a surface with three groups (axes, curves and intercepts) and
// keeps each group in step with the inputs it depends on: the axes follow
// the domain and viewport only, the curves and intercept markers follow the
// latest evaluation batch and the domain and viewport.
//
// Evaluation is synchronous. Each batch gets a sequence number; a batch that
// finishes after a newer one was issued, which happens when an evaluator
// call changes the controller's inputs, is discarded.
//
// Controller is not safe for concurrent use.
type Controller struct {
	opts  options
	eqs   *Equations
	state State
	ev    eval.Evaluator

	mapper  *reactive.Value[scale.Mapper]
	applied *reactive.Value[*batch]
	pair    *reactive.Value[pair]

	surface    *surface.Surface
	axes       *layer.Axes
	curves     *layer.Curves
	intercepts *layer.Intercepts

	// issued is the sequence number of the latest issued batch.
	issued uint64

	// window is the X interval sampled by the latest issued batch.
	window    [2]float64
	hasWindow bool

	cancels []func()
	closed  bool
}

// NewController returns a controller for eqs in the AwaitingEvaluator state.
// The axes are drawn immediately.
func NewController(eqs *Equations, opts ...Option) *Controller {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if eqs == nil {
		eqs = NewEquations()
	}

	s := surface.New(o.viewport.Width, o.viewport.Height)
	s.SetBackground(o.background)

	c := &Controller{
		opts:       o,
		eqs:        eqs,
		mapper:     reactive.New(scale.NewMapper(o.domain, o.viewport)),
		applied:    reactive.New[*batch](nil),
		pair:       reactive.New(pair{}),
		surface:    s,
		axes:       layer.NewAxes(s.Group(GroupAxes), o.axis),
		curves:     layer.NewCurves(s.Group(GroupCurves), o.curve),
		intercepts: layer.NewIntercepts(s.Group(GroupIntercepts), o.marker),
	}

	c.cancels = append(c.cancels,
		c.mapper.Subscribe(func(m scale.Mapper) {
			c.mapperChanged(m)
			c.renderData()
		}),
		c.applied.Subscribe(func(*batch) { c.renderData() }),
		c.pair.Subscribe(func(pair) { c.recompute() }),
		eqs.Subscribe(c.equationsChanged),
	)

	c.mapperChanged(c.mapper.Get())
	return c
}

// AttachEvaluator moves the controller to the Ready state and evaluates
// the equation list. It returns ErrAlreadyReady if an evaluator is already
// attached.
func (c *Controller) AttachEvaluator(ev eval.Evaluator) error {
	if c.closed {
		return ErrClosed
	}
	if ev == nil {
		return errors.New("ggplot: nil evaluator")
	}
	if c.state == Ready {
		return ErrAlreadyReady
	}
	c.ev = ev
	c.state = Ready
	Logger().Info("evaluator attached", "equations", c.eqs.Len())
	c.recompute()
	return nil
}

// State returns the lifecycle state.
func (c *Controller) State() State { return c.state }

// Equations returns the equation list the controller follows.
func (c *Controller) Equations() *Equations { return c.eqs }

// Domain returns the current domain and range.
func (c *Controller) Domain() scale.Domain { return c.mapper.Get().Domain() }

// Viewport returns the current viewport.
func (c *Controller) Viewport() scale.Viewport { return c.mapper.Get().Viewport() }

// Mapper returns the current scale mapper.
func (c *Controller) Mapper() scale.Mapper { return c.mapper.Get() }

// Surface returns the plot surface.
func (c *Controller) Surface() *surface.Surface { return c.surface }

// SetDomain changes the domain and range.
//
// Existing samples and the axes are re-scaled at once. The equations are
// evaluated again only when the new X interval is not covered by the one
// sampled last; a change of the Y range alone never re-evaluates.
func (c *Controller) SetDomain(d scale.Domain) {
	if c.closed {
		return
	}
	c.mapper.Set(scale.NewMapper(d, c.Viewport()))
	if c.state == Ready && !c.covers(d) {
		c.recompute()
	}
}

// SetViewport changes the surface size. It never re-evaluates.
func (c *Controller) SetViewport(v scale.Viewport) {
	if c.closed {
		return
	}
	c.surface.Resize(v.Width, v.Height)
	c.mapper.Set(scale.NewMapper(c.Domain(), v))
}

// SelectIntercepts selects the equations whose intersections are marked.
// It returns an error wrapping ErrUnknownEquation if either id is not in
// the list.
func (c *Controller) SelectIntercepts(a, b EquationID) error {
	for _, id := range []EquationID{a, b} {
		if _, ok := c.eqs.Index(id); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownEquation, id)
		}
	}
	c.pair.Set(pair{a: a, b: b, set: true})
	return nil
}

// SelectInterceptsAt selects the intercept pair by position. It panics if
// an index is out of range.
func (c *Controller) SelectInterceptsAt(i, j int) {
	c.pair.Set(pair{a: c.eqs.ID(i), b: c.eqs.ID(j), set: true})
}

// ClearIntercepts removes the intercept pair selection.
func (c *Controller) ClearIntercepts() {
	c.pair.Set(pair{})
}

// InterceptPair returns the selected pair.
func (c *Controller) InterceptPair() (a, b EquationID, ok bool) {
	p := c.pair.Get()
	return p.a, p.b, p.set
}

// Refresh evaluates the equation list again.
func (c *Controller) Refresh() {
	c.recompute()
}

// Results returns the latest result of every equation, in list order.
// Before an evaluator is attached every equation is empty.
func (c *Controller) Results() []Result {
	b := c.applied.Get()
	if c.state != Ready || b == nil {
		return emptyResults(c.eqs.Snapshot())
	}
	return slices.Clone(b.results)
}

// Intercepts returns the intersection points of the selected pair found by
// the latest batch.
func (c *Controller) Intercepts() []eval.Point {
	if b := c.applied.Get(); b != nil {
		return slices.Clone(b.intercepts)
	}
	return nil
}

// Batch returns the sequence number of the applied batch, 0 if none.
func (c *Controller) Batch() uint64 {
	if b := c.applied.Get(); b != nil {
		return b.seq
	}
	return 0
}

// Render plays the surface back into b.
func (c *Controller) Render(b surface.Backend) error {
	return c.surface.Playback(b)
}

// Export renders the surface with the backend registered under format and
// writes the document to w.
func (c *Controller) Export(w io.Writer, format string) error {
	b, err := surface.NewBackend(format)
	if err != nil {
		return err
	}
	wb, ok := b.(surface.WriterBackend)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotWritable, format)
	}
	if err := c.Render(wb); err != nil {
		return err
	}
	_, err = wb.WriteTo(w)
	return err
}

// ExportFile renders the surface to path, choosing the backend from the
// file extension.
func (c *Controller) ExportFile(path string) error {
	b, err := surface.ForFile(path)
	if err != nil {
		return err
	}
	fb, ok := b.(surface.FileBackend)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotWritable, path)
	}
	if err := c.Render(fb); err != nil {
		return err
	}
	return fb.SaveToFile(path)
}

// Close detaches the controller from its equation list. A closed
// controller ignores further input.
func (c *Controller) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	for _, cancel := range c.cancels {
		cancel()
	}
	c.cancels = nil
	return nil
}

func (c *Controller) mapperChanged(m scale.Mapper) {
	if err := m.Err(); err != nil {
		Logger().Warn("degenerate axis suppressed", "err", err)
	}
	c.axes.Update(m)
}

func (c *Controller) equationsChanged() {
	if p := c.pair.Get(); p.set {
		_, okA := c.eqs.Index(p.a)
		_, okB := c.eqs.Index(p.b)
		if !okA || !okB {
			Logger().Warn("intercept pair dropped: equation removed", "a", p.a, "b", p.b)
			// The pair subscription re-evaluates.
			c.pair.Set(pair{})
			return
		}
	}
	c.recompute()
}

// covers reports whether the last sampled X interval contains d's.
func (c *Controller) covers(d scale.Domain) bool {
	return c.hasWindow && d.MinX >= c.window[0] && d.MaxX <= c.window[1]
}

// recompute issues a new batch and applies it unless a newer batch was
// issued while it ran.
func (c *Controller) recompute() {
	if c.closed || c.state != Ready {
		return
	}
	c.issued++
	seq := c.issued
	d := c.Domain()
	c.window, c.hasWindow = [2]float64{d.MinX, d.MaxX}, true

	eqs := c.eqs.Snapshot()
	Logger().Debug("batch issued", "seq", seq, "equations", len(eqs), "minX", d.MinX, "maxX", d.MaxX)

	b, err := c.evaluate(seq, eqs, c.pair.Get(), d.MinX, d.MaxX)
	if seq != c.issued {
		Logger().Debug("stale batch discarded", "seq", seq, "latest", c.issued)
		return
	}
	if err != nil {
		Logger().Warn("batch failed", "seq", seq, "err", err)
		c.hasWindow = false
	}
	Logger().Debug("batch applied", "seq", seq)
	c.applied.Set(b)
}

// evaluate runs one batch against a single evaluator session. The session
// is released on every exit path. A batch that fails to acquire a session
// still returns a result with every equation empty.
func (c *Controller) evaluate(seq uint64, eqs []Equation, p pair, minX, maxX float64) (*batch, error) {
	b := &batch{seq: seq, minX: minX, maxX: maxX, results: emptyResults(eqs)}

	s, err := c.ev.Acquire()
	if err != nil {
		return b, fmt.Errorf("%w: %w", ErrEvaluatorUnavailable, err)
	}
	if s == nil {
		return b, ErrEvaluatorUnavailable
	}
	defer func() {
		if err := s.Close(); err != nil {
			Logger().Warn("evaluator session release failed", "seq", seq, "err", err)
		}
	}()

	for i, eq := range eqs {
		b.results[i] = evaluateOne(s, eq, minX, maxX)
		if seq != c.issued {
			return b, nil
		}
	}

	if p.set {
		b.intercepts = c.findIntercepts(s, eqs, p, minX, maxX)
	}
	return b, nil
}

func (c *Controller) findIntercepts(s eval.Session, eqs []Equation, p pair, minX, maxX float64) (pts []eval.Point) {
	ia := slices.IndexFunc(eqs, func(eq Equation) bool { return eq.ID == p.a })
	ib := slices.IndexFunc(eqs, func(eq Equation) bool { return eq.ID == p.b })
	if ia < 0 || ib < 0 {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("intercept search panicked", "panic", r)
			pts = nil
		}
	}()

	flat, err := s.FindIntercepts(eqs[ia].Text, eqs[ib].Text, minX, maxX)
	if err != nil {
		Logger().Warn("intercept search failed", "a", ia, "b", ib, "err", err)
		return nil
	}
	pts, complete := eval.Pairs(flat)
	if !complete {
		Logger().Warn("odd-length intercept list, trailing value dropped", "values", len(flat))
	}
	return pts
}

// evaluateOne evaluates a single equation. An evaluator error or panic
// makes this equation empty without affecting the others.
func evaluateOne(s eval.Session, eq Equation, minX, maxX float64) (r Result) {
	r = Result{ID: eq.ID, Text: eq.Text, Kind: eval.KindEmpty, Value: eval.Empty{}}
	defer func() {
		if p := recover(); p != nil {
			r.Kind, r.Value, r.Display = eval.KindEmpty, eval.Empty{}, ""
			r.Err = fmt.Errorf("ggplot: evaluator panicked: %v", p)
		}
	}()

	v, err := s.Evaluate(eq.Text, minX, maxX)
	if err != nil {
		r.Err = err
		return r
	}
	switch x := v.(type) {
	case eval.Scalar:
		r.Kind, r.Value, r.Display = eval.KindScalar, x, x.String()
	case *eval.Scalar:
		if x != nil {
			r.Kind, r.Value, r.Display = eval.KindScalar, *x, x.String()
		}
	case eval.Curve:
		r.Kind, r.Value = eval.KindCurve, x
	case *eval.Curve:
		if x != nil {
			r.Kind, r.Value = eval.KindCurve, *x
		}
	}
	return r
}

func emptyResults(eqs []Equation) []Result {
	out := make([]Result, len(eqs))
	for i, eq := range eqs {
		out[i] = Result{ID: eq.ID, Text: eq.Text, Kind: eval.KindEmpty, Value: eval.Empty{}}
	}
	return out
}

// renderData redraws curves and intercept markers from the applied batch
// through the current mapper.
func (c *Controller) renderData() {
	m := c.mapper.Get()
	var (
		keyed []layer.Keyed
		pts   []eval.Point
	)
	if b := c.applied.Get(); b != nil {
		for i, r := range b.results {
			sc, ok := curve.Sample(r.Value, m)
			if !ok {
				continue
			}
			keyed = append(keyed, layer.Keyed{Key: r.ID.String(), Index: i, Curve: sc})
		}
		pts = b.intercepts
	}
	c.curves.Update(keyed)
	c.intercepts.Update(pts, m)
}
