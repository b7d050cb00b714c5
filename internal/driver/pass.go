// Package driver runs lint passes over one host crate. RunPass owns the
// node storage and the bridge session of a pass; both are released when it
// returns.
package driver

import (
	"context"
	"fmt"

	"marker/internal/bridge"
	"marker/internal/convert"
	"marker/internal/diag"
	"marker/internal/host"
	"marker/internal/observ"
	"marker/internal/source"
	"marker/internal/trace"
	"marker/pkg/ast"
	"marker/pkg/lint"
)

// Options configures RunPass.
type Options struct {
	Levels   bridge.LevelFunc
	Reporter diag.Reporter
	// FileSet receives the host files of reported spans.
	FileSet  *source.FileSet
	Observer PhaseObserver
}

// Result summarizes a finished pass.
type Result struct {
	Items   int
	Bodies  int
	Stmts   int
	Exprs   int
	Skipped int
	Timings observ.Report
}

// RunPass converts the crate of sess and calls every hook of passes on it.
// Items are visited in declaration order, expressions parents first.
// A conversion failure, also one raised by a callback, ends the pass with
// that error.
func RunPass(ctx context.Context, sess host.Session, passes []lint.Pass, opts Options) (Result, error) {
	var res Result
	if _, err := Lints(passes); err != nil {
		return res, err
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePhase, "lint_pass", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")

	ph := &phases{timer: observ.NewTimer(), observer: opts.Observer}
	store := convert.NewStorage()
	defer store.Release()

	conv, err := convert.New(sess, store, convert.WithTracer(tracer, span.ID()))
	if err != nil {
		return res, err
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	bs := bridge.New(conv, diag.NewDedupReporter(reporter),
		bridge.WithLevels(opts.Levels),
		bridge.WithFileSet(opts.FileSet),
	)
	defer bs.Close()

	idx := ph.begin("convert")
	crate, err := conv.ConvertCrate()
	ph.end(idx, "")
	if err != nil {
		return res, fmt.Errorf("convert crate: %w", err)
	}

	w := &walker{ctx: ctx, cx: bs.Context(), conv: conv, checks: dispatch(passes)}
	idx = ph.begin("check")
	err = bs.Run(func() { w.crate(crate) })
	ph.end(idx, fmt.Sprintf("%d items", w.res.Items))
	if err == nil {
		err = w.err
	}

	res = w.res
	res.Skipped = conv.Skipped()
	res.Timings = ph.timer.Report()
	if conv.Skipped() > 0 {
		trace.Point(tracer, trace.ScopePhase, "skipped", fmt.Sprintf("%d nodes", conv.Skipped()), span.ID())
	}
	return res, err
}

type walker struct {
	ctx    context.Context
	cx     *lint.AstContext
	conv   *convert.Converter
	checks checkers
	res    Result
	err    error
}

func (w *walker) stopped() bool {
	if w.err != nil {
		return true
	}
	if err := w.ctx.Err(); err != nil {
		w.err = err
		return true
	}
	return false
}

func (w *walker) crate(c *ast.Crate) {
	for _, ch := range w.checks.crates {
		ch.CheckCrate(w.cx, c)
	}
	for _, it := range c.Items() {
		w.item(it)
	}
}

func (w *walker) item(it ast.Item) {
	if it == nil || w.stopped() {
		return
	}
	w.res.Items++
	for _, ch := range w.checks.items {
		ch.CheckItem(w.cx, it)
	}
	switch it := it.(type) {
	case *ast.ModItem:
		for _, child := range it.Items() {
			w.item(child)
		}
	case *ast.ImplItem:
		for _, child := range it.Items() {
			w.item(child)
		}
	case *ast.FnItem:
		if id, ok := it.Body(); ok {
			w.body(id)
		}
	case *ast.ConstItem:
		if id, ok := it.Body(); ok {
			w.body(id)
		}
	case *ast.StaticItem:
		w.body(it.Body())
	}
}

func (w *walker) body(id ast.BodyId) {
	b, err := w.conv.Body(id)
	if err != nil {
		w.err = fmt.Errorf("convert %v: %w", id, err)
		return
	}
	w.res.Bodies++
	for _, ch := range w.checks.bodies {
		ch.CheckBody(w.cx, b)
	}
	w.expr(b.Expr())
}

func (w *walker) stmt(s ast.Stmt) {
	if w.err != nil {
		return
	}
	w.res.Stmts++
	for _, ch := range w.checks.stmts {
		ch.CheckStmt(w.cx, s)
	}
	switch s := s.(type) {
	case *ast.ItemStmt:
		w.item(s.Item())
	case *ast.LetStmt:
		w.expr(s.Init())
		w.expr(s.Els())
	case *ast.ExprStmt:
		w.expr(s.Expr())
	}
}

func (w *walker) expr(e ast.Expr) {
	if e == nil || w.err != nil {
		return
	}
	w.res.Exprs++
	for _, ch := range w.checks.exprs {
		ch.CheckExpr(w.cx, e)
	}
	switch e := e.(type) {
	case *ast.CallExpr:
		w.expr(e.Operand())
		w.exprs(e.Args())
	case *ast.MethodExpr:
		w.expr(e.Receiver())
		w.exprs(e.Args())
	case *ast.UnaryOpExpr:
		w.expr(e.Operand())
	case *ast.BinaryOpExpr:
		w.expr(e.Left())
		w.expr(e.Right())
	case *ast.RefExpr:
		w.expr(e.Inner())
	case *ast.BlockExpr:
		for _, s := range e.Stmts() {
			w.stmt(s)
		}
		w.expr(e.Result())
	case *ast.ReturnExpr:
		w.expr(e.Value())
	case *ast.AssignExpr:
		w.expr(e.Target())
		w.expr(e.Value())
	case *ast.FieldExpr:
		w.expr(e.Operand())
	}
}

func (w *walker) exprs(es []ast.Expr) {
	for _, e := range es {
		w.expr(e)
	}
}
