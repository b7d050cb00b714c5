package convert

import (
	"errors"
	"fmt"

	"marker/internal/host"
)

// ErrNotYetImplemented matches every *NotImplementedError.
var ErrNotYetImplemented = errors.New("not yet implemented")

// ErrStorageReleased is the panic value of allocations after Release.
var ErrStorageReleased = errors.New("convert: storage used after release")

// NotImplementedError aborts a pass on a host node the portable AST cannot
// represent yet. Unlike skipped nodes, dropping it would leave the tree
// incomplete.
type NotImplementedError struct {
	What string
	Span host.Span
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("convert: %s: not yet implemented", e.What)
}

func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotYetImplemented
}

// LayoutMismatchError reports a host id whose memory layout no longer matches
// its portable counterpart.
type LayoutMismatchError struct {
	Host     string
	Portable string
	Detail   string
}

func (e *LayoutMismatchError) Error() string {
	return fmt.Sprintf("convert: layout of %s does not match %s: %s", e.Host, e.Portable, e.Detail)
}

// bailout carries a fatal error from deep inside a conversion to the public
// entry point that started it.
type bailout struct {
	err error
}

func (c *Converter) fail(err error) {
	panic(bailout{err: err})
}

func (c *Converter) notYetImplemented(what string, span host.Span) {
	c.fail(&NotImplementedError{What: what, Span: span})
}

// recoverBailout turns a bailout into *errp and keeps it as the converter's
// error. Other panics keep unwinding.
func (c *Converter) recoverBailout(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if b, ok := r.(bailout); ok {
		if c.err == nil {
			c.err = b.err
		}
		*errp = c.err
		return
	}
	panic(r)
}
