//go:build !ios && !android && (amd64 || arm64)

package z3go

import (
	"runtime"
	"sync"
)

// cell holds the release state shared by an Object, its context's registry,
// and the garbage-collector cleanup. It never points back at the Object or
// the Context, so the cleanup can run after either is gone.
type cell struct {
	mu       sync.Mutex
	kind     Kind
	session  Handle
	handle   Handle
	disposed bool
}

// release drops the cell's reference and marks it disposed. Exactly one
// caller sees true.
func (c *cell) release() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return false
	}
	if c.handle != Null {
		c.kind.DecRef(c.session, c.handle)
		c.handle = Null
	}
	c.disposed = true
	return true
}

func (c *cell) isDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// Object pairs one native handle with its reference-count bookkeeping.
//
// An Object takes one native reference for every handle it adopts and drops
// it exactly once: on Dispose, on reassignment, when its Context is closed, or
// when the garbage collector finds the Object unreachable. Dispose is the
// primary path; the collector is a backstop.
//
// Object is safe for concurrent use.
type Object struct {
	ctx     *Context
	kind    Kind
	cell    *cell
	token   *Token
	cleanup runtime.Cleanup
}

// NewObject creates an Object bound to ctx that wraps nothing yet.
// No native call is issued.
func NewObject(ctx *Context, kind Kind) (*Object, error) {
	return NewObjectWithHandle(ctx, kind, Null)
}

// NewObjectWithHandle creates an Object bound to ctx that adopts h.
//
// For a non-null h, kind.Check runs first and a rejection is returned before
// any reference is taken. Then exactly one IncRef is issued and the Object is
// registered with the context. A null h behaves like NewObject.
func NewObjectWithHandle(ctx *Context, kind Kind, h Handle) (*Object, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	if !ctx.gate.enter() {
		return nil, ErrContextClosed
	}
	defer ctx.gate.leave()
	return newObjectLocked(ctx, kind, h)
}

// newObjectLocked is NewObjectWithHandle for callers already inside the
// gate of an open context.
func newObjectLocked(ctx *Context, kind Kind, h Handle) (*Object, error) {
	if h != Null {
		if err := kind.Check(ctx, h); err != nil {
			return nil, err
		}
		kind.IncRef(ctx.core.handle, h)
	}

	o := &Object{
		ctx:  ctx,
		kind: kind,
		cell: &cell{kind: kind, session: ctx.core.handle, handle: h},
	}
	tok, err := ctx.RegisterForDispose(o)
	if err != nil {
		o.cell.release()
		return nil, err
	}
	o.token = tok
	o.cleanup = runtime.AddCleanup(o, func(c *cell) { c.release() }, o.cell)
	return o, nil
}

// Handle returns the current native handle. It is Null for a nil, empty, or
// disposed Object.
func (o *Object) Handle() Handle {
	if o == nil {
		return Null
	}
	o.cell.mu.Lock()
	defer o.cell.mu.Unlock()
	return o.cell.handle
}

// SetHandle replaces the wrapped handle.
//
// A non-null h is checked and gains a reference before the previous handle
// loses one, so reassigning an object to the same native object never drops
// its count to zero in between. Passing Null releases the current handle and
// leaves the Object empty but live.
func (o *Object) SetHandle(h Handle) error {
	if o == nil {
		return ErrDisposed
	}
	if !o.ctx.gate.enter() {
		return ErrContextClosed
	}
	defer o.ctx.gate.leave()

	c := o.cell
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return ErrDisposed
	}

	if h != Null {
		if err := o.kind.Check(o.ctx, h); err != nil {
			return err
		}
		o.kind.IncRef(c.session, h)
	}
	if c.handle != Null {
		o.kind.DecRef(c.session, c.handle)
	}
	c.handle = h
	return nil
}

// Dispose releases the native handle. It is idempotent: only the first call,
// or the first of a concurrent teardown or collector release, issues the
// decrement.
func (o *Object) Dispose() {
	if o == nil {
		return
	}
	if !o.cell.release() {
		return
	}
	o.token.Cancel()
	o.cleanup.Stop()
}

// Close disposes the Object and returns nil. It makes Object an io.Closer.
func (o *Object) Close() error {
	o.Dispose()
	return nil
}

// Disposed reports whether the Object has released its handle.
func (o *Object) Disposed() bool {
	if o == nil {
		return true
	}
	return o.cell.isDisposed()
}

// Context returns the owning context.
func (o *Object) Context() *Context {
	if o == nil {
		return nil
	}
	return o.ctx
}

// Kind returns the object's kind.
func (o *Object) Kind() Kind {
	if o == nil {
		return nil
	}
	return o.kind
}

// NativeHandle returns the current handle. It lets typed wrappers that embed
// *Object satisfy NativeObject.
func (o *Object) NativeHandle() Handle {
	return o.Handle()
}

// call runs fn with the raw session and handle while the context is open and
// the Object still wraps a handle. The Object is kept reachable until fn
// returns so the collector cannot release the handle mid-call, and Close
// waits for fn. An explicit Dispose of the same Object racing fn on another
// goroutine is not guarded: the caller must order the two.
func (o *Object) call(fn func(session, h uintptr)) error {
	if o == nil {
		return ErrDisposed
	}
	if !o.ctx.gate.enter() {
		return ErrContextClosed
	}
	defer o.ctx.gate.leave()
	h := o.Handle()
	if h == Null {
		return ErrDisposed
	}
	fn(uintptr(o.ctx.core.handle), uintptr(h))
	runtime.KeepAlive(o)
	return nil
}
