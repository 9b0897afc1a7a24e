//go:build !ios && !android && (amd64 || arm64)

package z3go

import (
	"maps"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/obinnaokechukwu/z3go/config"
	"github.com/obinnaokechukwu/z3go/internal/bindings"
)

// Library is the session-level surface of the native library a Context runs
// on. The default is libz3 loaded through purego.
type Library interface {
	// NewSession creates a native session configured with params.
	NewSession(params map[string]string) (Handle, error)
	// CloseSession releases a session created by NewSession.
	CloseSession(session Handle)
}

// ErrorReporter is implemented by a Library that records per-session errors.
type ErrorReporter interface {
	LastError(session Handle) (ErrorCode, string)
}

// Interrupter is implemented by a Library that can cancel running work.
type Interrupter interface {
	Interrupt(session Handle)
}

// z3Library talks to libz3.
type z3Library struct{}

// DefaultLibrary is the libz3 backend used when no WithLibrary option is given.
var DefaultLibrary Library = z3Library{}

func (z3Library) NewSession(params map[string]string) (Handle, error) {
	if err := bindings.Load(); err != nil {
		return Null, err
	}
	s, err := bindings.NewSession(params)
	return Handle(s), err
}

func (z3Library) CloseSession(session Handle) {
	bindings.DelContext(uintptr(session))
}

func (z3Library) LastError(session Handle) (ErrorCode, string) {
	code := bindings.ErrorCode(uintptr(session))
	if code == 0 {
		return ErrorOK, ""
	}
	return ErrorCode(code), bindings.ErrorMessage(uintptr(session), code)
}

func (z3Library) Interrupt(session Handle) {
	bindings.Interrupt(uintptr(session))
}

// Option configures NewContext.
type Option func(*contextOptions)

type contextOptions struct {
	lib    Library
	params map[string]string
	log    *zap.Logger
}

// WithLibrary selects the native backend.
func WithLibrary(lib Library) Option {
	return func(o *contextOptions) { o.lib = lib }
}

// WithParams adds session parameters, such as "model" or "proof".
func WithParams(params map[string]string) Option {
	return func(o *contextOptions) { maps.Copy(o.params, params) }
}

// WithParam adds one session parameter.
func WithParam(key, value string) Option {
	return func(o *contextOptions) { o.params[key] = value }
}

// WithLogger sets the context's logger. The package Logger is used otherwise.
func WithLogger(l *zap.Logger) Option {
	return func(o *contextOptions) { o.log = l }
}

// WithConfig applies the session parameters from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(o *contextOptions) {
		if cfg != nil {
			maps.Copy(o.params, cfg.SessionParams())
		}
	}
}

// session is the part of a Context that teardown needs. It is shared with
// the Context's own collector cleanup and never refers to the Context.
type session struct {
	lib      Library
	handle   Handle
	registry *Registry
	once     sync.Once
	forced   int
}

// teardown releases every registered child, then the native session.
// Concurrent callers wait for the first to finish.
func (s *session) teardown() int {
	s.once.Do(func() {
		s.forced = s.registry.sweep()
		s.lib.CloseSession(s.handle)
	})
	return s.forced
}

// Context owns a native session and every Object created under it.
//
// Closing a Context releases all of its still-live Objects before the native
// session itself, so no child is ever released against a deleted session.
// A Context that becomes unreachable without Close is torn down the same way
// by the garbage collector.
type Context struct {
	lib     Library
	core    *session
	log     *zap.Logger
	cleanup runtime.Cleanup

	// Operations that issue native calls on the session pass through gate;
	// Close shuts it and waits for them before teardown.
	gate gate
}

// NewContext creates a native session and a Context that owns it.
func NewContext(opts ...Option) (*Context, error) {
	o := contextOptions{lib: DefaultLibrary, params: map[string]string{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = Logger()
	}

	h, err := o.lib.NewSession(o.params)
	if err != nil {
		return nil, err
	}

	c := &Context{
		lib:  o.lib,
		core: &session{lib: o.lib, handle: h, registry: newRegistry()},
		log:  o.log,
	}
	c.gate.init()
	c.cleanup = runtime.AddCleanup(c, func(s *session) { s.teardown() }, c.core)

	c.log.Debug("context opened",
		zap.Uintptr("session", uintptr(h)),
		zap.Int("params", len(o.params)))
	return c, nil
}

// Session returns the native session handle. It stays set after Close but
// must not be used then.
func (c *Context) Session() Handle {
	return c.core.handle
}

// Closed reports whether Close has been called.
func (c *Context) Closed() bool {
	return c.gate.isClosed()
}

// Live returns the number of Objects still registered with the context.
func (c *Context) Live() int {
	return c.core.registry.Len()
}

// Registry returns the context's disposal registry.
func (c *Context) Registry() *Registry {
	return c.core.registry
}

// RegisterForDispose adds o to the set of Objects released when the context
// closes and returns the token that removes it again. Objects created by
// NewObject are already registered; calling this again returns their token.
func (c *Context) RegisterForDispose(o *Object) (*Token, error) {
	if o == nil || o.ctx != c {
		return nil, &MismatchError{Kind: kindName(o), Handle: o.Handle(), Reason: "object belongs to a different context"}
	}
	if o.token.Registered() {
		return o.token, nil
	}
	if o.token != nil && o.Disposed() {
		return nil, ErrDisposed
	}
	return c.core.registry.register(o.cell)
}

// CheckMatch returns a mismatch error if any non-nil object was created
// under a different context.
func (c *Context) CheckMatch(objs ...*Object) error {
	for _, o := range objs {
		if o != nil && o.ctx != c {
			return &MismatchError{Kind: kindName(o), Handle: o.Handle(), Reason: "object belongs to a different context"}
		}
	}
	return nil
}

// Err returns the session's pending native error as *Error, or nil.
// op names the call that failed.
func (c *Context) Err(op string) error {
	r, ok := c.lib.(ErrorReporter)
	if !ok {
		return nil
	}
	if !c.gate.enter() {
		return ErrContextClosed
	}
	defer c.gate.leave()
	code, msg := r.LastError(c.core.handle)
	if code == ErrorOK {
		return nil
	}
	return &Error{Code: code, Message: msg, Op: op}
}

// errLocked is Err for callers already inside the context's gate. It never
// returns nil: a null result without a recorded code is still a failure.
func (c *Context) errLocked(op string) error {
	if r, ok := c.lib.(ErrorReporter); ok {
		if code, msg := r.LastError(c.core.handle); code != ErrorOK {
			return &Error{Code: code, Message: msg, Op: op}
		}
	}
	return &Error{Code: ErrorException, Message: "returned NULL", Op: op}
}

// create runs mk on the open session and adopts the handle it returns as an
// Object of kind. A null handle is reported through the session's error.
func (c *Context) create(kind Kind, op string, mk func(session uintptr) uintptr) (*Object, error) {
	if !c.gate.enter() {
		return nil, ErrContextClosed
	}
	defer c.gate.leave()
	return c.adoptLocked(kind, op, Handle(mk(uintptr(c.core.handle))))
}

// adoptLocked adopts a handle just returned by the native call op. A null
// handle is reported through the session's error.
func (c *Context) adoptLocked(kind Kind, op string, h Handle) (*Object, error) {
	if h == Null {
		return nil, c.errLocked(op)
	}
	return newObjectLocked(c, kind, h)
}

// Interrupt asks long-running native work on the session to stop. It may be
// called from any goroutine, including while Close waits for that work.
func (c *Context) Interrupt() {
	in, ok := c.lib.(Interrupter)
	if !ok {
		return
	}
	if !c.gate.enterDraining() {
		return
	}
	defer c.gate.leave()
	in.Interrupt(c.core.handle)
}

// Close releases every Object still registered, in no particular order, and
// then the native session. Calls already running on the session finish
// first. It is idempotent and returns nil; concurrent callers return once
// teardown has finished.
func (c *Context) Close() error {
	first := c.gate.close()

	forced := c.core.teardown()
	if !first {
		return nil
	}
	c.cleanup.Stop()

	if forced > 0 {
		c.log.Warn("context closed with undisposed objects",
			zap.Uintptr("session", uintptr(c.core.handle)),
			zap.Int("forced", forced))
	}
	c.log.Debug("context closed", zap.Uintptr("session", uintptr(c.core.handle)))
	return nil
}

func kindName(o *Object) string {
	if o == nil || o.kind == nil {
		return "object"
	}
	return o.kind.Name()
}
