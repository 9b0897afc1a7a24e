//go:build !ios && !android && (amd64 || arm64)

package z3go

import (
	"fmt"
	"slices"

	"github.com/obinnaokechukwu/z3go/internal/bindings"
)

// Handle is an opaque reference to an object owned by the native library.
// The zero Handle wraps nothing.
type Handle uintptr

// Null is the handle that wraps nothing.
const Null Handle = 0

// Kind supplies the native reference-counting entry points for one family of
// native objects. Every Object is bound to exactly one Kind.
//
// IncRef and DecRef receive the raw session handle rather than the Context so
// they stay callable from the garbage collector's cleanup goroutine, where the
// Context may already be unreachable.
type Kind interface {
	// Name identifies the kind in errors and logs.
	Name() string
	// IncRef takes one native reference on h.
	IncRef(session, h Handle)
	// DecRef drops one native reference on h.
	DecRef(session, h Handle)
	// Check validates h before it is adopted. A non-nil error must wrap
	// ErrContextMismatch; no reference has been taken when it runs. Check
	// runs while the adopting call is in flight on ctx, so Close waits for
	// it; Check must not call ctx.Close itself. Other Context methods are
	// safe and report ErrContextClosed once a Close has begun.
	Check(ctx *Context, h Handle) error
}

type funcKind struct {
	name  string
	inc   func(session, h Handle)
	dec   func(session, h Handle)
	check func(ctx *Context, h Handle) error
}

// NewKind builds a Kind from functions. check may be nil to accept every
// handle.
func NewKind(name string, inc, dec func(session, h Handle), check func(ctx *Context, h Handle) error) Kind {
	return &funcKind{name: name, inc: inc, dec: dec, check: check}
}

func (k *funcKind) Name() string { return k.name }

func (k *funcKind) IncRef(session, h Handle) {
	if k.inc != nil {
		k.inc(session, h)
	}
}

func (k *funcKind) DecRef(session, h Handle) {
	if k.dec != nil {
		k.dec(session, h)
	}
}

func (k *funcKind) Check(ctx *Context, h Handle) error {
	if k.check == nil {
		return nil
	}
	return k.check(ctx, h)
}

// ASTKind is a Z3_ast_kind value.
type ASTKind int32

// Z3_ast_kind values.
const (
	ASTKindNumeral    ASTKind = 0
	ASTKindApp        ASTKind = 1
	ASTKindVar        ASTKind = 2
	ASTKindQuantifier ASTKind = 3
	ASTKindSort       ASTKind = 4
	ASTKindFuncDecl   ASTKind = 5
	ASTKindUnknown    ASTKind = 1000
)

// String returns the string representation of the ast kind.
func (k ASTKind) String() string {
	switch k {
	case ASTKindNumeral:
		return "numeral"
	case ASTKindApp:
		return "app"
	case ASTKindVar:
		return "var"
	case ASTKindQuantifier:
		return "quantifier"
	case ASTKindSort:
		return "sort"
	case ASTKindFuncDecl:
		return "func_decl"
	default:
		return fmt.Sprintf("unknown(%d)", int32(k))
	}
}

// NativeKind is a Kind backed by one libz3 reference-counted family.
type NativeKind struct {
	name   string
	family string
	// accepted ast kinds; empty accepts any handle.
	accept []ASTKind
}

// Name implements Kind.
func (k *NativeKind) Name() string { return k.name }

// Available reports whether the loaded libz3 exports this family's ref pair.
// Before Init, or for families missing from an older libz3, IncRef and
// DecRef are no-ops.
func (k *NativeKind) Available() bool {
	_, ok := bindings.Ref(k.family)
	return ok
}

// IncRef implements Kind.
func (k *NativeKind) IncRef(session, h Handle) {
	if r, ok := bindings.Ref(k.family); ok {
		r.Inc(uintptr(session), uintptr(h))
	}
}

// DecRef implements Kind.
func (k *NativeKind) DecRef(session, h Handle) {
	if r, ok := bindings.Ref(k.family); ok {
		r.Dec(uintptr(session), uintptr(h))
	}
}

// Check implements Kind. AST-backed kinds reject handles whose ast kind is
// not one they wrap, such as a sort handed to an expression wrapper.
func (k *NativeKind) Check(ctx *Context, h Handle) error {
	if len(k.accept) == 0 {
		return nil
	}
	got := ASTKind(bindings.ASTKind(uintptr(ctx.Session()), uintptr(h)))
	if slices.Contains(k.accept, got) {
		return nil
	}
	return &MismatchError{Kind: k.name, Handle: h, Reason: "ast kind " + got.String()}
}

// Built-in kinds, one per libz3 reference-counted family.
var (
	KindAST         = &NativeKind{name: "ast", family: "ast"}
	KindSort        = &NativeKind{name: "sort", family: "ast", accept: []ASTKind{ASTKindSort}}
	KindFuncDecl    = &NativeKind{name: "func_decl", family: "ast", accept: []ASTKind{ASTKindFuncDecl}}
	KindExpr        = &NativeKind{name: "expr", family: "ast", accept: []ASTKind{ASTKindNumeral, ASTKindApp, ASTKindVar, ASTKindQuantifier}}
	KindASTVector   = &NativeKind{name: "ast_vector", family: "ast_vector"}
	KindASTMap      = &NativeKind{name: "ast_map", family: "ast_map"}
	KindSolver      = &NativeKind{name: "solver", family: "solver"}
	KindModel       = &NativeKind{name: "model", family: "model"}
	KindParams      = &NativeKind{name: "params", family: "params"}
	KindParamDescrs = &NativeKind{name: "param_descrs", family: "param_descrs"}
	KindGoal        = &NativeKind{name: "goal", family: "goal"}
	KindTactic      = &NativeKind{name: "tactic", family: "tactic"}
	KindProbe       = &NativeKind{name: "probe", family: "probe"}
	KindApplyResult = &NativeKind{name: "apply_result", family: "apply_result"}
	KindStatistics  = &NativeKind{name: "statistics", family: "stats"}
	KindFuncInterp  = &NativeKind{name: "func_interp", family: "func_interp"}
	KindFuncEntry   = &NativeKind{name: "func_entry", family: "func_entry"}
	KindOptimize    = &NativeKind{name: "optimize", family: "optimize"}
	KindFixedpoint  = &NativeKind{name: "fixedpoint", family: "fixedpoint"}
)

// Kinds returns every built-in kind.
func Kinds() []*NativeKind {
	return []*NativeKind{
		KindAST, KindSort, KindFuncDecl, KindExpr, KindASTVector, KindASTMap,
		KindSolver, KindModel, KindParams, KindParamDescrs, KindGoal, KindTactic,
		KindProbe, KindApplyResult, KindStatistics, KindFuncInterp, KindFuncEntry,
		KindOptimize, KindFixedpoint,
	}
}
