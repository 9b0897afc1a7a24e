//go:build !ios && !android && (amd64 || arm64)

package z3go

import (
	"runtime"

	"github.com/obinnaokechukwu/z3go/internal/bindings"
)

// AST wraps any Z3_ast.
type AST struct{ *Object }

// Sort wraps a Z3_sort.
type Sort struct{ AST }

// FuncDecl wraps a Z3_func_decl.
type FuncDecl struct{ AST }

// Expr wraps an expression: an application, numeral, bound variable or
// quantifier.
type Expr struct{ AST }

// ASTVector wraps a Z3_ast_vector.
type ASTVector struct{ *Object }

// Solver wraps a Z3_solver.
type Solver struct{ *Object }

// Model wraps a Z3_model.
type Model struct{ *Object }

// Params wraps a Z3_params.
type Params struct{ *Object }

// Goal wraps a Z3_goal.
type Goal struct{ *Object }

// Tactic wraps a Z3_tactic.
type Tactic struct{ *Object }

// WrapAST adopts an existing AST handle.
func WrapAST(ctx *Context, h Handle) (*AST, error) {
	o, err := NewObjectWithHandle(ctx, KindAST, h)
	if err != nil {
		return nil, err
	}
	return &AST{o}, nil
}

// WrapSort adopts an existing sort handle. Non-sort ASTs are rejected.
func WrapSort(ctx *Context, h Handle) (*Sort, error) {
	o, err := NewObjectWithHandle(ctx, KindSort, h)
	if err != nil {
		return nil, err
	}
	return &Sort{AST{o}}, nil
}

// WrapFuncDecl adopts an existing function declaration handle.
func WrapFuncDecl(ctx *Context, h Handle) (*FuncDecl, error) {
	o, err := NewObjectWithHandle(ctx, KindFuncDecl, h)
	if err != nil {
		return nil, err
	}
	return &FuncDecl{AST{o}}, nil
}

// WrapExpr adopts an existing expression handle. Sorts and declarations are
// rejected.
func WrapExpr(ctx *Context, h Handle) (*Expr, error) {
	o, err := NewObjectWithHandle(ctx, KindExpr, h)
	if err != nil {
		return nil, err
	}
	return &Expr{AST{o}}, nil
}

// WrapModel adopts an existing model handle.
func WrapModel(ctx *Context, h Handle) (*Model, error) {
	o, err := NewObjectWithHandle(ctx, KindModel, h)
	if err != nil {
		return nil, err
	}
	return &Model{o}, nil
}

// WrapGoal adopts an existing goal handle.
func WrapGoal(ctx *Context, h Handle) (*Goal, error) {
	o, err := NewObjectWithHandle(ctx, KindGoal, h)
	if err != nil {
		return nil, err
	}
	return &Goal{o}, nil
}

// WrapTactic adopts an existing tactic handle.
func WrapTactic(ctx *Context, h Handle) (*Tactic, error) {
	o, err := NewObjectWithHandle(ctx, KindTactic, h)
	if err != nil {
		return nil, err
	}
	return &Tactic{o}, nil
}

// String renders the AST in SMT-LIB form.
func (a *AST) String() string {
	var s string
	if a == nil || a.Object == nil {
		return s
	}
	a.call(func(session, h uintptr) { s = bindings.ASTToString(session, h) })
	return s
}

// BoolSort returns the Boolean sort.
func (c *Context) BoolSort() (*Sort, error) {
	o, err := c.create(KindSort, "Z3_mk_bool_sort", bindings.MkBoolSort)
	if err != nil {
		return nil, err
	}
	return &Sort{AST{o}}, nil
}

// IntSort returns the integer sort.
func (c *Context) IntSort() (*Sort, error) {
	o, err := c.create(KindSort, "Z3_mk_int_sort", bindings.MkIntSort)
	if err != nil {
		return nil, err
	}
	return &Sort{AST{o}}, nil
}

// NewParams creates an empty parameter set.
func NewParams(ctx *Context) (*Params, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	o, err := ctx.create(KindParams, "Z3_mk_params", bindings.MkParams)
	if err != nil {
		return nil, err
	}
	return &Params{o}, nil
}

// SetBool sets a Boolean parameter.
func (p *Params) SetBool(name string, v bool) error {
	if p == nil {
		return ErrDisposed
	}
	return p.call(func(session, h uintptr) { bindings.ParamsSetBool(session, h, name, v) })
}

// SetUint sets an unsigned parameter.
func (p *Params) SetUint(name string, v uint32) error {
	if p == nil {
		return ErrDisposed
	}
	return p.call(func(session, h uintptr) { bindings.ParamsSetUint(session, h, name, v) })
}

// String renders the parameter set.
func (p *Params) String() string {
	var s string
	if p == nil || p.Object == nil {
		return s
	}
	p.call(func(session, h uintptr) { s = bindings.ParamsToString(session, h) })
	return s
}

// NewSolver creates a general-purpose solver.
func NewSolver(ctx *Context) (*Solver, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	o, err := ctx.create(KindSolver, "Z3_mk_solver", bindings.MkSolver)
	if err != nil {
		return nil, err
	}
	return &Solver{o}, nil
}

// SetParams applies p to the solver. Both must share a context.
func (s *Solver) SetParams(p *Params) error {
	if s == nil || s.Object == nil || p == nil || p.Object == nil {
		return ErrDisposed
	}
	if err := s.ctx.CheckMatch(p.Object); err != nil {
		return err
	}
	ph := p.Handle()
	if ph == Null {
		return ErrDisposed
	}
	err := s.call(func(session, h uintptr) { bindings.SolverSetParams(session, h, uintptr(ph)) })
	runtime.KeepAlive(p)
	return err
}

// String renders the solver's assertions.
func (s *Solver) String() string {
	var out string
	if s == nil || s.Object == nil {
		return out
	}
	s.call(func(session, h uintptr) { out = bindings.SolverToString(session, h) })
	return out
}

// NewASTVector creates an empty AST vector.
func NewASTVector(ctx *Context) (*ASTVector, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	o, err := ctx.create(KindASTVector, "Z3_mk_ast_vector", bindings.MkASTVector)
	if err != nil {
		return nil, err
	}
	return &ASTVector{o}, nil
}

// Push appends a to the vector. The vector holds its own native reference,
// so a may be disposed afterwards.
func (v *ASTVector) Push(a NativeObject) error {
	if v == nil || v.Object == nil || a == nil {
		return ErrDisposed
	}
	if o, ok := a.(interface{ Context() *Context }); ok && o.Context() != v.ctx {
		return &MismatchError{Kind: KindASTVector.Name(), Handle: a.NativeHandle(), Reason: "element belongs to a different context"}
	}
	ah := a.NativeHandle()
	if ah == Null {
		return ErrDisposed
	}
	err := v.call(func(session, h uintptr) { bindings.ASTVectorPush(session, h, uintptr(ah)) })
	runtime.KeepAlive(a)
	return err
}

// Size returns the number of elements.
func (v *ASTVector) Size() (uint32, error) {
	var n uint32
	if v == nil {
		return n, ErrDisposed
	}
	err := v.call(func(session, h uintptr) { n = bindings.ASTVectorSize(session, h) })
	return n, err
}

// Get returns element i as a new AST that holds its own reference.
func (v *ASTVector) Get(i uint32) (*AST, error) {
	if v == nil || v.Object == nil {
		return nil, ErrDisposed
	}
	var (
		elem    *Object
		elemErr error
	)
	if err := v.call(func(session, h uintptr) {
		if i >= bindings.ASTVectorSize(session, h) {
			elemErr = &Error{Code: ErrorIndexOutOfBounds, Message: "index out of bounds", Op: "Z3_ast_vector_get"}
			return
		}
		// Adopt while the vector still holds the element.
		elem, elemErr = v.ctx.adoptLocked(KindAST, "Z3_ast_vector_get", Handle(bindings.ASTVectorGet(session, h, i)))
	}); err != nil {
		return nil, err
	}
	if elemErr != nil {
		return nil, elemErr
	}
	return &AST{elem}, nil
}
