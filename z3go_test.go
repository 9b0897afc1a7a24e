//go:build !ios && !android && (amd64 || arm64)

package z3go

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/z3go/config"
)

func TestInit(t *testing.T) {
	skipIfNoZ3(t)
	require.NoError(t, Init())
	assert.True(t, IsLoaded())
	assert.NotEmpty(t, LibraryPath())

	major, minor, build, _ := Version()
	assert.GreaterOrEqual(t, major, uint32(4))
	t.Logf("libz3 %d.%d.%d (%s) from %s", major, minor, build, FullVersion(), LibraryPath())

	assert.NoError(t, InitWithConfig(nil))
	assert.ErrorIs(t, InitWithConfig(config.Default()), ErrAlreadyLoaded)
}

func TestZ3Lifecycle(t *testing.T) {
	skipIfNoZ3(t)

	ctx, err := NewContext(WithParam("model", "true"))
	require.NoError(t, err)
	defer ctx.Close()

	boolSort, err := ctx.BoolSort()
	require.NoError(t, err)
	defer boolSort.Dispose()
	assert.Equal(t, "Bool", boolSort.String())

	intSort, err := ctx.IntSort()
	require.NoError(t, err)
	assert.Equal(t, "Int", intSort.String())

	params, err := NewParams(ctx)
	require.NoError(t, err)
	require.NoError(t, params.SetUint("timeout", 1000))
	assert.Contains(t, params.String(), "timeout")

	solver, err := NewSolver(ctx)
	require.NoError(t, err)
	require.NoError(t, solver.SetParams(params))
	params.Dispose()
	assert.NotPanics(t, func() { _ = solver.String() })

	vec, err := NewASTVector(ctx)
	require.NoError(t, err)
	require.NoError(t, vec.Push(boolSort))
	require.NoError(t, vec.Push(intSort))
	intSort.Dispose()

	n, err := vec.Size()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), n)

	elem, err := vec.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Int", elem.String())
	elem.Dispose()

	_, err = vec.Get(2)
	assert.Equal(t, ErrorIndexOutOfBounds, Code(err))

	// boolSort, solver and vec are still live.
	assert.Equal(t, 3, ctx.Live())
	require.NoError(t, ctx.Close())
	assert.Equal(t, 0, ctx.Live())
	assert.Empty(t, solver.String())
	_, err = vec.Size()
	assert.ErrorIs(t, err, ErrContextClosed)
	assert.True(t, boolSort.Disposed())
	solver.Dispose()
}

func TestZ3KindCheck(t *testing.T) {
	skipIfNoZ3(t)

	ctx, err := NewContext()
	require.NoError(t, err)
	defer ctx.Close()

	s, err := ctx.BoolSort()
	require.NoError(t, err)

	_, err = WrapExpr(ctx, s.Handle())
	assert.True(t, IsMismatch(err))

	again, err := WrapSort(ctx, s.Handle())
	require.NoError(t, err)
	s.Dispose()
	// The second wrapper holds its own reference.
	assert.Equal(t, "Bool", again.String())

	ast, err := WrapAST(ctx, again.Handle())
	require.NoError(t, err)
	assert.Equal(t, "Bool", ast.String())
}

func TestZ3ContextMismatch(t *testing.T) {
	skipIfNoZ3(t)

	a, err := NewContext()
	require.NoError(t, err)
	defer a.Close()
	b, err := NewContext()
	require.NoError(t, err)
	defer b.Close()

	s, err := NewSolver(a)
	require.NoError(t, err)
	p, err := NewParams(b)
	require.NoError(t, err)
	assert.True(t, IsMismatch(s.SetParams(p)))

	v, err := NewASTVector(a)
	require.NoError(t, err)
	sort, err := b.BoolSort()
	require.NoError(t, err)
	assert.True(t, IsMismatch(v.Push(sort)))
}

func TestNilContextConstructors(t *testing.T) {
	_, err := NewSolver(nil)
	assert.ErrorIs(t, err, ErrNilContext)
	_, err = NewParams(nil)
	assert.ErrorIs(t, err, ErrNilContext)
	_, err = NewASTVector(nil)
	assert.ErrorIs(t, err, ErrNilContext)
	_, err = WrapAST(nil, 0x1)
	assert.ErrorIs(t, err, ErrNilContext)
}
