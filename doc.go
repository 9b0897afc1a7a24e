//go:build !ios && !android && (amd64 || arm64)

// Package z3go manages the lifetime of objects owned by the Z3 theorem
// prover's native library, loaded at runtime without cgo using purego.
//
// Every native object is held by an Object bound to one Kind (the object's
// native increment/decrement pair) and one Context (the native session).
// An Object takes one native reference per handle it adopts and drops it
// exactly once, whichever of these happens first:
//
//   - Dispose (or Close) on the Object
//   - Close on its Context, which releases all remaining Objects before
//     deleting the session
//   - the garbage collector finding the Object unreachable
//
// Explicit disposal is the intended path; the collector is a backstop.
//
//	ctx, err := z3go.NewContext(z3go.WithParam("model", "true"))
//	if err != nil {
//		return err
//	}
//	defer ctx.Close()
//
//	s, err := z3go.NewSolver(ctx)
//	if err != nil {
//		return err
//	}
//	defer s.Dispose()
//
// Kinds other than the built-in ones can be supplied with NewKind, and a
// Context can run on any backend implementing Library.
package z3go
