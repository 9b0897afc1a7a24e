//go:build !ios && !android && (amd64 || arm64)

package z3go

// NativeObject is anything that wraps a native handle.
type NativeObject interface {
	NativeHandle() Handle
}

// NativeHandle returns o's handle, or Null for a nil o.
func NativeHandle[T any, P interface {
	*T
	NativeObject
}](o P) Handle {
	if o == nil {
		return Null
	}
	return o.NativeHandle()
}

// ToNativeArray converts wrappers to their handles for a batched native call.
// The result has the same length and order as objs; nil entries map to Null.
// A nil slice yields nil. No references are taken.
func ToNativeArray[T any, P interface {
	*T
	NativeObject
}](objs []P) []Handle {
	if objs == nil {
		return nil
	}
	out := make([]Handle, len(objs))
	for i, o := range objs {
		if o != nil {
			out[i] = o.NativeHandle()
		}
	}
	return out
}

// Length returns the element count of objs as the native APIs expect it.
// A nil slice has length 0.
func Length[T any](objs []T) uint32 {
	return uint32(len(objs))
}
