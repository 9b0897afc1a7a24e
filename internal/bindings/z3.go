//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// RefFuncs is the increment/decrement pair libz3 exports for one object family.
type RefFuncs struct {
	Inc func(ctx, obj uintptr)
	Dec func(ctx, obj uintptr)
}

// Families lists every reference-counted object family and the symbol prefix
// of its inc/dec pair. The AST family uses the bare Z3_inc_ref/Z3_dec_ref.
var Families = map[string]string{
	"ast":          "Z3_",
	"ast_vector":   "Z3_ast_vector_",
	"ast_map":      "Z3_ast_map_",
	"solver":       "Z3_solver_",
	"model":        "Z3_model_",
	"params":       "Z3_params_",
	"param_descrs": "Z3_param_descrs_",
	"goal":         "Z3_goal_",
	"tactic":       "Z3_tactic_",
	"probe":        "Z3_probe_",
	"apply_result": "Z3_apply_result_",
	"stats":        "Z3_stats_",
	"func_interp":  "Z3_func_interp_",
	"func_entry":   "Z3_func_entry_",
	"optimize":     "Z3_optimize_",
	"fixedpoint":   "Z3_fixedpoint_",
}

var refs = map[string]RefFuncs{}

// Session and diagnostics bindings
var (
	z3MkConfig        func() uintptr
	z3DelConfig       func(cfg uintptr)
	z3SetParamValue   func(cfg uintptr, id, value string)
	z3MkContextRc     func(cfg uintptr) uintptr
	z3DelContext      func(ctx uintptr)
	z3SetErrorHandler func(ctx, handler uintptr)
	z3GetErrorCode    func(ctx uintptr) int32
	z3GetErrorMsg     func(ctx uintptr, code int32) string
	z3Interrupt       func(ctx uintptr)
	z3GetFullVersion  func() string
	z3GetVersion      func(major, minor, build, revision *uint32)
	z3GetASTKind      func(ctx, a uintptr) int32
)

// Constructor bindings used by the typed wrappers
var (
	z3MkParams         func(ctx uintptr) uintptr
	z3ParamsSetBool    func(ctx, p, sym uintptr, v bool)
	z3ParamsSetUint    func(ctx, p, sym uintptr, v uint32)
	z3ParamsToString   func(ctx, p uintptr) string
	z3MkStringSymbol   func(ctx uintptr, s string) uintptr
	z3MkSolver         func(ctx uintptr) uintptr
	z3SolverSetParams  func(ctx, s, p uintptr)
	z3SolverToString   func(ctx, s uintptr) string
	z3MkASTVector      func(ctx uintptr) uintptr
	z3ASTVectorSize    func(ctx, v uintptr) uint32
	z3ASTVectorGet     func(ctx, v uintptr, i uint32) uintptr
	z3ASTVectorPush    func(ctx, v, a uintptr)
	z3MkBoolSort       func(ctx uintptr) uintptr
	z3MkIntSort        func(ctx uintptr) uintptr
	z3ASTToString      func(ctx, a uintptr) string
)

func registerSymbols(lib uintptr) (err error) {
	// RegisterLibFunc panics on a missing symbol; report it as an error instead.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("z3go: registering libz3 symbols: %v", r)
		}
	}()

	purego.RegisterLibFunc(&z3MkConfig, lib, "Z3_mk_config")
	purego.RegisterLibFunc(&z3DelConfig, lib, "Z3_del_config")
	purego.RegisterLibFunc(&z3SetParamValue, lib, "Z3_set_param_value")
	purego.RegisterLibFunc(&z3MkContextRc, lib, "Z3_mk_context_rc")
	purego.RegisterLibFunc(&z3DelContext, lib, "Z3_del_context")
	purego.RegisterLibFunc(&z3SetErrorHandler, lib, "Z3_set_error_handler")
	purego.RegisterLibFunc(&z3GetErrorCode, lib, "Z3_get_error_code")
	purego.RegisterLibFunc(&z3GetErrorMsg, lib, "Z3_get_error_msg")
	purego.RegisterLibFunc(&z3Interrupt, lib, "Z3_interrupt")
	purego.RegisterLibFunc(&z3GetFullVersion, lib, "Z3_get_full_version")
	purego.RegisterLibFunc(&z3GetVersion, lib, "Z3_get_version")
	purego.RegisterLibFunc(&z3GetASTKind, lib, "Z3_get_ast_kind")

	purego.RegisterLibFunc(&z3MkParams, lib, "Z3_mk_params")
	purego.RegisterLibFunc(&z3ParamsSetBool, lib, "Z3_params_set_bool")
	purego.RegisterLibFunc(&z3ParamsSetUint, lib, "Z3_params_set_uint")
	purego.RegisterLibFunc(&z3ParamsToString, lib, "Z3_params_to_string")
	purego.RegisterLibFunc(&z3MkStringSymbol, lib, "Z3_mk_string_symbol")
	purego.RegisterLibFunc(&z3MkSolver, lib, "Z3_mk_solver")
	purego.RegisterLibFunc(&z3SolverSetParams, lib, "Z3_solver_set_params")
	purego.RegisterLibFunc(&z3SolverToString, lib, "Z3_solver_to_string")
	purego.RegisterLibFunc(&z3MkASTVector, lib, "Z3_mk_ast_vector")
	purego.RegisterLibFunc(&z3ASTVectorSize, lib, "Z3_ast_vector_size")
	purego.RegisterLibFunc(&z3ASTVectorGet, lib, "Z3_ast_vector_get")
	purego.RegisterLibFunc(&z3ASTVectorPush, lib, "Z3_ast_vector_push")
	purego.RegisterLibFunc(&z3MkBoolSort, lib, "Z3_mk_bool_sort")
	purego.RegisterLibFunc(&z3MkIntSort, lib, "Z3_mk_int_sort")
	purego.RegisterLibFunc(&z3ASTToString, lib, "Z3_ast_to_string")

	// Ref pairs are optional: older libz3 builds lack some families.
	for family, prefix := range Families {
		inc, incErr := purego.Dlsym(lib, prefix+"inc_ref")
		dec, decErr := purego.Dlsym(lib, prefix+"dec_ref")
		if incErr != nil || decErr != nil || inc == 0 || dec == 0 {
			continue
		}
		var pair RefFuncs
		purego.RegisterFunc(&pair.Inc, inc)
		purego.RegisterFunc(&pair.Dec, dec)
		refs[family] = pair
	}
	if _, ok := refs["ast"]; !ok {
		return fmt.Errorf("z3go: libz3 does not export Z3_inc_ref/Z3_dec_ref")
	}
	return nil
}

// Ref returns the inc/dec pair for a family. ok is false before Load or when
// the loaded libz3 does not export that family.
func Ref(family string) (RefFuncs, bool) {
	if !loaded {
		return RefFuncs{}, false
	}
	r, ok := refs[family]
	return r, ok
}

// NewSession creates a reference-counted Z3 context configured with params.
// The error handler is cleared so failures are reported through ErrorCode
// instead of aborting the process.
func NewSession(params map[string]string) (uintptr, error) {
	if !loaded {
		return 0, ErrNotLoaded
	}
	cfg := z3MkConfig()
	if cfg == 0 {
		return 0, fmt.Errorf("z3go: Z3_mk_config returned NULL")
	}
	defer z3DelConfig(cfg)
	for k, v := range params {
		z3SetParamValue(cfg, k, v)
	}
	ctx := z3MkContextRc(cfg)
	if ctx == 0 {
		return 0, fmt.Errorf("z3go: Z3_mk_context_rc returned NULL")
	}
	z3SetErrorHandler(ctx, 0)
	return ctx, nil
}

// DelContext deletes a Z3 context. Safe to call with 0.
func DelContext(ctx uintptr) {
	if ctx == 0 || z3DelContext == nil {
		return
	}
	z3DelContext(ctx)
}

// ErrorCode returns the last error code recorded on ctx (0 is Z3_OK).
func ErrorCode(ctx uintptr) int32 {
	if ctx == 0 || z3GetErrorCode == nil {
		return 0
	}
	return z3GetErrorCode(ctx)
}

// ErrorMessage returns the message libz3 associates with code.
func ErrorMessage(ctx uintptr, code int32) string {
	if ctx == 0 || z3GetErrorMsg == nil {
		return ""
	}
	return z3GetErrorMsg(ctx, code)
}

// Interrupt asks any running operation on ctx to stop.
func Interrupt(ctx uintptr) {
	if ctx == 0 || z3Interrupt == nil {
		return
	}
	z3Interrupt(ctx)
}

// FullVersion returns the libz3 version string, or "" if not loaded.
func FullVersion() string {
	if !loaded || z3GetFullVersion == nil {
		return ""
	}
	return z3GetFullVersion()
}

// Version returns the libz3 version components. All zero if not loaded.
func Version() (major, minor, build, revision uint32) {
	if !loaded || z3GetVersion == nil {
		return 0, 0, 0, 0
	}
	z3GetVersion(&major, &minor, &build, &revision)
	return major, minor, build, revision
}

// ASTKind returns the Z3_ast_kind of a, or -1 if not loaded.
func ASTKind(ctx, a uintptr) int32 {
	if z3GetASTKind == nil {
		return -1
	}
	return z3GetASTKind(ctx, a)
}

// MkParams creates an empty parameter set (refcount 0).
func MkParams(ctx uintptr) uintptr {
	if z3MkParams == nil {
		return 0
	}
	return z3MkParams(ctx)
}

// ParamsSetBool sets a boolean parameter.
func ParamsSetBool(ctx, p uintptr, name string, v bool) {
	if z3ParamsSetBool == nil || z3MkStringSymbol == nil {
		return
	}
	z3ParamsSetBool(ctx, p, z3MkStringSymbol(ctx, name), v)
}

// ParamsSetUint sets an unsigned parameter.
func ParamsSetUint(ctx, p uintptr, name string, v uint32) {
	if z3ParamsSetUint == nil || z3MkStringSymbol == nil {
		return
	}
	z3ParamsSetUint(ctx, p, z3MkStringSymbol(ctx, name), v)
}

// ParamsToString renders a parameter set.
func ParamsToString(ctx, p uintptr) string {
	if z3ParamsToString == nil {
		return ""
	}
	return z3ParamsToString(ctx, p)
}

// MkSolver creates a general-purpose solver (refcount 0).
func MkSolver(ctx uintptr) uintptr {
	if z3MkSolver == nil {
		return 0
	}
	return z3MkSolver(ctx)
}

// SolverSetParams applies p to solver s.
func SolverSetParams(ctx, s, p uintptr) {
	if z3SolverSetParams == nil {
		return
	}
	z3SolverSetParams(ctx, s, p)
}

// SolverToString renders the solver's assertions.
func SolverToString(ctx, s uintptr) string {
	if z3SolverToString == nil {
		return ""
	}
	return z3SolverToString(ctx, s)
}

// MkASTVector creates an empty AST vector (refcount 0).
func MkASTVector(ctx uintptr) uintptr {
	if z3MkASTVector == nil {
		return 0
	}
	return z3MkASTVector(ctx)
}

// ASTVectorSize returns the number of elements in v.
func ASTVectorSize(ctx, v uintptr) uint32 {
	if z3ASTVectorSize == nil {
		return 0
	}
	return z3ASTVectorSize(ctx, v)
}

// ASTVectorGet returns element i of v without taking a reference.
func ASTVectorGet(ctx, v uintptr, i uint32) uintptr {
	if z3ASTVectorGet == nil {
		return 0
	}
	return z3ASTVectorGet(ctx, v, i)
}

// ASTVectorPush appends a to v. The vector takes its own reference.
func ASTVectorPush(ctx, v, a uintptr) {
	if z3ASTVectorPush == nil {
		return
	}
	z3ASTVectorPush(ctx, v, a)
}

// MkBoolSort returns the Boolean sort.
func MkBoolSort(ctx uintptr) uintptr {
	if z3MkBoolSort == nil {
		return 0
	}
	return z3MkBoolSort(ctx)
}

// MkIntSort returns the integer sort.
func MkIntSort(ctx uintptr) uintptr {
	if z3MkIntSort == nil {
		return 0
	}
	return z3MkIntSort(ctx)
}

// ASTToString renders an AST in SMT-LIB form.
func ASTToString(ctx, a uintptr) string {
	if z3ASTToString == nil {
		return ""
	}
	return z3ASTToString(ctx, a)
}
