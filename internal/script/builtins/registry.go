// Package builtins holds the function registry: every built-in function's
// typed signature together with its Go implementation, keyed by name. Host
// collaborators (internal/hostfuncs) register additional functions against
// the same Registry type, so there is no semantic distinction between a
// built-in and a host-registered function once registered (spec.md §9).
package builtins

import (
	"sort"
	"strconv"
	"sync"

	"github.com/jmbannon/ytdl-sub/internal/script/types"
	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

// Param is one formal parameter of a function Signature.
type Param struct {
	Type     types.Type
	Optional bool
}

// Signature is a function's typed contract: either a fixed, positional
// parameter list (with an optional tail) or a single variadic parameter —
// never both, per spec.md §4.2.
type Signature struct {
	Params   []Param
	Variadic *Param
	Return   types.Type
}

// Func is the Go implementation of a built-in. It receives already-evaluated
// arguments (left-to-right, per spec.md §4.6) and returns the result value.
// Lambda-taking functions receive every argument except the trailing Lambda
// one — the evaluator handles dispatching the lambda itself (spec.md §4.6's
// higher-order protocol), so these callbacks only produce the
// array-of-argument-arrays shape.
type Func func(args []value.Value) (value.Value, error)

// FuncInfo is one registered function: its signature and implementation.
type FuncInfo struct {
	Name         string
	Signature    Signature
	LambdaTaking bool
	Description  string
	Callback     Func
}

// Registry is a name -> FuncInfo table. Lookup is case-sensitive, matching
// spec.md's function-name syntax (`%name(...)`).
type Registry struct {
	mu        sync.RWMutex
	functions map[string]*FuncInfo
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{functions: make(map[string]*FuncInfo)}
}

// reservedWordAliases maps a function's natural name to the Go identifier
// suffix used when that name collides with a host-language reserved word
// (spec.md §4.2's name-clash rule: "if", "or", "and", "not", "bool", "xor").
// The registry always stores the function under its natural name; this map
// only documents the suffixed Go names and is not consulted by lookups.
// if_, and_, or_, xor_ and not_ exist as Go functions; the bool cast is an
// inline closure in casts.go.
var reservedWordAliases = map[string]string{
	"if": "if_", "or": "or_", "and": "and_", "not": "not_", "bool": "bool_", "xor": "xor_",
}

// Register adds fn to the registry under name (its natural, possibly
// reserved-word name — see reservedWordAliases). Signatures must declare
// the Lambda parameter, if any, as the last formal parameter; Register
// panics otherwise, mirroring the teacher's validateFormalArgs
// registration-time invariant checks.
func (r *Registry) Register(name string, info FuncInfo) {
	info.Name = name
	validateSignature(name, info.Signature)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]*FuncInfo)
	}
	r.functions[name] = &info
}

func validateSignature(name string, sig Signature) {
	if (sig.Params == nil) == (sig.Variadic == nil) {
		panic("builtins: " + name + ": signature must be either fixed-arity or variadic, not both/neither")
	}
	seenOptional := false
	for i, p := range sig.Params {
		if p.Optional {
			seenOptional = true
		} else if seenOptional {
			panic("builtins: " + name + ": required param after optional param at index " + strconv.Itoa(i))
		}
		isLambda := len(p.Type.Members) == 1 && p.Type.Members[0] == value.LambdaRefKind
		if isLambda && i != len(sig.Params)-1 {
			panic("builtins: " + name + ": Lambda param must be the last param, found at index " + strconv.Itoa(i))
		}
	}
}

// Lookup returns the FuncInfo registered under name.
func (r *Registry) Lookup(name string) (*FuncInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.functions[name]
	return fn, ok
}

// Names returns every registered function name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.functions))
	for name := range r.functions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Merge copies every entry of other into r, overwriting any existing entry
// with the same name. Used to layer host-registered functions on top of
// the core registry (spec.md §6).
func (r *Registry) Merge(other *Registry) {
	other.mu.RLock()
	defer other.mu.RUnlock()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]*FuncInfo)
	}
	for name, info := range other.functions {
		r.functions[name] = info
	}
}

// Default is the registry populated with every built-in named in spec.md
// §4.2, assembled at init() time the way the teacher's
// internal/interp/builtins.DefaultRegistry is.
var Default = NewRegistry()

func init() {
	RegisterAll(Default)
}

// RegisterAll registers every built-in category into r. Exported so a host
// (or a test) can build an isolated registry rather than mutating Default.
func RegisterAll(r *Registry) {
	registerCasts(r)
	registerNumeric(r)
	registerBooleanCmp(r)
	registerConditional(r)
	registerStrings(r)
	registerArrays(r)
	registerMaps(r)
	registerControl(r)
}
