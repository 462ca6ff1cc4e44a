// Package eval walks a parsed ast.Tree against an Env (resolved variables
// plus the custom-function table) and produces runtime values (spec.md
// §4.6). It also implements the higher-order lambda protocol shared by
// array_apply/array_enumerate/map_apply/map_enumerate.
package eval

import (
	"fmt"
	"strconv"

	"github.com/jmbannon/ytdl-sub/internal/script/ast"
	"github.com/jmbannon/ytdl-sub/internal/script/builtins"
	"github.com/jmbannon/ytdl-sub/internal/script/scripterr"
	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

// Env is the evaluation environment for one Tree: resolved variables, the
// custom-function table, and the function registry (core built-ins plus
// any host-registered ones, per spec.md §6).
type Env struct {
	Registry *builtins.Registry
	Vars     map[string]value.Value
	Custom   map[string]ast.CustomFunction
}

// Eval evaluates tree under env. A single-token tree returns that token's
// own value unchanged; a multi-token tree renders each token to its
// Display string and concatenates them into a String (spec.md §4.6:
// "Multi-token ASTs: evaluate each token to a value, render each to its
// display string, and concatenate").
func Eval(tree ast.Tree, env *Env) (value.Value, error) {
	if len(tree.Tokens) == 1 {
		return evalNode(tree.Tokens[0], env)
	}
	var out string
	for _, tok := range tree.Tokens {
		v, err := evalNode(tok, env)
		if err != nil {
			return nil, err
		}
		out += v.Display()
	}
	return value.String{V: out}, nil
}

func evalNode(n ast.Node, env *Env) (value.Value, error) {
	switch node := n.(type) {
	case ast.Literal:
		return node.Value, nil

	case ast.Variable:
		v, ok := env.Vars[node.Name]
		if !ok {
			panic(fmt.Sprintf("eval: variable %q not present in environment (resolver invariant violated)", node.Name))
		}
		return v, nil

	case ast.FunctionArgRef:
		v, ok := env.Vars[argRefKey(node.Index)]
		if !ok {
			panic(fmt.Sprintf("eval: $%d not bound (custom-function call invariant violated)", node.Index))
		}
		return v, nil

	case ast.LambdaLiteral:
		return value.LambdaRef{Name: node.Name}, nil

	case ast.ArrayLiteral:
		elems := make([]value.Value, len(node.Elements))
		for i, e := range node.Elements {
			v, err := evalNode(e, env)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.Array{V: elems}, nil

	case ast.MapLiteral:
		keys := make([]value.Value, len(node.Entries))
		vals := make([]value.Value, len(node.Entries))
		for i, e := range node.Entries {
			k, err := evalNode(e.Key, env)
			if err != nil {
				return nil, err
			}
			if !value.IsHashable(k) {
				return nil, scripterr.New(scripterr.InvalidSyntax,
					"map literal key must be Hashable (Integer, String, or Boolean), got %s", k.Kind())
			}
			v, err := evalNode(e.Value, env)
			if err != nil {
				return nil, err
			}
			keys[i] = k
			vals[i] = v
		}
		return value.NewMap(keys, vals), nil

	case ast.Call:
		return evalCall(node, env)

	default:
		panic(fmt.Sprintf("eval: unhandled node type %T", n))
	}
}

// argRefKey is the synthetic Vars key a custom-function call binds $N
// under while evaluating the function's body.
func argRefKey(n int) string { return "$" + strconv.Itoa(n) }

func evalCall(call ast.Call, env *Env) (value.Value, error) {
	if call.Custom {
		return evalCustomCall(call, env)
	}

	info, ok := env.Registry.Lookup(call.Name)
	if !ok {
		return nil, scripterr.New(scripterr.FunctionDoesNotExist, "function %q is not registered", call.Name)
	}

	if info.LambdaTaking {
		return evalLambdaTaking(call, info, env)
	}

	args := make([]value.Value, len(call.Args))
	for i, a := range call.Args {
		v, err := evalNode(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	result, err := info.Callback(args)
	if err != nil {
		if se, ok := err.(*scripterr.Error); ok {
			return nil, se
		}
		return nil, scripterr.New(scripterr.FunctionRuntime, "%s: %s", call.Name, err.Error()).WithFunction(call.Name)
	}
	return result, nil
}

// evalCustomCall dispatches a user-defined `%name(args…)` call: evaluate
// arguments, bind them to $0..$(arity-1), then evaluate the function body
// under the augmented environment (spec.md §4.4).
func evalCustomCall(call ast.Call, env *Env) (value.Value, error) {
	fn, ok := env.Custom[call.Name]
	if !ok {
		return nil, scripterr.New(scripterr.FunctionDoesNotExist, "custom function %q is not defined", call.Name)
	}
	if len(call.Args) != fn.Arity {
		return nil, scripterr.New(scripterr.StringFormatting,
			"%%%s expects %d argument(s), got %d", call.Name, fn.Arity, len(call.Args))
	}

	bodyVars := make(map[string]value.Value, len(env.Vars)+fn.Arity)
	for k, v := range env.Vars {
		bodyVars[k] = v
	}
	for i, a := range call.Args {
		v, err := evalNode(a, env)
		if err != nil {
			return nil, err
		}
		bodyVars[argRefKey(i)] = v
	}
	bodyEnv := &Env{Registry: env.Registry, Vars: bodyVars, Custom: env.Custom}
	return Eval(fn.Body, bodyEnv)
}

// evalLambdaTaking implements the higher-order protocol (spec.md §4.6): the
// builtin's own Callback only synthesizes an Array of ready-made
// per-element argument Arrays; this function performs the actual dispatch,
// one call per element, to the lambda named in the call's final argument.
func evalLambdaTaking(call ast.Call, info *builtins.FuncInfo, env *Env) (value.Value, error) {
	lambdaLit, ok := call.Args[len(call.Args)-1].(ast.LambdaLiteral)
	if !ok {
		panic("eval: lambda-taking call's final argument was not a LambdaLiteral (parser invariant violated)")
	}

	args := make([]value.Value, len(call.Args)-1)
	for i := 0; i < len(call.Args)-1; i++ {
		v, err := evalNode(call.Args[i], env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	argBatches, err := info.Callback(args)
	if err != nil {
		return nil, scripterr.New(scripterr.FunctionRuntime, "%s: %s", call.Name, err.Error()).WithFunction(call.Name)
	}
	batches, ok := argBatches.(value.Array)
	if !ok {
		panic("eval: lambda-taking builtin must return an Array of argument arrays")
	}

	results := make([]value.Value, len(batches.V))
	for i, batch := range batches.V {
		batchArgs, ok := batch.(value.Array)
		if !ok {
			panic("eval: lambda-taking builtin's per-element batch must itself be an Array")
		}
		v, err := callLambda(lambdaLit, batchArgs.V, env)
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return value.Array{V: results}, nil
}

// callLambda invokes the function referenced by lit (built-in or custom)
// with already-evaluated args, reusing the same Call evaluation path a
// literal %name(...) invocation would take.
func callLambda(lit ast.LambdaLiteral, args []value.Value, env *Env) (value.Value, error) {
	argNodes := make([]ast.Node, len(args))
	for i, a := range args {
		argNodes[i] = ast.Literal{Value: a}
	}
	synthetic := ast.Call{Name: lit.Name, Args: argNodes, Custom: lit.Custom}
	return evalCall(synthetic, env)
}
