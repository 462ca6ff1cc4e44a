package builtins

import (
	"github.com/jmbannon/ytdl-sub/internal/script/types"
	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

// ResolveReturn projects sig's declared Return type to a concrete Type
// given the static argument types of one call node (spec.md §9). A marker
// (RetA/RetB/Ret) resolves to the static type of whichever formal parameter
// declares that same marker — not a fixed argument position — so `if`'s
// `(Boolean, RetA, RetB) -> RetA∪RetB` correctly reads the branch types from
// parameter indices 1 and 2, not 0 and 1. Non-marker Return types pass
// through unchanged.
func ResolveReturn(sig Signature, argTypes []types.Type) types.Type {
	if !sig.Return.IsMarker() {
		return sig.Return
	}

	var members []value.Kind
	unconstrained := false
	for _, m := range sig.Return.Markers() {
		idx, ok := paramIndexForMarker(sig, m)
		if !ok || idx >= len(argTypes) {
			continue
		}
		projected := argTypes[idx]
		switch {
		case projected.Any:
			return types.AnyType
		case projected.Unconstrained:
			unconstrained = true
		default:
			members = append(members, projected.Members...)
		}
	}
	if unconstrained && len(members) == 0 {
		return types.Unconstrained
	}
	return types.Union(members...)
}

func paramIndexForMarker(sig Signature, m types.Marker) (int, bool) {
	for i, p := range sig.Params {
		ms := p.Type.Markers()
		if len(ms) == 1 && ms[0] == m {
			return i, true
		}
	}
	return 0, false
}
