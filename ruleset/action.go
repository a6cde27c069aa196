package ruleset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Family tags the three disjoint action vocabularies spec.md §3 describes,
// plus the Nothing sentinel. Design note "Action polymorphism" (spec.md §9)
// calls for exactly this shape: the original encodes families as string
// prefixes parsed ad hoc at every call site; graphgen parses once, here.
type Family int

const (
	// FamilyNothing is the labeling "no-op" action.
	FamilyNothing Family = iota
	// FamilyNewLabel allocates a fresh label (labeling family).
	FamilyNewLabel
	// FamilyMerge unions the label provenance of one or more neighbor pixels
	// (labeling family, token shape "e<pixelname>[+...]").
	FamilyMerge
	// FamilyKeep0 keeps the pixel background (thinning family).
	FamilyKeep0
	// FamilyKeep1 keeps the pixel foreground (thinning family).
	FamilyKeep1
	// FamilyChange0 flips the pixel to background (thinning family).
	FamilyChange0
	// FamilyChainCode is an opaque pass-through token (chaincode family).
	FamilyChainCode
)

// String renders the family's canonical action-grammar keyword (for the
// thinning, "nothing" and "newlabel" families this equals the Token).
func (f Family) String() string {
	switch f {
	case FamilyNothing:
		return "nothing"
	case FamilyNewLabel:
		return "newlabel"
	case FamilyMerge:
		return "merge"
	case FamilyKeep0:
		return "keep0"
	case FamilyKeep1:
		return "keep1"
	case FamilyChange0:
		return "change0"
	case FamilyChainCode:
		return "chaincode"
	default:
		return "unknown"
	}
}

// ErrUnknownAction indicates a token did not parse into any recognized
// action family.
var ErrUnknownAction = errors.New("ruleset: unrecognized action token")

// Action is a single symbolic action token, tagged by Family. Token always
// holds the original string exactly as it should reappear in emitted
// diagnostics and as the ODT tie-break key (spec.md §4.3 rule 2: "pick by
// deterministic tie-break: lexicographically smallest action name").
type Action struct {
	Family     Family
	Token      string
	Provenance []string // sorted pixel names, FamilyMerge only
}

// Nothing is the labeling no-op action.
var Nothing = Action{Family: FamilyNothing, Token: "nothing"}

// NewLabel is the labeling fresh-label action.
var NewLabel = Action{Family: FamilyNewLabel, Token: "newlabel"}

// Keep0, Keep1, Change0 are the three thinning actions.
var (
	Keep0   = Action{Family: FamilyKeep0, Token: "keep0"}
	Keep1   = Action{Family: FamilyKeep1, Token: "keep1"}
	Change0 = Action{Family: FamilyChange0, Token: "change0"}
)

// Merge builds a FamilyMerge action over the given (unsorted) pixel names,
// e.g. Merge("P2", "P3") produces the token "eP2+P3" in the original's
// string-prefix convention ("e" marks an equivalence/merge action), with
// Provenance held separately and sorted for deterministic comparison.
func Merge(pixelNames ...string) Action {
	prov := append([]string(nil), pixelNames...)
	sort.Strings(prov)

	return Action{Family: FamilyMerge, Token: "e" + strings.Join(prov, "+"), Provenance: prov}
}

// ChainCode wraps an opaque chaincode token verbatim (spec.md §3: "opaque
// tokens passed through").
func ChainCode(token string) Action {
	return Action{Family: FamilyChainCode, Token: token}
}

// ParseAction recovers an Action from its textual token, following the
// original's string-prefix convention (conact_code_generator.cpp,
// CreateAssignmentCode): "nothing", "newlabel", "keep0"/"keep1"/"change0"
// are recognized verbatim; any token beginning with "e" followed by a
// "+"-joined, non-empty list of pixel names is a merge action; anything
// else is treated as an opaque chaincode token (spec.md §3 says chaincode
// tokens are "opaque", so ParseAction never rejects an unrecognized token
// outright for that family — callers that expect labeling/thinning tokens
// should check Family explicitly).
func ParseAction(token string) (Action, error) {
	switch token {
	case "":
		return Action{}, fmt.Errorf("ruleset: empty action token: %w", ErrUnknownAction)
	case "nothing":
		return Nothing, nil
	case "newlabel":
		return NewLabel, nil
	case "keep0":
		return Keep0, nil
	case "keep1":
		return Keep1, nil
	case "change0":
		return Change0, nil
	}

	if strings.HasPrefix(token, "e") && len(token) > 1 {
		rest := token[1:]
		names := strings.Split(rest, "+")
		valid := true
		for _, n := range names {
			if n == "" {
				valid = false
				break
			}
		}
		if valid {
			return Merge(names...), nil
		}
	}

	return ChainCode(token), nil
}

// Actions is a non-empty set of acceptable actions for one rule-set
// configuration, held in the order they were added; Sorted gives the
// by-Token order (spec.md §3: "Multiple actions may legitimately
// satisfy one rule... the rule records the full set").
type Actions []Action

// Sorted returns a by-Token-ascending copy, the canonical order the ODT
// builder's tie-break (spec.md §4.3 rule 2) and the compressor's leaf-merge
// (spec.md §4.6 step 3) both rely on.
func (as Actions) Sorted() Actions {
	out := append(Actions(nil), as...)
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })

	return out
}

// First returns the lexicographically smallest action, the one
// dragnode.Eval takes from a leaf and the only one codegen.Emit ever renders
// (spec.md §4.7, "Note on multiple actions per leaf").
func (as Actions) First() Action {
	best := as[0]
	for _, a := range as[1:] {
		if a.Token < best.Token {
			best = a
		}
	}

	return best
}

// Tokens returns the sorted token list, used as the hash-cons strict-mode
// leaf key (spec.md §4.4).
func (as Actions) Tokens() []string {
	sorted := as.Sorted()
	out := make([]string, len(sorted))
	for i, a := range sorted {
		out[i] = a.Token
	}

	return out
}

// Intersect returns the actions present (by Token) in both sets, used by
// the compressor's optional leaf-merge (spec.md §4.6 step 3: "when two
// leaves have overlapping action sets... unify them to a leaf carrying the
// intersection").
func (as Actions) Intersect(other Actions) Actions {
	present := make(map[string]struct{}, len(other))
	for _, a := range other {
		present[a.Token] = struct{}{}
	}

	var out Actions
	for _, a := range as {
		if _, ok := present[a.Token]; ok {
			out = append(out, a)
		}
	}

	return out
}

// Contains reports whether token is among as.
func (as Actions) Contains(token string) bool {
	for _, a := range as {
		if a.Token == token {
			return true
		}
	}

	return false
}
