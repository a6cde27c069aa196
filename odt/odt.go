package odt

import (
	"strconv"
	"strings"

	"github.com/graphgen-dev/graphgen/dragnode"
	"github.com/graphgen-dev/graphgen/ruleset"
)

// Options configures Build. The zero value is the default: every
// condition costs 1 to branch on, and ties are broken by ascending
// condition index.
type Options struct {
	weights map[string]int
}

// Option mutates Options. Following the teacher's functional-option
// convention (see builder.WithXxx), an Option that receives a malformed
// argument panics at construction time rather than returning an error,
// since option values are supplied by the calling program, not untrusted
// input.
type Option func(*Options)

// WithWeights assigns a per-condition branch cost (default 1 for any
// condition absent from weights), letting a caller bias the search away
// from expensive-to-evaluate conditions (e.g. a pixel requiring an
// extra row fetch): a branch on a condition adds its weight, rather than
// 1, to the expected cost the search minimizes.
// WithWeights panics if any weight is non-positive.
func WithWeights(weights map[string]int) Option {
	for cond, w := range weights {
		if w <= 0 {
			panic("odt: WithWeights: non-positive weight for condition " + cond)
		}
	}

	return func(o *Options) {
		o.weights = weights
	}
}

// engine holds all search state for one Build call (the teacher's
// dedicated-engine-struct convention from tsp.bbEngine: explicit
// dependencies, no closures capturing mutable state).
type engine struct {
	rs      *ruleset.RuleSet
	drag    *dragnode.Drag
	weights map[string]int
	memo    map[string]memoEntry
}

type memoEntry struct {
	node dragnode.NodeID
	cost float64
}

func (e *engine) weight(cond string) int {
	if w, ok := e.weights[cond]; ok {
		return w
	}

	return 1
}

// Build constructs the Optimal Decision Tree for rs: a single rooted tree
// (no sharing yet — that is hashcons/compress's job downstream) whose
// leaves are labeled with the intersection of every configuration's
// acceptable action set at that leaf, and whose expected number of
// condition evaluations under the uniform distribution over surviving
// configurations is minimal among all condition orderings (spec.md §4.3
// rule 3: a branch's cost is weight(cond) plus its children's costs
// weighted by surviving-subset size, a leaf costs 0), breaking ties by
// the deterministic rule "prefer the condition with the smaller index"
// (rule 2's corollary: a fixed, reproducible order whenever costs tie),
// then "pick by lexicographically smallest action name" at the leaf
// level (delegated to ruleset.Actions.First, used by codegen and Eval,
// not stored on the node itself — the node keeps the full intersection
// so compress can still narrow further).
//
// Build returns ErrEmptyRuleSet if rs.K() == 0, and ErrInconsistentRuleSet
// if some configuration subset disagrees on every action after every
// condition has been exhausted.
func Build(rs *ruleset.RuleSet, opts ...Option) (*dragnode.Drag, dragnode.NodeID, error) {
	if rs.K() == 0 {
		return nil, 0, ErrEmptyRuleSet
	}

	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}

	e := &engine{
		rs:      rs,
		drag:    dragnode.New(),
		weights: o.weights,
		memo:    make(map[string]memoEntry),
	}

	all := make([]int, rs.NumConfigurations())
	for i := range all {
		all[i] = i
	}
	fullMask := uint64(1)<<uint(rs.K()) - 1

	node, _, err := e.build(fullMask, all)
	if err != nil {
		return nil, 0, err
	}
	e.drag.AddRoot(node)

	return e.drag, node, nil
}

// build returns the subtree deciding configs using only the conditions
// still set in remaining, and its expected number of condition
// evaluations under the uniform distribution over configs (spec.md §4.3
// rule 3): a leaf costs 0 (no further condition to test), and a branch
// costs weight(cond) plus the surviving-subset-size-weighted average of
// its children's costs.
func (e *engine) build(remaining uint64, configs []int) (dragnode.NodeID, float64, error) {
	key := memoKey(remaining, configs)
	if hit, ok := e.memo[key]; ok {
		return hit.node, hit.cost, nil
	}

	if common := e.commonActions(configs); len(common) > 0 {
		leaf := e.drag.NewLeaf(common.Sorted(), -1)
		e.memo[key] = memoEntry{node: leaf, cost: 0}

		return leaf, 0, nil
	}

	if remaining == 0 {
		return 0, 0, ErrInconsistentRuleSet
	}

	best := struct {
		found bool
		cond  string
		node  dragnode.NodeID
		cost  float64
	}{}

	conditions := e.rs.Conditions()
	for i, cond := range conditions {
		bit := uint64(1) << uint(i)
		if remaining&bit == 0 {
			continue
		}

		var falseCfgs, trueCfgs []int
		for _, c := range configs {
			if e.rs.Bit(uint64(c), cond) {
				trueCfgs = append(trueCfgs, c)
			} else {
				falseCfgs = append(falseCfgs, c)
			}
		}
		// A condition every surviving config agrees on (all true or all
		// false) can never split the set; skip it rather than recursing
		// into an identical subproblem with one fewer remaining bit and
		// the same configs, which would just waste a branch node.
		if len(falseCfgs) == 0 || len(trueCfgs) == 0 {
			continue
		}

		nextRemaining := remaining &^ bit
		leftNode, leftCost, err := e.build(nextRemaining, falseCfgs)
		if err != nil {
			continue
		}
		rightNode, rightCost, err := e.build(nextRemaining, trueCfgs)
		if err != nil {
			continue
		}

		cost := float64(e.weight(cond)) +
			(float64(len(falseCfgs))*leftCost+float64(len(trueCfgs))*rightCost)/float64(len(configs))
		if !best.found || cost < best.cost {
			best.found = true
			best.cond = cond
			best.cost = cost
			best.node = e.drag.NewCondition(cond, leftNode, rightNode)
		}
	}

	if !best.found {
		return 0, 0, ErrInconsistentRuleSet
	}

	e.memo[key] = memoEntry{node: best.node, cost: best.cost}

	return best.node, best.cost, nil
}

// commonActions returns the intersection of every config's action set,
// empty if configs is empty or the configs disagree entirely.
func (e *engine) commonActions(configs []int) ruleset.Actions {
	if len(configs) == 0 {
		return nil
	}

	common := e.rs.Actions(uint64(configs[0]))
	for _, c := range configs[1:] {
		common = common.Intersect(e.rs.Actions(uint64(c)))
		if len(common) == 0 {
			return nil
		}
	}

	return common
}

// memoKey canonicalizes (remaining, configs) into a comparable string.
// configs is assumed already in ascending order, which build maintains by
// construction (it only ever filters a parent's already-sorted slice).
func memoKey(remaining uint64, configs []int) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(remaining, 16))
	sb.WriteByte('|')
	for i, c := range configs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(c))
	}

	return sb.String()
}
