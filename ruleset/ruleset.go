package ruleset

import (
	"fmt"

	"github.com/graphgen-dev/graphgen/pixel"
)

// RuleSet is the mapping from a k-bit configuration index to the non-empty
// set of acceptable actions for that configuration (spec.md §3, §4.1). The
// index bit-layout is part of the contract: bit 0 is the first condition
// (pixel set order, then extra conditions in append order).
type RuleSet struct {
	ps         *pixel.PixelSet
	extra      []string
	conditions []string // pixel names ++ extra, in bit order
	catalog    []string
	rules      []Actions // len == 1<<k
}

// Conditions returns all condition names (pixels then extra) in bit order.
func (rs *RuleSet) Conditions() []string { return append([]string(nil), rs.conditions...) }

// PixelSet returns the mask this RuleSet was built over.
func (rs *RuleSet) PixelSet() *pixel.PixelSet { return rs.ps }

// K returns the number of conditions (mask pixels plus extra conditions).
func (rs *RuleSet) K() int { return len(rs.conditions) }

// NumConfigurations returns 2^k.
func (rs *RuleSet) NumConfigurations() int { return len(rs.rules) }

// ActionCatalog returns the declared action vocabulary, in catalog order.
func (rs *RuleSet) ActionCatalog() []string { return append([]string(nil), rs.catalog...) }

// Actions returns the acceptable action set for configuration index config
// (0 <= config < NumConfigurations()).
func (rs *RuleSet) Actions(config uint64) Actions { return rs.rules[config] }

// ConditionIndex returns the bit position of the named condition.
func (rs *RuleSet) ConditionIndex(name string) (int, bool) {
	for i, c := range rs.conditions {
		if c == name {
			return i, true
		}
	}

	return 0, false
}

// Bit extracts the named condition's boolean value out of a configuration
// index.
func (rs *RuleSet) Bit(config uint64, name string) bool {
	i, ok := rs.ConditionIndex(name)
	if !ok {
		return false
	}

	return config&(1<<uint(i)) != 0
}

// RuleGeneratorFunc computes the acceptable action(s) for one configuration
// by calling methods on the supplied RuleBuilder (the Go analogue of the
// original's rule_wrapper: r["P1"] bit access, r << "action" append).
type RuleGeneratorFunc func(r *RuleBuilder)

// RuleBuilder exposes one configuration's bits and accumulates the actions
// a RuleGeneratorFunc declares acceptable for it.
type RuleBuilder struct {
	rs      *RuleSet
	config  uint64
	actions Actions
}

// Bit returns the named condition's value (0 or 1) for this configuration,
// mirroring the original's `int P1 = r["P1"];` idiom.
func (r *RuleBuilder) Bit(name string) int {
	if r.rs.Bit(r.config, name) {
		return 1
	}

	return 0
}

// Config returns the raw configuration index being decided.
func (r *RuleBuilder) Config() uint64 { return r.config }

// Add records an additional acceptable action, parsed from its textual
// token (the original's `r << "keep1"`).
func (r *RuleBuilder) Add(token string) {
	a, err := ParseAction(token)
	if err != nil {
		// ParseAction only errors on the empty string; generators that pass
		// a non-empty literal never hit this. Fall back to chaincode so a
		// programmer typo still surfaces as an unsatisfiable/odd action
		// rather than a silent panic.
		a = ChainCode(token)
	}
	r.actions = append(r.actions, a)
}

// AddAction records an already-built Action directly, useful when the
// caller already holds a ruleset.Merge(...)/ruleset.ChainCode(...) value.
func (r *RuleBuilder) AddAction(a Action) {
	r.actions = append(r.actions, a)
}

// New constructs a RuleSet from a mask, optional extra (non-pixel)
// condition names (spec.md §4.1: "Conditions may include non-pixel
// discriminators (e.g. iter in thinning), treated as additional bits
// concatenated to the mask bits"), an action catalog, and a per-
// configuration generator.
//
// New enumerates all 2^k configurations (k = ps.Len() + len(extra)) in bit
// order and calls gen once per configuration. If gen leaves the action set
// empty for any configuration, New returns ErrUnsatisfiableRule naming the
// offending configuration index.
func New(ps *pixel.PixelSet, extra []string, catalog []string, gen RuleGeneratorFunc) (*RuleSet, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyActionCatalog
	}

	conditions := append([]string(nil), ps.Names()...)
	seen := make(map[string]struct{}, len(conditions))
	for _, c := range conditions {
		seen[c] = struct{}{}
	}
	for _, e := range extra {
		if _, dup := seen[e]; dup {
			return nil, fmt.Errorf("ruleset: extra condition %q: %w", e, ErrDuplicateCondition)
		}
		seen[e] = struct{}{}
		conditions = append(conditions, e)
	}

	k := len(conditions)
	if k >= 64 {
		return nil, fmt.Errorf("ruleset: k=%d: %w", k, ErrTooManyConditions)
	}

	rs := &RuleSet{
		ps:         ps,
		extra:      append([]string(nil), extra...),
		conditions: conditions,
		catalog:    append([]string(nil), catalog...),
		rules:      make([]Actions, 1<<uint(k)),
	}

	n := uint64(1) << uint(k)
	for config := uint64(0); config < n; config++ {
		rb := &RuleBuilder{rs: rs, config: config}
		gen(rb)
		if len(rb.actions) == 0 {
			return nil, fmt.Errorf("ruleset: configuration %d: %w", config, ErrUnsatisfiableRule)
		}
		rs.rules[config] = rb.actions
	}

	return rs, nil
}

// NewFromTable constructs a RuleSet directly from a precomputed table (one
// entry per configuration, in bit order), the alternative construction
// path spec.md §4.1 and §6 both allow ("a PixelSet... and either an action
// catalog plus a per-configuration rule generator... or a programmatic
// API"). Every row must be non-empty.
func NewFromTable(ps *pixel.PixelSet, extra []string, catalog []string, table []Actions) (*RuleSet, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyActionCatalog
	}

	k := ps.Len() + len(extra)
	want := 1 << uint(k)
	if len(table) != want {
		return nil, fmt.Errorf("ruleset: table has %d rows, want %d", len(table), want)
	}
	for i, row := range table {
		if len(row) == 0 {
			return nil, fmt.Errorf("ruleset: configuration %d: %w", i, ErrUnsatisfiableRule)
		}
	}

	conditions := append([]string(nil), ps.Names()...)
	conditions = append(conditions, extra...)

	rs := &RuleSet{
		ps:         ps,
		extra:      append([]string(nil), extra...),
		conditions: conditions,
		catalog:    append([]string(nil), catalog...),
		rules:      append([]Actions(nil), table...),
	}

	return rs, nil
}
