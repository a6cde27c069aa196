package compress_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphgen-dev/graphgen/compress"
	"github.com/graphgen-dev/graphgen/dragnode"
	"github.com/graphgen-dev/graphgen/progress"
	"github.com/graphgen-dev/graphgen/ruleset"
)

func TestCompress_MergesIdenticalCopies(t *testing.T) {
	d := dragnode.New()
	var roots []dragnode.NodeID
	for i := 0; i < 3; i++ {
		f := d.NewLeaf(ruleset.Actions{ruleset.Nothing}, -1)
		tr := d.NewLeaf(ruleset.Actions{ruleset.NewLabel}, -1)
		roots = append(roots, d.NewCondition("P1", f, tr))
	}

	res, err := compress.Compress(d, roots, compress.Strict, progress.NoopSink{})
	require.NoError(t, err)

	assert.Equal(t, res.Roots[0], res.Roots[1])
	assert.Equal(t, res.Roots[1], res.Roots[2])
	assert.Equal(t, 1, res.Stats.Nodes())
	assert.Equal(t, 2, res.Stats.Leaves())
}

func TestCompress_MergesOverlappingLeaves(t *testing.T) {
	d := dragnode.New()
	a := d.NewLeaf(ruleset.Actions{ruleset.NewLabel, ruleset.Nothing}, -1)
	b := d.NewLeaf(ruleset.Actions{ruleset.Nothing}, -1)
	root := d.NewCondition("P1", a, b)

	res, err := compress.Compress(d, []dragnode.NodeID{root}, compress.Strict, progress.NoopSink{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.Leaves())
}

func TestCompress_RejectsEmptyRoots(t *testing.T) {
	d := dragnode.New()
	_, err := compress.Compress(d, nil, compress.Strict, progress.NoopSink{})
	assert.ErrorIs(t, err, compress.ErrNoRoots)
}

type countingSink struct{ reports int }

func (c *countingSink) Report(progress.Report) { c.reports++ }

func TestCompress_ReportsAtLeastOncePerRun(t *testing.T) {
	d := dragnode.New()
	leaf := d.NewLeaf(ruleset.Actions{ruleset.Nothing}, -1)
	root := d.NewCondition("P1", leaf, leaf)

	sink := &countingSink{}
	_, err := compress.Compress(d, []dragnode.NodeID{root}, compress.Strict, sink)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, sink.reports, 1)
}
