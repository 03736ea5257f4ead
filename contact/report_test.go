package contact

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReport(t *testing.T) {
	_, _, d := diffFixture(t)
	params := ReportParams{Threshold: 0.35, FilterMode: "any"}
	rep := NewReport(d, "confA", "confB", params)

	assert.NotEmpty(t, rep.ID)
	assert.Equal(t, "confA", rep.StructureA)
	assert.Equal(t, "confB", rep.StructureB)
	assert.Equal(t, 1, rep.NumShared)
	assert.Equal(t, 0, rep.NumOnlyInA)
	assert.Equal(t, 1, rep.NumOnlyInB)

	require.Len(t, rep.Shared, 1)
	assert.Equal(t, "LYS1", rep.Shared[0].ResidueA)
	assert.Equal(t, "HIS2", rep.Shared[0].ResidueB)
	require.NotNil(t, rep.Shared[0].DistA)
	require.NotNil(t, rep.Shared[0].DistB)

	require.Len(t, rep.OnlyInB, 1)
	assert.Equal(t, "LYS1", rep.OnlyInB[0].ResidueA)
	assert.Equal(t, "GLY3", rep.OnlyInB[0].ResidueB)
	assert.Nil(t, rep.OnlyInB[0].DistA)
	require.NotNil(t, rep.OnlyInB[0].DistB)
	assert.InDelta(t, 0.20, *rep.OnlyInB[0].DistB, 1e-12)

	data, err := rep.JSON()
	require.NoError(t, err)
	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, rep.ID, decoded.ID)
	assert.Equal(t, rep.Params, decoded.Params)
}
