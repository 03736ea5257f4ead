package contact

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func testRes(chain byte, seq int, name string, atoms ...r3.Vec) Residue {
	return Residue{
		ID:    ResID{Chain: chain, SeqNum: seq},
		Name:  name,
		Atoms: atoms,
	}
}

func vec(x, y, z float64) r3.Vec {
	return r3.Vec{X: x, Y: y, Z: z}
}

func rid(seq int) ResID {
	return ResID{Chain: 'A', SeqNum: seq}
}

func pairOf(i, j int) Pair {
	return NewPair(rid(i), rid(j))
}

// structureA and structureB reproduce the two conformations used throughout
// these tests: in A, residues (1,2) sit at 0.30 nm and (2,3) at 0.50 nm;
// in B, (1,2) sit at 0.30 nm and (1,3) at 0.20 nm.
func structureA() *Structure {
	return &Structure{
		Name: "confA",
		Residues: []Residue{
			testRes('A', 1, "LYS", vec(0, 0, 0)),
			testRes('A', 2, "HIS", vec(0.30, 0, 0)),
			testRes('A', 3, "GLY", vec(0.80, 0, 0)),
		},
	}
}

func structureB() *Structure {
	return &Structure{
		Name: "confB",
		Residues: []Residue{
			testRes('A', 1, "LYS", vec(0, 0, 0)),
			testRes('A', 2, "HIS", vec(0.30, 0, 0)),
			testRes('A', 3, "GLY", vec(0, 0.20, 0)),
		},
	}
}

func detectT(t *testing.T, s *Structure, opts Options) Set {
	t.Helper()
	set, err := Detect(s, opts)
	require.NoError(t, err)
	return set
}

func TestDetectScenario(t *testing.T) {
	opts := Options{Threshold: 0.35}

	setA := detectT(t, structureA(), opts)
	require.Equal(t, 1, setA.Len())
	assert.True(t, setA.Has(pairOf(1, 2)))
	assert.InDelta(t, 0.30, setA.Contacts[pairOf(1, 2)], 1e-12)

	setB := detectT(t, structureB(), opts)
	require.Equal(t, 2, setB.Len())
	assert.True(t, setB.Has(pairOf(1, 2)))
	assert.True(t, setB.Has(pairOf(1, 3)))
	assert.InDelta(t, 0.20, setB.Contacts[pairOf(1, 3)], 1e-12)
}

func TestDetectBoundaryInclusive(t *testing.T) {
	// A pair at exactly the cutoff is a contact.
	s := &Structure{
		Name: "boundary",
		Residues: []Residue{
			testRes('A', 1, "ALA", vec(0, 0, 0)),
			testRes('A', 2, "GLY", vec(0.35, 0, 0)),
		},
	}
	set := detectT(t, s, Options{Threshold: 0.35})
	require.Equal(t, 1, set.Len())
	assert.True(t, set.Has(pairOf(1, 2)))
}

func TestDetectNoSelfContactsAndDistancesWithinThreshold(t *testing.T) {
	s := randomStructure(30, 4, 1)
	const threshold = 0.5
	set := detectT(t, s, Options{Threshold: threshold})
	for pair, dist := range set.Contacts {
		assert.NotEqual(t, pair.A, pair.B)
		assert.LessOrEqual(t, dist, threshold)
	}
}

func TestDetectMonotonicInThreshold(t *testing.T) {
	s := randomStructure(40, 3, 2)
	small := detectT(t, s, Options{Threshold: 0.3})
	large := detectT(t, s, Options{Threshold: 0.6})
	for pair := range small.Contacts {
		assert.True(t, large.Has(pair), "contact %s lost at larger threshold", pair)
	}
	assert.GreaterOrEqual(t, large.Len(), small.Len())
}

func TestDetectExclusionWindow(t *testing.T) {
	s := &Structure{
		Name: "chain",
		Residues: []Residue{
			testRes('A', 1, "ALA", vec(0, 0, 0)),
			testRes('A', 2, "GLY", vec(0.1, 0, 0)),
			testRes('A', 3, "SER", vec(0.2, 0, 0)),
			// Close in space but on another chain: never excluded.
			{ID: ResID{Chain: 'B', SeqNum: 2}, Name: "VAL", Atoms: []r3.Vec{vec(0.05, 0, 0)}},
		},
	}

	all := detectT(t, s, Options{Threshold: 0.35})
	assert.True(t, all.Has(pairOf(1, 2)))
	assert.True(t, all.Has(pairOf(2, 3)))

	windowed := detectT(t, s, Options{Threshold: 0.35, ExclusionWindow: 1})
	assert.False(t, windowed.Has(pairOf(1, 2)))
	assert.False(t, windowed.Has(pairOf(2, 3)))
	assert.True(t, windowed.Has(pairOf(1, 3)), "window 1 must keep |i-j| == 2")
	assert.True(t, windowed.Has(NewPair(rid(2), ResID{Chain: 'B', SeqNum: 2})),
		"cross-chain pairs are never sequence neighbors")
}

func TestDetectInvalidInput(t *testing.T) {
	s := structureA()
	for _, threshold := range []float64{0, -0.35} {
		_, err := Detect(s, Options{Threshold: threshold})
		assert.ErrorIs(t, err, ErrInvalidInput)
	}

	_, err := Detect(s, Options{Threshold: 0.35, ExclusionWindow: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Detect(&Structure{Name: "empty"}, Options{Threshold: 0.35})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Detect(nil, Options{Threshold: 0.35})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// TestDetectMatchesBruteForce is the differential check: the pruned,
// parallel detector must reproduce the exhaustive scan exactly, for any
// threshold and worker count.
func TestDetectMatchesBruteForce(t *testing.T) {
	s := randomStructure(50, 5, 3)
	for _, threshold := range []float64{0.05, 0.2, 0.35, 0.8, 2.0} {
		for _, workers := range []int{1, 3, 8} {
			opts := Options{Threshold: threshold, Workers: workers}
			got := detectT(t, s, opts)
			want := detectBrute(s, opts)
			require.Equal(t, want.Contacts, got.Contacts,
				"threshold=%v workers=%d", threshold, workers)
		}
	}
}

// randomStructure builds a structure of n residues with `atoms` atoms each,
// scattered in a 2 nm box with a fixed seed.
func randomStructure(n, atoms int, seed int64) *Structure {
	rng := rand.New(rand.NewSource(seed))
	s := &Structure{Name: "random"}
	for i := 1; i <= n; i++ {
		center := vec(rng.Float64()*2, rng.Float64()*2, rng.Float64()*2)
		res := testRes('A', i, "ALA")
		for a := 0; a < atoms; a++ {
			res.Atoms = append(res.Atoms, r3.Add(center,
				vec(rng.Float64()*0.1, rng.Float64()*0.1, rng.Float64()*0.1)))
		}
		s.Residues = append(s.Residues, res)
	}
	return s
}
