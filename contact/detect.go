package contact

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultThreshold is the contact cutoff used when none is configured,
// in nanometers.
const DefaultThreshold = 0.35

// Options configures contact detection.
type Options struct {
	// Threshold is the contact cutoff in nanometers. A residue pair is a
	// contact when the minimum distance over its atom pairs is <= Threshold.
	// Must be positive.
	Threshold float64

	// ExclusionWindow skips residue pairs on the same chain whose sequence
	// numbers differ by at most this many positions. 0 excludes nothing;
	// 1 excludes bonded neighbors, and so on.
	ExclusionWindow int

	// Workers bounds the number of goroutines scanning residue pairs.
	// Zero means one per CPU. The result is identical for any worker count.
	Workers int
}

// DefaultOptions returns detection options with the default cutoff, no
// exclusion window and one worker per CPU.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold}
}

// Detect computes the contact Set of a structure: every unordered pair of
// distinct residues whose minimum inter-atomic distance is within the
// threshold, with the observed minimum distance attached. Pairs at exactly
// the threshold are contacts.
//
// The residue pairs inside the exclusion window never appear in the result.
// Detection fails with ErrInvalidInput when the threshold is not positive
// or the structure owns no atoms.
func Detect(s *Structure, opts Options) (Set, error) {
	if !(opts.Threshold > 0) {
		return Set{}, fmt.Errorf(
			"%w: threshold must be positive, got %v",
			ErrInvalidInput, opts.Threshold)
	}
	if opts.ExclusionWindow < 0 {
		return Set{}, fmt.Errorf(
			"%w: exclusion window must be non-negative, got %d",
			ErrInvalidInput, opts.ExclusionWindow)
	}
	if s == nil || s.NumAtoms() == 0 {
		return Set{}, fmt.Errorf("%w: structure has no atoms", ErrInvalidInput)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(s.Residues) {
		workers = len(s.Residues)
	}

	bounds := boundingSpheres(s.Residues)

	// Fan residue rows out to workers; each worker scans the pairs (i, j)
	// with j > i for its rows. Membership does not depend on which worker
	// finds a contact, so the merged result is deterministic.
	rows := make(chan int, workers*2)
	partials := make(chan map[Pair]float64, workers)
	wg := &sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			found := make(map[Pair]float64)
			for i := range rows {
				scanRow(s.Residues, bounds, i, opts, found)
			}
			partials <- found
		}()
	}
	for i := range s.Residues {
		rows <- i
	}
	close(rows)
	wg.Wait()
	close(partials)

	set := NewSet()
	mergeLabels(set.Labels, s.labels())
	for partial := range partials {
		for pair, dist := range partial {
			set.Contacts[pair] = dist
		}
	}
	return set, nil
}

// detectBrute is the exhaustive reference detector: no bounding-sphere
// pruning, no concurrency. The pruned detector must agree with it exactly
// for any threshold; the differential test in detect_test.go enforces that.
func detectBrute(s *Structure, opts Options) Set {
	set := NewSet()
	mergeLabels(set.Labels, s.labels())
	for i := range s.Residues {
		for j := i + 1; j < len(s.Residues); j++ {
			ri, rj := s.Residues[i], s.Residues[j]
			if excluded(ri.ID, rj.ID, opts.ExclusionWindow) {
				continue
			}
			minSq := minAtomDistSq(ri.Atoms, rj.Atoms)
			if minSq <= opts.Threshold*opts.Threshold {
				set.Contacts[NewPair(ri.ID, rj.ID)] = math.Sqrt(minSq)
			}
		}
	}
	return set
}

// scanRow finds all contacts between residue i and residues j > i, writing
// them into found.
func scanRow(residues []Residue, bounds []sphere, i int, opts Options, found map[Pair]float64) {
	ri := residues[i]
	if len(ri.Atoms) == 0 {
		return
	}
	threshSq := opts.Threshold * opts.Threshold
	for j := i + 1; j < len(residues); j++ {
		rj := residues[j]
		if len(rj.Atoms) == 0 {
			continue
		}
		if excluded(ri.ID, rj.ID, opts.ExclusionWindow) {
			continue
		}
		// Two residues cannot be in contact when their bounding spheres are
		// farther apart than the threshold. The test is conservative, so
		// pruning never changes contact membership.
		gap := r3.Norm(r3.Sub(bounds[i].center, bounds[j].center)) -
			bounds[i].radius - bounds[j].radius
		if gap > opts.Threshold {
			continue
		}
		minSq := minAtomDistSq(ri.Atoms, rj.Atoms)
		if minSq <= threshSq {
			found[NewPair(ri.ID, rj.ID)] = math.Sqrt(minSq)
		}
	}
}

// excluded reports whether a residue pair falls inside the sequence
// exclusion window: same chain and sequence numbers within the window.
func excluded(a, b ResID, window int) bool {
	if window == 0 || a.Chain != b.Chain {
		return false
	}
	d := a.SeqNum - b.SeqNum
	if d < 0 {
		d = -d
	}
	return d <= window
}

// minAtomDistSq returns the squared minimum distance over all atom pairs.
// Comparisons against the threshold are done on squared distances so that
// a pair at exactly the threshold is classified without rounding through
// a square root.
func minAtomDistSq(a, b []r3.Vec) float64 {
	min := math.Inf(1)
	for _, pa := range a {
		for _, pb := range b {
			if d := r3.Norm2(r3.Sub(pa, pb)); d < min {
				min = d
			}
		}
	}
	return min
}

// sphere is a residue bounding sphere: the atom centroid and the distance
// from it to the farthest atom.
type sphere struct {
	center r3.Vec
	radius float64
}

func boundingSpheres(residues []Residue) []sphere {
	bounds := make([]sphere, len(residues))
	for i, res := range residues {
		if len(res.Atoms) == 0 {
			continue
		}
		var sum r3.Vec
		for _, p := range res.Atoms {
			sum = r3.Add(sum, p)
		}
		center := r3.Scale(1/float64(len(res.Atoms)), sum)
		radius := 0.0
		for _, p := range res.Atoms {
			if d := r3.Norm(r3.Sub(p, center)); d > radius {
				radius = d
			}
		}
		bounds[i] = sphere{center, radius}
	}
	return bounds
}
