package fluid

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sph/parallel"
)

// Prime multipliers for the cell hash.
const (
	hashK1 uint32 = 15823
	hashK2 uint32 = 9737333
	hashK3 uint32 = 440817757
)

// noOffset marks a table slot with no particles.
const noOffset = ^uint32(0)

// SortStrategy selects how the spatial index orders particles by key.
type SortStrategy int

const (
	// SortBitonic pads to a power of two and runs the compare-exchange
	// network through the executor.
	SortBitonic SortStrategy = iota
	// SortStable uses a sequential stable sort.
	SortStable
)

// ParseSortStrategy maps "bitonic" or "stable" to a SortStrategy.
func ParseSortStrategy(s string) (SortStrategy, error) {
	switch s {
	case "bitonic", "":
		return SortBitonic, nil
	case "stable":
		return SortStable, nil
	}
	return 0, fmt.Errorf("%w: sort strategy %q", ErrInvalidParam, s)
}

func (s SortStrategy) String() string {
	if s == SortStable {
		return "stable"
	}
	return "bitonic"
}

// Entry pairs a particle index with its cell table key.
type Entry struct {
	Index uint32
	Key   uint32
}

// Cell is an integer grid coordinate.
type Cell [3]int32

// SpatialIndex buckets particles into grid cells of width cellSize and
// hashes each cell into a table of len(particles) slots.
//
// After Rebuild, Entries is sorted by key and Offsets[key] is the position
// of the first entry with that key, or noOffset.
type SpatialIndex struct {
	Entries []Entry
	Offsets []uint32

	dim       int
	cellSize  float32
	tableSize uint32
	count     int
	strategy  SortStrategy
}

// NewSpatialIndex creates an empty index using the given sort strategy.
func NewSpatialIndex(strategy SortStrategy) *SpatialIndex {
	return &SpatialIndex{strategy: strategy}
}

// Strategy returns the active sort strategy.
func (s *SpatialIndex) Strategy() SortStrategy { return s.strategy }

// CellSize returns the cell width used by the last Rebuild.
func (s *SpatialIndex) CellSize() float32 { return s.cellSize }

// Len returns the number of particles indexed by the last Rebuild.
func (s *SpatialIndex) Len() int { return s.count }

// CellOf returns the grid cell containing pos.
func (s *SpatialIndex) CellOf(pos mgl32.Vec3) Cell {
	inv := 1 / s.cellSize
	c := Cell{
		int32(math.Floor(float64(pos[0] * inv))),
		int32(math.Floor(float64(pos[1] * inv))),
	}
	if s.dim == 3 {
		c[2] = int32(math.Floor(float64(pos[2] * inv)))
	}
	return c
}

// HashCell mixes a cell coordinate into an unbounded 32-bit hash.
func HashCell(c Cell) uint32 {
	return uint32(c[0])*hashK1 + uint32(c[1])*hashK2 + uint32(c[2])*hashK3
}

// KeyOf reduces a cell hash into the table.
func (s *SpatialIndex) KeyOf(c Cell) uint32 {
	return HashCell(c) % s.tableSize
}

// Rebuild re-buckets positions using cells of width cellSize.
func (s *SpatialIndex) Rebuild(positions []mgl32.Vec3, cellSize float32, dim int, exec parallel.Executor) {
	n := len(positions)
	s.dim = dim
	s.cellSize = cellSize
	s.count = n
	s.tableSize = uint32(max(n, 1))

	size := n
	if s.strategy == SortBitonic {
		size = nextPow2(n)
	}
	s.Entries = slices.Grow(s.Entries[:0], size)[:size]
	s.Offsets = slices.Grow(s.Offsets[:0], int(s.tableSize))[:s.tableSize]

	entries := s.Entries
	exec.For(size, func(start, end int) {
		for i := start; i < end; i++ {
			if i >= n {
				entries[i] = Entry{Index: uint32(i), Key: sentinelKey}
				continue
			}
			entries[i] = Entry{Index: uint32(i), Key: s.KeyOf(s.CellOf(positions[i]))}
		}
	})

	if s.strategy == SortBitonic {
		bitonicSort(entries, exec)
		s.Entries = entries[:n]
	} else {
		slices.SortStableFunc(entries, func(a, b Entry) int {
			return cmp.Compare(a.Key, b.Key)
		})
	}

	offsets := s.Offsets
	exec.For(len(offsets), func(start, end int) {
		for i := start; i < end; i++ {
			offsets[i] = noOffset
		}
	})
	// Each key has exactly one run start, so these writes never collide.
	sorted := s.Entries
	exec.For(n, func(start, end int) {
		for i := start; i < end; i++ {
			if i == 0 || sorted[i].Key != sorted[i-1].Key {
				offsets[sorted[i].Key] = uint32(i)
			}
		}
	})
}

// Bucket returns the sorted entries whose key equals key. Entries may belong
// to different cells that alias to the same key.
func (s *SpatialIndex) Bucket(key uint32) []Entry {
	if key >= uint32(len(s.Offsets)) {
		return nil
	}
	start := s.Offsets[key]
	if start == noOffset {
		return nil
	}
	end := int(start) + 1
	for end < len(s.Entries) && s.Entries[end].Key == key {
		end++
	}
	return s.Entries[start:end]
}

// NeighborKeys writes the distinct table keys of the 3x3 (2D) or 3x3x3 (3D)
// block of cells around pos into buf and returns the filled prefix.
// Keys that repeat because of hash aliasing are reported once, so a bucket is
// never scanned twice for the same query.
func (s *SpatialIndex) NeighborKeys(pos mgl32.Vec3, buf *[27]uint32) []uint32 {
	if s.count == 0 {
		return buf[:0]
	}
	center := s.CellOf(pos)
	zr := int32(0)
	if s.dim == 3 {
		zr = 1
	}
	out := buf[:0]
	for dz := -zr; dz <= zr; dz++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dx := int32(-1); dx <= 1; dx++ {
				key := s.KeyOf(Cell{center[0] + dx, center[1] + dy, center[2] + dz})
				if !slices.Contains(out, key) {
					out = append(out, key)
				}
			}
		}
	}
	return out
}

// QueryRadiusInto appends to dst the indices of every position within radius
// of pos, including a particle located exactly at pos. radius must not exceed
// the cell size used for the last Rebuild.
func (s *SpatialIndex) QueryRadiusInto(dst []uint32, pos mgl32.Vec3, positions []mgl32.Vec3, radius float32) []uint32 {
	var keys [27]uint32
	rSq := radius * radius
	for _, key := range s.NeighborKeys(pos, &keys) {
		for _, e := range s.Bucket(key) {
			if positions[e.Index].Sub(pos).LenSqr() <= rSq {
				dst = append(dst, e.Index)
			}
		}
	}
	return dst
}
