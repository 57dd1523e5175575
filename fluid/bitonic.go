package fluid

import (
	"math/bits"

	"github.com/pthm-cable/sph/parallel"
)

// sentinelKey sorts after every real table key; padding entries carry it.
const sentinelKey = ^uint32(0)

// nextPow2 returns the smallest power of two >= n (1 for n <= 1).
func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// less orders entries by key, then by particle index, which makes the
// network's output identical to a stable sort of an index-ordered input.
func (e Entry) less(o Entry) bool {
	if e.Key != o.Key {
		return e.Key < o.Key
	}
	return e.Index < o.Index
}

// bitonicSort sorts entries in place. len(entries) must be a power of two.
//
// Each (dim, block) stage is a compare-exchange over pairs (i, i^block);
// a pair is owned by its lower index so writes within a stage are disjoint
// and every stage can be split across workers.
func bitonicSort(entries []Entry, exec parallel.Executor) {
	n := len(entries)
	for dim := 2; dim <= n; dim <<= 1 {
		for block := dim >> 1; block > 0; block >>= 1 {
			bitonicStage(entries, dim, block, exec)
		}
	}
}

func bitonicStage(entries []Entry, dim, block int, exec parallel.Executor) {
	exec.For(len(entries), func(start, end int) {
		for i := start; i < end; i++ {
			j := i ^ block
			if j <= i {
				continue
			}
			ascending := i&dim == 0
			if entries[j].less(entries[i]) == ascending {
				entries[i], entries[j] = entries[j], entries[i]
			}
		}
	})
}
