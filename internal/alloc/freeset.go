// Package alloc carves variable-length sub-blocks out of a network's
// address space. Each FreeSet owns the free blocks of exactly one network;
// callers hold value copies of the blocks they are given, never aliases
// into the set.
package alloc

import (
	"errors"
	"sort"

	"github.com/Flarenzy/ipam-ledger/internal/cidrmath"
)

var ErrInsufficientSpace = errors.New("insufficient free space")

// FreeSet is the owned free-space collection for one network.
//
// Take prefers the tightest fitting free block and splits buddy-style, so
// large free ranges survive small requests. Release returns blocks verbatim
// and never merges adjacent buddies back together; two freed sibling /26s
// cannot satisfy a later /25 request within the same process lifetime.
type FreeSet struct {
	blocks []cidrmath.Block
}

// New returns a FreeSet holding the network's entire space as one block.
func New(root cidrmath.Block) *FreeSet {
	return &FreeSet{blocks: []cidrmath.Block{root}}
}

// Rebuild derives the free space of root minus the given allocations by
// recursive buddy decomposition. The result is the minimal decomposition of
// the unallocated space, which may be more consolidated than an
// incrementally maintained set was before a restart.
func Rebuild(root cidrmath.Block, taken []cidrmath.Block) *FreeSet {
	s := &FreeSet{}
	s.blocks = appendFree(s.blocks, root, taken)
	return s
}

func appendFree(free []cidrmath.Block, b cidrmath.Block, taken []cidrmath.Block) []cidrmath.Block {
	overlapping := taken[:0:0]
	for _, t := range taken {
		if b.Overlaps(t) {
			if t.Contains(b) {
				return free
			}
			overlapping = append(overlapping, t)
		}
	}
	if len(overlapping) == 0 {
		return append(free, b)
	}
	lo, hi, err := b.Halves()
	if err != nil {
		// b is a /32 overlapped only by blocks it contains, i.e. itself.
		return free
	}
	free = appendFree(free, lo, overlapping)
	return appendFree(free, hi, overlapping)
}

// Take removes and returns a block of exactly the requested prefix length.
// Among free blocks large enough it picks the one with the numerically
// largest prefix (tightest fit), breaking ties on the lowest base address,
// then splits one level at a time, returning the upper sibling of every
// split to the set.
func (s *FreeSet) Take(bits int) (cidrmath.Block, error) {
	best := -1
	for i, b := range s.blocks {
		if b.Bits() > bits {
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		if b.Bits() > s.blocks[best].Bits() ||
			(b.Bits() == s.blocks[best].Bits() && b.Base() < s.blocks[best].Base()) {
			best = i
		}
	}
	if best == -1 {
		return cidrmath.Block{}, ErrInsufficientSpace
	}

	chosen := s.blocks[best]
	s.blocks = append(s.blocks[:best], s.blocks[best+1:]...)

	for chosen.Bits() < bits {
		lo, hi, err := chosen.Halves()
		if err != nil {
			// Unreachable: chosen.Bits() < bits <= 32.
			s.blocks = append(s.blocks, chosen)
			return cidrmath.Block{}, err
		}
		s.blocks = append(s.blocks, hi)
		chosen = lo
	}
	return chosen, nil
}

// Release returns a block to the set. The caller is responsible for only
// releasing blocks previously taken from this set; adjacent free blocks are
// not coalesced.
func (s *FreeSet) Release(b cidrmath.Block) {
	s.blocks = append(s.blocks, b)
}

// Blocks returns a copy of the free blocks sorted by base address, then by
// prefix length.
func (s *FreeSet) Blocks() []cidrmath.Block {
	out := make([]cidrmath.Block, len(s.blocks))
	copy(out, s.blocks)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Base() != out[j].Base() {
			return out[i].Base() < out[j].Base()
		}
		return out[i].Bits() < out[j].Bits()
	})
	return out
}

// FreeAddresses returns the total number of addresses across all free
// blocks.
func (s *FreeSet) FreeAddresses() uint64 {
	var total uint64
	for _, b := range s.blocks {
		total += b.Size()
	}
	return total
}

// Len returns the number of free blocks.
func (s *FreeSet) Len() int {
	return len(s.blocks)
}
