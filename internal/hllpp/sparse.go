package hllpp

import "sort"

// encodeHash packs a 64-bit hash into the sparse representation's
// 32-bit encoded form at precisions (p, pPrime). If the hash bits
// between position p and pPrime are all zero, the normal-precision
// rank cannot be recovered from the index alone, so the encoding
// carries it explicitly (the "flagged" form, LSB == 1). Otherwise the
// index alone is enough to recompute the rank later (the "unflagged"
// form, LSB == 0).
func encodeHash(h uint64, p, pPrime uint) uint32 {
	idx := uint32(extractHighBits64(h, pPrime)) << (32 - pPrime)

	if idx<<p == 0 {
		addRank := getRank64(h, pPrime)
		return idx | (uint32(addRank) << 1) | 1
	}
	return idx
}

// decodeIndex returns the p-precision register index encoded in e.
func decodeIndex(e uint32, p uint) uint32 {
	return getIndex32(e, p)
}

// decodeRank returns the p-precision rank encoded in e, given that e
// was produced by encodeHash at precisions (p, pPrime).
func decodeRank(e uint32, pPrime, p uint) uint8 {
	if e&1 == 1 {
		additionalRank := uint8((e >> 1) & 0x3F)
		return uint8(pPrime-p) + additionalRank
	}
	return getRank32(e, p)
}

// sparseList is a sorted, deduplicated-by-pPrime-index set of encoded
// hashes, kept as a flat slice with binary-search insertion so the
// list stays cheap to scan and merge while it remains small.
type sparseList struct {
	entries []uint32
	pPrime  uint
}

func newSparseList(pPrime uint) *sparseList {
	return &sparseList{pPrime: pPrime}
}

func (s *sparseList) len() int { return len(s.entries) }

// insert adds an encoded hash to the list, applying the index
// collision tie-break: between two entries with the same pPrime
// index, the one decoding to the larger p-precision rank wins.
//   - both flagged: the larger encoded value carries the larger
//     additional rank, so keep the larger value.
//   - both unflagged: the smaller encoded value corresponds to a
//     longer run of leading zeros in the hash suffix, hence the
//     larger rank, so keep the smaller value.
//   - mixed: the flagged entry is always preferred, since it is only
//     ever produced when the unflagged form could not recover the
//     true rank.
func (s *sparseList) insert(v uint32) bool {
	idx := getIndex32(v, s.pPrime)

	i := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i] >= v
	})

	if i < len(s.entries) && s.entries[i] == v {
		return false
	}

	// Look for an existing entry at the same pPrime-index; because
	// entries are sorted by their full 32-bit value rather than by
	// index alone, the colliding entry (if any) sits adjacent to the
	// insertion point.
	for _, j := range []int{i - 1, i} {
		if j < 0 || j >= len(s.entries) {
			continue
		}
		other := s.entries[j]
		if getIndex32(other, s.pPrime) != idx {
			continue
		}
		if s.shouldReplace(other, v) {
			s.entries = append(s.entries[:j], s.entries[j+1:]...)
			break
		}
		return false
	}

	i = sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i] >= v
	})
	s.entries = append(s.entries, 0)
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = v
	return true
}

// shouldReplace reports whether candidate should replace existing at
// the same pPrime-index, applying the flagged/unflagged tie-break
// rule described on sparseList.insert.
func (s *sparseList) shouldReplace(existing, candidate uint32) bool {
	existingFlagged := existing&1 == 1
	candidateFlagged := candidate&1 == 1

	switch {
	case existingFlagged && candidateFlagged:
		return candidate > existing
	case !existingFlagged && !candidateFlagged:
		return candidate < existing
	default:
		return candidateFlagged
	}
}

// merge folds every entry of other into s using the same tie-break
// policy as insert.
func (s *sparseList) merge(other *sparseList) {
	for _, v := range other.entries {
		s.insert(v)
	}
}
