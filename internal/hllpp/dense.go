package hllpp

// denseRegisters is the dense representation: one byte per bucket,
// holding the maximum rank observed so far. Registers only grow.
type denseRegisters []uint8

func newDenseRegisters(m uint64) denseRegisters {
	return make(denseRegisters, m)
}

// update sets registers[idx] to rank if rank is larger than the
// current value, reporting whether it changed.
func (d denseRegisters) update(idx uint64, rank uint8) bool {
	if rank > d[idx] {
		d[idx] = rank
		return true
	}
	return false
}

// mergeMax folds other into d by taking the element-wise maximum of
// the two register vectors.
func (d denseRegisters) mergeMax(other denseRegisters) {
	for i := range d {
		if other[i] > d[i] {
			d[i] = other[i]
		}
	}
}

// histogram builds a length q+2 histogram of register values, where
// q = 64-p for dense-precision registers. Index k holds the count of
// registers with rank exactly k.
func (d denseRegisters) histogram(q uint) []int {
	c := make([]int, q+2)
	for _, v := range d {
		if int(v) >= len(c) {
			v = uint8(len(c) - 1)
		}
		c[v]++
	}
	return c
}

// countZeros returns the number of empty registers.
func (d denseRegisters) countZeros() uint64 {
	var v uint64
	for _, r := range d {
		if r == 0 {
			v++
		}
	}
	return v
}

// foldSparse applies every entry of a sparse list into d, as
// happens when promoting from sparse to dense or when merging a
// sparse operand into a dense sketch.
func (d denseRegisters) foldSparse(s *sparseList, p uint) {
	for _, e := range s.entries {
		idx := uint64(decodeIndex(e, p))
		rank := decodeRank(e, s.pPrime, p)
		d.update(idx, rank)
	}
}

// sparseHistogram builds the register histogram directly from a
// sparse list, without promoting to dense, decoding each entry's rank
// at the sketch's real precision p (the encoded value carries enough
// information to recover the rank at any valid target precision, the
// same as foldSparse does). Bucket 0 (empty registers) is inferred
// from mPrime - |entries|, since only non-empty registers are ever
// stored in the sparse list.
func sparseHistogram(s *sparseList, mPrime uint64, p, q uint) []int {
	c := make([]int, q+2)
	c[0] = int(mPrime) - s.len()
	for _, e := range s.entries {
		rank := decodeRank(e, s.pPrime, p)
		if int(rank) >= len(c) {
			rank = uint8(len(c) - 1)
		}
		c[rank]++
	}
	return c
}
