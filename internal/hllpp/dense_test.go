package hllpp

import "testing"

func TestDenseUpdateOnlyGrows(t *testing.T) {
	d := newDenseRegisters(16)
	if !d.update(3, 5) {
		t.Fatal("first update should report a change")
	}
	if d.update(3, 2) {
		t.Fatal("update with a smaller rank should be a no-op")
	}
	if d[3] != 5 {
		t.Errorf("d[3] = %d, want 5", d[3])
	}
}

func TestDenseMergeMax(t *testing.T) {
	a := newDenseRegisters(4)
	b := newDenseRegisters(4)
	a[0], a[1] = 1, 9
	b[0], b[1] = 5, 3
	a.mergeMax(b)
	if a[0] != 5 || a[1] != 9 {
		t.Errorf("mergeMax result = %v, want [5 9 0 0]", a)
	}
}

func TestDenseHistogramCountsZeros(t *testing.T) {
	d := newDenseRegisters(8)
	d[0], d[1] = 3, 3
	h := d.histogram(6)
	if h[0] != 6 {
		t.Errorf("h[0] = %d, want 6 empty registers", h[0])
	}
	if h[3] != 2 {
		t.Errorf("h[3] = %d, want 2", h[3])
	}
}

func TestFoldSparseMatchesDirectAdd(t *testing.T) {
	const p = 10
	list := newSparseList(pPrime)
	hashes := []uint64{0x1111111111111111, 0x2222222222222222, 0x3333333333333333}
	for _, h := range hashes {
		list.insert(encodeHash(h, p, pPrime))
	}

	folded := newDenseRegisters(1 << p)
	folded.foldSparse(list, p)

	direct := newDenseRegisters(1 << p)
	for _, h := range hashes {
		direct.update(getIndex64(h, p), getRank64(h, p))
	}

	for i := range direct {
		if direct[i] != folded[i] {
			t.Fatalf("register %d: direct=%d folded=%d", i, direct[i], folded[i])
		}
	}
}
