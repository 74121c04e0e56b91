package hllpp

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	const p, pPrime = 14, 25
	hashes := []uint64{
		0x0000000000000001,
		0xFFFFFFFFFFFFFFFF,
		0x123456789ABCDEF0,
		uint64(0xA) << 60,
	}
	for _, h := range hashes {
		e := encodeHash(h, p, pPrime)

		wantIdx := uint32(getIndex64(h, p))
		gotIdx := decodeIndex(e, p)
		if gotIdx != wantIdx {
			t.Errorf("decodeIndex(%#x) = %#x, want %#x", e, gotIdx, wantIdx)
		}

		wantRank := getRank64(h, p)
		gotRank := decodeRank(e, pPrime, p)
		if gotRank != wantRank {
			t.Errorf("decodeRank(%#x) = %d, want %d (getRank64(%#x, %d))", e, gotRank, wantRank, h, p)
		}
	}
}

func TestSparseListInsertDedup(t *testing.T) {
	s := newSparseList(25)
	v := encodeHash(0x123456789ABCDEF0, 14, 25)
	if !s.insert(v) {
		t.Fatal("first insert should report a change")
	}
	if s.insert(v) {
		t.Fatal("inserting the same value twice should be a no-op")
	}
	if s.len() != 1 {
		t.Fatalf("len = %d, want 1", s.len())
	}
}

func TestSparseListTieBreakBothUnflagged(t *testing.T) {
	s := newSparseList(25)
	// Two unflagged entries at the same index: keep the smaller value.
	idx := uint32(5) << (32 - 25)
	big := idx | 0x040
	small := idx | 0x002
	s.insert(big)
	s.insert(small)
	if s.len() != 1 {
		t.Fatalf("len = %d, want 1", s.len())
	}
	if s.entries[0] != small {
		t.Errorf("kept %#x, want the smaller unflagged value %#x", s.entries[0], small)
	}
}

func TestSparseListTieBreakMixedPrefersFlagged(t *testing.T) {
	s := newSparseList(25)
	idx := uint32(7) << (32 - 25)
	unflagged := idx | 0x004
	flagged := idx | (uint32(3) << 1) | 1
	s.insert(unflagged)
	s.insert(flagged)
	if s.len() != 1 || s.entries[0] != flagged {
		t.Errorf("expected flagged entry to win, got %#x", s.entries[0])
	}

	s2 := newSparseList(25)
	s2.insert(flagged)
	s2.insert(unflagged)
	if s2.len() != 1 || s2.entries[0] != flagged {
		t.Errorf("order should not matter: got %#x", s2.entries[0])
	}
}

func TestSparseListTieBreakBothFlaggedKeepsLarger(t *testing.T) {
	idx := uint32(9) << (32 - 25)
	smaller := idx | (uint32(2) << 1) | 1
	larger := idx | (uint32(9) << 1) | 1

	// Insert the smaller value first so it sorts ahead of the larger
	// value. Searching for the insertion point of the larger value
	// then lands one position past the smaller entry, meaning the
	// existing colliding entry is found by checking the position
	// immediately before the search result, not the search result
	// itself. This pins down that both positions are checked.
	s := newSparseList(25)
	s.insert(smaller)
	s.insert(larger)
	if s.len() != 1 || s.entries[0] != larger {
		t.Errorf("expected the larger flagged value to win, got %#x", s.entries[0])
	}
}

func TestSparseListSortedNoDuplicateIndices(t *testing.T) {
	s := newSparseList(25)
	for i := uint64(0); i < 500; i++ {
		s.insert(encodeHash(NumericalRecipesMixer(i), 14, 25))
	}
	seen := make(map[uint32]bool)
	for i := 1; i < len(s.entries); i++ {
		if s.entries[i-1] >= s.entries[i] {
			t.Fatalf("entries not strictly sorted at %d", i)
		}
	}
	for _, e := range s.entries {
		idx := decodeIndex(e, 25)
		if seen[idx] {
			t.Fatalf("duplicate pPrime-index %#x", idx)
		}
		seen[idx] = true
	}
}
