package hllpp

import "testing"

func TestHeaderRoundTrip(t *testing.T) {
	buf := serializeHeader(14, modeSparse, mixerIDWang)
	hdr, err := deserializeHeader(buf)
	if err != nil {
		t.Fatal(err)
	}
	if hdr.p != 14 || hdr.mode != modeSparse || hdr.mixer != mixerIDWang {
		t.Errorf("round trip mismatch: %+v", hdr)
	}
}

func TestHeaderRejectsBadPrecision(t *testing.T) {
	buf := serializeHeader(14, modeDense, mixerIDWang)
	buf[5] = 3
	if _, err := deserializeHeader(buf); err != ErrInvalidData {
		t.Errorf("err = %v, want ErrInvalidData", err)
	}
}

func TestMixerIDRoundTrip(t *testing.T) {
	mixers := []struct {
		m  Mixer
		id byte
	}{
		{NumericalRecipesMixer, mixerIDNumericalRecipes},
		{Murmur3FinalizerMixer, mixerIDMurmur3Finalizer},
		{WangMixer, mixerIDWang},
	}
	for _, tc := range mixers {
		if got := mixerID(tc.m); got != tc.id {
			t.Errorf("mixerID mismatch: got %d, want %d", got, tc.id)
		}
		got := mixerByID(tc.id)
		if got(7) != tc.m(7) {
			t.Errorf("mixerByID(%d) did not round-trip", tc.id)
		}
	}
}
