package hllpp

// Mixer avalanches a caller-supplied 64-bit item into a value whose
// bits are close to uniformly distributed, as required by the index
// and rank extraction in bits.go. Callers may supply their own Mixer;
// three reference mixers are provided below.
type Mixer func(uint64) uint64

// NumericalRecipesMixer is the 64-bit hash from Numerical Recipes,
// 3rd Edition (the ranhash generator), used as a fast integer mixer.
func NumericalRecipesMixer(u uint64) uint64 {
	v := u*3935559000370003845 + 2691343689449507681
	v ^= v >> 21
	v ^= v << 37
	v ^= v >> 4
	v *= 4768777513237032717
	v ^= v << 20
	v ^= v >> 41
	v ^= v << 5
	return v
}

// Murmur3FinalizerMixer is the 64-bit avalanche finalizer from
// MurmurHash3. The input is offset by one first so that a zero key
// does not map to a zero hash.
func Murmur3FinalizerMixer(key uint64) uint64 {
	key++
	key ^= key >> 33
	key *= 0xff51afd7ed558ccd
	key ^= key >> 33
	key *= 0xc4ceb9fe1a85ec53
	key ^= key >> 33
	return key
}

// WangMixer is Thomas Wang's 64-bit integer hash mixer.
func WangMixer(key uint64) uint64 {
	key = (^key) + (key << 21)
	key ^= key >> 24
	key = (key + (key << 3)) + (key << 8)
	key ^= key >> 14
	key = (key + (key << 2)) + (key << 4)
	key ^= key >> 28
	key = key + (key << 31)
	return key
}
