package hllpp

import (
	"encoding/binary"
)

// Canonical serialization layout: an 8-byte header carrying the
// precision and mixer id alongside the usual magic/version/mode
// fields, since a sketch's precision is configurable across p in
// [4,18] rather than fixed.
//
//	+-------+-----------+------+------------------------------+
//	| Bytes | Field     | Size | Notes                        |
//	+-------+-----------+------+------------------------------+
//	| 0-3   | Magic     | 4    | "HLPP"                        |
//	| 4     | Version   | 1    | currently 1                  |
//	| 5     | Precision | 1    | p, in [4, 18]                 |
//	| 6     | Mode      | 1    | 0 = dense, 1 = sparse         |
//	| 7     | Mixer ID  | 1    | see mixerID/mixerByID below   |
//	+-------+-----------+------+------------------------------+
const (
	headerSize = 8
	magic      = "HLPP"
	version    = 1
)

type sketchMode uint8

const (
	modeDense  sketchMode = 0
	modeSparse sketchMode = 1
)

func serializeHeader(p uint, mode sketchMode, mixer byte) []byte {
	buf := make([]byte, headerSize)
	copy(buf[0:4], magic)
	buf[4] = version
	buf[5] = byte(p)
	buf[6] = byte(mode)
	buf[7] = mixer
	return buf
}

type parsedHeader struct {
	p     uint
	mode  sketchMode
	mixer byte
}

func deserializeHeader(data []byte) (*parsedHeader, error) {
	if len(data) < headerSize {
		return nil, ErrInvalidData
	}
	if string(data[0:4]) != magic {
		return nil, ErrInvalidData
	}
	if data[4] != version {
		return nil, ErrInvalidData
	}
	p := uint(data[5])
	if p < 4 || p > 18 {
		return nil, ErrInvalidData
	}
	mode := sketchMode(data[6])
	if mode != modeDense && mode != modeSparse {
		return nil, ErrInvalidData
	}
	return &parsedHeader{p: p, mode: mode, mixer: data[7]}, nil
}

// mixerID and mixerByID round-trip a Mixer through the single byte
// the serialization format allots it. A user-supplied Mixer not in
// this table serializes as 0xFF ("unknown"); Deserialize then returns
// a sketch with a nil Mixer, on which Add must not be called (see
// Deserialize).
const (
	mixerIDNumericalRecipes byte = 0
	mixerIDMurmur3Finalizer byte = 1
	mixerIDWang             byte = 2
	mixerIDUnknown          byte = 0xFF
)

func mixerID(m Mixer) byte {
	switch {
	case sameMixer(m, NumericalRecipesMixer):
		return mixerIDNumericalRecipes
	case sameMixer(m, Murmur3FinalizerMixer):
		return mixerIDMurmur3Finalizer
	case sameMixer(m, WangMixer):
		return mixerIDWang
	default:
		return mixerIDUnknown
	}
}

func mixerByID(id byte) Mixer {
	switch id {
	case mixerIDNumericalRecipes:
		return NumericalRecipesMixer
	case mixerIDMurmur3Finalizer:
		return Murmur3FinalizerMixer
	case mixerIDWang:
		return WangMixer
	default:
		return nil
	}
}

// sameMixer compares two Mixer values by probing them with a fixed
// set of inputs rather than by function pointer identity, since Go
// does not allow comparing func values directly.
func sameMixer(a, b Mixer) bool {
	for _, x := range [...]uint64{0, 1, 42, 0xFFFFFFFFFFFFFFFF} {
		if a(x) != b(x) {
			return false
		}
	}
	return true
}

func putUint32LE(buf []byte, v uint32) {
	binary.LittleEndian.PutUint32(buf, v)
}

func getUint32LE(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf)
}
