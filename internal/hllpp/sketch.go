// Package hllpp implements the HyperLogLog++ cardinality estimator
// (Flajolet's HyperLogLog combined with Heule, Nunkesser & Hall's
// sparse representation and bias correction, and Ertl's joint
// estimator). A Sketch tracks the approximate number of distinct
// 64-bit items added to it in O(2^p) bytes, with relative error on
// the order of 1.04/sqrt(2^p).
//
// A freshly constructed Sketch starts in a sparse representation: an
// ordered list of 32-bit encoded hashes, compact while few distinct
// indices have been seen. Once the list would otherwise use more
// memory than a dense register vector of size 2^p, the sketch
// irreversibly promotes itself to the dense representation. Both
// representations support merging, and either representation can
// produce an estimate under two independent estimators: the
// historical Heule estimator (linear counting below an empirical
// threshold, a bias-corrected harmonic-mean estimate above it) and
// Ertl's estimator (a smoother, threshold-free alternative used as
// the package's default).
//
// Hashing an arbitrary item into the uniformly-distributed uint64 the
// sketch expects is the caller's job; three reference Mixer
// implementations are provided in mixer.go, and AddBytes/AddString
// hash byte and string keys with xxhash ahead of the configured
// Mixer for convenience.
package hllpp

import (
	"math"

	"github.com/cespare/xxhash/v2"
)

// pPrime is the fixed sparse-representation precision. It is not
// configurable: the sparse encoding's flag bit and additional-rank
// field are sized against this constant.
const pPrime = 25

// Sketch is a HyperLogLog++ cardinality estimator. The zero value is
// not usable; construct one with New. A Sketch is not safe for
// concurrent use by multiple goroutines without external
// synchronization — it has a single logical owner, the same way the
// underlying register state of any HyperLogLog sketch does.
type Sketch struct {
	p     uint
	mixer Mixer

	sparse bool
	list   *sparseList
	dense  denseRegisters

	cachedCardinality uint64
	cacheValid        bool
}

// New constructs a Sketch at the given precision, using mixer to
// avalanche items before they are split into index and rank. startSparse
// selects the initial representation; sparse mode is recommended
// whenever the expected cardinality is much smaller than 2^p.
func New(p uint, startSparse bool, mixer Mixer) (*Sketch, error) {
	if p < 4 || p > 18 {
		return nil, ErrInvalidPrecision
	}
	if mixer == nil {
		mixer = Murmur3FinalizerMixer
	}
	s := &Sketch{p: p, mixer: mixer}
	s.reset(startSparse)
	return s, nil
}

func (s *Sketch) m() uint64 { return uint64(1) << s.p }

func (s *Sketch) reset(startSparse bool) {
	s.sparse = startSparse
	if startSparse {
		s.list = newSparseList(pPrime)
		s.dense = nil
	} else {
		s.list = nil
		s.dense = newDenseRegisters(s.m())
	}
	s.cachedCardinality = 0
	s.cacheValid = false
}

// Reset returns the sketch to an empty sparse-mode state.
func (s *Sketch) Reset() {
	s.reset(true)
}

// Add mixes item through the configured Mixer and folds it into the
// sketch.
func (s *Sketch) Add(item uint64) {
	h := s.mixer(item)
	s.addHash(h)
}

// AddMany adds every item in items, avoiding the per-call overhead of
// repeated interface dispatch on the caller's side.
func (s *Sketch) AddMany(items []uint64) {
	for _, item := range items {
		s.addHash(s.mixer(item))
	}
}

// AddBytes hashes data with xxhash ahead of the configured Mixer and
// folds the resulting 64-bit value into the sketch, for convenient
// byte-keyed use.
func (s *Sketch) AddBytes(data []byte) {
	s.addHash(s.mixer(xxhash.Sum64(data)))
}

// AddString is the string-keyed counterpart of AddBytes.
func (s *Sketch) AddString(str string) {
	s.addHash(s.mixer(xxhash.Sum64String(str)))
}

func (s *Sketch) addHash(h uint64) {
	s.cacheValid = false
	if s.sparse {
		s.list.insert(encodeHash(h, s.p, pPrime))
		if uint64(s.list.len()) > s.m()/4 {
			s.promote()
		}
		return
	}
	idx := getIndex64(h, s.p)
	rank := getRank64(h, s.p)
	s.dense.update(idx, rank)
}

// promote converts a sparse sketch to dense. Irreversible.
func (s *Sketch) promote() {
	d := newDenseRegisters(s.m())
	d.foldSparse(s.list, s.p)
	s.dense = d
	s.list = nil
	s.sparse = false
}

// Merge folds other's state into s. other is left unmodified. Both
// sketches must share the same precision and mixer; a precision
// mismatch is an error, while a mixer mismatch is the caller's
// responsibility to avoid (Merge cannot detect it after the fact,
// since only hashes, not mixers, are stored per item).
func (s *Sketch) Merge(other *Sketch) error {
	if s.p != other.p {
		return ErrPrecisionMismatch
	}
	s.cacheValid = false

	switch {
	case s.sparse && other.sparse:
		if uint64(s.list.len()+other.list.len()) > s.m() {
			s.promote()
			s.dense.foldSparse(other.list, s.p)
		} else {
			s.list.merge(other.list)
		}
	case s.sparse && !other.sparse:
		s.promote()
		s.dense.mergeMax(other.dense)
	case !s.sparse && other.sparse:
		s.dense.foldSparse(other.list, s.p)
	default:
		s.dense.mergeMax(other.dense)
	}
	return nil
}

// Cardinality returns the Ertl estimator's cardinality estimate,
// caching the result until the next mutation.
func (s *Sketch) Cardinality() uint64 {
	if s.cacheValid {
		return s.cachedCardinality
	}
	est := s.ErtlCardinality()
	s.cachedCardinality = est
	s.cacheValid = true
	return est
}

// HeuleCardinality returns the bias-corrected linear-counting
// estimator's cardinality estimate. It does not use or populate the
// Ertl-based cache maintained by Cardinality.
func (s *Sketch) HeuleCardinality() uint64 {
	if s.sparse {
		mPrime := uint64(1) << pPrime
		lc, err := linearCounting(mPrime, mPrime-uint64(s.list.len()))
		if err != nil {
			return 0
		}
		return uint64(math.Round(lc))
	}

	m := s.m()
	zeros := s.dense.countZeros()
	if zeros > 0 {
		lc, err := linearCounting(m, zeros)
		if err == nil && lc <= threshold[s.p-4] {
			return uint64(math.Round(lc))
		}
	}

	est := heuleRawEstimate(s.dense, m)
	if est <= 5*float64(m) {
		est -= estimateBias(est, s.p)
	}
	return uint64(math.Round(est))
}

// ErtlCardinality returns Ertl's estimator's cardinality estimate,
// computed afresh on every call; Cardinality returns the same value
// through its cache.
func (s *Sketch) ErtlCardinality() uint64 {
	var c []int
	var m uint64
	var q uint

	if s.sparse {
		q = 64 - pPrime
		c = sparseHistogram(s.list, uint64(1)<<pPrime, s.p, q)
		m = uint64(1) << pPrime
	} else {
		q = 64 - s.p
		c = s.dense.histogram(q)
		m = s.m()
	}

	mf := float64(m)
	d := mf * tau(1-float64(c[q+1])/mf)
	for k := int(q); k >= 1; k-- {
		d += float64(c[k])
		d *= 0.5
	}
	d += mf * sigma(float64(c[0])/mf)

	msqAlphaInf := (mf / (2 * math.Ln2)) * mf
	return uint64(math.Round(msqAlphaInf / d))
}

// Serialize encodes the sketch into the canonical on-disk format
// described in header.go.
func (s *Sketch) Serialize() []byte {
	mode := modeDense
	if s.sparse {
		mode = modeSparse
	}
	header := serializeHeader(s.p, mode, mixerID(s.mixer))

	if s.sparse {
		buf := make([]byte, headerSize+4+4*s.list.len())
		copy(buf, header)
		putUint32LE(buf[headerSize:], uint32(s.list.len()))
		off := headerSize + 4
		for _, e := range s.list.entries {
			putUint32LE(buf[off:], e)
			off += 4
		}
		return buf
	}

	buf := make([]byte, headerSize+len(s.dense))
	copy(buf, header)
	copy(buf[headerSize:], s.dense)
	return buf
}

// Deserialize parses a sketch previously produced by Serialize. If
// the serialized mixer id is unrecognized, the returned sketch's
// mixer is left nil and must be set by the caller (via a new Sketch
// and a merge, since Mixer is unexported mutable state) before Add is
// called again; Cardinality and Merge do not depend on the mixer.
func Deserialize(data []byte) (*Sketch, error) {
	hdr, err := deserializeHeader(data)
	if err != nil {
		return nil, err
	}
	body := data[headerSize:]

	s := &Sketch{p: hdr.p, mixer: mixerByID(hdr.mixer)}

	if hdr.mode == modeSparse {
		if len(body) < 4 {
			return nil, ErrInvalidData
		}
		count := int(getUint32LE(body))
		body = body[4:]
		if len(body) < count*4 {
			return nil, ErrInvalidData
		}
		s.sparse = true
		s.list = newSparseList(pPrime)
		s.list.entries = make([]uint32, count)
		for i := 0; i < count; i++ {
			s.list.entries[i] = getUint32LE(body[i*4:])
		}
		return s, nil
	}

	want := int(uint64(1) << hdr.p)
	if len(body) != want {
		return nil, ErrInvalidData
	}
	s.sparse = false
	s.dense = make(denseRegisters, want)
	copy(s.dense, body)
	return s, nil
}
