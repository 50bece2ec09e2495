package reverb

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/cliplab/vframe/cache"
)

// Documented parameter ranges. Generate rejects values outside them;
// the synthesis formulas degrade (zero-length buffers, NaN envelopes)
// rather than fail if left unchecked.
const (
	MinDecaySeconds = 0.1
	MaxDecaySeconds = 10.0
	MinPreDelayMs   = 0.0
	MaxPreDelayMs   = 100.0
)

// envelopeSlope is the decay exponent: exp(-3*t/decay) reaches about 5%
// amplitude exactly at t = decay.
const envelopeSlope = 3.0

// Validation errors returned by Generate.
var (
	ErrSampleRate         = errors.New("reverb: sample rate must be positive")
	ErrDecayOutOfRange    = errors.New("reverb: decay out of range")
	ErrPreDelayOutOfRange = errors.New("reverb: pre-delay out of range")
)

// Buffer is a generated stereo impulse response. The two channels carry
// independent noise sequences for a decorrelated stereo field.
//
// Buffers are immutable once returned: the synthesizer hands the same
// instance to every caller with the same rounded parameters, and an
// audio thread may be convolving it while the UI thread requests it
// again.
type Buffer struct {
	Left       []float64
	Right      []float64
	SampleRate int
}

// Len returns the per-channel sample count.
func (b *Buffer) Len() int { return len(b.Left) }

// Synthesizer generates and memoizes impulse responses. Safe for
// concurrent use; the store is internally synchronized.
type Synthesizer struct {
	store   *cache.Sharded[string, *Buffer]
	newRand func() *rand.Rand
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithSeed makes generation deterministic: per-channel generators are
// seeded from a master stream seeded with this value, so the two
// channels stay decorrelated while the whole synthesis is repeatable.
// Intended for tests; production keeps the default source.
func WithSeed(seed int64) Option {
	return func(s *Synthesizer) {
		var mu sync.Mutex
		master := rand.New(rand.NewSource(seed)) //nolint:gosec // audio noise, not crypto
		s.newRand = func() *rand.Rand {
			mu.Lock()
			defer mu.Unlock()
			return rand.New(rand.NewSource(master.Int63())) //nolint:gosec // audio noise, not crypto
		}
	}
}

// WithRandSource overrides how per-channel random generators are made.
func WithRandSource(newRand func() *rand.Rand) Option {
	return func(s *Synthesizer) {
		s.newRand = newRand
	}
}

// WithStoreCapacity bounds the memo store to roughly n entries,
// evicting least recently used buffers beyond it.
func WithStoreCapacity(n int) Option {
	return func(s *Synthesizer) {
		s.store = cache.NewSharded[string, *Buffer](n, cache.StringHasher)
	}
}

// NewSynthesizer creates a synthesizer with an empty store.
func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		store: cache.NewSharded[string, *Buffer](cache.DefaultCapacity, cache.StringHasher),
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(rand.Int63())) //nolint:gosec // audio noise, not crypto
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Generate returns the impulse response for the given parameters,
// synthesizing on first use and returning the memoized buffer instance
// on every subsequent call with the same rounded parameters (decay
// rounded to 0.01 s, pre-delay to the nearest millisecond).
//
// The buffer is ceil(sampleRate*decay) samples per channel: pre-delay
// silence followed by uniform noise in [-1, 1] under an exponential
// envelope that decays to about 5% at the end of the buffer.
func (s *Synthesizer) Generate(sampleRate int, decaySeconds, preDelayMs float64) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSampleRate, sampleRate)
	}
	if decaySeconds < MinDecaySeconds || decaySeconds > MaxDecaySeconds || math.IsNaN(decaySeconds) {
		return nil, fmt.Errorf("%w: %g not in [%g, %g]",
			ErrDecayOutOfRange, decaySeconds, MinDecaySeconds, MaxDecaySeconds)
	}
	if preDelayMs < MinPreDelayMs || preDelayMs > MaxPreDelayMs || math.IsNaN(preDelayMs) {
		return nil, fmt.Errorf("%w: %g not in [%g, %g]",
			ErrPreDelayOutOfRange, preDelayMs, MinPreDelayMs, MaxPreDelayMs)
	}

	key := fmt.Sprintf("%.2f:%d", decaySeconds, int(math.Round(preDelayMs)))
	buf := s.store.GetOrCreate(key, func() *Buffer {
		return s.synthesize(sampleRate, decaySeconds, preDelayMs)
	})
	return buf, nil
}

func (s *Synthesizer) synthesize(sampleRate int, decaySeconds, preDelayMs float64) *Buffer {
	length := int(math.Ceil(float64(sampleRate) * decaySeconds))
	preDelaySamples := int(math.Ceil(preDelayMs / 1000 * float64(sampleRate)))

	buf := &Buffer{
		Left:       make([]float64, length),
		Right:      make([]float64, length),
		SampleRate: sampleRate,
	}
	fillChannel(buf.Left, s.newRand(), sampleRate, decaySeconds, preDelaySamples)
	fillChannel(buf.Right, s.newRand(), sampleRate, decaySeconds, preDelaySamples)
	return buf
}

// fillChannel writes pre-delay silence followed by enveloped noise.
func fillChannel(out []float64, rng *rand.Rand, sampleRate int, decaySeconds float64, preDelaySamples int) {
	for i := preDelaySamples; i < len(out); i++ {
		t := float64(i-preDelaySamples) / float64(sampleRate)
		out[i] = (rng.Float64()*2 - 1) * math.Exp(-envelopeSlope*t/decaySeconds)
	}
}

// ClearCache discards every memoized buffer. The next Generate call
// for any parameters returns a freshly synthesized instance.
func (s *Synthesizer) ClearCache() {
	s.store.Clear()
}

// CacheStats returns a snapshot of the memo store counters.
func (s *Synthesizer) CacheStats() cache.Stats {
	return s.store.Stats()
}
