// Package reverb synthesizes stereo impulse responses for convolution
// reverb: exponentially enveloped white noise with a configurable decay
// time and pre-delay.
//
// Generated buffers are memoized per rounded parameter pair, so
// repeated activations of the same effect settings reuse the exact same
// buffer instance. The store is owned by the Synthesizer; there is no
// ambient global cache.
package reverb
