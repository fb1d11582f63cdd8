package service

import "math/rand/v2"

const (
	minConfidence   = 0.88
	confidenceSpan  = 0.10
	minProcessingMs = 50
	processingSpan  = 150
)

// RandSource supplies the randomness behind the synthetic response fields.
// *rand.Rand from math/rand/v2 satisfies it, but is not safe for concurrent
// use; the default source is.
type RandSource interface {
	Float64() float64
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// Synthetic holds the flavour values attached to every caption response.
// They are random and carry no information about the image or the
// cost of producing the caption.
type Synthetic struct {
	Confidence     float64 // in [0.88, 0.98)
	ProcessingTime int     // milliseconds, in [50, 200)
}

// Synthesize draws a fresh set of synthetic values from r.
// Parameters:
//   - r: random source; nil uses the process-wide source.
//
// Returns:
//   - Synthetic: confidence and processing time within their fixed ranges.
func Synthesize(r RandSource) Synthetic {
	if r == nil {
		r = globalRand{}
	}
	return Synthetic{
		Confidence:     minConfidence + r.Float64()*confidenceSpan,
		ProcessingTime: minProcessingMs + r.IntN(processingSpan),
	}
}
