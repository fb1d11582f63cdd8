// Package selector maps an image payload to one of a fixed set of canned
// captions. The mapping is a pure function of the payload text.
package selector

import (
	"unicode/utf16"
)

const (
	numCategories = 8
	numVariants   = 3

	// sampleSize is the length, in UTF-16 code units, of each sampled window.
	sampleSize = 50
)

// NumCategories is the number of caption categories in the table.
const NumCategories = numCategories

// NumVariants is the number of captions per category.
const NumVariants = numVariants

// Selection is the outcome of selecting a caption for a payload.
type Selection struct {
	Caption  string
	Hash     uint32 // absolute value of the signed 32-bit sample hash
	Category int
	Variant  int
}

// Select picks the caption for payload. Identical payloads always produce
// identical selections.
// Parameters:
//   - payload: encoded image text, typically a data URL. Any string is accepted.
//
// Returns:
//   - Selection: chosen caption together with the hash and table position.
func Select(payload string) Selection {
	h := Hash(payload)
	category, variant := bucket(h)
	return Selection{
		Caption:  captionTemplates[category][variant],
		Hash:     h,
		Category: category,
		Variant:  variant,
	}
}

// Hash returns the non-negative sample hash of payload.
//
// Four windows are hashed in order: the head, the windows starting at one
// third and two thirds of the length, and the tail. Each code unit updates
// the running value as hash = hash*31 + unit with 32-bit signed wraparound.
func Hash(payload string) uint32 {
	units := utf16.Encode([]rune(payload))
	n := len(units)

	var hash int32
	for _, sample := range samples(units, n) {
		for _, u := range sample {
			hash = hash*31 + int32(u)
		}
	}
	return abs32(hash)
}

// samples returns the four hashed windows of units, clipped to its bounds.
func samples(units []uint16, n int) [4][]uint16 {
	third := n / 3
	twoThirds := n * 2 / 3
	return [4][]uint16{
		window(units, 0, sampleSize),
		window(units, third, third+sampleSize),
		window(units, twoThirds, twoThirds+sampleSize),
		window(units, n-sampleSize, n),
	}
}

func window(units []uint16, start, end int) []uint16 {
	n := len(units)
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return nil
	}
	return units[start:end]
}

// abs32 widens before negating so that MinInt32 maps to 2^31.
func abs32(v int32) uint32 {
	w := int64(v)
	if w < 0 {
		w = -w
	}
	return uint32(w)
}

func bucket(h uint32) (category, variant int) {
	category = int(h % numCategories)
	variant = int((h / numCategories) % numVariants)
	return category, variant
}
