package index

import (
	"math"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// Dim is the fixed embedding dimension every persisted document shares.
const Dim = 128

// Embed turns text into an L1-normalized, fixed-dimension bag-of-bigrams
// vector: tokenize on whitespace, form character-insensitive bigrams within
// each token, hash each bigram into one of Dim buckets, then normalize.
// Text with fewer than two tokens gets the zero vector.
func Embed(text string) [Dim]float64 {
	tokens := strings.Fields(text)
	var vec [Dim]float64

	if len(tokens) < 2 {
		return vec
	}

	for _, tok := range tokens {
		lower := toLowerASCIIAware(tok)
		runes := []rune(lower)
		for i := 0; i+1 < len(runes); i++ {
			bigram := string(runes[i : i+2])
			bucket := hashBigram(bigram) % Dim
			vec[bucket]++
		}
		if len(runes) == 1 {
			bucket := hashBigram(string(runes)) % Dim
			vec[bucket]++
		}
	}

	normalizeL1(&vec)
	return vec
}

func toLowerASCIIAware(s string) string {
	return strings.Map(unicode.ToLower, s)
}

func hashBigram(s string) uint64 {
	return xxhash.Sum64String(s)
}

func normalizeL1(vec *[Dim]float64) {
	var sum float64
	for _, v := range vec {
		if v < 0 {
			sum += -v
		} else {
			sum += v
		}
	}
	if sum == 0 {
		return
	}
	for i := range vec {
		vec[i] /= sum
	}
}

// CosineSimilarity computes the cosine similarity between two equal-length
// embedding vectors. Returns 0 when either vector has zero magnitude.
func CosineSimilarity(a, b [Dim]float64) float64 {
	var dot, magA, magB float64
	for i := 0; i < Dim; i++ {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
