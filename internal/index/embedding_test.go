package index

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbed_ZeroVectorForShortText(t *testing.T) {
	vec := Embed("single")
	for _, v := range vec {
		assert.Zero(t, v)
	}
	vec = Embed("")
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestEmbed_L1Normalized(t *testing.T) {
	vec := Embed("the quick brown fox jumps over the lazy dog")
	var sum float64
	for _, v := range vec {
		sum += math.Abs(v)
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestEmbed_Deterministic(t *testing.T) {
	a := Embed("func main() { fmt.Println(\"hi\") }")
	b := Embed("func main() { fmt.Println(\"hi\") }")
	assert.Equal(t, a, b)
}

func TestCosineSimilarity_IdenticalVectorsAreOne(t *testing.T) {
	vec := Embed("package main\n\nfunc main() {}\n")
	sim := CosineSimilarity(vec, vec)
	assert.InDelta(t, 1.0, sim, 1e-9)
}

func TestCosineSimilarity_ZeroVectorIsZero(t *testing.T) {
	var zero [Dim]float64
	vec := Embed("package main\n\nfunc main() {}\n")
	assert.Zero(t, CosineSimilarity(zero, vec))
}
