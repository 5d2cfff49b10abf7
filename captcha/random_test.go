package captcha

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniformIsInclusive(t *testing.T) {
	sources := map[string]Source{
		"process": DefaultSource(),
		"seeded":  NewSeededSource(42),
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			seen := make(map[int]bool)
			for i := 0; i < 2000; i++ {
				v := src.Uniform(3)
				assert.GreaterOrEqual(t, v, 0)
				assert.LessOrEqual(t, v, 3)
				seen[v] = true
			}
			assert.Len(t, seen, 4, "every value in [0,3] should be reachable")
			assert.Equal(t, 0, src.Uniform(0))
			assert.Equal(t, 0, src.Uniform(-5))
		})
	}
}

func TestSeededSourceIsReproducible(t *testing.T) {
	a := NewSeededSource(7)
	b := NewSeededSource(7)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Uniform(100), b.Uniform(100))
		assert.Equal(t, a.Normal(), b.Normal())
	}
}

func TestSequenceSource(t *testing.T) {
	src := NewSequenceSource(3, 7, -2).WithNormals(0.5, -1)

	assert.Equal(t, 3, src.Uniform(10))
	assert.Equal(t, 3, src.Uniform(3)) // 7 % 4
	assert.Equal(t, 2, src.Uniform(10))
	assert.Equal(t, 3, src.Uniform(10)) // wraps
	assert.Equal(t, 0, src.Uniform(0))

	assert.Equal(t, 0.5, src.Normal())
	assert.Equal(t, -1.0, src.Normal())
	assert.Equal(t, 0.5, src.Normal())

	assert.Equal(t, 0.0, NewSequenceSource().Normal())
	assert.Equal(t, 0, NewSequenceSource().Uniform(10))
}

func TestBetween(t *testing.T) {
	assert.Equal(t, 5.0, Between(NewSequenceSource(0), 5, 10))
	assert.Equal(t, 10.0, Between(NewSequenceSource(5), 5, 10))
	assert.Equal(t, 8.0, Between(NewSequenceSource(100), 8, 3), "max < min yields min")

	src := NewSeededSource(1)
	for i := 0; i < 500; i++ {
		v := Between(src, 10, 20)
		assert.GreaterOrEqual(t, v, 10.0)
		assert.LessOrEqual(t, v, 20.0)
	}
}
