package bookings

import (
	"bytes"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotentID(t *testing.T) {
	start := time.Date(2025, 6, 10, 19, 30, 0, 0, time.FixedZone("", 2*3600))
	seed := IdempotencySeed{
		MerchantGUID: "m-1",
		ServiceID:    "m-1:evening",
		Start:        start,
		PartySize:    4,
		Email:        "Jane@Example.com",
		Key:          "retry-1",
	}

	id := IdempotentID(seed)
	assert.Regexp(t, regexp.MustCompile(`^IDEMP_[0-9a-f]{20}$`), id)

	t.Run("deterministic and email case-insensitive", func(t *testing.T) {
		same := seed
		same.Email = "jane@example.com"
		assert.Equal(t, id, IdempotentID(same))
	})

	t.Run("same instant in another offset differs", func(t *testing.T) {
		other := seed
		other.Start = start.UTC()
		assert.NotEqual(t, id, IdempotentID(other))
	})

	t.Run("key changes identifier", func(t *testing.T) {
		other := seed
		other.Key = "retry-2"
		assert.NotEqual(t, id, IdempotentID(other))
	})
}

func TestRandomIDGenerator_NewID(t *testing.T) {
	g := &RandomIDGenerator{rand: bytes.NewReader([]byte{0xa1, 0xb2, 0xc3})}
	start := time.Date(2025, 6, 10, 19, 30, 0, 0, time.UTC)

	id, err := g.NewID(start)
	require.NoError(t, err)
	assert.Equal(t, "BK_20250610_1930_a1b2c3", id)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestRandomIDGenerator_ReadFailure(t *testing.T) {
	g := &RandomIDGenerator{rand: failingReader{}}

	_, err := g.NewID(time.Now())
	assert.ErrorIs(t, err, ErrIDGeneration)
}

func TestNewRandomIDGenerator_Format(t *testing.T) {
	id, err := NewRandomIDGenerator().NewID(time.Date(2025, 1, 2, 8, 5, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Regexp(t, `^BK_20250102_0805_[0-9a-f]{6}$`, id)
}
