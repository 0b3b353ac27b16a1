package types_test

import (
	"testing"

	"github.com/amora-app/amora/internal/database/types"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePair(t *testing.T) {
	t.Parallel()

	low, high := types.NormalizePair(7, 3)
	assert.Equal(t, uint64(3), low)
	assert.Equal(t, uint64(7), high)

	low, high = types.NormalizePair(3, 7)
	assert.Equal(t, uint64(3), low)
	assert.Equal(t, uint64(7), high)
}
