package utils_test

import (
	"testing"
	"time"

	"github.com/amora-app/amora/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestTTLMap(t *testing.T) {
	t.Parallel()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		m := utils.NewTTLMap[string, int](time.Minute)
		m.Set("a", 1)

		value, ok := m.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, value)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		m := utils.NewTTLMap[string, int](time.Minute)

		_, ok := m.Get("missing")
		assert.False(t, ok)
	})

	t.Run("expired entry", func(t *testing.T) {
		t.Parallel()

		m := utils.NewTTLMap[string, int](30 * time.Millisecond)
		m.Set("a", 1)

		time.Sleep(50 * time.Millisecond)

		_, ok := m.Get("a")
		assert.False(t, ok)
	})

	t.Run("set refreshes expiry", func(t *testing.T) {
		t.Parallel()

		m := utils.NewTTLMap[string, int](60 * time.Millisecond)
		m.Set("a", 1)

		time.Sleep(40 * time.Millisecond)
		m.Set("a", 2)
		time.Sleep(40 * time.Millisecond)

		value, ok := m.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 2, value)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		m := utils.NewTTLMap[string, int](time.Minute)
		m.Set("a", 1)
		m.Delete("a")

		_, ok := m.Get("a")
		assert.False(t, ok)
	})
}
