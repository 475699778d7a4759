package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pfjus/Weather-Chatbot/internal/weather"
)

func snap(city string, temp float64) weather.Snapshot {
	return weather.Snapshot{City: city, TemperatureC: temp, Description: "clear sky"}
}

func TestCacheHitAndMiss(t *testing.T) {
	c := NewSnapshotCache(4)

	_, ok := c.Get("Madrid")
	assert.False(t, ok)

	c.Put("Madrid", snap("Madrid", 21))
	got, ok := c.Get("Madrid")
	assert.True(t, ok)
	assert.Equal(t, 21.0, got.TemperatureC)
}

func TestCachePutReplacesExisting(t *testing.T) {
	c := NewSnapshotCache(4)

	c.Put("Madrid", snap("Madrid", 21))
	c.Put("Madrid", snap("Madrid", 23))

	got, ok := c.Get("Madrid")
	assert.True(t, ok)
	assert.Equal(t, 23.0, got.TemperatureC)
	assert.Equal(t, 1, c.Len())
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewSnapshotCache(2)

	c.Put("Madrid", snap("Madrid", 21))
	c.Put("Lima", snap("Lima", 18))

	// Touch Madrid so Lima becomes the eviction candidate.
	_, ok := c.Get("Madrid")
	assert.True(t, ok)

	c.Put("Tokyo", snap("Tokyo", 15))

	_, ok = c.Get("Lima")
	assert.False(t, ok, "least recently used city must be evicted")
	_, ok = c.Get("Madrid")
	assert.True(t, ok)
	_, ok = c.Get("Tokyo")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestCacheDefaultCapacity(t *testing.T) {
	c := NewSnapshotCache(0)

	for i := 0; i < DefaultCacheSize+10; i++ {
		c.Put(string(rune('A'+i%26))+string(rune('a'+i/26)), snap("x", float64(i)))
	}
	assert.Equal(t, DefaultCacheSize, c.Len())
}
