package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	cache := New()
	assert.NotNil(t, cache)
	assert.NotNil(t, cache.items)
	assert.Empty(t, cache.items)
}

func TestCache_SetAndGet(t *testing.T) {
	cache := New()

	cache.Set("key1", "value1", 10*time.Second)
	val, exists := cache.Get("key1")
	assert.True(t, exists)
	assert.Equal(t, "value1", val)

	val, exists = cache.Get("nonexistent")
	assert.False(t, exists)
	assert.Nil(t, val)
}

func TestCache_Expiration(t *testing.T) {
	cache := New()

	cache.Set("expiring", "value", 100*time.Millisecond)

	val, exists := cache.Get("expiring")
	assert.True(t, exists)
	assert.Equal(t, "value", val)

	time.Sleep(150 * time.Millisecond)

	val, exists = cache.Get("expiring")
	assert.False(t, exists)
	assert.Nil(t, val)

	// Expired item is removed lazily on Get.
	cache.mutex.RLock()
	_, itemExists := cache.items["expiring"]
	cache.mutex.RUnlock()
	assert.False(t, itemExists)
}

func TestCache_UpdateValue(t *testing.T) {
	cache := New()

	cache.Set("key", "value1", 10*time.Second)
	cache.Set("key", "value2", 10*time.Second)

	val, exists := cache.Get("key")
	assert.True(t, exists)
	assert.Equal(t, "value2", val)
}

func TestCache_Delete(t *testing.T) {
	cache := New()

	cache.Set("key", "value", 10*time.Second)
	cache.Delete("key")

	_, exists := cache.Get("key")
	assert.False(t, exists)

	// Deleting a missing key is a no-op.
	cache.Delete("nonexistent")
}

func TestCache_Clear(t *testing.T) {
	cache := New()

	cache.Set("key1", "value1", 10*time.Second)
	cache.Set("key2", "value2", 10*time.Second)

	cache.Clear()

	_, exists1 := cache.Get("key1")
	_, exists2 := cache.Get("key2")
	assert.False(t, exists1)
	assert.False(t, exists2)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := New()
	iterations := 100
	var wg sync.WaitGroup

	wg.Add(iterations * 3)
	for i := 0; i < iterations; i++ {
		go func(n int) {
			defer wg.Done()
			cache.Set("key", n, 10*time.Second)
		}(i)

		go func() {
			defer wg.Done()
			cache.Get("key")
		}()

		go func(n int) {
			defer wg.Done()
			if n%10 == 0 {
				cache.Delete("key")
			}
		}(i)
	}
	wg.Wait()

	cache.Set("final", "value", 10*time.Second)
	val, exists := cache.Get("final")
	assert.True(t, exists)
	assert.Equal(t, "value", val)
}

func TestCache_NegativeTTLExpiresImmediately(t *testing.T) {
	cache := New()

	cache.Set("negative", "value", -1*time.Second)
	_, exists := cache.Get("negative")
	assert.False(t, exists)
}

func BenchmarkCache_Get(b *testing.B) {
	cache := New()
	cache.Set("key", "value", 10*time.Second)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Get("key")
	}
}
