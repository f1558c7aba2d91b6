package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("key1", "value1"))

	val, ok := store.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "value1", val)

	require.NoError(t, store.Set("key1", "updated"))
	val, _ = store.Get("key1")
	assert.Equal(t, "updated", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("str", "hello"))
	require.NoError(t, store.Set("int", 42))
	require.NoError(t, store.Set("int64", int64(7)))
	require.NoError(t, store.Set("float", 3.0))
	require.NoError(t, store.Set("bool", true))

	assert.Equal(t, "hello", store.GetString("str"))
	assert.Equal(t, "", store.GetString("int"))
	assert.Equal(t, 42, store.GetInt("int"))
	assert.Equal(t, 7, store.GetInt("int64"))
	assert.Equal(t, 3, store.GetInt("float"))
	assert.Equal(t, 0, store.GetInt("str"))
	assert.True(t, store.GetBool("bool"))
	assert.False(t, store.GetBool("str"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_SaveLoadPath(t *testing.T) {
	store := NewConfigStore()

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("shared", 1)
		}()
		go func() {
			defer wg.Done()
			_ = store.GetInt("shared")
		}()
	}
	wg.Wait()
}
