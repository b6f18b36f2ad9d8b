package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLMap_Expiry(t *testing.T) {
	now := time.Now()
	m := NewTTLMap(time.Minute)
	m.now = func() time.Time { return now }

	m.Set("a", 1)
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	now = now.Add(2 * time.Minute)
	_, ok = m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestTTLMap_DeleteAndClear(t *testing.T) {
	m := NewTTLMap(time.Minute)
	m.Set("a", 1)
	m.Set("b", 2)
	m.Delete("a")
	_, ok := m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())

	m.Clear()
	assert.Equal(t, 0, m.Len())
}

func TestTTLMap_Concurrent(t *testing.T) {
	m := NewTTLMap(time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Set("k", i)
			m.Get("k")
		}(i)
	}
	wg.Wait()
	_, ok := m.Get("k")
	assert.True(t, ok)
}

func TestTTLMap_WritesSweepExpiredEntries(t *testing.T) {
	now := time.Now()
	m := NewTTLMap(time.Minute)
	m.now = func() time.Time { return now }

	for i := 0; i < sweepEvery-1; i++ {
		m.Set(fmt.Sprintf("old-%d", i), i)
	}
	now = now.Add(2 * time.Minute)
	m.Set("fresh", 1)

	assert.Equal(t, 1, m.Len())
}
