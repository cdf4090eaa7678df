package cache

import (
	"testing"
	"time"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New[string](1 * time.Second)
	defer c.Close()

	c.Set("key1", "value1")

	val, found := c.Get("key1")
	if !found {
		t.Error("Expected to find key1")
	}
	if val != "value1" {
		t.Errorf("Expected value1, got %v", val)
	}
}

func TestCache_MissReturnsZeroValue(t *testing.T) {
	c := New[[]int](1 * time.Second)
	defer c.Close()

	val, found := c.Get("absent")
	if found {
		t.Error("Expected miss for absent key")
	}
	if val != nil {
		t.Errorf("Expected nil slice, got %v", val)
	}
}

func TestCache_Expiration(t *testing.T) {
	c := New[string](100 * time.Millisecond)
	defer c.Close()

	c.Set("key1", "value1")

	// Should exist immediately
	_, found := c.Get("key1")
	if !found {
		t.Error("Expected to find key1 immediately")
	}

	// Wait for expiration
	time.Sleep(150 * time.Millisecond)

	_, found = c.Get("key1")
	if found {
		t.Error("Expected key1 to be expired")
	}
}

func TestCache_SetWithTTL(t *testing.T) {
	c := New[int](1 * time.Hour)
	defer c.Close()

	c.SetWithTTL("short", 1, 50*time.Millisecond)
	c.Set("long", 2)

	time.Sleep(100 * time.Millisecond)

	if _, found := c.Get("short"); found {
		t.Error("Expected short-lived key to expire")
	}
	if v, found := c.Get("long"); !found || v != 2 {
		t.Errorf("Expected long-lived key with value 2, got %v (found=%v)", v, found)
	}
}

func TestCache_Clear(t *testing.T) {
	c := New[string](1 * time.Second)
	defer c.Close()

	c.Set("key1", "value1")
	c.Clear("key1")

	_, found := c.Get("key1")
	if found {
		t.Error("Expected key1 to be cleared")
	}
}

func TestCache_LenSkipsExpired(t *testing.T) {
	c := New[string](1 * time.Hour)
	defer c.Close()

	c.Set("a", "1")
	c.Set("b", "2")
	c.SetWithTTL("c", "3", -1*time.Second)

	if n := c.Len(); n != 2 {
		t.Errorf("Expected 2 live entries, got %d", n)
	}
}

func TestCache_CleanupRemovesExpired(t *testing.T) {
	c := NewWithCleanup[string](20*time.Millisecond, 10*time.Millisecond)
	defer c.Close()

	c.Set("key1", "value1")
	time.Sleep(100 * time.Millisecond)

	count := 0
	c.store.Range(func(_, _ interface{}) bool {
		count++
		return true
	})
	if count != 0 {
		t.Errorf("Expected cleanup to remove expired entries, %d remain", count)
	}
}

func TestCache_CloseIsIdempotent(t *testing.T) {
	c := New[string](time.Second)
	c.Close()
	c.Close()

	c.Set("key1", "value1")
	if _, found := c.Get("key1"); !found {
		t.Error("Expected cache to remain usable after Close")
	}
}
