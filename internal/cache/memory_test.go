package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("key1", []byte("value1"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get("key1")
	if !found {
		t.Fatal("Expected key1 to be found")
	}
	if string(val) != "value1" {
		t.Errorf("Expected value1, got %s", val)
	}

	if _, found := c.Get("absent"); found {
		t.Error("Expected absent key to not be found")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("short", []byte("value"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("short"); found {
		t.Error("Expected expired entry to not be found")
	}
}

func TestMemoryCache_DeleteClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_ = c.Set("key1", []byte("value1"), time.Minute)
	_ = c.Set("key2", []byte("value2"), time.Minute)

	if err := c.Delete("key1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("key1"); found {
		t.Error("Expected deleted key to not be found")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := c.Get("key2"); found {
		t.Error("Expected cleared cache to be empty")
	}
}

func TestKey(t *testing.T) {
	a := Key("FIRST NOTICE OF LOSS")
	b := Key("FIRST NOTICE OF LOSS")
	c := Key("different document")

	if a != b {
		t.Error("Expected identical text to produce identical keys")
	}
	if a == c {
		t.Error("Expected different text to produce different keys")
	}
	if len(a) != len("claimflow:v1:")+64 {
		t.Errorf("Unexpected key length %d", len(a))
	}
}
