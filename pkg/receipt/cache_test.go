package receipt

import (
	"testing"
)

func TestQueryCache(t *testing.T) {
	c := newQueryCache()

	if _, ok := c.get("ns", "get_receipt", "a.jpg"); ok {
		t.Fatal("empty cache must miss")
	}

	c.set("ns", "get_receipt", "a.jpg", 42)
	v, ok := c.get("ns", "get_receipt", "a.jpg")
	if !ok || v.(int) != 42 {
		t.Fatalf("get after set = %v, %v", v, ok)
	}

	// different argument, operation or namespace are separate entries
	if _, ok := c.get("ns", "get_receipt", "b.jpg"); ok {
		t.Error("different argument must miss")
	}
	if _, ok := c.get("ns", "list_all", "a.jpg"); ok {
		t.Error("different operation must miss")
	}
	if _, ok := c.get("other", "get_receipt", "a.jpg"); ok {
		t.Error("different namespace must miss")
	}
}

func TestQueryCacheInvalidate(t *testing.T) {
	c := newQueryCache()
	c.set("ns", "get_receipt", "a.jpg", 1)
	c.set("ns", "list_all", "", 2)
	c.set("other", "list_all", "", 3)

	c.invalidate("ns")

	if _, ok := c.get("ns", "get_receipt", "a.jpg"); ok {
		t.Error("invalidate must drop every entry of the namespace")
	}
	if _, ok := c.get("ns", "list_all", ""); ok {
		t.Error("invalidate must drop every entry of the namespace")
	}
	if _, ok := c.get("other", "list_all", ""); !ok {
		t.Error("invalidate must not touch other namespaces")
	}
}
