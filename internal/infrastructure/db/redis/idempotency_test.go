package redis

import (
	"testing"
	"time"
)

func TestIdempotencyKey_ScopedByShipper(t *testing.T) {
	a := idempotencyKey("cli-a", "key-1")
	b := idempotencyKey("cli-b", "key-1")

	if a != "idem:frete:cli-a:key-1" {
		t.Errorf("unexpected key: %s", a)
	}
	if a == b {
		t.Errorf("keys of different shippers must differ")
	}
}

func TestNewIdempotencyStore_DefaultTTL(t *testing.T) {
	if s := NewIdempotencyStore(nil, 0); s.ttl != defaultIdempotencyTTL {
		t.Errorf("expected default ttl, got %v", s.ttl)
	}
	if s := NewIdempotencyStore(nil, time.Minute); s.ttl != time.Minute {
		t.Errorf("expected 1m ttl, got %v", s.ttl)
	}
}
