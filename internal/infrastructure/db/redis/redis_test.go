package redis

import (
	"testing"
	"time"
)

func TestClientOptions_Timeouts(t *testing.T) {
	opts := clientOptions(Config{Addr: "cache:6379", Password: "s3cret", DB: 2})
	if opts.DialTimeout != defaultTimeout || opts.ReadTimeout != defaultTimeout {
		t.Fatalf("expected default timeouts, got dial=%s read=%s", opts.DialTimeout, opts.ReadTimeout)
	}
	if opts.Addr != "cache:6379" || opts.Password != "s3cret" || opts.DB != 2 {
		t.Fatalf("connection fields not copied: %+v", opts)
	}

	opts = clientOptions(Config{Addr: "cache:6379", Timeout: time.Second})
	if opts.WriteTimeout != time.Second {
		t.Fatalf("expected 1s write timeout, got %s", opts.WriteTimeout)
	}
}
