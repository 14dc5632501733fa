package mongo

import (
	"context"
	"testing"
)

func TestClientOptions(t *testing.T) {
	opts := clientOptions(Config{URI: "mongodb://db.internal:27017"})
	if opts.AppName == nil || *opts.AppName != defaultAppName {
		t.Fatalf("expected default app name, got %v", opts.AppName)
	}
	if opts.MaxPoolSize != nil {
		t.Fatalf("pool size must be left to the driver when unset")
	}
	if len(opts.Hosts) != 1 || opts.Hosts[0] != "db.internal:27017" {
		t.Fatalf("unexpected hosts: %v", opts.Hosts)
	}

	opts = clientOptions(Config{URI: "mongodb://localhost:27017", AppName: "broday-worker", MaxPoolSize: 50})
	if *opts.AppName != "broday-worker" || opts.MaxPoolSize == nil || *opts.MaxPoolSize != 50 {
		t.Fatalf("explicit settings not applied: %v %v", opts.AppName, opts.MaxPoolSize)
	}
}

func TestConnect_RequiresDatabase(t *testing.T) {
	if _, _, err := Connect(context.Background(), Config{URI: "mongodb://localhost:27017"}); err == nil {
		t.Fatalf("expected error for empty database name")
	}
}
