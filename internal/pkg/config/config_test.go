package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.IsProduction() {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected 24h token ttl, got %v", cfg.TokenTTL)
	}
	if cfg.Fretes.CancelWindow != 7*24*time.Hour {
		t.Errorf("expected 7 day cancel window, got %v", cfg.Fretes.CancelWindow)
	}
	if cfg.Fretes.DefaultDeliveryDays != 15 || cfg.Fretes.EventWorkers != 8 {
		t.Errorf("unexpected frete defaults: %+v", cfg.Fretes)
	}
	if cfg.Mongo.Database != "broday_transportes" || cfg.Mongo.Timeout != 10*time.Second {
		t.Errorf("unexpected mongo defaults: %+v", cfg.Mongo)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":                 "secret",
		"ENV":                        "production",
		"CANCEL_WINDOW":              "72h",
		"AVAILABLE_INCLUDE_ACCEPTED": "true",
		"REDIS_DB":                   "3",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.IsProduction() {
		t.Errorf("expected production")
	}
	if cfg.Fretes.CancelWindow != 72*time.Hour || !cfg.Fretes.AvailableIncludeAccepted {
		t.Errorf("overrides not applied: %+v", cfg.Fretes)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("expected redis db 3, got %d", cfg.Redis.DB)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret": {},
		"zero delivery":  {"JWT_SECRET": "s", "DEFAULT_DELIVERY_DAYS": "0"},
		"bad duration":   {"JWT_SECRET": "s", "TOKEN_TTL": "tomorrow"},
	}
	for name, env := range cases {
		if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(env)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
