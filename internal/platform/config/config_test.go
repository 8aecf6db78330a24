package config

import "testing"

func TestLoadFailsWithoutPostgresDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when POSTGRES_DSN is unset")
	}
}

func TestLoadAppliesEnvironmentOverrides(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost/claims")
	t.Setenv("QUEUE_CAPACITY", "512")
	t.Setenv("ACK_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.QueueCapacity != 512 {
		t.Fatalf("expected queue capacity 512, got %d", cfg.QueueCapacity)
	}
	if !cfg.AckEnabled {
		t.Fatal("expected ack enabled to be true")
	}
	if cfg.Mode != "localfs" {
		t.Fatalf("expected default mode localfs, got %q", cfg.Mode)
	}
}
