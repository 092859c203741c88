package main

import (
	"testing"

	"songrenamer/internal/config"
)

func mustLoadConfig(t *testing.T, path string) *config.Config {
	t.Helper()
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}
