package config

import (
	"os"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 0},
		Engine: EngineConfig{
			Addrs: []string{"http://localhost:9200"},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingEngineAddrs(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Engine: EngineConfig{
			Addrs: []string{},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing engine addrs")
	}
}

func TestValidate_NegativePerWordCap(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Engine: EngineConfig{
			Addrs: []string{"http://localhost:9200"},
		},
		Search: SearchConfig{PerWordCap: -1},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for negative per-word clause cap")
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Engine: EngineConfig{
			Addrs: []string{"http://localhost:9200"},
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Engine.Index != "products" {
		t.Errorf("expected Index='products', got %q", cfg.Engine.Index)
	}
	if cfg.Engine.ReadinessTimeout != 30 {
		t.Errorf("expected ReadinessTimeout=30, got %d", cfg.Engine.ReadinessTimeout)
	}
	if cfg.Search.DefaultTopK != 5 {
		t.Errorf("expected DefaultTopK=5, got %d", cfg.Search.DefaultTopK)
	}
	if cfg.Cache.TTLSec != 30 {
		t.Errorf("expected TTLSec=30, got %d", cfg.Cache.TTLSec)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Engine: EngineConfig{Index: "catalog", ReadinessTimeout: 15},
		Search: SearchConfig{DefaultTopK: 10},
		Cache:  CacheConfig{TTLSec: 120},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Engine.Index != "catalog" {
		t.Errorf("expected Index='catalog', got %q", cfg.Engine.Index)
	}
	if cfg.Search.DefaultTopK != 10 {
		t.Errorf("expected DefaultTopK=10, got %d", cfg.Search.DefaultTopK)
	}
	if cfg.Cache.TTLSec != 120 {
		t.Errorf("expected TTLSec=120, got %d", cfg.Cache.TTLSec)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("KUPI_TEST_VAR", "from-env")

	in := []byte("a: ${KUPI_TEST_VAR}\nb: ${KUPI_UNSET_VAR:-fallback}\nc: ${KUPI_UNSET_VAR}")
	got := string(expandEnvVars(in))
	want := "a: from-env\nb: fallback\nc: "
	if got != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestGetEnv(t *testing.T) {
	if err := os.Unsetenv("ENV"); err != nil {
		t.Fatal(err)
	}
	if got := GetEnv(); got != "local" {
		t.Errorf("expected default env 'local', got %q", got)
	}

	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("expected 'prod', got %q", got)
	}
}
