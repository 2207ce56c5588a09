package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE_DRIVER", "MONGO_URI", "MONGO_URL", "MONGO_DATABASE", "DB_NAME", "CATALOG_TTL", "CORS_ORIGINS", "RATE_LIMIT_RPS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Server.Port != "8001" {
		t.Errorf("Port = %q, want 8001", cfg.Server.Port)
	}
	if cfg.MongoDB.Driver != "mongo" {
		t.Errorf("Driver = %q, want mongo", cfg.MongoDB.Driver)
	}
	if cfg.MongoDB.Database != "darkops_lab" {
		t.Errorf("Database = %q, want darkops_lab", cfg.MongoDB.Database)
	}
	if cfg.Catalog.TTL != 5*time.Minute {
		t.Errorf("Catalog TTL = %v, want 5m", cfg.Catalog.TTL)
	}
	if !reflect.DeepEqual(cfg.Server.CORSOrigins, []string{"*"}) {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.Server.CORSOrigins)
	}
}

func TestLoadLegacyMongoVariables(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DATABASE", "")
	t.Setenv("MONGO_URL", "mongodb://db:27017")
	t.Setenv("DB_NAME", "lab")

	cfg := Load()

	if cfg.MongoDB.URI != "mongodb://db:27017" {
		t.Errorf("URI = %q, want mongodb://db:27017", cfg.MongoDB.URI)
	}
	if cfg.MongoDB.Database != "lab" {
		t.Errorf("Database = %q, want lab", cfg.MongoDB.Database)
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "abc")
	if got := getEnvAsInt("TEST_INT", 7); got != 7 {
		t.Errorf("getEnvAsInt with invalid value = %d, want 7", got)
	}

	t.Setenv("TEST_DURATION", "90s")
	if got := getEnvAsDuration("TEST_DURATION", time.Second); got != 90*time.Second {
		t.Errorf("getEnvAsDuration = %v, want 90s", got)
	}

	t.Setenv("TEST_LIST", " http://a.test , ,http://b.test")
	want := []string{"http://a.test", "http://b.test"}
	if got := getEnvAsList("TEST_LIST", nil); !reflect.DeepEqual(got, want) {
		t.Errorf("getEnvAsList = %v, want %v", got, want)
	}
}
