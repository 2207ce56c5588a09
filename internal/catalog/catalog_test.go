package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"darkops-lab/internal/models"
)

func TestDefaultCatalog(t *testing.T) {
	attacks, err := FileLoader("")()
	if err != nil {
		t.Fatalf("Unexpected error loading embedded catalog: %v", err)
	}

	byID := make(map[string]models.Attack)
	for _, a := range attacks {
		byID[a.ID] = a
	}

	for _, id := range []string{"ddos_attack", "ransomware_attack", "mitm_attack", "sql_injection"} {
		if _, ok := byID[id]; !ok {
			t.Errorf("Expected attack %s in default catalog", id)
		}
	}

	ddos := byID["ddos_attack"]
	if len(ddos.Steps) != 4 {
		t.Errorf("Expected ddos_attack to have 4 steps, got %d", len(ddos.Steps))
	}
	if q, ok := ddos.Question("q1"); !ok || q.CorrectAnswer != 1 {
		t.Errorf("Expected ddos_attack q1 correct answer 1, got %+v", q)
	}
	if q, ok := ddos.Question("q2"); !ok || q.CorrectAnswer != 2 {
		t.Errorf("Expected ddos_attack q2 correct answer 2, got %+v", q)
	}

	mitm := byID["mitm_attack"]
	if len(mitm.Quiz.Questions) != 1 || mitm.Quiz.Questions[0].CorrectAnswer != 2 {
		t.Errorf("Expected mitm_attack to have a single question with answer 2, got %+v", mitm.Quiz.Questions)
	}
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"invalid json", `{"id":`},
		{"missing id", `[{"name":"x"}]`},
		{"duplicate id", `[{"id":"a"},{"id":"a"}]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.data)); err == nil {
				t.Error("Expected parse error")
			}
		})
	}
}

func TestFileLoaderReadsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attacks.json")
	if err := os.WriteFile(path, []byte(`[{"id":"custom","steps":[{"id":"s1"}]}]`), 0644); err != nil {
		t.Fatal(err)
	}

	attacks, err := FileLoader(path)()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(attacks) != 1 || attacks[0].ID != "custom" {
		t.Errorf("Expected single custom attack, got %+v", attacks)
	}

	if _, err := FileLoader(filepath.Join(t.TempDir(), "missing.json"))(); err == nil {
		t.Error("Expected error for missing catalog file")
	}
}

type countingLoader struct {
	calls   int
	attacks []models.Attack
}

func (l *countingLoader) load() ([]models.Attack, error) {
	l.calls++
	return l.attacks, nil
}

func TestCatalogReadThrough(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{attacks: []models.Attack{{ID: "a"}, {ID: "b"}}}
	c := New(loader.load, NewMemoryCache(), time.Minute)

	if _, err := c.Get(ctx, "a"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := c.Get(ctx, "b"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := c.List(ctx); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if loader.calls != 1 {
		t.Errorf("Expected a single catalog load, got %d", loader.calls)
	}

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrAttackNotFound) {
		t.Errorf("Expected ErrAttackNotFound, got %v", err)
	}
}

func TestCatalogInvalidateReloads(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{attacks: []models.Attack{{ID: "a", Name: "old"}}}
	c := New(loader.load, NewMemoryCache(), time.Minute)

	if _, err := c.Get(ctx, "a"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	loader.attacks = []models.Attack{{ID: "a", Name: "new"}}
	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	attack, err := c.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if attack.Name != "new" {
		t.Errorf("Expected reloaded attack name new, got %s", attack.Name)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewMemoryCache()
	cache.now = func() time.Time { return now }

	if err := cache.Set(ctx, "k", 42, time.Minute); err != nil {
		t.Fatal(err)
	}

	var got int
	if found, err := cache.Get(ctx, "k", &got); err != nil || !found || got != 42 {
		t.Fatalf("Get before expiry = (%v, %v, %d), want (true, nil, 42)", found, err, got)
	}

	now = now.Add(2 * time.Minute)
	if found, _ := cache.Get(ctx, "k", &got); found {
		t.Error("Expected entry to expire")
	}
}
