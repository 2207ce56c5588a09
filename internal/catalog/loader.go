package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"darkops-lab/internal/models"
)

//go:embed attacks.json
var defaultAttacks []byte

// Loader returns the full attack list from static storage.
type Loader func() ([]models.Attack, error)

// FileLoader reads the catalog from path, or from the embedded default when
// path is empty.
func FileLoader(path string) Loader {
	return func() ([]models.Attack, error) {
		data := defaultAttacks
		if path != "" {
			var err error
			data, err = os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read attack catalog %s: %w", path, err)
			}
		}
		return Parse(data)
	}
}

func Parse(data []byte) ([]models.Attack, error) {
	var attacks []models.Attack
	if err := json.Unmarshal(data, &attacks); err != nil {
		return nil, fmt.Errorf("failed to parse attack catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(attacks))
	for i, attack := range attacks {
		if attack.ID == "" {
			return nil, fmt.Errorf("attack at index %d has no id", i)
		}
		if _, dup := seen[attack.ID]; dup {
			return nil, fmt.Errorf("duplicate attack id %q", attack.ID)
		}
		seen[attack.ID] = struct{}{}
	}
	return attacks, nil
}
