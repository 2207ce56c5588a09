package catalog

import (
	"context"
	"errors"
	"log"
	"time"

	"darkops-lab/internal/models"
)

var ErrAttackNotFound = errors.New("attack not found")

const (
	listKey         = "catalog:attacks"
	attackKeyPrefix = "catalog:attack:"
)

// Catalog is a read-through cache over the static attack catalog. Entries
// expire after ttl and are reloaded from the loader on the next read;
// Invalidate drops them immediately.
type Catalog struct {
	load  Loader
	cache Cache
	ttl   time.Duration
}

func New(load Loader, cache Cache, ttl time.Duration) *Catalog {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Catalog{load: load, cache: cache, ttl: ttl}
}

// List returns every attack in catalog order.
func (c *Catalog) List(ctx context.Context) ([]models.Attack, error) {
	var attacks []models.Attack
	found, err := c.cache.Get(ctx, listKey, &attacks)
	if err != nil {
		log.Printf("catalog cache read failed for %s: %v", listKey, err)
	}
	if found {
		return attacks, nil
	}

	attacks, err = c.load()
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, listKey, attacks, c.ttl); err != nil {
		log.Printf("catalog cache write failed for %s: %v", listKey, err)
	}
	return attacks, nil
}

// Get returns the attack with the given id or ErrAttackNotFound.
func (c *Catalog) Get(ctx context.Context, id string) (*models.Attack, error) {
	key := attackKeyPrefix + id

	var attack models.Attack
	found, err := c.cache.Get(ctx, key, &attack)
	if err != nil {
		log.Printf("catalog cache read failed for %s: %v", key, err)
	}
	if found {
		return &attack, nil
	}

	attacks, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range attacks {
		if attacks[i].ID == id {
			if err := c.cache.Set(ctx, key, attacks[i], c.ttl); err != nil {
				log.Printf("catalog cache write failed for %s: %v", key, err)
			}
			return &attacks[i], nil
		}
	}
	return nil, ErrAttackNotFound
}

// Invalidate drops every cached entry so the next read reloads the catalog.
func (c *Catalog) Invalidate(ctx context.Context) error {
	keys := []string{listKey}

	var attacks []models.Attack
	if found, _ := c.cache.Get(ctx, listKey, &attacks); found {
		for _, attack := range attacks {
			keys = append(keys, attackKeyPrefix+attack.ID)
		}
	}
	// Ids from the current source too, in case the cached list expired first.
	if fresh, err := c.load(); err == nil {
		for _, attack := range fresh {
			keys = append(keys, attackKeyPrefix+attack.ID)
		}
	}
	return c.cache.Delete(ctx, keys...)
}
