package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"ai-trainer/internal/storage"
)

// DefaultPlanKey is the storage slot holding the current plan.
const DefaultPlanKey = "aiFitnessPlan_v1"

// PlanCache persists at most one plan under a fixed key.
type PlanCache struct {
	store storage.Store
	key   string
}

// NewPlanCache creates a PlanCache over store. An empty key selects
// DefaultPlanKey; callers that need one slot per user pass their own key.
func NewPlanCache(store storage.Store, key string) *PlanCache {
	if key == "" {
		key = DefaultPlanKey
	}
	return &PlanCache{store: store, key: key}
}

// Key returns the storage key of the slot.
func (c *PlanCache) Key() string {
	return c.key
}

// Save replaces the slot with plan.
func (c *PlanCache) Save(ctx context.Context, plan *FitnessPlan) error {
	if plan == nil {
		return fmt.Errorf("cannot save a nil plan")
	}
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	return c.store.Put(ctx, c.key, data)
}

// Load returns the stored plan, or nil when the slot is empty. A stored
// value that is not a complete plan is deleted and reported as no plan.
func (c *PlanCache) Load(ctx context.Context) (*FitnessPlan, error) {
	data, err := c.store.Get(ctx, c.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read stored plan: %w", err)
	}

	result, err := ValidatePlanJSON(data)
	if err == nil && result.Valid() {
		return result.Plan, nil
	}

	log.Printf("Warning: invalid stored plan under %s, removing it", c.key)
	if err := c.store.Delete(ctx, c.key); err != nil {
		log.Printf("Warning: failed to remove invalid stored plan: %v", err)
	}
	return nil, nil
}

// Clear empties the slot.
func (c *PlanCache) Clear(ctx context.Context) error {
	if err := c.store.Delete(ctx, c.key); err != nil {
		return fmt.Errorf("failed to clear stored plan: %w", err)
	}
	return nil
}
