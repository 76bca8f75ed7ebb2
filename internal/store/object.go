package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ryan-miles/meals.stellation.one/internal/core/recipe"
	"github.com/ryan-miles/meals.stellation.one/internal/core/schedule"
	"github.com/ryan-miles/meals.stellation.one/internal/pkg/common"
)

// ObjectStore keeps one JSON object per recipe under a prefix, plus a single
// schedule object. Listing is a prefix listing with .json suffix filtering;
// the filename minus the suffix recovers the recipe id. The filename is not
// required to match the document's id field.
type ObjectStore struct {
	baseDir     string
	recipesDir  string
	scheduleKey string
}

// NewObjectStore creates the store and ensures its directories exist.
func NewObjectStore(baseDir, recipesPrefix, scheduleKey string) (*ObjectStore, error) {
	recipesDir := filepath.Join(baseDir, filepath.FromSlash(recipesPrefix))
	if err := os.MkdirAll(recipesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create recipes directory %s: %w", recipesDir, err)
	}
	return &ObjectStore{
		baseDir:     baseDir,
		recipesDir:  recipesDir,
		scheduleKey: filepath.Join(baseDir, filepath.FromSlash(scheduleKey)),
	}, nil
}

// ListRecipeIDs lists every .json object under the recipes prefix and strips
// the suffix to recover the ids.
func (s *ObjectStore) ListRecipeIDs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.recipesDir)
	if err != nil {
		return nil, common.NewStoreReadError(err)
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return ids, nil
}

// ListRecipes reads every recipe object under the prefix.
func (s *ObjectStore) ListRecipes(ctx context.Context) ([]recipe.Recipe, error) {
	ids, err := s.ListRecipeIDs(ctx)
	if err != nil {
		return nil, err
	}
	recipes := make([]recipe.Recipe, 0, len(ids))
	for _, id := range ids {
		rec, err := s.GetRecipe(ctx, id)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *rec)
	}
	return recipes, nil
}

// GetRecipe reads one recipe object by id.
func (s *ObjectStore) GetRecipe(ctx context.Context, id string) (*recipe.Recipe, error) {
	data, err := os.ReadFile(filepath.Join(s.recipesDir, id+".json"))
	if err != nil {
		return nil, common.NewStoreReadError(err)
	}
	var rec recipe.Recipe
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, common.NewStoreReadError(fmt.Errorf("recipe %s: %w", id, err))
	}
	return &rec, nil
}

// PutRecipe writes one recipe object keyed by its id.
func (s *ObjectStore) PutRecipe(ctx context.Context, rec *recipe.Recipe) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return common.NewStoreWriteError(err)
	}
	path := filepath.Join(s.recipesDir, rec.ID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return common.NewStoreWriteError(err)
	}
	return nil
}

// GetSchedule reads the schedule object.
func (s *ObjectStore) GetSchedule(ctx context.Context) (*schedule.Schedule, error) {
	data, err := os.ReadFile(s.scheduleKey)
	if err != nil {
		return nil, common.NewStoreReadError(err)
	}
	var sched schedule.Schedule
	if err := json.Unmarshal(data, &sched); err != nil {
		return nil, common.NewStoreReadError(err)
	}
	return &sched, nil
}

// PutSchedule overwrites the schedule object wholesale.
func (s *ObjectStore) PutSchedule(ctx context.Context, sched *schedule.Schedule) error {
	data, err := json.MarshalIndent(sched, "", "  ")
	if err != nil {
		return common.NewStoreWriteError(err)
	}
	if err := os.WriteFile(s.scheduleKey, data, 0644); err != nil {
		return common.NewStoreWriteError(err)
	}
	return nil
}
