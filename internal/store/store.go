// Package store provides access to the recipe and schedule documents behind
// one interface with two interchangeable backends: an object layout on the
// filesystem (prefix listing, one JSON file per recipe) and a key-value
// table on Redis holding the attribute-tagged encoding.
package store

import (
	"context"
	"fmt"

	"github.com/ryan-miles/meals.stellation.one/internal/core/recipe"
	"github.com/ryan-miles/meals.stellation.one/internal/core/schedule"
	"github.com/ryan-miles/meals.stellation.one/internal/infrastructure/config"
)

// Store is the document-store capability the rest of the system depends on.
// Recipes are written once and never deleted here; the schedule is the one
// document that gets overwritten on a weekly cadence.
type Store interface {
	ListRecipeIDs(ctx context.Context) ([]string, error)
	ListRecipes(ctx context.Context) ([]recipe.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*recipe.Recipe, error)
	PutRecipe(ctx context.Context, rec *recipe.Recipe) error
	GetSchedule(ctx context.Context) (*schedule.Schedule, error)
	PutSchedule(ctx context.Context, s *schedule.Schedule) error
}

// New builds the backend selected by the configuration.
func New(cfg *config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "object":
		return NewObjectStore(cfg.ObjectDir, cfg.RecipesPrefix, cfg.ScheduleKey)
	case "table":
		return NewTableStore(cfg)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
