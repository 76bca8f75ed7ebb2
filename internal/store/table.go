package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ryan-miles/meals.stellation.one/internal/core/recipe"
	"github.com/ryan-miles/meals.stellation.one/internal/core/schedule"
	"github.com/ryan-miles/meals.stellation.one/internal/infrastructure/config"
	"github.com/ryan-miles/meals.stellation.one/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// TableStore keeps each recipe as one table item under <prefix><id>, stored
// in the attribute-tagged encoding. Listing is a scan over the prefix with a
// projection of the id attribute; the projection tolerates items whose id is
// a bare scalar as well as the tagged {"S": ...} form.
type TableStore struct {
	client      *redis.Client
	prefix      string
	scheduleKey string
}

// NewTableStore connects to the configured Redis instance and pings it.
func NewTableStore(cfg *config.StoreConfig) (*TableStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("table store connected", zap.String("addr", cfg.RedisAddr))

	return &TableStore{
		client:      client,
		prefix:      cfg.TablePrefix,
		scheduleKey: cfg.TablePrefix + "schedule",
	}, nil
}

// Close releases the underlying connection pool.
func (s *TableStore) Close() error {
	return s.client.Close()
}

func (s *TableStore) scanKeys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if key == s.scheduleKey {
			continue
		}
		keys = append(keys, key)
	}
	if err := iter.Err(); err != nil {
		return nil, common.NewStoreReadError(err)
	}
	sort.Strings(keys)
	return keys, nil
}

// ListRecipeIDs scans the table and projects the id attribute of each item.
func (s *TableStore) ListRecipeIDs(ctx context.Context) ([]string, error) {
	keys, err := s.scanKeys(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, key := range keys {
		item, err := s.getItem(ctx, key)
		if err != nil {
			return nil, err
		}
		id, ok := ProjectID(item)
		if !ok {
			common.LogWarn("table item has no usable id attribute", zap.String("key", key))
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ListRecipes reads and decodes every recipe item.
func (s *TableStore) ListRecipes(ctx context.Context) ([]recipe.Recipe, error) {
	keys, err := s.scanKeys(ctx)
	if err != nil {
		return nil, err
	}
	recipes := make([]recipe.Recipe, 0, len(keys))
	for _, key := range keys {
		item, err := s.getItem(ctx, key)
		if err != nil {
			return nil, err
		}
		rec, err := itemToRecipe(item)
		if err != nil {
			// A corrupt item is skipped, not fatal for the listing.
			common.LogWarn("skipping undecodable table item",
				zap.String("key", key), zap.Error(err))
			continue
		}
		recipes = append(recipes, *rec)
	}
	return recipes, nil
}

// GetRecipe reads one recipe item by id.
func (s *TableStore) GetRecipe(ctx context.Context, id string) (*recipe.Recipe, error) {
	item, err := s.getItem(ctx, s.prefix+id)
	if err != nil {
		return nil, err
	}
	rec, err := itemToRecipe(item)
	if err != nil {
		return nil, common.NewStoreReadError(err)
	}
	return rec, nil
}

// PutRecipe writes one recipe as a tagged-attribute item.
func (s *TableStore) PutRecipe(ctx context.Context, rec *recipe.Recipe) error {
	doc, err := recipeToDoc(rec)
	if err != nil {
		return common.NewStoreWriteError(err)
	}
	encoded, err := EncodeDocument(doc)
	if err != nil {
		return common.NewStoreWriteError(err)
	}
	data, err := json.Marshal(encoded)
	if err != nil {
		return common.NewStoreWriteError(err)
	}
	if err := s.client.Set(ctx, s.prefix+rec.ID, data, 0).Err(); err != nil {
		return common.NewStoreWriteError(err)
	}
	return nil
}

// GetSchedule reads the schedule item. The schedule is stored as plain JSON;
// only recipe items carry the tagged encoding.
func (s *TableStore) GetSchedule(ctx context.Context) (*schedule.Schedule, error) {
	data, err := s.client.Get(ctx, s.scheduleKey).Bytes()
	if err != nil {
		return nil, common.NewStoreReadError(err)
	}
	var sched schedule.Schedule
	if err := json.Unmarshal(data, &sched); err != nil {
		return nil, common.NewStoreReadError(err)
	}
	return &sched, nil
}

// PutSchedule overwrites the schedule item wholesale.
func (s *TableStore) PutSchedule(ctx context.Context, sched *schedule.Schedule) error {
	data, err := json.Marshal(sched)
	if err != nil {
		return common.NewStoreWriteError(err)
	}
	if err := s.client.Set(ctx, s.scheduleKey, data, 0).Err(); err != nil {
		return common.NewStoreWriteError(err)
	}
	return nil
}

func (s *TableStore) getItem(ctx context.Context, key string) (map[string]interface{}, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, common.NewStoreReadError(err)
	}
	var item map[string]interface{}
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, common.NewStoreReadError(fmt.Errorf("item %s: %w", key, err))
	}
	return item, nil
}

// recipeToDoc flattens a typed recipe into the generic document shape the
// codec works on.
func recipeToDoc(rec *recipe.Recipe) (map[string]interface{}, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func itemToRecipe(item map[string]interface{}) (*recipe.Recipe, error) {
	doc, err := DecodeDocument(item)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var rec recipe.Recipe
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
