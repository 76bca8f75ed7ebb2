// Package grocery folds the week's recipes into a categorized shopping list.
package grocery

import (
	"strings"

	"github.com/ryan-miles/meals.stellation.one/internal/core/recipe"
	"github.com/ryan-miles/meals.stellation.one/internal/core/schedule"
)

// Storage groups in display order. "other" never reaches the grocery list;
// it exists only for the per-recipe renderers.
var GroupOrder = []string{
	recipe.CategoryFreezer,
	recipe.CategoryRefrigerator,
	recipe.CategoryPantry,
}

// Checklist prefixes tested in priority order. "produce:" folds into the
// refrigerator group.
var checklistPrefixes = []struct {
	prefix string
	group  string
}{
	{"freezer:", recipe.CategoryFreezer},
	{"refrigerator:", recipe.CategoryRefrigerator},
	{"pantry:", recipe.CategoryPantry},
	{"produce:", recipe.CategoryRefrigerator},
}

// Group is one storage category of the aggregated list.
type Group struct {
	Category string         `json:"category"`
	Items    []recipe.Entry `json:"items"`
}

// Options controls presentation details the historical renderers disagreed
// on.
type Options struct {
	// ShowEmptyGroups keeps a category present with an empty item list
	// instead of omitting it.
	ShowEmptyGroups bool
}

// Aggregate resolves the schedule's weekdays against the given recipe
// collection and groups every ingredient by storage category. Weekdays with
// a null id or an id missing from the collection are silently skipped.
// Within each group, duplicates (same lowercased name|unit|note) collapse to
// the first occurrence in weekday encounter order.
func Aggregate(sched *schedule.Schedule, recipes []recipe.Recipe, opts Options) []Group {
	byID := make(map[string]*recipe.Recipe, len(recipes))
	for i := range recipes {
		byID[recipes[i].ID] = &recipes[i]
	}

	grouped := map[string][]recipe.Entry{}
	for _, day := range schedule.Weekdays {
		id := sched.Day(day)
		if id == "" {
			continue
		}
		rec, ok := byID[id]
		if !ok {
			continue
		}
		collectRecipe(grouped, rec)
	}

	var out []Group
	for _, category := range GroupOrder {
		items := dedupe(grouped[category])
		if len(items) == 0 && !opts.ShowEmptyGroups {
			continue
		}
		if items == nil {
			items = []recipe.Entry{}
		}
		out = append(out, Group{Category: category, Items: items})
	}
	return out
}

func collectRecipe(grouped map[string][]recipe.Entry, rec *recipe.Recipe) {
	for _, section := range rec.Sections {
		switch section.Type {
		case recipe.TypeCategorizedIngredients:
			for _, category := range GroupOrder {
				grouped[category] = append(grouped[category], section.Items.Categories[category]...)
			}
		case recipe.TypeChecklist:
			for _, item := range section.Items.Checklist {
				if item.Entry != nil {
					grouped[recipe.CategoryPantry] = append(grouped[recipe.CategoryPantry], *item.Entry)
					continue
				}
				group, name := routeChecklistLine(item.Text)
				grouped[group] = append(grouped[group], recipe.Entry{Name: name})
			}
		}
		// Other section types carry no grocery information.
	}
}

// routeChecklistLine maps a free-text checklist line to its storage group.
// A recognized "<Category>: " prefix is stripped; anything else defaults to
// the pantry unchanged.
func routeChecklistLine(line string) (group, name string) {
	lower := strings.ToLower(line)
	for _, p := range checklistPrefixes {
		if strings.HasPrefix(lower, p.prefix) {
			return p.group, strings.TrimSpace(line[len(p.prefix):])
		}
	}
	return recipe.CategoryPantry, line
}

// dedupe keeps the first occurrence of each name|unit|note key, preserving
// encounter order. First-seen wins, so display attributes like amount come
// from the earliest weekday that used the ingredient.
func dedupe(entries []recipe.Entry) []recipe.Entry {
	if len(entries) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(entries))
	var out []recipe.Entry
	for _, e := range entries {
		key := strings.ToLower(e.Name + "|" + e.Unit + "|" + e.Note)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}
