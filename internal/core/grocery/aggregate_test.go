package grocery

import (
	"encoding/json"
	"testing"

	"github.com/ryan-miles/meals.stellation.one/internal/core/recipe"
	"github.com/ryan-miles/meals.stellation.one/internal/core/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRecipe(t *testing.T, raw string) recipe.Recipe {
	t.Helper()
	var rec recipe.Recipe
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	return rec
}

func strPtr(s string) *string { return &s }

func groupByName(groups []Group, category string) *Group {
	for i := range groups {
		if groups[i].Category == category {
			return &groups[i]
		}
	}
	return nil
}

func TestRouteChecklistLine(t *testing.T) {
	cases := []struct {
		line      string
		wantGroup string
		wantName  string
	}{
		{"freezer: frozen peas", "freezer", "frozen peas"},
		{"refrigerator: milk", "refrigerator", "milk"},
		{"pantry: rice", "pantry", "rice"},
		{"produce: two avocados", "refrigerator", "two avocados"},
		{"Produce: Avocado (2)", "refrigerator", "Avocado (2)"},
		{"FREEZER: Shrimp", "freezer", "Shrimp"},
		{"paper towels", "pantry", "paper towels"},
		{"freezer burn remedy", "pantry", "freezer burn remedy"},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			group, name := routeChecklistLine(tc.line)
			assert.Equal(t, tc.wantGroup, group)
			assert.Equal(t, tc.wantName, name)
		})
	}
}

func TestAggregate(t *testing.T) {
	tacos := mustRecipe(t, `{
		"id": "tacos", "title": "Tacos",
		"sections": [{
			"title": "Ingredients", "type": "categorized-ingredients",
			"items": {
				"freezer": [{"name": "corn", "amount": "1", "unit": "cup"}],
				"refrigerator": [{"name": "cheese", "amount": "8", "unit": "oz"}],
				"pantry": [{"name": "black beans", "amount": "1", "unit": "can"}],
				"other": ["Napkins"]
			}
		}]
	}`)
	soup := mustRecipe(t, `{
		"id": "soup", "title": "Soup",
		"sections": [{
			"title": "Shopping", "type": "checklist",
			"items": [
				"produce: two avocados",
				"freezer: corn",
				"crackers",
				{"name": "Black Beans", "amount": "2", "unit": "can"}
			]
		}]
	}`)
	steak := mustRecipe(t, `{
		"id": "steak", "title": "Steak",
		"sections": [
			{"title": "Instructions", "type": "steps", "items": ["Sear it."]}
		]
	}`)

	sched := &schedule.Schedule{
		WeekStart: "2026-09-07",
		Monday:    strPtr("tacos"),
		Tuesday:   strPtr("soup"),
		Wednesday: strPtr("steak"),
		Thursday:  strPtr("missing-from-store"),
	}
	recipes := []recipe.Recipe{tacos, soup, steak}

	t.Run("groups by storage category in display order", func(t *testing.T) {
		groups := Aggregate(sched, recipes, Options{ShowEmptyGroups: true})
		require.Len(t, groups, 3)
		assert.Equal(t, "freezer", groups[0].Category)
		assert.Equal(t, "refrigerator", groups[1].Category)
		assert.Equal(t, "pantry", groups[2].Category)
	})

	t.Run("other category never reaches the list", func(t *testing.T) {
		groups := Aggregate(sched, recipes, Options{ShowEmptyGroups: true})
		for _, g := range groups {
			assert.NotEqual(t, "other", g.Category)
			for _, item := range g.Items {
				assert.NotEqual(t, "Napkins", item.Name)
			}
		}
	})

	t.Run("checklist lines route by prefix", func(t *testing.T) {
		groups := Aggregate(sched, recipes, Options{ShowEmptyGroups: true})
		fridge := groupByName(groups, "refrigerator")
		require.NotNil(t, fridge)
		names := []string{}
		for _, item := range fridge.Items {
			names = append(names, item.Name)
		}
		assert.Contains(t, names, "two avocados") // produce: folds into refrigerator
		assert.Contains(t, names, "cheese")

		pantry := groupByName(groups, "pantry")
		require.NotNil(t, pantry)
		names = names[:0]
		for _, item := range pantry.Items {
			names = append(names, item.Name)
		}
		assert.Contains(t, names, "crackers") // no prefix defaults to pantry
	})

	t.Run("duplicates collapse case-insensitively, first wins", func(t *testing.T) {
		groups := Aggregate(sched, recipes, Options{ShowEmptyGroups: true})

		freezer := groupByName(groups, "freezer")
		require.NotNil(t, freezer)
		// tacos' "corn" (unit cup) and soup's bare "corn" differ by unit,
		// so both survive.
		assert.Len(t, freezer.Items, 2)

		pantry := groupByName(groups, "pantry")
		require.NotNil(t, pantry)
		var beans []recipe.Entry
		for _, item := range pantry.Items {
			if item.Name == "black beans" || item.Name == "Black Beans" {
				beans = append(beans, item)
			}
		}
		require.Len(t, beans, 1)
		// Monday's tacos came first, so its casing and amount win.
		assert.Equal(t, "black beans", beans[0].Name)
		assert.Equal(t, "1", beans[0].Amount)
	})

	t.Run("empty groups are dropped when configured", func(t *testing.T) {
		empty := &schedule.Schedule{WeekStart: "2026-09-07", Monday: strPtr("steak")}
		groups := Aggregate(empty, recipes, Options{})
		assert.Empty(t, groups)

		groups = Aggregate(empty, recipes, Options{ShowEmptyGroups: true})
		require.Len(t, groups, 3)
		for _, g := range groups {
			assert.NotNil(t, g.Items)
			assert.Empty(t, g.Items)
		}
	})

	t.Run("null and unknown schedule ids are skipped", func(t *testing.T) {
		groups := Aggregate(sched, recipes, Options{})
		// Thursday points at a missing recipe and Friday is null; neither
		// contributes nor fails.
		require.NotEmpty(t, groups)
	})
}

func TestAggregateTwoRecipeWeek(t *testing.T) {
	r1 := mustRecipe(t, `{
		"id": "r1", "title": "R1",
		"sections": [{
			"title": "Shopping", "type": "checklist",
			"items": ["Pantry: Rice (1 cup)", "Refrigerator: Chicken (1 lb)"]
		}]
	}`)
	r2 := mustRecipe(t, `{
		"id": "r2", "title": "R2",
		"sections": [{
			"title": "Ingredients", "type": "categorized-ingredients",
			"items": {"pantry": ["Garlic"], "freezer": [], "refrigerator": [], "other": ["Napkins"]}
		}]
	}`)
	sched := &schedule.Schedule{
		WeekStart: "2025-05-26",
		Monday:    strPtr("r1"),
		Tuesday:   strPtr("r2"),
	}

	groups := Aggregate(sched, []recipe.Recipe{r1, r2}, Options{ShowEmptyGroups: true})
	require.Len(t, groups, 3)

	assert.Equal(t, "freezer", groups[0].Category)
	assert.Empty(t, groups[0].Items)

	assert.Equal(t, "refrigerator", groups[1].Category)
	assert.Equal(t, []recipe.Entry{{Name: "Chicken (1 lb)"}}, groups[1].Items)

	assert.Equal(t, "pantry", groups[2].Category)
	assert.Equal(t, []recipe.Entry{{Name: "Rice (1 cup)"}, {Name: "Garlic"}}, groups[2].Items)
}
