package recipe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionUnmarshal(t *testing.T) {
	t.Run("string list sections", func(t *testing.T) {
		var sec Section
		raw := `{"title": "Instructions", "type": "steps", "items": ["Chop.", "Cook."]}`
		require.NoError(t, json.Unmarshal([]byte(raw), &sec))
		assert.Equal(t, []string{"Chop.", "Cook."}, sec.Items.Strings)
		assert.Nil(t, sec.Items.Checklist)
	})

	t.Run("checklist mixes strings and entry objects", func(t *testing.T) {
		var sec Section
		raw := `{"title": "Shopping", "type": "checklist", "items": [
			"freezer: frozen peas",
			{"name": "butter", "amount": "1", "unit": "stick"}
		]}`
		require.NoError(t, json.Unmarshal([]byte(raw), &sec))
		require.Len(t, sec.Items.Checklist, 2)
		assert.Equal(t, "freezer: frozen peas", sec.Items.Checklist[0].Text)
		require.NotNil(t, sec.Items.Checklist[1].Entry)
		assert.Equal(t, "butter", sec.Items.Checklist[1].Entry.Name)
		assert.Equal(t, "stick", sec.Items.Checklist[1].Entry.Unit)
	})

	t.Run("categorized entries accept bare strings", func(t *testing.T) {
		var sec Section
		raw := `{"title": "Ingredients", "type": "categorized-ingredients", "items": {
			"freezer": ["frozen corn"],
			"refrigerator": [{"name": "milk", "amount": "2", "unit": "cups"}],
			"pantry": [],
			"other": ["napkins"]
		}}`
		require.NoError(t, json.Unmarshal([]byte(raw), &sec))
		assert.Equal(t, []Entry{{Name: "frozen corn"}}, sec.Items.Categories["freezer"])
		assert.Equal(t, "milk", sec.Items.Categories["refrigerator"][0].Name)
	})

	t.Run("unknown type keeps items verbatim", func(t *testing.T) {
		var sec Section
		raw := `{"title": "Notes", "type": "freeform", "items": {"anything": [1, 2]}}`
		require.NoError(t, json.Unmarshal([]byte(raw), &sec))
		assert.JSONEq(t, `{"anything": [1, 2]}`, string(sec.Items.Raw))

		out, err := json.Marshal(sec)
		require.NoError(t, err)
		assert.JSONEq(t, raw, string(out))
	})

	t.Run("wrong item shape for typed section fails", func(t *testing.T) {
		var sec Section
		raw := `{"title": "Instructions", "type": "steps", "items": {"not": "a list"}}`
		err := json.Unmarshal([]byte(raw), &sec)
		assert.Error(t, err)
	})
}

func TestEntryRoundTrip(t *testing.T) {
	t.Run("bare string keeps its shape", func(t *testing.T) {
		var e Entry
		require.NoError(t, json.Unmarshal([]byte(`"2 cloves garlic"`), &e))
		assert.Equal(t, Entry{Name: "2 cloves garlic"}, e)

		out, err := json.Marshal(e)
		require.NoError(t, err)
		assert.Equal(t, `"2 cloves garlic"`, string(out))
	})

	t.Run("structured entry keeps its shape", func(t *testing.T) {
		e := Entry{Name: "milk", Amount: "2", Unit: "cups", Note: "whole"}
		out, err := json.Marshal(e)
		require.NoError(t, err)

		var back Entry
		require.NoError(t, json.Unmarshal(out, &back))
		assert.Equal(t, e, back)
	})
}
