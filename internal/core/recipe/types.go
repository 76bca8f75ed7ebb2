package recipe

import (
	"encoding/json"
	"fmt"
)

// Section types understood by the site.
const (
	TypeIngredients            = "ingredients"
	TypeSteps                  = "steps"
	TypeNutrition              = "nutrition"
	TypeChecklist              = "checklist"
	TypeCategorizedIngredients = "categorized-ingredients"
)

// Storage categories used by categorized-ingredients sections. All four keys
// must be present in a valid section, possibly with empty lists.
const (
	CategoryFreezer      = "freezer"
	CategoryRefrigerator = "refrigerator"
	CategoryPantry       = "pantry"
	CategoryOther        = "other"
)

// Categories in the order a categorized-ingredients section must carry them.
var Categories = []string{CategoryFreezer, CategoryRefrigerator, CategoryPantry, CategoryOther}

// Recipe is one persisted recipe document.
type Recipe struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Day         string    `json:"day"`
	Description string    `json:"description,omitempty"`
	Link        string    `json:"link,omitempty"`
	Sections    []Section `json:"sections"`
}

// Entry is one structured ingredient. In recipe files an entry may also
// appear as a bare string; that form decodes into an Entry holding only the
// name and encodes back to a bare string.
type Entry struct {
	Name   string `json:"name"`
	Amount string `json:"amount,omitempty"`
	Unit   string `json:"unit,omitempty"`
	Note   string `json:"note,omitempty"`
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = Entry{Name: s}
		return nil
	}
	type plain Entry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("ingredient entry must be a string or an object: %w", err)
	}
	*e = Entry(p)
	return nil
}

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Amount == "" && e.Unit == "" && e.Note == "" {
		return json.Marshal(e.Name)
	}
	type plain Entry
	return json.Marshal(plain(e))
}

// ChecklistItem is one checklist line: either free text, optionally carrying
// a "<Category>: " storage prefix, or a structured entry.
type ChecklistItem struct {
	Text  string
	Entry *Entry
}

func (c *ChecklistItem) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = ChecklistItem{Text: s}
		return nil
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("checklist item must be a string or an object: %w", err)
	}
	*c = ChecklistItem{Entry: &e}
	return nil
}

func (c ChecklistItem) MarshalJSON() ([]byte, error) {
	if c.Entry != nil {
		return json.Marshal(c.Entry)
	}
	return json.Marshal(c.Text)
}

// SectionItems is the tagged union of item shapes a section can hold. The
// section's type field decides which arm is populated; traversal code
// dispatches on the type instead of probing the shape at runtime.
type SectionItems struct {
	Strings    []string           // ingredients, steps, nutrition
	Checklist  []ChecklistItem    // checklist
	Categories map[string][]Entry // categorized-ingredients
	Raw        json.RawMessage    // unrecognized section types, kept verbatim
}

// Section is one titled block of a recipe.
type Section struct {
	Title string
	Type  string
	Items SectionItems
}

type sectionJSON struct {
	Title string          `json:"title"`
	Type  string          `json:"type"`
	Items json.RawMessage `json:"items"`
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var aux sectionJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.Title = aux.Title
	s.Type = aux.Type
	s.Items = SectionItems{}

	if len(aux.Items) == 0 {
		return nil
	}

	switch aux.Type {
	case TypeIngredients, TypeSteps, TypeNutrition:
		if err := json.Unmarshal(aux.Items, &s.Items.Strings); err != nil {
			return fmt.Errorf("section %q: items must be a list of strings: %w", aux.Title, err)
		}
	case TypeChecklist:
		if err := json.Unmarshal(aux.Items, &s.Items.Checklist); err != nil {
			return fmt.Errorf("section %q: %w", aux.Title, err)
		}
	case TypeCategorizedIngredients:
		if err := json.Unmarshal(aux.Items, &s.Items.Categories); err != nil {
			return fmt.Errorf("section %q: items must map categories to entries: %w", aux.Title, err)
		}
	default:
		s.Items.Raw = append(json.RawMessage(nil), aux.Items...)
	}
	return nil
}

func (s Section) MarshalJSON() ([]byte, error) {
	var items interface{}
	switch s.Type {
	case TypeIngredients, TypeSteps, TypeNutrition:
		items = s.Items.Strings
	case TypeChecklist:
		items = s.Items.Checklist
	case TypeCategorizedIngredients:
		items = s.Items.Categories
	default:
		if s.Items.Raw != nil {
			items = s.Items.Raw
		}
	}
	return json.Marshal(sectionJSONOut{Title: s.Title, Type: s.Type, Items: items})
}

type sectionJSONOut struct {
	Title string      `json:"title"`
	Type  string      `json:"type"`
	Items interface{} `json:"items"`
}
