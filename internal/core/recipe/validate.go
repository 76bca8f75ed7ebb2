package recipe

import (
	"fmt"
	"strings"
)

// ValidationResult collects human-readable findings for one recipe document.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// OK reports whether the recipe passed with no errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate checks a recipe document against the schema the site renders
// from. Errors name the offending field; warnings flag optional fields
// worth filling in.
func Validate(rec *Recipe) ValidationResult {
	var res ValidationResult

	check := func(field string, ok bool, message string) {
		if !ok {
			res.Errors = append(res.Errors, fmt.Sprintf("%s (field: %s)", message, field))
		}
	}

	check("id", rec.ID != "", "Missing or invalid 'id'")
	check("title", rec.Title != "", "Missing or invalid 'title'")
	check("sections", rec.Sections != nil, "'sections' must be an array")

	if rec.Description == "" {
		res.Warnings = append(res.Warnings, "No description provided.")
	}

	for i, section := range rec.Sections {
		validateSection(&res, section, i)
	}

	return res
}

func validateSection(res *ValidationResult, section Section, index int) {
	if section.Title == "" {
		res.Errors = append(res.Errors, fmt.Sprintf("Section %d missing 'title'", index))
	}
	if section.Type == "" {
		res.Errors = append(res.Errors, fmt.Sprintf("Section %d missing 'type'", index))
	}
	if !sectionHasItems(section) {
		res.Errors = append(res.Errors, fmt.Sprintf("Section %d missing 'items'", index))
	}

	if section.Type == TypeCategorizedIngredients {
		var missing []string
		for _, cat := range Categories {
			if _, ok := section.Items.Categories[cat]; !ok {
				missing = append(missing, cat)
			}
		}
		if len(missing) > 0 {
			res.Errors = append(res.Errors,
				fmt.Sprintf("Section %d missing categories: %s", index, strings.Join(missing, ", ")))
		}
	}
}

func sectionHasItems(section Section) bool {
	switch section.Type {
	case TypeCategorizedIngredients:
		return section.Items.Categories != nil
	case TypeChecklist:
		return len(section.Items.Checklist) > 0
	case TypeIngredients, TypeSteps, TypeNutrition:
		return len(section.Items.Strings) > 0
	default:
		return len(section.Items.Raw) > 0
	}
}
