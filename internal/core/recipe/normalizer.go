package recipe

import (
	"context"
	"fmt"
	"strings"

	"github.com/ryan-miles/meals.stellation.one/internal/pkg/common"

	"go.uber.org/zap"
)

// normalizePrompt mandates the exact document schema and forbids anything
// outside the JSON object. The model is still not trusted to comply; see
// the extraction below.
const normalizePrompt = `You are a structured data formatter. Convert the following plain text recipe into a JSON object.
The JSON object must have the following fields:
- "title": A string for the recipe title.
- "day": A string for the date in "YYYY-MM-DD" format. If not available in the text, use the current date or leave empty.
- "description": A brief string describing the recipe.
- "link": A string for the source URL if available in the text, otherwise an empty string.
- "sections": An array of section objects. Each section object must have:
  - "title": A string for the section title (e.g., "Ingredients", "Instructions", "Nutrition").
  - "type": A string indicating the type of section. This should be one of: "ingredients", "steps", "nutrition".
  - "items": An array of strings. For "ingredients", these are formatted ingredients. For "steps", these are numbered instructions. For "nutrition", these are nutrition facts.

Do NOT include an "id" field in the JSON output.
Do NOT include any extra text, comments, or markdown formatting outside the main JSON object. Only return the valid JSON object.

Here is the recipe text:
%s`

// TextGenerator produces free text from a prompt via a hosted model.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Writer is the slice of the document store the normalizer persists through.
type Writer interface {
	PutRecipe(ctx context.Context, rec *Recipe) error
}

// NormalizeResult is the outcome of one normalization run. Saved is false
// either when no writer was configured or when the write failed; the two
// cases are told apart by SaveErr.
type NormalizeResult struct {
	Filename string
	Recipe   *Recipe
	Saved    bool
	SaveErr  error
}

// Normalizer converts free-form recipe text into a structured document.
type Normalizer struct {
	textGen TextGenerator
	writer  Writer
}

// NewNormalizer creates a normalizer. writer may be nil; the result is then
// returned without persistence.
func NewNormalizer(textGen TextGenerator, writer Writer) *Normalizer {
	return &Normalizer{textGen: textGen, writer: writer}
}

// Normalize sends the text to the generation model, extracts the JSON
// document from the response, and derives the id from the title. The model
// response is never trusted to be bare JSON, and a model-provided id is
// always discarded in favor of the slug.
func (n *Normalizer) Normalize(ctx context.Context, recipeText string) (*NormalizeResult, error) {
	if strings.TrimSpace(recipeText) == "" {
		return nil, common.NewValidationError("missing or invalid recipeText")
	}

	responseText, err := n.textGen.GenerateContent(ctx, fmt.Sprintf(normalizePrompt, recipeText))
	if err != nil {
		return nil, err
	}

	span := common.ExtractJSONObject(responseText)
	if span == "" {
		common.LogError("no JSON object found in generation response",
			zap.Int("response_length", len(responseText)),
		)
		return nil, common.NewUpstreamFormatError("AI response did not contain a parsable JSON object", nil)
	}

	var rec Recipe
	if err := common.ParseJSON(span, &rec); err != nil {
		common.LogError("failed to parse extracted JSON from generation response", zap.Error(err))
		return nil, common.NewUpstreamFormatError("AI did not return valid JSON content after extraction", err)
	}

	title := rec.Title
	if title == "" {
		// Downstream requires an id, so an untitled document still gets one.
		common.LogWarn("generation response missing 'title' field, using fallback slug")
		title = "untitled-recipe"
	}
	rec.ID = Slugify(title)

	result := &NormalizeResult{
		Filename: rec.ID + ".json",
		Recipe:   &rec,
	}

	if n.writer != nil {
		if err := n.writer.PutRecipe(ctx, &rec); err != nil {
			// Generation succeeded; the failed write is reported separately
			// rather than discarding the document.
			common.LogError("failed to persist normalized recipe",
				zap.String("id", rec.ID),
				zap.Error(err),
			)
			result.SaveErr = err
		} else {
			result.Saved = true
		}
	}

	return result, nil
}
