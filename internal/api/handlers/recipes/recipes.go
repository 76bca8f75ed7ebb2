package recipes

import (
	"net/http"

	"github.com/ryan-miles/meals.stellation.one/internal/core/recipe"
	"github.com/ryan-miles/meals.stellation.one/internal/pkg/common"
	"github.com/ryan-miles/meals.stellation.one/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NormalizeRequest is the body of a normalization trigger.
type NormalizeRequest struct {
	RecipeText string `json:"recipeText"`
}

// NormalizeResponse is the success body of a normalization run.
type NormalizeResponse struct {
	Filename     string         `json:"filename"`
	Recipe       *recipe.Recipe `json:"recipe"`
	SavedToStore bool           `json:"savedToStore"`
}

// Handler serves the recipe endpoints.
type Handler struct {
	normalizer *recipe.Normalizer
	store      store.Store
}

// NewHandler creates a recipe handler.
func NewHandler(normalizer *recipe.Normalizer, st store.Store) *Handler {
	return &Handler{normalizer: normalizer, store: st}
}

// HandleNormalize converts free-form recipe text into a structured document
// and persists it. The request fails with 400 on caller mistakes and 500
// otherwise; a store-write failure after a successful generation surfaces
// as its own 500 rather than silently dropping the document.
func (h *Handler) HandleNormalize(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("handling recipe normalization request",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("invalid request body",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request body"})
		return
	}

	result, err := h.normalizer.Normalize(c.Request.Context(), req.RecipeText)
	if err != nil {
		common.LogError("recipe normalization failed",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		switch {
		case common.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid recipeText field in JSON body"})
		case common.IsUpstreamFormatError(err):
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error processing request"})
		}
		return
	}

	if result.SaveErr != nil {
		// The document was generated; the caller must still learn the
		// write failed instead of assuming it landed.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    "Recipe generated but could not be saved to the store",
			"filename": result.Filename,
		})
		return
	}

	c.JSON(http.StatusOK, NormalizeResponse{
		Filename:     result.Filename,
		Recipe:       result.Recipe,
		SavedToStore: result.Saved,
	})
}

// HandleList returns every recipe document.
func (h *Handler) HandleList(c *gin.Context) {
	recipes, err := h.store.ListRecipes(c.Request.Context())
	if err != nil {
		common.LogError("failed to list recipes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read recipes"})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// HandleGet returns one recipe by id.
func (h *Handler) HandleGet(c *gin.Context) {
	id := c.Param("id")
	rec, err := h.store.GetRecipe(c.Request.Context(), id)
	if err != nil {
		common.LogWarn("recipe not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}
