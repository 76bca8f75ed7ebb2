package grocery

import (
	"net/http"

	coregrocery "github.com/ryan-miles/meals.stellation.one/internal/core/grocery"
	"github.com/ryan-miles/meals.stellation.one/internal/core/recipe"
	coreschedule "github.com/ryan-miles/meals.stellation.one/internal/core/schedule"
	"github.com/ryan-miles/meals.stellation.one/internal/pkg/common"
	"github.com/ryan-miles/meals.stellation.one/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Handler serves the aggregated grocery list.
type Handler struct {
	store store.Store
	opts  coregrocery.Options
}

// NewHandler creates a grocery handler.
func NewHandler(st store.Store, opts coregrocery.Options) *Handler {
	return &Handler{store: st, opts: opts}
}

// Response is the grocery list payload.
type Response struct {
	WeekStart string              `json:"weekStart"`
	Groups    []coregrocery.Group `json:"groups"`
}

// HandleGet builds the grocery list for the stored schedule. The schedule
// and recipe set are fetched concurrently; aggregation itself is pure.
func (h *Handler) HandleGet(c *gin.Context) {
	var (
		sched   *coreschedule.Schedule
		recipes []recipe.Recipe
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		sched, err = h.store.GetSchedule(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		recipes, err = h.store.ListRecipes(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		common.LogError("failed to load grocery inputs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read schedule or recipes"})
		return
	}

	groups := coregrocery.Aggregate(sched, recipes, h.opts)
	c.JSON(http.StatusOK, Response{
		WeekStart: sched.WeekStart,
		Groups:    groups,
	})
}
