package schedule

import (
	"errors"
	"net/http"
	"time"

	coreschedule "github.com/ryan-miles/meals.stellation.one/internal/core/schedule"
	"github.com/ryan-miles/meals.stellation.one/internal/core/recipe"
	"github.com/ryan-miles/meals.stellation.one/internal/pkg/common"
	"github.com/ryan-miles/meals.stellation.one/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Handler serves the schedule endpoints.
type Handler struct {
	generator *coreschedule.Generator
	store     store.Store
}

// NewHandler creates a schedule handler.
func NewHandler(generator *coreschedule.Generator, st store.Store) *Handler {
	return &Handler{generator: generator, store: st}
}

// HandleGenerate regenerates the upcoming week's schedule, overwriting the
// stored one. GET and POST are both accepted as triggers.
func (h *Handler) HandleGenerate(c *gin.Context) {
	sched, err := h.generator.Generate(c.Request.Context())
	if err != nil {
		common.LogError("schedule generation failed", zap.Error(err))
		if errors.Is(err, common.ErrNoRecipes) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No recipes available to schedule"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate schedule"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Schedule generated",
		"schedule": sched,
	})
}

// HandleGet returns the stored schedule as-is.
func (h *Handler) HandleGet(c *gin.Context) {
	sched, err := h.store.GetSchedule(c.Request.Context())
	if err != nil {
		common.LogError("failed to read schedule", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read schedule"})
		return
	}
	c.JSON(http.StatusOK, sched)
}

// WeekDay is one resolved day of the week view.
type WeekDay struct {
	Day   string  `json:"day"`
	ID    *string `json:"id"`
	Title *string `json:"title"`
	Link  *string `json:"link,omitempty"`
}

// WeekResponse joins the stored schedule with recipe titles so the frontend
// can render the week without a second round of fetches.
type WeekResponse struct {
	WeekStart string    `json:"weekStart"`
	WeekEnd   string    `json:"weekEnd"`
	Days      []WeekDay `json:"days"`
}

// HandleWeek returns the schedule with recipe ids resolved to titles.
// The schedule and the recipe list are fetched concurrently.
func (h *Handler) HandleWeek(c *gin.Context) {
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
		common.LogError("failed to assemble week view", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read week data"})
		return
	}

	byID := make(map[string]recipe.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}

	resp := WeekResponse{WeekStart: sched.WeekStart}
	if start, err := time.Parse("2006-01-02", sched.WeekStart); err == nil {
		resp.WeekEnd = coreschedule.FormatDate(start.AddDate(0, 0, 4))
	}
	for _, day := range coreschedule.Weekdays {
		wd := WeekDay{Day: day}
		if id := sched.Day(day); id != "" {
			idCopy := id
			wd.ID = &idCopy
			if r, ok := byID[id]; ok {
				title := r.Title
				wd.Title = &title
				if r.Link != "" {
					link := r.Link
					wd.Link = &link
				}
			}
		}
		resp.Days = append(resp.Days, wd)
	}
	c.JSON(http.StatusOK, resp)
}
