package schedule

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/ryan-miles/meals.stellation.one/internal/pkg/common"

	"go.uber.org/zap"
)

// Weekdays carrying a meal, in schedule order.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

// Schedule is the single weekly schedule document. Each weekday holds a
// recipe id, or null when fewer than five recipes were available.
type Schedule struct {
	WeekStart string  `json:"weekStart"`
	Monday    *string `json:"monday"`
	Tuesday   *string `json:"tuesday"`
	Wednesday *string `json:"wednesday"`
	Thursday  *string `json:"thursday"`
	Friday    *string `json:"friday"`
}

// Day returns the recipe id assigned to the named weekday, or "" when the
// slot is empty.
func (s *Schedule) Day(name string) string {
	var p *string
	switch name {
	case "monday":
		p = s.Monday
	case "tuesday":
		p = s.Tuesday
	case "wednesday":
		p = s.Wednesday
	case "thursday":
		p = s.Thursday
	case "friday":
		p = s.Friday
	}
	if p == nil {
		return ""
	}
	return *p
}

func (s *Schedule) setDay(name string, id string) {
	v := &id
	switch name {
	case "monday":
		s.Monday = v
	case "tuesday":
		s.Tuesday = v
	case "wednesday":
		s.Wednesday = v
	case "thursday":
		s.Thursday = v
	case "friday":
		s.Friday = v
	}
}

// NextMonday returns the upcoming Monday relative to now, normalized to
// midnight. On a Sunday that is tomorrow; on a Monday it is a full week out.
func NextMonday(now time.Time) time.Time {
	dayOfWeek := int(now.Weekday()) // Sunday = 0
	daysUntilMonday := 8 - dayOfWeek
	if dayOfWeek == 0 {
		daysUntilMonday = 1
	}
	next := now.AddDate(0, 0, daysUntilMonday)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, next.Location())
}

// FormatDate renders a date as zero-padded YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// Shuffle permutes ids in place with a uniform Fisher-Yates walk from the
// last index down to 1.
func Shuffle(ids []string, r *rand.Rand) []string {
	for i := len(ids) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids
}

// Store is the slice of the document store the generator needs.
type Store interface {
	ListRecipeIDs(ctx context.Context) ([]string, error)
	PutSchedule(ctx context.Context, s *Schedule) error
}

// Generator assigns a random schedule for the upcoming week and persists it.
type Generator struct {
	store       Store
	invalidator *Invalidator
	rand        *rand.Rand
	now         func() time.Time
}

// NewGenerator creates a generator. invalidator may be nil when the
// deployment has no CDN in front of the store.
func NewGenerator(store Store, invalidator *Invalidator) *Generator {
	return &Generator{
		store:       store,
		invalidator: invalidator,
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         time.Now,
	}
}

// Generate builds and writes a fresh schedule: the full recipe-id set is
// shuffled, the first five ids land on Monday through Friday, and the
// document is overwritten wholesale. Returns common.ErrNoRecipes when the
// store is empty.
func (g *Generator) Generate(ctx context.Context) (*Schedule, error) {
	ids, err := g.store.ListRecipeIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		common.LogWarn("no recipe files found, skipping schedule generation")
		return nil, common.ErrNoRecipes
	}

	weekStart := FormatDate(NextMonday(g.now()))

	ids = Shuffle(ids, g.rand)

	sched := &Schedule{WeekStart: weekStart}
	mealsToAssign := len(ids)
	if mealsToAssign > len(Weekdays) {
		mealsToAssign = len(Weekdays)
	}
	for i := 0; i < mealsToAssign; i++ {
		sched.setDay(Weekdays[i], ids[i])
	}
	// Remaining weekdays stay null.

	if err := g.store.PutSchedule(ctx, sched); err != nil {
		return nil, err
	}

	common.LogInfo("generated and saved random schedule",
		zap.String("week_start", weekStart),
		zap.Int("meals_assigned", mealsToAssign),
	)

	// Cache invalidation is best effort: a failure is logged inside the
	// invalidator and never fails the run.
	if g.invalidator != nil {
		g.invalidator.InvalidateAll(ctx)
	}

	return sched, nil
}
