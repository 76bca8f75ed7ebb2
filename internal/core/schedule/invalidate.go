package schedule

import (
	"context"

	"github.com/ryan-miles/meals.stellation.one/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Invalidator asks the CDN in front of the site to drop its cached copies
// after a schedule write. The call is decoupled from the write: the schedule
// is already durable when it runs, so failures only delay freshness.
type Invalidator struct {
	client *resty.Client
	url    string
}

// NewInvalidator creates an invalidator posting to the given endpoint.
func NewInvalidator(url string) *Invalidator {
	return &Invalidator{
		client: resty.New(),
		url:    url,
	}
}

// InvalidateAll requests invalidation of every cached path. Errors are
// logged, never returned.
func (inv *Invalidator) InvalidateAll(ctx context.Context) {
	resp, err := inv.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{"paths": []string{"/*"}}).
		Post(inv.url)
	if err != nil {
		common.LogError("cache invalidation request failed", zap.Error(err))
		return
	}
	if resp.IsError() {
		common.LogError("cache invalidation rejected",
			zap.Int("status", resp.StatusCode()),
			zap.String("response", resp.String()),
		)
		return
	}
	common.LogInfo("cache invalidation requested", zap.String("paths", "/*"))
}
