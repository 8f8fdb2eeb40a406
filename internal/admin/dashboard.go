package admin

import (
	"context"
	"sync"

	"localmart/internal/api"
	"localmart/internal/logger"
	"localmart/internal/utils"

	"go.uber.org/zap"
)

type DashboardView struct {
	Stats   *Stats
	Loading bool
	Banner  string
}

// Dashboard shows the headline counters.
type Dashboard struct {
	repo Repository
	seq  utils.Sequence

	mu   sync.Mutex
	view DashboardView
}

func NewDashboard(repo Repository) *Dashboard {
	return &Dashboard{repo: repo}
}

// Load fetches fresh stats. On failure the previous numbers stay visible
// under the banner.
func (d *Dashboard) Load(ctx context.Context) (*Stats, error) {
	token := d.seq.Begin()

	d.mu.Lock()
	d.view.Loading = true
	d.mu.Unlock()

	stats, err := d.repo.Stats(ctx)

	d.seq.Apply(token, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.view.Loading = false
		if err != nil {
			d.view.Banner = api.Message(err)
			return
		}
		d.view.Stats = stats
		d.view.Banner = ""
	})

	if err != nil {
		logger.FromCtx(ctx).Warn("dashboard stats failed",
			zap.String("layer", "admin"),
			zap.Error(err),
		)
		return nil, err
	}
	return stats, nil
}

func (d *Dashboard) View() DashboardView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view
}

// Revenue is the formatted revenue figure, or "-" before the first load.
func (d *Dashboard) Revenue() string {
	v := d.View()
	if v.Stats == nil {
		return "-"
	}
	return utils.Rupees(v.Stats.Revenue)
}

func (d *Dashboard) Close() { d.seq.Close() }
