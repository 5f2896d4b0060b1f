package sink

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/issafronov/leadredirect/internal/app/models"
)

// CountingSink считает переходы по лидам в памяти процесса.
// Счётчики сбрасываются при перезапуске.
type CountingSink struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewCountingSink создаёт пустой счётчик
func NewCountingSink() *CountingSink {
	return &CountingSink{counts: make(map[string]int64)}
}

// Record увеличивает счётчик лида
func (c *CountingSink) Record(_ context.Context, event models.ClickEvent) error {
	c.mu.Lock()
	c.counts[event.Lead]++
	c.mu.Unlock()
	return nil
}

// Stats возвращает снимок счётчиков, отсортированный по лиду
func (c *CountingSink) Stats(_ context.Context) ([]models.LeadStats, error) {
	c.mu.Lock()
	stats := lo.MapToSlice(c.counts, func(lead string, clicks int64) models.LeadStats {
		return models.LeadStats{Lead: lead, Clicks: clicks}
	})
	c.mu.Unlock()

	slices.SortFunc(stats, compareLeadStats)
	return stats, nil
}

func compareLeadStats(a, b models.LeadStats) int {
	return cmp.Compare(a.Lead, b.Lead)
}
