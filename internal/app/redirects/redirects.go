// Package redirects хранит неизменяемую таблицу переадресаций лид -> URL.
package redirects

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/samber/lo"

	"github.com/issafronov/leadredirect/internal/app/models"
)

// Mapping — таблица переадресаций. После создания не изменяется,
// поэтому безопасна для конкурентного чтения без блокировок.
type Mapping struct {
	routes map[string]string
}

// New создаёт таблицу из копии переданной карты
func New(routes map[string]string) *Mapping {
	copied := make(map[string]string, len(routes))
	for lead, dest := range routes {
		copied[lead] = dest
	}
	return &Mapping{routes: copied}
}

// Default возвращает встроенную таблицу лидов
func Default() *Mapping {
	return New(map[string]string{
		"valley":    "https://valley-plastic-surgery-preview.vercel.app",
		"guerra":    "https://guerra-plastic-surgery-preview.vercel.app",
		"jeneby":    "https://jeneby-plastic-surgery-preview.vercel.app",
		"tampa":     "https://tampa-mommy-makeover-preview.vercel.app",
		"law":       "https://michael-law-preview.vercel.app",
		"tonypham":  "https://brycedmorgan.github.io/dr-tony-pham/",
		"perimeter": "https://brycedmorgan.github.io/perimeter-plastic-surgery/",
		"poggi":     "https://poggi-plastic-surgery-new-kappa.vercel.app",
		"bluewater": "https://bluewater-preview.vercel.app",
		"wigod":     "https://wigod-plastic-surgery.vercel.app",
		"duffy":     "https://jacksonville-plastic-surgery-duffy.vercel.app",
		"memphis":   "https://cosmetic-surgery-specialists-memphis.vercel.app",
	})
}

// LoadFile читает таблицу из JSON-объекта вида {"lead": "https://..."}
func LoadFile(path string) (*Mapping, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var routes map[string]string
	if err := json.NewDecoder(file).Decode(&routes); err != nil {
		return nil, fmt.Errorf("decode redirects %s: %w", path, err)
	}
	return New(routes), nil
}

// Lookup ищет адрес назначения. Сравнение точное, с учётом регистра.
func (m *Mapping) Lookup(lead string) (string, bool) {
	if m == nil {
		return "", false
	}
	dest, ok := m.routes[lead]
	return dest, ok
}

// Len возвращает количество лидов в таблице
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.routes)
}

// Leads возвращает отсортированный список идентификаторов
func (m *Mapping) Leads() []string {
	if m == nil {
		return nil
	}
	leads := lo.Keys(m.routes)
	slices.Sort(leads)
	return leads
}

// Routes возвращает записи таблицы, отсортированные по идентификатору
func (m *Mapping) Routes() []models.LeadRoute {
	return lo.Map(m.Leads(), func(lead string, _ int) models.LeadRoute {
		return models.LeadRoute{Lead: lead, Destination: m.routes[lead]}
	})
}
