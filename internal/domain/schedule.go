package domain

import (
	"sort"
	"time"

	"github.com/m04kA/SLN-AppointmentService/pkg/types"
)

// Schedule represents the set of bookable time slots configured for a date
// Слоты хранятся отсортированными и без дубликатов
// Инвариант: slots не содержит меток, занятых активными записями на эту дату
type Schedule struct {
	Date  time.Time
	Slots []types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains returns true if the schedule offers the given time label
func (s *Schedule) Contains(t types.TimeString) bool {
	for _, slot := range s.Slots {
		if slot == t {
			return true
		}
	}
	return false
}

// NormalizeSlots сортирует метки и схлопывает дубликаты
func NormalizeSlots(slots []types.TimeString) []types.TimeString {
	seen := make(map[types.TimeString]struct{}, len(slots))
	normalized := make([]types.TimeString, 0, len(slots))

	for _, slot := range slots {
		if _, ok := seen[slot]; ok {
			continue
		}
		seen[slot] = struct{}{}
		normalized = append(normalized, slot)
	}

	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i].IsBefore(normalized[j])
	})

	return normalized
}
