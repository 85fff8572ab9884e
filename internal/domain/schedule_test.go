package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SLN-AppointmentService/pkg/types"
)

func TestNormalizeSlots(t *testing.T) {
	got := NormalizeSlots([]types.TimeString{"14:00", "09:00", "14:00", "10:30", "09:00"})
	assert.Equal(t, []types.TimeString{"09:00", "10:30", "14:00"}, got)

	assert.Empty(t, NormalizeSlots(nil))
	assert.Empty(t, NormalizeSlots([]types.TimeString{}))
}

func TestSchedule_Contains(t *testing.T) {
	s := &Schedule{
		Date:  time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Slots: []types.TimeString{"09:00", "10:00"},
	}

	assert.True(t, s.Contains("09:00"))
	assert.False(t, s.Contains("11:00"))
}
