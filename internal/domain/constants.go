package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxServiceLength    = 200
	MaxClientNameLength = 200
	MaxNoteLength       = 500
	// Максимальное количество слотов в расписании на одну дату
	MaxSlotsPerDay = 48
)
