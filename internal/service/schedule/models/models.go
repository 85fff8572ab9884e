package models

import (
	"time"

	"github.com/m04kA/SLN-AppointmentService/internal/domain"
	"github.com/m04kA/SLN-AppointmentService/pkg/types"
)

// SetScheduleRequest запрос на создание/перезапись расписания на дату
type SetScheduleRequest struct {
	Date  time.Time
	Slots []types.TimeString
}

// ScheduleResponse ответ с расписанием на дату
type ScheduleResponse struct {
	Date  string   `json:"date"`  // "2025-06-10"
	Slots []string `json:"slots"` // отсортированные метки "HH:MM"

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ScheduleListResponse ответ со списком расписаний
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// AvailableTimesResponse ответ со свободными слотами на дату
type AvailableTimesResponse struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.Schedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	return &ScheduleResponse{
		Date:      s.Date.Format(domain.DateFormat),
		Slots:     timeStringsToStrings(s.Slots),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromDomainScheduleList конвертирует список domain моделей в DTO
func FromDomainScheduleList(schedules []*domain.Schedule) *ScheduleListResponse {
	if schedules == nil {
		return &ScheduleListResponse{
			Schedules: []ScheduleResponse{},
		}
	}

	resp := &ScheduleListResponse{
		Schedules: make([]ScheduleResponse, len(schedules)),
	}

	for i, sched := range schedules {
		if schedResp := FromDomainSchedule(sched); schedResp != nil {
			resp.Schedules[i] = *schedResp
		}
	}

	return resp
}

// NewAvailableTimesResponse собирает ответ со свободными слотами
func NewAvailableTimesResponse(date time.Time, times []types.TimeString) *AvailableTimesResponse {
	return &AvailableTimesResponse{
		Date:  date.Format(domain.DateFormat),
		Times: timeStringsToStrings(times),
	}
}

func timeStringsToStrings(slots []types.TimeString) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}
