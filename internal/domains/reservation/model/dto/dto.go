package dto

import (
	"time"

	"github.com/Jaxki97/lussoautostudio/internal/domains/reservation/model"
	"github.com/Jaxki97/lussoautostudio/internal/schedule"
	"github.com/Jaxki97/lussoautostudio/shared"
	"github.com/Jaxki97/lussoautostudio/shared/constant"
	gDto "github.com/Jaxki97/lussoautostudio/shared/dto"
	gModel "github.com/Jaxki97/lussoautostudio/shared/model"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	Date          string `json:"date"           validate:"required"`
	StartHour     int    `json:"start_hour"     validate:"gte=0,lte=23"`
	Service       string `json:"service"        validate:"required,max=100"`
	DurationHours int    `json:"duration_hours" validate:"omitempty,gte=1,lte=8"`
	Name          string `json:"name"           validate:"required,max=100"`
	Phone         string `json:"phone"          validate:"required,max=30"`
	Vehicle       string `json:"vehicle"        validate:"required,max=100"`
	City          string `json:"city"           validate:"omitempty,max=100"`
	Notes         string `json:"notes"          validate:"omitempty,max=500"`
}

// ToModel builds the persisted record. The date must already be validated and
// the duration resolved from the service catalog.
func (c *CreateReservationRequest) ToModel(date time.Time, durationHours int, now time.Time) model.Reservation {
	return model.Reservation{
		ID:            uuid.NewString(),
		Date:          date,
		StartHour:     c.StartHour,
		EndHour:       c.StartHour + durationHours,
		DurationHours: durationHours,
		Service:       c.Service,
		Name:          c.Name,
		Phone:         c.Phone,
		Vehicle:       c.Vehicle,
		City:          c.City,
		Notes:         c.Notes,
		Status:        model.StatusActive,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

type MoveReservationRequest struct {
	Date      string `json:"date"       validate:"required"`
	StartHour int    `json:"start_hour" validate:"gte=0,lte=23"`
}

type ReservationResponse struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	StartHour     int    `json:"start_hour"`
	EndHour       int    `json:"end_hour"`
	DurationHours int    `json:"duration_hours"`
	Service       string `json:"service"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Vehicle       string `json:"vehicle"`
	City          string `json:"city"`
	Notes         string `json:"notes"`
	Status        string `json:"status"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.Date = model.Date.UTC().Format(constant.DayFormat)
	r.StartHour = model.StartHour
	r.EndHour = model.EndHour
	r.DurationHours = model.DurationHours
	r.Service = model.Service
	r.Name = model.Name
	r.Phone = model.Phone
	r.Vehicle = model.Vehicle
	r.City = model.City
	r.Notes = model.Notes
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

type SlotsResponse struct {
	Date     string          `json:"date"`
	Duration int             `json:"duration_hours"`
	Reason   string          `json:"reason,omitempty"`
	Slots    []schedule.Slot `json:"slots"`
}
