package model

import (
	"time"

	"github.com/Jaxki97/lussoautostudio/internal/schedule"
	"github.com/Jaxki97/lussoautostudio/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID            = "id"
	FieldDate          = "res_date"
	FieldStartHour     = "start_hour"
	FieldEndHour       = "end_hour"
	FieldDurationHours = "duration_hours"
	FieldService       = "service"
	FieldName          = "customer_name"
	FieldPhone         = "customer_phone"
	FieldVehicle       = "vehicle"
	FieldCity          = "city"
	FieldNotes         = "notes"
	FieldStatus        = "status"
)

const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

type Reservation struct {
	ID            string    `db:"id"`
	Date          time.Time `db:"res_date"`
	StartHour     int       `db:"start_hour"`
	EndHour       int       `db:"end_hour"`
	DurationHours int       `db:"duration_hours"`
	Service       string    `db:"service"`
	Name          string    `db:"customer_name"`
	Phone         string    `db:"customer_phone"`
	Vehicle       string    `db:"vehicle"`
	City          string    `db:"city"`
	Notes         string    `db:"notes"`
	Status        string    `db:"status"`
	model.Metadata
}

// HourRange returns the reservation's booked span as a schedule interval.
func (r Reservation) HourRange() schedule.HourRange {
	return schedule.HourRange{Start: r.StartHour, End: r.EndHour}
}
