package api

import (
	"github.com/starford/saka/internal/dateservice"
	"github.com/starford/saka/internal/saka"
)

// DateResponse is the description of a single date (aliased from the service layer).
type DateResponse = dateservice.Description

// ShiftRequest is the request body for POST /api/shift.
type ShiftRequest struct {
	Date   saka.Date `json:"date"`
	Op     string    `json:"op" example:"add"`
	Unit   string    `json:"unit" example:"days"`
	Amount int       `json:"amount" example:"5"`
}

// CalendarResponse is the JSON form of a month grid.
type CalendarResponse struct {
	saka.MonthGrid
	Text string `json:"text"`
}
