package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/saka/internal/apperr"
	"github.com/starford/saka/internal/dateservice"
	"github.com/starford/saka/internal/julian"
	"github.com/starford/saka/internal/saka"
)

// Handler holds API route handlers.
type Handler struct {
	svc *dateservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *dateservice.Service) *Handler {
	return &Handler{svc: svc}
}

// intParam reads an integer URL parameter.
func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &apperr.FieldError{Field: name, Value: raw, Err: apperr.ErrInvalidArgument}
	}
	return n, nil
}

func dateParams(r *http.Request) (year, month, day int, err error) {
	if year, err = intParam(r, "year"); err != nil {
		return
	}
	if month, err = intParam(r, "month"); err != nil {
		return
	}
	day, err = intParam(r, "day")
	return
}

// Today handles GET /api/today.
//
//	@Summary		Current Saka date in the configured time zone
//	@Tags			dates
//	@Produce		json
//	@Success		200	{object}	DateResponse
//	@Router			/today [get]
func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Describe(r.Context(), h.svc.Today(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Saka handles GET /api/saka/{year}/{month}/{day}.
//
//	@Summary		Describe a Saka date
//	@Tags			dates
//	@Produce		json
//	@Success		200	{object}	DateResponse
//	@Failure		400	{object}	errResponse
//	@Router			/saka/{year}/{month}/{day} [get]
func (h *Handler) Saka(w http.ResponseWriter, r *http.Request) {
	y, m, d, err := dateParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	desc, err := h.svc.Describe(r.Context(), saka.Date{Year: y, Month: m, Day: d})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, desc)
}

// Gregorian handles GET /api/gregorian/{year}/{month}/{day}.
//
//	@Summary		Convert a Gregorian date to Saka
//	@Tags			dates
//	@Produce		json
//	@Success		200	{object}	DateResponse
//	@Failure		400	{object}	errResponse
//	@Router			/gregorian/{year}/{month}/{day} [get]
func (h *Handler) Gregorian(w http.ResponseWriter, r *http.Request) {
	y, m, d, err := dateParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	desc, err := h.svc.FromGregorian(r.Context(), julian.Date{Year: y, Month: m, Day: d})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, desc)
}

// Julian handles GET /api/julian/{jd}.
//
//	@Summary		Convert a Julian day number to Saka
//	@Tags			dates
//	@Produce		json
//	@Success		200	{object}	DateResponse
//	@Failure		400	{object}	errResponse
//	@Router			/julian/{jd} [get]
func (h *Handler) Julian(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "jd")
	jd, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(w, r, &apperr.FieldError{Field: "jd", Value: raw, Err: apperr.ErrInvalidArgument})
		return
	}
	desc, err := h.svc.FromJulian(r.Context(), julian.Day(jd))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, desc)
}

// Shift handles POST /api/shift.
//
//	@Summary		Add or subtract days, months or years
//	@Tags			arithmetic
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ShiftRequest	true	"Operation"
//	@Success		200		{object}	DateResponse
//	@Failure		400		{object}	errResponse
//	@Router			/shift [post]
func (h *Handler) Shift(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	desc, err := h.svc.Shift(r.Context(), dateservice.ShiftRequest(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, desc)
}

// Calendar handles GET /api/calendar/{year}/{month}.
//
//	@Summary		Month grid as text, or JSON with format=json
//	@Tags			calendar
//	@Produce		plain
//	@Produce		json
//	@Param			format	query	string	false	"Response format"	Enums(text, json)
//	@Success		200
//	@Failure		400	{object}	errResponse
//	@Router			/calendar/{year}/{month} [get]
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	y, err := intParam(r, "year")
	if err != nil {
		writeError(w, r, err)
		return
	}
	m, err := saka.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	g, err := h.svc.MonthGrid(r.Context(), y, m)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, CalendarResponse{MonthGrid: g, Text: g.String()})
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, g.String())
}
