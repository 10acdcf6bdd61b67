// Package dateservice composes the calendar packages with a clock and is
// shared by the HTTP API, the MCP server and the CLI.
package dateservice

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/saka/internal/apperr"
	"github.com/starford/saka/internal/julian"
	"github.com/starford/saka/internal/saka"
)

// Shift operations and units.
const (
	OpAdd      = "add"
	OpSubtract = "subtract"

	UnitDays   = "days"
	UnitMonths = "months"
	UnitYears  = "years"
)

// Description is the full representation of a Saka date.
type Description struct {
	Saka        saka.Date   `json:"saka"`
	Formatted   string      `json:"formatted"`
	MonthName   string      `json:"month_name"`
	Gregorian   julian.Date `json:"gregorian"`
	JulianDay   float64     `json:"julian_day"`
	Weekday     string      `json:"weekday"`
	DaysInMonth int         `json:"days_in_month"`
}

// ShiftRequest describes a date arithmetic operation.
type ShiftRequest struct {
	Date   saka.Date `json:"date"`
	Op     string    `json:"op"`
	Unit   string    `json:"unit"`
	Amount int       `json:"amount"`
}

// Validate checks the operation and unit names. The date and amount are
// checked by the saka package.
func (r *ShiftRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Op, validation.Required, validation.In(OpAdd, OpSubtract)),
		validation.Field(&r.Unit, validation.Required, validation.In(UnitDays, UnitMonths, UnitYears)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInvalidArgument, err)
	}
	return nil
}

// Service answers date questions relative to a configurable clock.
type Service struct {
	loc atomic.Pointer[time.Location]
	now func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithNow replaces the wall clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a service whose notion of today follows loc.
func NewService(loc *time.Location, opts ...Option) *Service {
	s := &Service{now: time.Now}
	if loc == nil {
		loc = time.Local
	}
	s.loc.Store(loc)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the time zone used for today.
func (s *Service) Location() *time.Location {
	return s.loc.Load()
}

// SetLocation changes the time zone used for today; safe for concurrent use.
func (s *Service) SetLocation(loc *time.Location) {
	if loc != nil {
		s.loc.Store(loc)
	}
}

// Today returns the current Saka date in the configured time zone.
func (s *Service) Today(_ context.Context) saka.Date {
	return saka.Today(s.now().In(s.Location()))
}

// Describe validates the Saka date and returns its description.
func (s *Service) Describe(_ context.Context, d saka.Date) (*Description, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return describe(d), nil
}

// FromGregorian converts a validated Gregorian date.
func (s *Service) FromGregorian(ctx context.Context, g julian.Date) (*Description, error) {
	if err := saka.ValidateGregorian(g.Year, g.Month, g.Day); err != nil {
		return nil, err
	}
	return s.Describe(ctx, saka.FromGregorianDate(g))
}

// FromJulian converts a Julian day number.
func (s *Service) FromJulian(ctx context.Context, jd julian.Day) (*Description, error) {
	return s.Describe(ctx, saka.FromJulianDay(jd))
}

// Shift applies the arithmetic operation in req.
func (s *Service) Shift(_ context.Context, req ShiftRequest) (*Description, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := req.Date.Validate(); err != nil {
		return nil, err
	}
	var (
		out saka.Date
		err error
	)
	d := req.Date
	switch req.Op + "/" + req.Unit {
	case OpAdd + "/" + UnitDays:
		out, err = d.AddDays(req.Amount)
	case OpSubtract + "/" + UnitDays:
		out, err = d.SubtractDays(req.Amount)
	case OpAdd + "/" + UnitMonths:
		out, err = d.AddMonths(req.Amount)
	case OpSubtract + "/" + UnitMonths:
		out, err = d.SubtractMonths(req.Amount)
	case OpAdd + "/" + UnitYears:
		out, err = d.AddYears(req.Amount)
	case OpSubtract + "/" + UnitYears:
		out, err = d.SubtractYears(req.Amount)
	}
	if err != nil {
		return nil, err
	}
	return describe(out), nil
}

// MonthGrid returns the calendar grid of a Saka month.
func (s *Service) MonthGrid(_ context.Context, year, month int) (saka.MonthGrid, error) {
	return saka.NewMonthGrid(year, month)
}

// RolloverFunc is called with the new date when the Saka date changes.
type RolloverFunc func(saka.Date)

// WatchRollover polls Today every interval until ctx is cancelled and calls
// cb whenever the date differs from the previous poll.
func (s *Service) WatchRollover(ctx context.Context, interval time.Duration, logger *slog.Logger, cb RolloverFunc) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := s.Today(ctx)
	logger.Info("rollover: watching", slog.String("today", last.String()), slog.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			logger.Info("rollover: stopped")
			return
		case <-ticker.C:
			today := s.Today(ctx)
			if today == last {
				continue
			}
			logger.Info("rollover: date changed", slog.String("from", last.String()), slog.String("to", today.String()))
			last = today
			if cb != nil {
				cb(today)
			}
		}
	}
}

func describe(d saka.Date) *Description {
	return &Description{
		Saka:        d,
		Formatted:   d.String(),
		MonthName:   d.MonthName(),
		Gregorian:   d.Gregorian(),
		JulianDay:   float64(d.JulianDay()),
		Weekday:     d.Weekday().String(),
		DaysInMonth: d.DaysInMonth(),
	}
}
