// Package calendar provides the in-memory appointment store consumed by the
// dialogue engine. The store is process-wide and guarded by a mutex; the
// dialogue core itself only ever issues sequential, single-writer calls.
package calendar

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bookative-core/server/internal/booking/model"
	"github.com/bookative-core/server/internal/booking/parser"
	errx "github.com/bookative-core/server/internal/core/error"
	logx "github.com/bookative-core/server/pkg/logger"
	"github.com/google/uuid"
)

// businessHours is the fixed, ordered set of candidate start times considered
// when computing availability.
var businessHours = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "1:00 PM",
	"2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM",
}

const defaultDurationMinutes = 60

// Options tunes the service. The delays simulate upstream latency and are
// interruptible through ctx.
type Options struct {
	AvailabilityDelay time.Duration
	BookingDelay      time.Duration
	SeedDemoData      bool
}

// Service is an in-memory model.Calendar implementation.
type Service struct {
	opts Options

	mu           sync.Mutex
	appointments []model.Appointment
}

// NewService builds the store, optionally seeded with demo appointments.
func NewService(opts Options) *Service {
	s := &Service{opts: opts}
	if opts.SeedDemoData {
		s.seed()
	}
	return s
}

// seed populates the store with the demo appointments used by the example
// driver: one meeting today at 10:00 AM and one tomorrow at 2:00 PM.
func (s *Service) seed() {
	now := time.Now()
	s.appointments = append(s.appointments,
		model.Appointment{
			ID:        uuid.NewString(),
			Title:     "Team Meeting",
			Date:      now,
			StartTime: "10:00 AM",
			EndTime:   "11:00 AM",
			Confirmed: true,
		},
		model.Appointment{
			ID:        uuid.NewString(),
			Title:     "Client Call",
			Date:      now.AddDate(0, 0, 1),
			StartTime: "2:00 PM",
			EndTime:   "3:00 PM",
			Confirmed: true,
		},
	)
}

// GetAvailability computes the open slots for a date from the business-hours
// list. A slot is unavailable when an existing appointment occupies the exact
// start time that day; the returned sequence is pre-filtered to available
// slots in business-hours order.
func (s *Service) GetAvailability(ctx context.Context, date time.Time, durationMinutes int) ([]model.TimeSlot, error) {
	if err := s.wait(ctx, s.opts.AvailabilityDelay); err != nil {
		return nil, err
	}
	if durationMinutes <= 0 {
		durationMinutes = defaultDurationMinutes
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	taken := make(map[string]bool)
	for _, apt := range s.appointments {
		if sameDay(apt.Date, date) {
			taken[apt.StartTime] = true
		}
	}

	slots := make([]model.TimeSlot, 0, len(businessHours))
	for _, start := range businessHours {
		if taken[start] {
			continue
		}
		slots = append(slots, model.TimeSlot{
			ID:        slotID(date, start),
			Date:      date,
			StartTime: start,
			EndTime:   parser.AddMinutes(start, durationMinutes),
			Available: true,
		})
	}

	logx.Debug().
		Str("date", date.Format("2006-01-02")).
		Int("open_slots", len(slots)).
		Msg("computed availability")

	return slots, nil
}

// BookAppointment commits the slot. The write fails when another appointment
// already occupies the slot's start time on that day.
func (s *Service) BookAppointment(ctx context.Context, slot model.TimeSlot, title, description string) (*model.Appointment, error) {
	if err := s.wait(ctx, s.opts.BookingDelay); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, apt := range s.appointments {
		if sameDay(apt.Date, slot.Date) && apt.StartTime == slot.StartTime {
			logx.Warn().
				Str("slot_id", slot.ID).
				Str("start_time", slot.StartTime).
				Msg("booking rejected, slot already taken")
			return nil, errx.WrapCalendar(errx.ErrSlotTaken)
		}
	}

	appointment := model.Appointment{
		ID:          uuid.NewString(),
		Title:       title,
		Date:        slot.Date,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		Description: description,
		Confirmed:   true,
	}
	s.appointments = append(s.appointments, appointment)

	logx.Info().
		Str("appointment_id", appointment.ID).
		Str("slot_id", slot.ID).
		Str("title", title).
		Msg("appointment booked")

	return &appointment, nil
}

// UpcomingAppointments lists appointments from now on, soonest first.
func (s *Service) UpcomingAppointments(ctx context.Context) ([]model.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	upcoming := make([]model.Appointment, 0, len(s.appointments))
	for _, apt := range s.appointments {
		if !apt.Date.Before(now) {
			upcoming = append(upcoming, apt)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(upcoming[j].Date)
	})

	return upcoming, nil
}

// wait blocks for the configured simulated latency, aborting when ctx ends.
func (s *Service) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func slotID(date time.Time, start string) string {
	return fmt.Sprintf("%s-%s", date.Format("2006-01-02"), start)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

var _ model.Calendar = (*Service)(nil)
