package errx

import (
	"errors"
	"net/http"
)

// ErrSlotTaken is returned when the requested start time is already occupied.
var ErrSlotTaken = errors.New("slot already taken")

// WrapCalendar maps calendar collaborator errors to the unified AppError type.
func WrapCalendar(err error) *AppError {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrSlotTaken) {
		return New(err, http.StatusConflict, CalendarErrorMessage)
	}

	return New(err, http.StatusBadGateway, CalendarErrorMessage)
}
