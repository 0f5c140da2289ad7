package model

import "time"

// TimeSlot is a candidate appointment window offered to the user. Slots are
// immutable once produced by the calendar; the ID is deterministic from the
// date and start time so repeated availability queries yield stable identities.
type TimeSlot struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Available bool      `json:"available"`
}

// Appointment is a committed booking. Created only by a successful
// BookAppointment call, never constructed by the dialogue engine itself.
type Appointment struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Description string    `json:"description,omitempty"`
	Confirmed   bool      `json:"confirmed"`
}
