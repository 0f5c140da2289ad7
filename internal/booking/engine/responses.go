package engine

import (
	"fmt"

	"github.com/bookative-core/server/internal/booking/model"
	"github.com/bookative-core/server/internal/booking/parser"
)

func greetingMessage() *model.Message {
	return model.NewTextMessage(
		"Hello! I'm your appointment booking assistant. I can help you schedule meetings and check availability. " +
			`Try saying something like "Book a meeting tomorrow at 2 PM" or "Do you have anything free next Friday?"`)
}

func helpMessage() *model.Message {
	return model.NewTextMessage(
		"I can help you with:\n" +
			"• Booking appointments (\"Book a meeting tomorrow at 2 PM\")\n" +
			"• Checking availability (\"What's free next week?\")\n\n" +
			"What would you like to do?")
}

func infoRequestMessage() *model.Message {
	return model.NewTextMessage(
		"I'd be happy to help you schedule an appointment! " +
			`When would you like to meet? You can say things like "tomorrow", "next Monday", or a specific date.`)
}

func availabilityErrorMessage() *model.Message {
	return model.NewTextMessage(
		"Sorry, I couldn't reach the calendar just now. Please try again in a moment.")
}

func timeSlotsMessage(slots []model.TimeSlot) *model.Message {
	return model.NewTimeSlotsMessage("Available time slots:", slots)
}

func confirmationMessage(slot model.TimeSlot) *model.Message {
	formatted := parser.FormatSlotTime(slot.Date, slot.StartTime)
	return model.NewConfirmationMessage(fmt.Sprintf(
		"Perfect! I'll book your appointment for %s. Would you like me to confirm this booking?", formatted))
}

func confirmPromptMessage() *model.Message {
	return model.NewTextMessage(
		`Please confirm by saying "yes" to book the appointment, or "no" to go back.`)
}

func successMessage(appointment model.Appointment) *model.Message {
	formatted := parser.FormatSlotTime(appointment.Date, appointment.StartTime)
	return model.NewTextMessage(fmt.Sprintf(
		"Great! Your appointment has been successfully booked for %s. You should receive a confirmation shortly.", formatted))
}
