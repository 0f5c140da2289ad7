package model

// ================ Config ================

type ConversationConfig struct {
	TTL string `envconfig:"CONVERSATION_TTL" default:"15m"`
}

type EngineConfig struct {
	DefaultTitle           string `envconfig:"ENGINE_DEFAULT_TITLE" default:"Appointment"`
	DefaultDurationMinutes int    `envconfig:"ENGINE_DEFAULT_DURATION_MINUTES" default:"60"`
}

type CalendarConfig struct {
	AvailabilityDelay string `envconfig:"CALENDAR_AVAILABILITY_DELAY" default:"0s"`
	BookingDelay      string `envconfig:"CALENDAR_BOOKING_DELAY" default:"0s"`
	SeedDemoData      bool   `envconfig:"CALENDAR_SEED_DEMO_DATA" default:"false"`
}
