package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bookative-core/server/internal/booking/calendar"
	"github.com/bookative-core/server/internal/booking/graph"
	"github.com/bookative-core/server/internal/booking/model"
	"github.com/bookative-core/server/internal/booking/repo"
	"github.com/bookative-core/server/internal/core"
	logx "github.com/bookative-core/server/pkg/logger"
	pkgredis "github.com/bookative-core/server/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig defines all configurable parameters for the booking assistant
// example, sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// Dialogue core configs
	Conversation model.ConversationConfig
	Engine       model.EngineConfig
	Calendar     model.CalendarConfig
}

func main() {
	fmt.Println("Booking assistant dialogue core demo...")
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	rdb, err := envCfg.Redis.New(ctx)
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	fmt.Println("Connected to Redis successfully")

	// ====================================================
	// Build the turn graph entirely from env
	ttl, err := time.ParseDuration(envCfg.Conversation.TTL)
	if err != nil {
		log.Fatalf("Invalid CONVERSATION_TTL '%s': %v", envCfg.Conversation.TTL, err)
	}
	availabilityDelay, err := time.ParseDuration(envCfg.Calendar.AvailabilityDelay)
	if err != nil {
		log.Fatalf("Invalid CALENDAR_AVAILABILITY_DELAY '%s': %v", envCfg.Calendar.AvailabilityDelay, err)
	}
	bookingDelay, err := time.ParseDuration(envCfg.Calendar.BookingDelay)
	if err != nil {
		log.Fatalf("Invalid CALENDAR_BOOKING_DELAY '%s': %v", envCfg.Calendar.BookingDelay, err)
	}

	cal := calendar.NewService(calendar.Options{
		AvailabilityDelay: availabilityDelay,
		BookingDelay:      bookingDelay,
		SeedDemoData:      envCfg.Calendar.SeedDemoData,
	})

	runner, err := graph.BuildTurnGraph(ctx, graph.Config{
		Calendar:  cal,
		StateRepo: repo.NewRedisStateRepository(rdb, ttl),
		Engine:    envCfg.Engine,
	})
	if err != nil {
		log.Fatalf("Failed to build turn graph: %v", err)
	}

	testTurns := []struct {
		description string
		utterance   string
	}{
		{
			description: "Initial greeting",
			utterance:   "Hi there!",
		},
		{
			description: "Booking request with date and time",
			utterance:   "Book a meeting tomorrow at 2 PM",
		},
		{
			description: "Slot selection by number",
			utterance:   "1",
		},
		{
			description: "Booking confirmation",
			utterance:   "yes",
		},
	}

	conversationID := "demo-conversation-1"

	for i, turn := range testTurns {
		fmt.Printf("\nTurn %d: %s\n", i+1, turn.description)
		fmt.Printf("User: %q\n", turn.utterance)

		turnCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		messages, err := runner.ProcessMessage(turnCtx, model.TurnInput{
			ConversationID: conversationID,
			Utterance:      turn.utterance,
		})
		cancel()
		if err != nil {
			log.Fatalf("Failed to process turn %d: %v", i+1, err)
		}

		for _, msg := range messages {
			fmt.Printf("Assistant [%s]: %s\n", msg.Type, msg.Content)
			for j, slot := range msg.Slots {
				fmt.Printf("  %d. %s - %s\n", j+1, slot.StartTime, slot.EndTime)
			}
		}
		fmt.Println("─────────────────────────────────────────────")
	}

	upcoming, err := cal.UpcomingAppointments(ctx)
	if err != nil {
		log.Fatalf("Failed to list upcoming appointments: %v", err)
	}
	fmt.Printf("\nUpcoming appointments: %d\n", len(upcoming))
	for _, apt := range upcoming {
		fmt.Printf("  %s on %s at %s\n", apt.Title, apt.Date.Format("2006-01-02"), apt.StartTime)
	}

	fmt.Println("\nDemo conversation completed successfully!")
}
