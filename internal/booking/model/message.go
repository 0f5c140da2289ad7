package model

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// MessageType tags a message so consumers can handle each shape exhaustively.
type MessageType string

const (
	MessageTypeText         MessageType = "text"
	MessageTypeTimeSlots    MessageType = "time-slots"
	MessageTypeConfirmation MessageType = "confirmation"
)

// Message is one outgoing (or incoming) chat message. Slots carries the
// suggested time slots for MessageTypeTimeSlots and is empty otherwise.
type Message struct {
	ID        string      `json:"id"`
	Content   string      `json:"content"`
	Sender    Sender      `json:"sender"`
	Timestamp time.Time   `json:"timestamp"`
	Type      MessageType `json:"type"`
	Slots     []TimeSlot  `json:"slots,omitempty"`
}

// NewTextMessage builds an assistant text message.
func NewTextMessage(content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Content:   content,
		Sender:    SenderAssistant,
		Timestamp: time.Now(),
		Type:      MessageTypeText,
	}
}

// NewTimeSlotsMessage builds an assistant message carrying the offered slots.
func NewTimeSlotsMessage(content string, slots []TimeSlot) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Content:   content,
		Sender:    SenderAssistant,
		Timestamp: time.Now(),
		Type:      MessageTypeTimeSlots,
		Slots:     slots,
	}
}

// NewConfirmationMessage builds an assistant message asking the user to
// confirm or reject the pending booking.
func NewConfirmationMessage(content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Content:   content,
		Sender:    SenderAssistant,
		Timestamp: time.Now(),
		Type:      MessageTypeConfirmation,
	}
}
