// Package utils carries the small messaging helpers shared by all module
// handlers and routers.
package utils

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// Helpers builds and unpacks watermill messages with correlation metadata
// preserved across hops.
type Helpers interface {
	CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error)
	CreateNewMessage(payload any, topic string) (*message.Message, error)
	UnmarshalPayload(msg *message.Message, out any) error
}

type helpers struct {
	logger *slog.Logger
}

// NewHelpers returns the production Helpers implementation.
func NewHelpers(logger *slog.Logger) Helpers {
	return &helpers{logger: logger}
}

func (h *helpers) CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("topic", topic)
	if original != nil {
		msg.SetContext(original.Context())
		if correlationID := middleware.MessageCorrelationID(original); correlationID != "" {
			middleware.SetCorrelationID(correlationID, msg)
		}
	}
	return msg, nil
}

func (h *helpers) CreateNewMessage(payload any, topic string) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("topic", topic)
	middleware.SetCorrelationID(watermill.NewUUID(), msg)
	return msg, nil
}

func (h *helpers) UnmarshalPayload(msg *message.Message, out any) error {
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		return fmt.Errorf("failed to unmarshal message %s: %w", msg.UUID, err)
	}
	return nil
}
