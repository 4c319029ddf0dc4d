// Package attr provides slog attribute helpers used across all modules so
// log field names stay consistent.
package attr

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Error(err error) slog.Attr { return slog.Any("error", err) }

func MatchID(key string, id sharedtypes.MatchID) slog.Attr {
	return slog.String(key, id.String())
}

func RoundID(key string, id sharedtypes.RoundID) slog.Attr {
	return slog.String(key, id.String())
}

func TournamentID(key string, id sharedtypes.TournamentID) slog.Attr {
	return slog.String(key, id.String())
}

func PlayerID(key string, id sharedtypes.PlayerID) slog.Attr {
	return slog.String(key, string(id))
}

type correlationIDKey struct{}

// WithCorrelationID stores a correlation ID on the context for later log
// extraction. Message handlers call this with the watermill metadata value.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

// ExtractCorrelationID returns a correlation_id attribute from the context,
// or an empty value when no message is in flight.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok && id != "" {
		return slog.String("correlation_id", id)
	}
	return slog.String("correlation_id", "")
}

// CorrelationIDFromMsg reads the watermill correlation ID metadata.
func CorrelationIDFromMsg(msg *message.Message) slog.Attr {
	return slog.String("correlation_id", middleware.MessageCorrelationID(msg))
}
