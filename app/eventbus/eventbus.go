// Package eventbus wraps watermill-nats JetStream pub/sub behind the single
// EventBus interface the module routers consume.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventBus is both a watermill publisher and subscriber; the module routers
// pass it to AddHandler directly.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

type natsEventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	js         jetstream.JetStream
	conn       *nc.Conn
	logger     *slog.Logger

	streamMu       sync.Mutex
	createdStreams map[string]bool
}

// New connects to NATS, provisions the application streams, and returns an
// EventBus backed by JetStream.
func New(ctx context.Context, natsURL, appName string, logger *slog.Logger) (EventBus, error) {
	conn, err := nc.Connect(natsURL, nc.Name(appName), nc.RetryOnFailedConnect(true))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	wmLogger := watermill.NewSlogLogger(logger)
	marshaler := &wmnats.NATSMarshaler{}

	publisher, err := wmnats.NewPublisher(wmnats.PublisherConfig{
		URL:       natsURL,
		Marshaler: marshaler,
		NatsOptions: []nc.Option{
			nc.RetryOnFailedConnect(true),
			nc.Name(appName + "-pub"),
		},
		JetStream: wmnats.JetStreamConfig{AutoProvision: true},
	}, wmLogger)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create watermill publisher: %w", err)
	}

	subscriber, err := wmnats.NewSubscriber(wmnats.SubscriberConfig{
		URL:              natsURL,
		Unmarshaler:      marshaler,
		QueueGroupPrefix: appName,
		NatsOptions: []nc.Option{
			nc.RetryOnFailedConnect(true),
			nc.Name(appName + "-sub"),
		},
		JetStream: wmnats.JetStreamConfig{
			AutoProvision: true,
			DurablePrefix: appName,
		},
	}, wmLogger)
	if err != nil {
		publisher.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to create watermill subscriber: %w", err)
	}

	bus := &natsEventBus{
		publisher:      publisher,
		subscriber:     subscriber,
		js:             js,
		conn:           conn,
		logger:         logger,
		createdStreams: make(map[string]bool),
	}

	if err := bus.ensureStreams(ctx); err != nil {
		bus.Close()
		return nil, err
	}

	return bus, nil
}

// ensureStreams provisions one stream per module subject prefix so consumers
// survive restarts without losing triggers.
func (eb *natsEventBus) ensureStreams(ctx context.Context) error {
	streamConfigs := []jetstream.StreamConfig{
		{Name: "match", Subjects: []string{"match.>"}},
		{Name: "facts", Subjects: []string{"facts.>"}},
		{Name: "stats", Subjects: []string{"stats.>"}},
		{Name: "skins", Subjects: []string{"skins.>"}},
	}

	eb.streamMu.Lock()
	defer eb.streamMu.Unlock()

	for _, cfg := range streamConfigs {
		if eb.createdStreams[cfg.Name] {
			continue
		}
		_, err := eb.js.Stream(ctx, cfg.Name)
		if err == jetstream.ErrStreamNotFound {
			if _, err := eb.js.CreateStream(ctx, cfg); err != nil {
				return fmt.Errorf("failed to create stream %s: %w", cfg.Name, err)
			}
			eb.logger.Info("Created JetStream stream", slog.String("stream", cfg.Name))
		} else if err != nil {
			return fmt.Errorf("failed to check stream %s: %w", cfg.Name, err)
		}
		eb.createdStreams[cfg.Name] = true
	}
	return nil
}

func (eb *natsEventBus) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
	}
	return eb.publisher.Publish(topic, messages...)
}

func (eb *natsEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	eb.logger.Debug("Subscribing to topic", slog.String("topic", topic))
	return eb.subscriber.Subscribe(ctx, topic)
}

func (eb *natsEventBus) Close() error {
	var firstErr error
	if err := eb.publisher.Close(); err != nil {
		firstErr = err
	}
	if err := eb.subscriber.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	eb.conn.Close()
	return firstErr
}
