package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// Notifier announces that a collection changed and lets subscriptions listen
// for such announcements.
type Notifier interface {
	Notify(ctx context.Context, collection string) error
	// Listen returns a channel that ticks after changes to collection, and a
	// function that stops listening. Ticks coalesce: a slow listener sees one
	// tick for any number of changes.
	Listen(collection string) (<-chan struct{}, func())
}

// LocalNotifier fans changes out to listeners inside this process.
type LocalNotifier struct {
	mu        sync.Mutex
	listeners map[string]map[chan struct{}]struct{}
}

func NewLocalNotifier() *LocalNotifier {
	return &LocalNotifier{listeners: make(map[string]map[chan struct{}]struct{})}
}

func (n *LocalNotifier) Notify(_ context.Context, collection string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.listeners[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

func (n *LocalNotifier) Listen(collection string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	if n.listeners[collection] == nil {
		n.listeners[collection] = make(map[chan struct{}]struct{})
	}
	n.listeners[collection][ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.listeners[collection], ch)
			n.mu.Unlock()
		})
	}
}

// ChangeChannelPrefix prefixes the Redis pub/sub channel of each collection.
const ChangeChannelPrefix = "dentara:changes:"

// RedisNotifier relays changes between service instances over Redis
// pub/sub. Local listeners are notified directly; the published message
// carries the origin id so an instance ignores its own echoes.
type RedisNotifier struct {
	local  *LocalNotifier
	rdb    *redis.Client
	origin string
}

func NewRedisNotifier(rdb *redis.Client) *RedisNotifier {
	return &RedisNotifier{local: NewLocalNotifier(), rdb: rdb, origin: uuid.NewString()}
}

// Origin identifies this instance in published messages.
func (n *RedisNotifier) Origin() string {
	return n.origin
}

func (n *RedisNotifier) Notify(ctx context.Context, collection string) error {
	_ = n.local.Notify(ctx, collection)
	if err := n.rdb.Publish(ctx, ChangeChannelPrefix+collection, n.origin).Err(); err != nil {
		return fmt.Errorf("publish change for %s: %w", collection, err)
	}
	return nil
}

func (n *RedisNotifier) Listen(collection string) (<-chan struct{}, func()) {
	return n.local.Listen(collection)
}

// Run forwards changes published by other instances until ctx is done.
func (n *RedisNotifier) Run(ctx context.Context) error {
	ps := n.rdb.PSubscribe(ctx, ChangeChannelPrefix+"*")
	defer ps.Close()

	msgs := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			n.handle(ctx, msg.Channel, msg.Payload)
		}
	}
}

func (n *RedisNotifier) handle(ctx context.Context, channel, origin string) {
	if origin == n.origin {
		return
	}
	_ = n.local.Notify(ctx, strings.TrimPrefix(channel, ChangeChannelPrefix))
}

// KafkaNotifier relays changes between service instances through a Kafka
// topic. Each instance reads with its own consumer group so every instance
// sees every change.
type KafkaNotifier struct {
	local  *LocalNotifier
	writer *kafka.Writer
	reader *kafka.Reader
	origin string
}

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	origin := uuid.NewString()
	return &KafkaNotifier{
		local: NewLocalNotifier(),
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     brokers,
			Topic:       topic,
			GroupID:     "dentara-" + origin,
			StartOffset: kafka.LastOffset,
			MinBytes:    1,
			MaxBytes:    10e6, // 10MB
		}),
		origin: origin,
	}
}

func (n *KafkaNotifier) Notify(ctx context.Context, collection string) error {
	_ = n.local.Notify(ctx, collection)
	if err := n.writer.WriteMessages(ctx, changeMessage(collection, n.origin)); err != nil {
		return fmt.Errorf("write change for %s: %w", collection, err)
	}
	return nil
}

func (n *KafkaNotifier) Listen(collection string) (<-chan struct{}, func()) {
	return n.local.Listen(collection)
}

// Run forwards changes written by other instances until ctx is done.
func (n *KafkaNotifier) Run(ctx context.Context) error {
	for {
		m, err := n.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return ctx.Err()
			}
			log.Printf("store: kafka change feed read failed: %v", err)
			return err
		}
		n.handle(ctx, m)
	}
}

func (n *KafkaNotifier) handle(ctx context.Context, m kafka.Message) {
	if string(m.Value) == n.origin {
		return
	}
	_ = n.local.Notify(ctx, string(m.Key))
}

func (n *KafkaNotifier) Close() error {
	werr := n.writer.Close()
	rerr := n.reader.Close()
	return errors.Join(werr, rerr)
}

func changeMessage(collection, origin string) kafka.Message {
	return kafka.Message{Key: []byte(collection), Value: []byte(origin)}
}
