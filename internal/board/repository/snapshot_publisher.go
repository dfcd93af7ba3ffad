package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/GoSim-25-26J-441/project-board/internal/board/domain"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultEventsChannel = "board:events"
	latestSnapshotKey    = "board:snapshot:latest"
	publishTimeout       = 2 * time.Second
)

// SnapshotEvent is the message published for every store notification.
type SnapshotEvent struct {
	Sequence    int64            `json:"sequence"`
	Projects    []domain.Project `json:"projects"`
	PublishedAt time.Time        `json:"published_at"`
}

// SnapshotPublisher relays board snapshots to a Redis Pub/Sub channel so
// out-of-process views can redraw.
type SnapshotPublisher struct {
	client  *redis.Client
	channel string
	ctx     context.Context
	seq     int64
}

// NewSnapshotPublisher creates a publisher on channel (DefaultEventsChannel when empty).
func NewSnapshotPublisher(client *redis.Client, channel string) *SnapshotPublisher {
	if channel == "" {
		channel = DefaultEventsChannel
	}
	return &SnapshotPublisher{
		client:  client,
		channel: channel,
		ctx:     context.Background(),
	}
}

// Channel returns the Pub/Sub channel name.
func (p *SnapshotPublisher) Channel() string {
	return p.channel
}

// Publish sends one snapshot. The latest snapshot is also kept under a
// fixed key so a view that subscribes late can draw before the next event.
// It is called from the store's notification path, so sequence numbers
// follow mutation order.
func (p *SnapshotPublisher) Publish(projects []domain.Project) error {
	p.seq++
	event := SnapshotEvent{
		Sequence:    p.seq,
		Projects:    projects,
		PublishedAt: time.Now().UTC(),
	}
	if event.Projects == nil {
		event.Projects = []domain.Project{}
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	ctx, cancel := context.WithTimeout(p.ctx, publishTimeout)
	defer cancel()

	pipe := p.client.Pipeline()
	pipe.Set(ctx, latestSnapshotKey, data, 0)
	pipe.Publish(ctx, p.channel, data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}
	return nil
}

// Latest returns the most recently published snapshot.
func (p *SnapshotPublisher) Latest(ctx context.Context) (*SnapshotEvent, error) {
	data, err := p.client.Get(ctx, latestSnapshotKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}

	var event SnapshotEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &event, nil
}

// Listener adapts Publish to a store listener. Publish failures are logged;
// a Redis outage must not affect in-process views.
func (p *SnapshotPublisher) Listener() func([]domain.Project) {
	return func(projects []domain.Project) {
		if err := p.Publish(projects); err != nil {
			log.Printf("[warn] operation=publish_snapshot channel=%s error=%v", p.channel, err)
		}
	}
}

// Watch subscribes to the events channel and calls fn for every snapshot
// until ctx is done. Messages that do not decode are skipped.
func (p *SnapshotPublisher) Watch(ctx context.Context, fn func(SnapshotEvent)) error {
	sub := p.client.Subscribe(ctx, p.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", p.channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var event SnapshotEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("[warn] operation=watch_snapshots channel=%s error=%v", p.channel, err)
				continue
			}
			fn(event)
		}
	}
}
