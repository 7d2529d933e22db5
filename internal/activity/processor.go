package activity

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Processor tallies activity events and logs a summary whenever a digest
// event arrives.
type Processor struct {
	logger zerolog.Logger

	mu      sync.Mutex
	tallies map[EventType]int
}

func NewProcessor(logger zerolog.Logger) *Processor {
	return &Processor{
		logger:  logger,
		tallies: make(map[EventType]int),
	}
}

func (p *Processor) Handle(ctx context.Context, msg redis.XMessage) error {
	event, err := DecodeEvent(msg.Values)
	if err != nil {
		// Retrying cannot fix a malformed entry; drop it so it gets acked.
		p.logger.Error().Err(err).Str("message_id", msg.ID).Msg("dropping malformed activity event")
		return nil
	}

	switch event.Type {
	case EventLike, EventFavorite, EventReaction, EventComment, EventFollow:
		p.record(event)
		return nil
	case EventDigest:
		p.digest()
		return nil
	default:
		p.logger.Warn().Str("type", string(event.Type)).Msg("unknown event type")
		return nil
	}
}

func (p *Processor) record(event Event) {
	p.mu.Lock()
	p.tallies[event.Type]++
	p.mu.Unlock()

	p.logger.Debug().
		Str("type", string(event.Type)).
		Str("user_id", event.UserID).
		Int("image_id", event.ImageID).
		Str("detail", event.Detail).
		Bool("active", event.Active).
		Msg("activity recorded")
}

func (p *Processor) digest() {
	p.mu.Lock()
	snapshot := p.tallies
	p.tallies = make(map[EventType]int)
	p.mu.Unlock()

	event := p.logger.Info()
	total := 0
	for typ, count := range snapshot {
		event = event.Int(string(typ), count)
		total += count
	}
	event.Int("total", total).Msg("activity digest")
}

// Tallies returns the counts recorded since the last digest.
func (p *Processor) Tallies() map[EventType]int {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[EventType]int, len(p.tallies))
	for k, v := range p.tallies {
		out[k] = v
	}
	return out
}
