package middleware

import (
	"log/slog"
	"sync"
	"time"

	telebot "gopkg.in/telebot.v3"
)

// Dedupe drops updates whose ID was already seen recently. Telegram can
// redeliver the same update after webhook timeouts; handling it twice would
// send the reply twice.
type Dedupe struct {
	mu   sync.Mutex
	seen map[int]time.Time
	ttl  time.Duration
	log  *slog.Logger
}

// NewDedupe creates a deduper that remembers update IDs for ttl.
func NewDedupe(ttl time.Duration, log *slog.Logger) *Dedupe {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if log == nil {
		log = slog.Default()
	}

	return &Dedupe{
		seen: make(map[int]time.Time),
		ttl:  ttl,
		log:  log,
	}
}

// Middleware returns the telebot middleware.
func (d *Dedupe) Middleware() telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			update := c.Update()
			if update.ID == 0 {
				return next(c)
			}

			if d.markSeen(update.ID) {
				d.log.Info("duplicate update dropped", slog.Int("update_id", update.ID))
				return nil
			}

			return next(c)
		}
	}
}

// markSeen records id and reports whether it was already present. Expired
// entries are pruned opportunistically on each call.
func (d *Dedupe) markSeen(id int) bool {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	for seenID, at := range d.seen {
		if now.Sub(at) > d.ttl {
			delete(d.seen, seenID)
		}
	}

	if _, ok := d.seen[id]; ok {
		return true
	}
	d.seen[id] = now
	return false
}
