package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"
)

const UnknownProducer = "unknown"

type Saver interface {
	Save(ctx context.Context, e Event) error
}

// Recorder turns raw audit messages into stored rows.
type Recorder struct {
	store  Saver
	logger *log.Logger
	now    func() time.Time
}

func NewRecorder(store Saver, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{store: store, logger: logger, now: time.Now}
}

// Handle decodes one message, fills defaults and stores it. Messages that
// cannot be decoded are logged and dropped.
func (r *Recorder) Handle(ctx context.Context, data []byte) error {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		r.logger.Printf("[Audit] Failed to decode message: %v body=%q", err, truncate(string(data), 512))
		return fmt.Errorf("decode audit event: %w", err)
	}
	if strings.TrimSpace(string(e.EventType)) == "" {
		r.logger.Printf("[Audit] Dropping event without type body=%q", truncate(string(data), 512))
		return fmt.Errorf("audit event without type")
	}

	e = e.WithDefaults(r.now())
	if strings.TrimSpace(e.Producer) == "" {
		e.Producer = UnknownProducer
	}
	if len(e.Changes) == 0 {
		r.logger.Printf("[Audit] Event has no changes type=%s target=%s", e.EventType, e.Target.ID)
	}

	if err := r.store.Save(ctx, e); err != nil {
		r.logger.Printf("[Audit] Failed to store event id=%s type=%s: %v", e.EventID, e.EventType, err)
		return err
	}
	r.logger.Printf("[Audit] Stored event id=%s type=%s actor=%s target=%s/%s",
		e.EventID, e.EventType, e.Actor.UserID, e.Target.Type, e.Target.ID)
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
