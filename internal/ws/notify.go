package ws

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	TypeSearch      = "search"
	TypeRefresh     = "refresh"
	TypePage        = "page"
	TypeJobs        = "jobs"
	TypeJobsUpdated = "jobs_updated"
	TypeError       = "error"
)

type JobsUpdatedEvent struct {
	Type      string `json:"type"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

// NotifyJobsUpdated tells every connected client that job data changed. Each
// client receives the event and its last search is run again.
func (h *Hub) NotifyJobsUpdated(source string) {
	if h == nil {
		return
	}

	evt := JobsUpdatedEvent{
		Type:      TypeJobsUpdated,
		Source:    strings.ToLower(strings.TrimSpace(source)),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.broadcast(b)
}
