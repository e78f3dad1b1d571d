// Package audit records administrative actions taken through the portal.
package audit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	UserBlock   EventType = "USER_BLOCK"
	UserUnblock EventType = "USER_UNBLOCK"
	RoleUpdate  EventType = "ROLE_UPDATE"
	UserDelete  EventType = "USER_DELETE"
	JobDelete   EventType = "JOB_DELETE"
)

const (
	TargetUser = "USER"
	TargetJob  = "JOB"
)

const (
	SubjectUser = "audit.user"
	SubjectJob  = "audit.job"
	SubjectAll  = "audit.>"
)

// SystemActor is recorded when an event arrives without an actor.
const SystemActor = "SYSTEM"

type Actor struct {
	UserID string   `json:"userId,omitempty"`
	Roles  []string `json:"roles,omitempty"`
}

type Target struct {
	Type string `json:"type,omitempty"`
	ID   string `json:"id,omitempty"`
}

type Event struct {
	EventID       string         `json:"eventId,omitempty"`
	EventType     EventType      `json:"eventType"`
	OccurredAt    time.Time      `json:"occurredAt"`
	Producer      string         `json:"producer,omitempty"`
	Actor         *Actor         `json:"actor,omitempty"`
	Target        *Target        `json:"target,omitempty"`
	Reason        string         `json:"reason,omitempty"`
	Changes       map[string]any `json:"changes,omitempty"`
	Payload       map[string]any `json:"payload,omitempty"`
	CorrelationID string         `json:"correlationId,omitempty"`
}

// Subject is the NATS subject an event of this type is published on.
func (t EventType) Subject() string {
	if t == JobDelete {
		return SubjectJob
	}
	return SubjectUser
}

// WithDefaults fills the fields a consumer must always store: an event id, an
// occurrence time and an actor.
func (e Event) WithDefaults(now time.Time) Event {
	out := e
	if _, err := uuid.Parse(strings.TrimSpace(out.EventID)); err != nil {
		out.EventID = uuid.NewString()
	}
	if out.OccurredAt.IsZero() {
		out.OccurredAt = now.UTC()
	}
	if out.Actor == nil {
		out.Actor = &Actor{}
	}
	if strings.TrimSpace(out.Actor.UserID) == "" {
		a := *out.Actor
		a.UserID = SystemActor
		out.Actor = &a
	}
	if out.Target == nil {
		out.Target = &Target{}
	}
	return out
}

func NewUserEvent(t EventType, actor Actor, userID, reason string, changes map[string]any) Event {
	return Event{
		EventID:    uuid.NewString(),
		EventType:  t,
		OccurredAt: time.Now().UTC(),
		Actor:      &actor,
		Target:     &Target{Type: TargetUser, ID: userID},
		Reason:     strings.TrimSpace(reason),
		Changes:    changes,
	}
}

func NewJobEvent(t EventType, actor Actor, jobID, reason string) Event {
	return Event{
		EventID:    uuid.NewString(),
		EventType:  t,
		OccurredAt: time.Now().UTC(),
		Actor:      &actor,
		Target:     &Target{Type: TargetJob, ID: jobID},
		Reason:     strings.TrimSpace(reason),
	}
}

type correlationKey struct{}

// WithCorrelationID tags ctx so events published under it carry id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, strings.TrimSpace(id))
}

func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(correlationKey{}).(string)
	return v
}
