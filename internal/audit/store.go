package audit

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"hire-portal/internal/database"

	"github.com/google/uuid"
)

//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations holding the SQL files.
const MigrationsDir = "migrations"

// Record is a stored audit row.
type Record struct {
	ID            string
	EventID       string
	EventType     string
	OccurredAt    time.Time
	Producer      string
	ActorUserID   string
	ActorRoles    []string
	TargetType    string
	TargetID      string
	Reason        string
	Changes       map[string]any
	CorrelationID string
	CreatedAt     time.Time
}

type Store struct {
	db  database.Querier
	now func() time.Time
}

func NewStore(db database.Querier) *Store {
	return &Store{db: db, now: time.Now}
}

// Save inserts e. Redelivered events with an already stored event id are
// ignored.
func (s *Store) Save(ctx context.Context, e Event) error {
	if s == nil || s.db == nil {
		return errors.New("nil audit store")
	}

	var roles, changes []byte
	if e.Actor != nil && len(e.Actor.Roles) > 0 {
		b, err := json.Marshal(e.Actor.Roles)
		if err != nil {
			return err
		}
		roles = b
	}
	if len(e.Changes) > 0 {
		b, err := json.Marshal(e.Changes)
		if err != nil {
			return err
		}
		changes = b
	}

	actorID := SystemActor
	if e.Actor != nil && strings.TrimSpace(e.Actor.UserID) != "" {
		actorID = e.Actor.UserID
	}
	var targetType, targetID string
	if e.Target != nil {
		targetType, targetID = e.Target.Type, e.Target.ID
	}

	_, err := s.db.Exec(ctx, `
INSERT INTO audit_logs (
	id, event_id, event_type, occurred_at, producer,
	actor_user_id, actor_roles, target_type, target_id,
	reason, changes, correlation_id, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (event_id) DO NOTHING`,
		uuid.NewString(),
		e.EventID,
		string(e.EventType),
		e.OccurredAt.UTC(),
		e.Producer,
		actorID,
		nullableJSON(roles),
		targetType,
		targetID,
		nullableText(e.Reason),
		nullableJSON(changes),
		nullableText(e.CorrelationID),
		s.now().UTC(),
	)
	return err
}

// ListByTarget returns the newest records for a target first.
func (s *Store) ListByTarget(ctx context.Context, targetType, targetID string, limit int) ([]Record, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("nil audit store")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := s.db.Query(ctx, `
SELECT id::text, event_id::text, event_type, occurred_at, producer, actor_user_id,
	COALESCE(actor_roles::text, ''), target_type, target_id,
	COALESCE(reason, ''), COALESCE(changes::text, ''), COALESCE(correlation_id, ''), created_at
FROM audit_logs
WHERE target_type = $1 AND target_id = $2
ORDER BY occurred_at DESC
LIMIT $3`, targetType, targetID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var r Record
		var roles, changes string
		if err := rows.Scan(
			&r.ID, &r.EventID, &r.EventType, &r.OccurredAt, &r.Producer, &r.ActorUserID,
			&roles, &r.TargetType, &r.TargetID,
			&r.Reason, &changes, &r.CorrelationID, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		if roles != "" {
			_ = json.Unmarshal([]byte(roles), &r.ActorRoles)
		}
		if changes != "" {
			_ = json.Unmarshal([]byte(changes), &r.Changes)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullableText(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
