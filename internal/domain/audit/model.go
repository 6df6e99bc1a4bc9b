package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action codes recorded in the audit log.
const (
	ActionCreate   = "create"
	ActionGenerate = "generate"
)

// Entry maps to the append-only audit_log table. It records that something
// happened, who did it (nil for anonymous or system-triggered work) and to
// which entity.
type Entry struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Entity    string    `db:"entity" json:"entity"`
	EntityID  string    `db:"entity_id" json:"entity_id"`
	Action    string    `db:"action" json:"action"`
	UserID    *string   `db:"user_id" json:"user_id"`
	Detail    string    `db:"detail" json:"detail"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewEntry builds an entry with a fresh random identifier.
func NewEntry(entity, entityID, action string, userID *string, detail string, now time.Time) *Entry {
	return &Entry{
		ID:        uuid.New(),
		Entity:    entity,
		EntityID:  entityID,
		Action:    action,
		UserID:    userID,
		Detail:    detail,
		CreatedAt: now.UTC(),
	}
}
