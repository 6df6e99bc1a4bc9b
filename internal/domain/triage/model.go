package triage

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Triage maps to the triage table. Responses holds the questionnaire answers
// as submitted, e.g. {"febre":"alta","diarreia":"sim"}.
type Triage struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	PatientID  uuid.UUID       `db:"patient_id" json:"patient_id"`
	Responses  json.RawMessage `db:"responses_json" json:"responses"`
	RecordedAt time.Time       `db:"recorded_at" json:"recorded_at"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}
