package reading

import (
	"time"

	"github.com/google/uuid"
)

// ClinicalReading maps to the clinical_reading table. Value is kept as the
// text the author typed; consumers interpret it per Type.
type ClinicalReading struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PatientID  uuid.UUID `db:"patient_id" json:"patient_id"`
	Type       string    `db:"type" json:"type"`
	Value      string    `db:"value" json:"value"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
	AuthorID   *string   `db:"author_id" json:"author_id,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
