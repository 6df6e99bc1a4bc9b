package surveillance

import (
	"time"

	"github.com/google/uuid"
)

// TriageRecord is a triage questionnaire as seen by the surveillance report.
// ResponsesJSON is the raw payload submitted by the triage flow; it is not
// guaranteed to be valid JSON.
type TriageRecord struct {
	ID            uuid.UUID `json:"id"`
	PatientID     uuid.UUID `json:"patient_id"`
	ZoneID        int       `json:"zone_id"`
	RecordedAt    time.Time `json:"recorded_at"`
	ResponsesJSON string    `json:"responses_json"`
}

// ClinicalReading is a single measured value. Value is stored as text and
// only interpreted when a rule needs it.
type ClinicalReading struct {
	ID         uuid.UUID `json:"id"`
	PatientID  uuid.UUID `json:"patient_id"`
	ZoneID     int       `json:"zone_id"`
	Type       string    `json:"type"`
	Value      string    `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
	AuthorID   *string   `json:"author_id,omitempty"`
}

// SymptomSummary counts observations per symptom and per reported value,
// e.g. summary["febre"]["alta"] == 5. encoding/json writes map keys sorted,
// which keeps serialized reports reproducible.
type SymptomSummary map[string]map[string]int

// Count returns the number of observations of value for symptom; missing
// entries count as zero.
func (s SymptomSummary) Count(symptom, value string) int {
	return s[symptom][value]
}

// Total is the number of symptom observations across all symptoms.
func (s SymptomSummary) Total() int {
	n := 0
	for _, values := range s {
		for _, c := range values {
			n += c
		}
	}
	return n
}

type AlertKind string

const (
	KindOutbreak AlertKind = "surto"
	KindWarning  AlertKind = "alerta"
)

type Alert struct {
	Kind    AlertKind `json:"tipo"`
	Message string    `json:"mensagem"`
}

type Period struct {
	Start time.Time `json:"inicio"`
	End   time.Time `json:"fim"`
}

// Report is the surveillance report for one zone and window. It is built
// once by AssembleReport and not modified afterwards.
type Report struct {
	ZoneID         int            `json:"zonaId"`
	Period         Period         `json:"periodo"`
	TotalTriages   int            `json:"totalTriagens"`
	TotalReadings  int            `json:"totalLeituras"`
	SymptomSummary SymptomSummary `json:"resumoSintomas"`
	Alerts         []Alert        `json:"alertas"`
}
