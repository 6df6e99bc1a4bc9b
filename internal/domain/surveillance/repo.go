package surveillance

import (
	"context"
	"time"

	"github.com/esaude/esaude/internal/domain/audit"
)

// TriageSource returns every triage of patients registered in zoneID whose
// timestamp is within [start, end], in no particular order.
type TriageSource interface {
	ListTriagesByZone(ctx context.Context, zoneID int, start, end time.Time) ([]TriageRecord, error)
}

// ReadingSource is the clinical-reading counterpart of TriageSource.
type ReadingSource interface {
	ListReadingsByZone(ctx context.Context, zoneID int, start, end time.Time) ([]ClinicalReading, error)
}

// AuditSink durably appends audit entries.
type AuditSink interface {
	Create(ctx context.Context, e *audit.Entry) error
}
