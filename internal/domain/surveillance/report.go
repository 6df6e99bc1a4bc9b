package surveillance

import (
	"fmt"
	"strconv"
	"time"

	"github.com/esaude/esaude/internal/domain/audit"
)

// AuditEntity is the entity name under which report generation is audited.
const AuditEntity = "RelatorioVigilancia"

// AssembleReport combines the computed parts into a Report. Totals are the
// raw record counts and may exceed summary.Total() when payloads failed to
// parse.
func AssembleReport(zoneID int, start, end time.Time, triages []TriageRecord, readings []ClinicalReading, summary SymptomSummary, alerts []Alert) Report {
	if summary == nil {
		summary = SymptomSummary{}
	}
	if alerts == nil {
		alerts = []Alert{}
	}
	return Report{
		ZoneID:         zoneID,
		Period:         Period{Start: start.UTC(), End: end.UTC()},
		TotalTriages:   len(triages),
		TotalReadings:  len(readings),
		SymptomSummary: summary,
		Alerts:         alerts,
	}
}

// NewAuditEntry records that a report was generated for zoneID by userID
// (nil when triggered anonymously or by the system).
func NewAuditEntry(zoneID int, userID *string, now time.Time) *audit.Entry {
	return audit.NewEntry(
		AuditEntity,
		strconv.Itoa(zoneID),
		audit.ActionGenerate,
		userID,
		fmt.Sprintf("Relatório de vigilância gerado para zona %d", zoneID),
		now,
	)
}
