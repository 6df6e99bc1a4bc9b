package surveillance

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/esaude/esaude/internal/platform/db"
)

// GatewayPG reads triages and readings of a zone by joining on the patient's
// registered zone. Both bounds of the window are inclusive.
type GatewayPG struct{ q db.Querier }

func NewGatewayPG(pool *pgxpool.Pool) *GatewayPG { return &GatewayPG{q: pool} }

func (g *GatewayPG) ListTriagesByZone(ctx context.Context, zoneID int, start, end time.Time) ([]TriageRecord, error) {
	rows, err := g.q.Query(ctx, `
		SELECT t.id, t.patient_id, p.zone_id, t.recorded_at, t.responses_json
		FROM triage t
		JOIN patient p ON p.id = t.patient_id
		WHERE p.zone_id = $1 AND t.recorded_at >= $2 AND t.recorded_at <= $3`,
		zoneID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []TriageRecord
	for rows.Next() {
		var t TriageRecord
		if err := rows.Scan(&t.ID, &t.PatientID, &t.ZoneID, &t.RecordedAt, &t.ResponsesJSON); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (g *GatewayPG) ListReadingsByZone(ctx context.Context, zoneID int, start, end time.Time) ([]ClinicalReading, error) {
	rows, err := g.q.Query(ctx, `
		SELECT r.id, r.patient_id, p.zone_id, r.type, r.value, r.recorded_at, r.author_id
		FROM clinical_reading r
		JOIN patient p ON p.id = r.patient_id
		WHERE p.zone_id = $1 AND r.recorded_at >= $2 AND r.recorded_at <= $3`,
		zoneID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ClinicalReading
	for rows.Next() {
		var r ClinicalReading
		if err := rows.Scan(&r.ID, &r.PatientID, &r.ZoneID, &r.Type, &r.Value, &r.RecordedAt, &r.AuthorID); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}
