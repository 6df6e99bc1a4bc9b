package reading

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/esaude/esaude/internal/platform/db"
)

type repoPG struct{ q db.Querier }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{q: pool} }

const readingCols = `id, patient_id, type, value, recorded_at, author_id, created_at`

func scanReading(row pgx.Row) (*ClinicalReading, error) {
	var r ClinicalReading
	err := row.Scan(&r.ID, &r.PatientID, &r.Type, &r.Value, &r.RecordedAt, &r.AuthorID, &r.CreatedAt)
	return &r, err
}

func (p *repoPG) Create(ctx context.Context, r *ClinicalReading) error {
	r.ID = uuid.New()
	return p.q.QueryRow(ctx, `
		INSERT INTO clinical_reading (id, patient_id, type, value, recorded_at, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		r.ID, r.PatientID, r.Type, r.Value, r.RecordedAt, r.AuthorID,
	).Scan(&r.CreatedAt)
}

func (p *repoPG) List(ctx context.Context, limit, offset int) ([]*ClinicalReading, int, error) {
	var total int
	if err := p.q.QueryRow(ctx, `SELECT COUNT(*) FROM clinical_reading`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := p.q.Query(ctx, `SELECT `+readingCols+` FROM clinical_reading
		ORDER BY recorded_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collect(rows)
	return items, total, err
}

func (p *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ClinicalReading, int, error) {
	var total int
	if err := p.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM clinical_reading WHERE patient_id = $1`, patientID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := p.q.Query(ctx, `SELECT `+readingCols+` FROM clinical_reading
		WHERE patient_id = $1 ORDER BY recorded_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collect(rows)
	return items, total, err
}

func collect(rows pgx.Rows) ([]*ClinicalReading, error) {
	var items []*ClinicalReading
	for rows.Next() {
		r, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}
