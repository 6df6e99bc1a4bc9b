package triage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/esaude/esaude/internal/platform/db"
)

type repoPG struct{ q db.Querier }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{q: pool} }

const triageCols = `id, patient_id, responses_json, recorded_at, created_at`

func scanTriage(row pgx.Row) (*Triage, error) {
	var t Triage
	var responses string
	if err := row.Scan(&t.ID, &t.PatientID, &responses, &t.RecordedAt, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Responses = []byte(responses)
	return &t, nil
}

func (r *repoPG) Create(ctx context.Context, t *Triage) error {
	t.ID = uuid.New()
	return r.q.QueryRow(ctx, `
		INSERT INTO triage (id, patient_id, responses_json, recorded_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		t.ID, t.PatientID, string(t.Responses), t.RecordedAt,
	).Scan(&t.CreatedAt)
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Triage, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM triage`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.q.Query(ctx, `SELECT `+triageCols+` FROM triage
		ORDER BY recorded_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collect(rows)
	return items, total, err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Triage, error) {
	rows, err := r.q.Query(ctx, `SELECT `+triageCols+` FROM triage
		WHERE patient_id = $1 ORDER BY recorded_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows pgx.Rows) ([]*Triage, error) {
	var items []*Triage
	for rows.Next() {
		t, err := scanTriage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
