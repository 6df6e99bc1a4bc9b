package audit

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/esaude/esaude/internal/platform/db"
)

type repoPG struct{ q db.Querier }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{q: pool} }

const entryCols = `id, entity, entity_id, action, user_id, detail, created_at`

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.Entity, &e.EntityID, &e.Action, &e.UserID, &e.Detail, &e.CreatedAt)
	return &e, err
}

func (r *repoPG) Create(ctx context.Context, e *Entry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_log (id, entity, entity_id, action, user_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.Entity, e.EntityID, e.Action, e.UserID, e.Detail, e.CreatedAt)
	return err
}

func (r *repoPG) List(ctx context.Context, entity string, limit, offset int) ([]*Entry, int, error) {
	var total int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM audit_log WHERE ($1 = '' OR entity = $1)`, entity,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.q.Query(ctx, `SELECT `+entryCols+` FROM audit_log
		WHERE ($1 = '' OR entity = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, entity, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, rows.Err()
}
