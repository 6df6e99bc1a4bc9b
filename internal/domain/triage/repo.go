package triage

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, t *Triage) error
	List(ctx context.Context, limit, offset int) ([]*Triage, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Triage, error)
}
