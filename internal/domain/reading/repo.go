package reading

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *ClinicalReading) error
	List(ctx context.Context, limit, offset int) ([]*ClinicalReading, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ClinicalReading, int, error)
}
