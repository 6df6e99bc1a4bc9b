package triage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/esaude/esaude/internal/domain/audit"
)

const AuditEntity = "Triagem"

// ErrInvalidInput marks errors caused by the submitted triage itself.
var ErrInvalidInput = errors.New("invalid triage")

// AuditRecorder is satisfied by *audit.Service.
type AuditRecorder interface {
	Record(ctx context.Context, entity, entityID, action string, userID *string, detail string) (*audit.Entry, error)
}

type Service struct {
	repo  Repository
	audit AuditRecorder
	now   func() time.Time
}

func NewService(repo Repository, recorder AuditRecorder) *Service {
	return &Service{repo: repo, audit: recorder, now: time.Now}
}

func (s *Service) Create(ctx context.Context, t *Triage, userID *string) error {
	if t.PatientID == uuid.Nil {
		return fmt.Errorf("%w: patient_id is required", ErrInvalidInput)
	}
	if err := ValidateResponses(t.Responses); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if t.RecordedAt.IsZero() {
		t.RecordedAt = s.now()
	}
	t.RecordedAt = t.RecordedAt.UTC()

	if err := s.repo.Create(ctx, t); err != nil {
		return fmt.Errorf("create triage: %w", err)
	}
	if _, err := s.audit.Record(ctx, AuditEntity, t.ID.String(), audit.ActionCreate, userID,
		fmt.Sprintf("Triagem registada para utente %s", t.PatientID)); err != nil {
		return fmt.Errorf("audit triage: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Triage, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Triage, error) {
	if patientID == uuid.Nil {
		return nil, fmt.Errorf("%w: patient id is required", ErrInvalidInput)
	}
	return s.repo.ListByPatient(ctx, patientID)
}
