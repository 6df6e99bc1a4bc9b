package reading

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/esaude/esaude/internal/domain/audit"
)

const AuditEntity = "LeituraClinica"

const maxTypeLen = 64

var ErrInvalidInput = errors.New("invalid clinical reading")

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

// Create stores a reading on behalf of authorID.
func (s *Service) Create(ctx context.Context, r *ClinicalReading, authorID *string) error {
	r.Type = strings.TrimSpace(r.Type)
	r.Value = strings.TrimSpace(r.Value)
	switch {
	case r.PatientID == uuid.Nil:
		return fmt.Errorf("%w: patient_id is required", ErrInvalidInput)
	case r.Type == "":
		return fmt.Errorf("%w: type is required", ErrInvalidInput)
	case len(r.Type) > maxTypeLen:
		return fmt.Errorf("%w: type must be at most %d characters", ErrInvalidInput, maxTypeLen)
	case r.Value == "":
		return fmt.Errorf("%w: value is required", ErrInvalidInput)
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = s.now()
	}
	r.RecordedAt = r.RecordedAt.UTC()
	r.AuthorID = authorID

	if err := s.repo.Create(ctx, r); err != nil {
		return fmt.Errorf("create clinical reading: %w", err)
	}
	if _, err := s.audit.Record(ctx, AuditEntity, r.ID.String(), audit.ActionCreate, authorID,
		fmt.Sprintf("Leitura de %s registada para utente %s", r.Type, r.PatientID)); err != nil {
		return fmt.Errorf("audit clinical reading: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*ClinicalReading, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ClinicalReading, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}
