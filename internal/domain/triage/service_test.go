package triage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/esaude/esaude/internal/domain/audit"
)

// -- Mock Repository --

type mockTriageRepo struct {
	store map[uuid.UUID]*Triage
	err   error
}

func newMockTriageRepo() *mockTriageRepo {
	return &mockTriageRepo{store: make(map[uuid.UUID]*Triage)}
}

func (m *mockTriageRepo) Create(_ context.Context, t *Triage) error {
	if m.err != nil {
		return m.err
	}
	t.ID = uuid.New()
	t.CreatedAt = time.Now().UTC()
	m.store[t.ID] = t
	return nil
}

func (m *mockTriageRepo) List(_ context.Context, limit, offset int) ([]*Triage, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	var r []*Triage
	for _, t := range m.store {
		r = append(r, t)
	}
	sort.Slice(r, func(i, j int) bool { return r[i].RecordedAt.After(r[j].RecordedAt) })
	total := len(r)
	if offset > len(r) {
		offset = len(r)
	}
	r = r[offset:]
	if limit < len(r) {
		r = r[:limit]
	}
	return r, total, nil
}

func (m *mockTriageRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Triage, error) {
	if m.err != nil {
		return nil, m.err
	}
	var r []*Triage
	for _, t := range m.store {
		if t.PatientID == patientID {
			r = append(r, t)
		}
	}
	return r, nil
}

func newTestService() (*Service, *mockTriageRepo, *audit.MemoryRepo) {
	repo := newMockTriageRepo()
	auditRepo := audit.NewMemoryRepo()
	return NewService(repo, audit.NewService(auditRepo)), repo, auditRepo
}

func TestValidateResponses(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"flat strings", `{"febre":"alta","diarreia":"sim"}`, false},
		{"mixed scalars", `{"febre":"alta","dias":3,"tosse":true}`, false},
		{"empty", ``, true},
		{"blank", `   `, true},
		{"not json", `{febre}`, true},
		{"empty object", `{}`, true},
		{"array", `["febre"]`, true},
		{"nested object", `{"febre":{"grau":"alta"}}`, true},
		{"null value", `{"febre":null}`, true},
		{"empty key", `{"":"sim"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResponses([]byte(tt.raw))
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestService_Create(t *testing.T) {
	svc, repo, auditRepo := newTestService()
	fixed := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	uid := "agente-1"
	tr := &Triage{PatientID: uuid.New(), Responses: []byte(`{"febre":"alta"}`)}
	if err := svc.Create(context.Background(), tr, &uid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
	if !tr.RecordedAt.Equal(fixed) {
		t.Errorf("expected recorded_at to default to now, got %s", tr.RecordedAt)
	}
	if len(repo.store) != 1 {
		t.Errorf("expected 1 stored triage, got %d", len(repo.store))
	}

	entries := auditRepo.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Entity != AuditEntity || e.EntityID != tr.ID.String() || e.Action != audit.ActionCreate {
		t.Errorf("unexpected audit entry: %+v", e)
	}
	if e.UserID == nil || *e.UserID != uid {
		t.Errorf("expected audit user %q, got %v", uid, e.UserID)
	}
	if !strings.Contains(e.Detail, tr.PatientID.String()) {
		t.Errorf("expected detail to mention patient, got %q", e.Detail)
	}
}

func TestService_Create_KeepsRecordedAt(t *testing.T) {
	svc, _, _ := newTestService()
	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.FixedZone("CAT", 2*3600))

	tr := &Triage{PatientID: uuid.New(), Responses: []byte(`{"febre":"alta"}`), RecordedAt: at}
	if err := svc.Create(context.Background(), tr, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tr.RecordedAt.Equal(at) || tr.RecordedAt.Location() != time.UTC {
		t.Errorf("expected %s in UTC, got %s", at, tr.RecordedAt)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc, repo, auditRepo := newTestService()

	err := svc.Create(context.Background(), &Triage{Responses: []byte(`{"febre":"alta"}`)}, nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for missing patient, got %v", err)
	}
	err = svc.Create(context.Background(), &Triage{PatientID: uuid.New(), Responses: []byte(`[]`)}, nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for bad responses, got %v", err)
	}
	if len(repo.store) != 0 || len(auditRepo.Entries()) != 0 {
		t.Error("expected nothing to be stored")
	}
}

func TestService_Create_RepoError(t *testing.T) {
	svc, repo, auditRepo := newTestService()
	repo.err = fmt.Errorf("connection refused")

	err := svc.Create(context.Background(), &Triage{PatientID: uuid.New(), Responses: []byte(`{"febre":"alta"}`)}, nil)
	if err == nil || errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if len(auditRepo.Entries()) != 0 {
		t.Error("expected no audit entry")
	}
}

func TestService_Create_AuditError(t *testing.T) {
	svc, _, auditRepo := newTestService()
	auditRepo.Err = fmt.Errorf("disk full")

	err := svc.Create(context.Background(), &Triage{PatientID: uuid.New(), Responses: []byte(`{"febre":"alta"}`)}, nil)
	if err == nil {
		t.Fatal("expected audit failure to surface")
	}
}

func TestService_ListByPatient(t *testing.T) {
	svc, _, _ := newTestService()
	patient := uuid.New()
	for i := 0; i < 3; i++ {
		if err := svc.Create(context.Background(), &Triage{PatientID: patient, Responses: []byte(`{"febre":"alta"}`)}, nil); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := svc.Create(context.Background(), &Triage{PatientID: uuid.New(), Responses: []byte(`{"febre":"baixa"}`)}, nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	items, err := svc.ListByPatient(context.Background(), patient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("expected 3 triages, got %d", len(items))
	}

	if _, err := svc.ListByPatient(context.Background(), uuid.Nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for nil patient, got %v", err)
	}
}
