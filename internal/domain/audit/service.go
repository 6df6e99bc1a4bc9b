package audit

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Record appends a new entry and returns it.
func (s *Service) Record(ctx context.Context, entity, entityID, action string, userID *string, detail string) (*Entry, error) {
	if entity == "" || entityID == "" || action == "" {
		return nil, fmt.Errorf("entity, entity_id and action are required")
	}
	e := NewEntry(entity, entityID, action, userID, detail, s.now())
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("record audit entry: %w", err)
	}
	return e, nil
}

func (s *Service) List(ctx context.Context, entity string, limit, offset int) ([]*Entry, int, error) {
	return s.repo.List(ctx, entity, limit, offset)
}
