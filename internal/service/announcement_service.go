package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"dormhub/internal/docstore"
	"dormhub/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnnouncementService posts and lists notices for all tenants.
type AnnouncementService interface {
	CreateAnnouncement(ctx context.Context, title, content string) (*domain.Announcement, error)
	ListAnnouncements(ctx context.Context) ([]domain.Announcement, error)
}

type announcementService struct {
	docs   docstore.Store
	now    func() time.Time
	logger *zap.Logger
}

func NewAnnouncementService(docs docstore.Store, logger *zap.Logger) AnnouncementService {
	return &announcementService{docs: docs, now: time.Now, logger: logger}
}

func (s *announcementService) CreateAnnouncement(ctx context.Context, title, content string) (*domain.Announcement, error) {
	if title == "" || content == "" {
		return nil, validationf("title and content are required")
	}
	a := domain.Announcement{
		ID:         uuid.NewString(),
		Title:      title,
		Content:    content,
		DatePosted: s.now(),
	}
	if err := s.docs.Set(ctx, ColAnnouncements, a.ID, a.ToDoc()); err != nil {
		return nil, persistence("create announcement", err)
	}
	s.logger.Info("announcement posted", zap.String("announcement_id", a.ID), zap.String("title", a.Title))
	return &a, nil
}

func (s *announcementService) ListAnnouncements(ctx context.Context) ([]domain.Announcement, error) {
	docs, err := s.docs.List(ctx, ColAnnouncements)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	out := make([]domain.Announcement, 0, len(docs))
	for _, doc := range docs {
		out = append(out, domain.AnnouncementFromDoc(doc))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DatePosted.After(out[j].DatePosted) })
	return out, nil
}
