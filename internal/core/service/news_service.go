package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/unihub/portal/internal/core/domain"
	"github.com/unihub/portal/internal/core/ports"
)

type newsService struct {
	repo ports.NewsRepository
	log  zerolog.Logger
}

// NewNewsService returns a NewsService implementation.
func NewNewsService(repo ports.NewsRepository, log zerolog.Logger) ports.NewsService {
	return &newsService{repo: repo, log: log}
}

func (s *newsService) List(ctx context.Context) ([]*domain.News, error) {
	return s.repo.List(ctx)
}

func (s *newsService) Get(ctx context.Context, id string) (*domain.News, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *newsService) Create(ctx context.Context, authorID string, in ports.NewsInput) (*domain.News, error) {
	if err := validateNews(in); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, &domain.News{
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}
	s.log.Info().Str("news_id", created.ID).Str("author_id", authorID).Msg("news published")
	return created, nil
}

func (s *newsService) Update(ctx context.Context, id, authorID string, in ports.NewsInput) (*domain.News, error) {
	if err := validateNews(in); err != nil {
		return nil, err
	}
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	n.Title = strings.TrimSpace(in.Title)
	n.Content = in.Content
	n.AuthorID = authorID
	if err := s.repo.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("update news: %w", err)
	}
	return n, nil
}

func (s *newsService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	return nil
}

func validateNews(in ports.NewsInput) error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: title and content are required", domain.ErrInvalidInput)
	}
	return nil
}
