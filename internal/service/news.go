package service

import (
	"context"

	"github.com/Skotchmaster/fanshop/internal/models"
	"github.com/Skotchmaster/fanshop/internal/repo"
)

type NewsService struct {
	Repo *repo.GormRepo
}

func (s *NewsService) List(ctx context.Context, offset, limit int) (int64, []models.News, error) {
	total, items, err := s.Repo.ListNews(ctx, offset, limit)
	if err != nil {
		return 0, nil, translate(err, "news not found")
	}
	return total, items, nil
}
