package repo

import (
	"context"

	"github.com/Skotchmaster/fanshop/internal/models"
)

func (r *GormRepo) ListNews(ctx context.Context, offset, limit int) (int64, []models.News, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.News{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := []models.News{}
	if err := r.DB.WithContext(ctx).
		Order("created_at DESC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) CreateNews(ctx context.Context, n *models.News) error {
	return r.DB.WithContext(ctx).Create(n).Error
}
