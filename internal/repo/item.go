package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/fanshop/internal/models"
)

// ItemRepo stores models.Item rows in one named table.
type ItemRepo struct {
	DB    *gorm.DB
	Table string
}

func NewItemRepo(db *gorm.DB, table string) *ItemRepo {
	return &ItemRepo{DB: db, Table: table}
}

func (r *ItemRepo) table(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Table(r.Table)
}

func (r *ItemRepo) List(ctx context.Context, offset, limit int) (int64, []models.Item, error) {
	var total int64
	if err := r.table(ctx).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := []models.Item{}
	if err := r.table(ctx).
		Preload("User").
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *ItemRepo) Get(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.table(ctx).Preload("User").Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetMany returns the rows for ids in the order of ids; missing ids are skipped.
func (r *ItemRepo) GetMany(ctx context.Context, ids []uuid.UUID) ([]models.Item, error) {
	if len(ids) == 0 {
		return []models.Item{}, nil
	}
	var rows []models.Item
	if err := r.table(ctx).Preload("User").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.Item, len(rows))
	for _, it := range rows {
		byID[it.ID] = it
	}
	items := make([]models.Item, 0, len(rows))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			items = append(items, it)
		}
	}
	return items, nil
}

func (r *ItemRepo) Create(ctx context.Context, item *models.Item) error {
	return r.table(ctx).Create(item).Error
}

// Update loads the row, applies patch and saves it in one transaction.
func (r *ItemRepo) Update(ctx context.Context, id uuid.UUID, patch models.ItemPatch) (*models.Item, error) {
	var item models.Item
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(r.Table).Where("id = ?", id).First(&item).Error; err != nil {
			return err
		}
		patch.Apply(&item)
		return tx.Table(r.Table).Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes the row and returns it as it was before deletion.
func (r *ItemRepo) Delete(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(r.Table).Where("id = ?", id).First(&item).Error; err != nil {
			return err
		}
		res := tx.Table(r.Table).Where("id = ?", item.ID).Delete(&models.Item{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SearchLike matches q as a case-insensitive substring of name or description.
func (r *ItemRepo) SearchLike(ctx context.Context, q string, offset, limit int) (int64, []models.Item, error) {
	pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
	where := "LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\'"

	var total int64
	if err := r.table(ctx).Where(where, pattern, pattern).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := []models.Item{}
	if err := r.table(ctx).
		Preload("User").
		Where(where, pattern, pattern).
		Order("name ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
