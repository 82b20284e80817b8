package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/minipos/minipos/internal/models"
)

func (r *GormRepo) CreateItem(ctx context.Context, i *models.Item) error {
	return r.DB.WithContext(ctx).Create(i).Error
}

func (r *GormRepo) ListItems(ctx context.Context) ([]models.Item, error) {
	items := []models.Item{}
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetItem(ctx context.Context, id string) (*models.Item, error) {
	var item models.Item
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) SaveItem(ctx context.Context, i *models.Item) error {
	return r.DB.WithContext(ctx).Save(i).Error
}

func (r *GormRepo) DeleteItem(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Item{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
