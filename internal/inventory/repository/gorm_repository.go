package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nurbek/dealer-pos/internal/inventory/domain"
)

type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.InventoryItem{})
}

func (r *GormInventoryRepository) Create(item *domain.InventoryItem) error {
	if err := r.db.Create(item).Error; err != nil {
		return err
	}
	item.RefreshStatus()
	return nil
}

func (r *GormInventoryRepository) FindByID(id uint) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := r.db.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormInventoryRepository) FindByCategory(category domain.Category, limit, offset int) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	err := r.db.Where("category = ?", category).
		Limit(limit).Offset(offset).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *GormInventoryRepository) FindAll(limit, offset int) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	err := r.db.Limit(limit).Offset(offset).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *GormInventoryRepository) Update(item *domain.InventoryItem) error {
	item.Version++
	if err := r.db.Save(item).Error; err != nil {
		return err
	}
	item.RefreshStatus()
	return nil
}

func (r *GormInventoryRepository) Delete(id uint) error {
	return r.db.Delete(&domain.InventoryItem{}, id).Error
}

// TryDecrement performs the compare-and-swap in a single guarded UPDATE:
// the sufficiency check and the write happen in one atomic statement, so
// quantity can never go negative under concurrent callers.
func (r *GormInventoryRepository) TryDecrement(ctx context.Context, id uint, amount int, expectedVersion uint64) (uint64, error) {
	res := r.db.WithContext(ctx).Model(&domain.InventoryItem{}).
		Where("id = ? AND version = ? AND quantity >= ?", id, expectedVersion, amount).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity - ?", amount),
			"version":  gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected > 0 {
		return expectedVersion + 1, nil
	}

	// The guard failed; re-read once to report why.
	var item domain.InventoryItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	if item.Version != expectedVersion {
		return 0, domain.ErrVersionConflict
	}
	return 0, domain.ErrInsufficientStock
}

// Restock adds amount back to the pool unconditionally, bumping the version
func (r *GormInventoryRepository) Restock(ctx context.Context, id uint, amount int) (uint64, error) {
	var newVersion uint64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.InventoryItem{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"quantity": gorm.Expr("quantity + ?", amount),
				"version":  gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		var item domain.InventoryItem
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}
		newVersion = item.Version
		return nil
	})
	if err != nil {
		return 0, err
	}

	return newVersion, nil
}
