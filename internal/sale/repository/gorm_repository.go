package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/nurbek/dealer-pos/internal/sale/domain"
)

type GormSaleRepository struct {
	db *gorm.DB
}

func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

func (r *GormSaleRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Sale{}, &domain.SaleLineItem{})
}

func (r *GormSaleRepository) Create(sale *domain.Sale) error {
	return r.db.Create(sale).Error
}

func (r *GormSaleRepository) FindByID(id uint) (*domain.Sale, error) {
	var sale domain.Sale
	err := r.db.Preload("LineItems").First(&sale, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSaleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *GormSaleRepository) FindBySaleNumber(saleNumber string) (*domain.Sale, error) {
	var sale domain.Sale
	err := r.db.Preload("LineItems").Where("sale_number = ?", saleNumber).First(&sale).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSaleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *GormSaleRepository) FindByCustomerID(customerID uint, from, to *time.Time, limit, offset int) ([]domain.Sale, error) {
	q := r.db.Preload("LineItems").Where("customer_id = ?", customerID)
	if from != nil {
		q = q.Where("sale_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("sale_date <= ?", *to)
	}

	var sales []domain.Sale
	err := q.Order("sale_date DESC").Limit(limit).Offset(offset).Find(&sales).Error
	return sales, err
}

func (r *GormSaleRepository) FindAll(limit, offset int) ([]domain.Sale, error) {
	var sales []domain.Sale
	err := r.db.Preload("LineItems").
		Order("sale_date DESC").
		Limit(limit).Offset(offset).
		Find(&sales).Error
	return sales, err
}
