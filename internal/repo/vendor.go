package repo

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/foodondoor/backend/internal/models"
	"gorm.io/gorm"
)

// NextVendorCode derives the next sequential code (V001, V002, ...) from
// the highest existing one. Uniqueness is ultimately backed by the unique
// index on the column; a concurrent insert surfaces as a constraint error,
// not a retry.
func (r *GormRepo) NextVendorCode(ctx context.Context) (string, error) {
	var last models.Vendor
	err := r.DB.WithContext(ctx).Order("code DESC").First(&last).Error
	if err == gorm.ErrRecordNotFound {
		return "V001", nil
	}
	if err != nil {
		return "", err
	}

	n, convErr := strconv.Atoi(strings.TrimPrefix(last.Code, "V"))
	if convErr != nil {
		var count int64
		if err := r.DB.WithContext(ctx).Model(&models.Vendor{}).Count(&count).Error; err != nil {
			return "", err
		}
		return fmt.Sprintf("V%03d", count+1), nil
	}
	return fmt.Sprintf("V%03d", n+1), nil
}

func (r *GormRepo) CreateVendor(ctx context.Context, v *models.Vendor) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if v.Code == "" {
			code, err := (&GormRepo{DB: tx}).NextVendorCode(ctx)
			if err != nil {
				return err
			}
			v.Code = code
		}
		return tx.Create(v).Error
	})
}

func (r *GormRepo) VendorByCode(ctx context.Context, code string) (*models.Vendor, error) {
	var v models.Vendor
	if err := r.DB.WithContext(ctx).Where("UPPER(code) = ?", strings.ToUpper(strings.TrimSpace(code))).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *GormRepo) VendorByID(ctx context.Context, id uint) (*models.Vendor, error) {
	var v models.Vendor
	if err := r.DB.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *GormRepo) VendorByPhone(ctx context.Context, phone string) (*models.Vendor, error) {
	var v models.Vendor
	if err := r.DB.WithContext(ctx).Where("phone = ?", phone).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *GormRepo) SaveVendor(ctx context.Context, v *models.Vendor) error {
	return r.DB.WithContext(ctx).Save(v).Error
}

func (r *GormRepo) ActiveVendors(ctx context.Context, pincode string) ([]models.Vendor, error) {
	q := r.DB.WithContext(ctx).Where("is_active = ?", true)
	if pincode != "" {
		q = q.Where("address LIKE ?", "%"+pincode+"%")
	}
	var vendors []models.Vendor
	if err := q.Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *GormRepo) TopRatedVendors(ctx context.Context, limit int) ([]models.Vendor, error) {
	var vendors []models.Vendor
	if err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("rating DESC").
		Limit(limit).
		Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}
