package repo

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/foodondoor/backend/internal/models"
	"gorm.io/gorm"
)

// NextCustomerCode picks a random C##### code and re-checks it against the
// table until it is free.
func (r *GormRepo) NextCustomerCode(ctx context.Context) (string, error) {
	for i := 0; i < 20; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(90000))
		if err != nil {
			return "", err
		}
		code := fmt.Sprintf("C%d", n.Int64()+10000)

		var count int64
		if err := r.DB.WithContext(ctx).Model(&models.Customer{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not allocate customer code")
}

func (r *GormRepo) CreateCustomer(ctx context.Context, c *models.Customer) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if c.Code == "" {
			code, err := (&GormRepo{DB: tx}).NextCustomerCode(ctx)
			if err != nil {
				return err
			}
			c.Code = code
		}
		return tx.Create(c).Error
	})
}

func (r *GormRepo) CustomerByCode(ctx context.Context, code string) (*models.Customer, error) {
	var c models.Customer
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormRepo) CustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	var c models.Customer
	if err := r.DB.WithContext(ctx).Where("phone = ?", phone).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormRepo) CustomerExists(ctx context.Context, phone, email string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Customer{}).
		Where("phone = ? OR email = ?", phone, email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) SaveCustomer(ctx context.Context, c *models.Customer) error {
	return r.DB.WithContext(ctx).Save(c).Error
}
