package repo

import (
	"context"

	"github.com/foodondoor/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetOrCreateAgent returns the delivery agent for phone, creating the bare
// record on first contact so registration can complete after OTP.
func (r *GormRepo) GetOrCreateAgent(ctx context.Context, phone string) (*models.DeliveryAgent, error) {
	var agent models.DeliveryAgent
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.DeliveryAgent{Phone: phone}).Error; err != nil {
			return err
		}
		return tx.Where("phone = ?", phone).First(&agent).Error
	})
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *GormRepo) AgentByPhone(ctx context.Context, phone string) (*models.DeliveryAgent, error) {
	var agent models.DeliveryAgent
	if err := r.DB.WithContext(ctx).Where("phone = ?", phone).First(&agent).Error; err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *GormRepo) AgentByID(ctx context.Context, id uuid.UUID) (*models.DeliveryAgent, error) {
	var agent models.DeliveryAgent
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&agent).Error; err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *GormRepo) SaveAgent(ctx context.Context, agent *models.DeliveryAgent) error {
	return r.DB.WithContext(ctx).Save(agent).Error
}

// AgentOrders lists orders assigned to an agent, optionally filtered by
// status, newest first.
func (r *GormRepo) AgentOrders(ctx context.Context, agentID uuid.UUID, statuses []string) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).
		Preload("Items").
		Where("delivery_agent_id = ?", agentID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
