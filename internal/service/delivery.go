package service

import (
	"context"
	"fmt"

	"github.com/foodondoor/backend/internal/models"
	"github.com/foodondoor/backend/internal/repo"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryService struct {
	Repo *repo.GormRepo
}

func parseAgentID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

func (s *DeliveryService) agent(ctx context.Context, agentID string) (*models.DeliveryAgent, error) {
	id, err := parseAgentID(agentID)
	if err != nil {
		return nil, fmt.Errorf("%w: delivery agent", ErrNotFound)
	}
	agent, err := s.Repo.AgentByID(ctx, id)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: delivery agent", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return agent, nil
}

func (s *DeliveryService) Profile(ctx context.Context, agentID string) (*models.DeliveryAgent, error) {
	return s.agent(ctx, agentID)
}

// Orders lists the agent's assignments; filter is "active", "completed" or
// empty for all.
func (s *DeliveryService) Orders(ctx context.Context, agentID, filter string) ([]models.Order, error) {
	agent, err := s.agent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	var statuses []string
	switch filter {
	case "":
	case "active":
		statuses = []string{models.OrderStatusOutForDelivery}
	case "completed":
		statuses = []string{models.OrderStatusDelivered}
	default:
		return nil, fmt.Errorf("%w: unknown filter %q", ErrValidation, filter)
	}
	return s.Repo.AgentOrders(ctx, agent.ID, statuses)
}

// Accept assigns an unclaimed order to the agent.
func (s *DeliveryService) Accept(ctx context.Context, agentID, orderNumber string) (*models.Order, error) {
	agent, err := s.agent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	order, err := s.Repo.OrderByNumber(ctx, orderNumber)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderNumber)
	}
	if err != nil {
		return nil, err
	}
	if order.DeliveryAgentID != nil && *order.DeliveryAgentID != agent.ID {
		return nil, fmt.Errorf("%w: order already assigned", ErrConflict)
	}

	order.DeliveryAgentID = &agent.ID
	if err := s.Repo.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateFCMToken stores the agent's push token for assignment alerts.
func (s *DeliveryService) UpdateFCMToken(ctx context.Context, agentID, token string) error {
	if token == "" {
		return fmt.Errorf("%w: fcm_token is required", ErrValidation)
	}
	agent, err := s.agent(ctx, agentID)
	if err != nil {
		return err
	}
	agent.FCMToken = token
	return s.Repo.SaveAgent(ctx, agent)
}
