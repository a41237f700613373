package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/foodondoor/backend/internal/models"
	"github.com/foodondoor/backend/internal/otp"
	"github.com/foodondoor/backend/internal/repo"
	"github.com/foodondoor/backend/internal/transport"
	"github.com/foodondoor/backend/pkg/logging"
	"github.com/foodondoor/backend/pkg/tokens"
	"gorm.io/gorm"
)

type AuthService struct {
	Repo   *repo.GormRepo
	OTP    *otp.Manager
	Tokens *tokens.Issuer
}

// LoginResult is what a successful OTP verification yields. When the phone
// has no account yet, NeedsSignup is set and no tokens are issued.
type LoginResult struct {
	NeedsSignup bool
	SubjectID   string
	Pair        *tokens.Pair
}

func (s *AuthService) SendOTP(ctx context.Context, phone string) (string, error) {
	if phone == "" {
		return "", fmt.Errorf("%w: phone is required", ErrValidation)
	}

	code, err := s.OTP.Generate(ctx, phone)
	if err != nil {
		if errors.Is(err, otp.ErrRateLimited) {
			return "", fmt.Errorf("%w: %s", ErrValidation, err)
		}
		return "", err
	}

	// An SMS gateway goes here; for now the code is logged so dev and
	// test flows can read it.
	logging.FromContext(ctx).Info("otp_issued", "phone", phone, "otp", code)
	return code, nil
}

func (s *AuthService) verifyCode(ctx context.Context, phone, code string) error {
	if phone == "" || code == "" {
		return fmt.Errorf("%w: phone and otp are required", ErrValidation)
	}
	if err := s.OTP.Verify(ctx, phone, code); err != nil {
		switch {
		case errors.Is(err, otp.ErrExpired), errors.Is(err, otp.ErrTooManyAttempts), errors.Is(err, otp.ErrMismatch):
			return fmt.Errorf("%w: %s", ErrValidation, err)
		default:
			return err
		}
	}
	return nil
}

func (s *AuthService) VerifyVendorOTP(ctx context.Context, phone, code string) (*LoginResult, error) {
	if err := s.verifyCode(ctx, phone, code); err != nil {
		return nil, err
	}

	vendor, err := s.Repo.VendorByPhone(ctx, phone)
	if err == gorm.ErrRecordNotFound {
		return &LoginResult{NeedsSignup: true}, nil
	}
	if err != nil {
		return nil, err
	}

	pair, err := s.Tokens.IssuePair(tokens.RoleVendor, vendor.Code)
	if err != nil {
		return nil, err
	}
	return &LoginResult{SubjectID: vendor.Code, Pair: pair}, nil
}

func (s *AuthService) VerifyCustomerOTP(ctx context.Context, phone, code string) (*LoginResult, error) {
	if err := s.verifyCode(ctx, phone, code); err != nil {
		return nil, err
	}

	customer, err := s.Repo.CustomerByPhone(ctx, phone)
	if err == gorm.ErrRecordNotFound {
		return &LoginResult{NeedsSignup: true}, nil
	}
	if err != nil {
		return nil, err
	}

	pair, err := s.Tokens.IssuePair(tokens.RoleCustomer, customer.Code)
	if err != nil {
		return nil, err
	}
	return &LoginResult{SubjectID: customer.Code, Pair: pair}, nil
}

// SendDeliveryOTP creates the bare agent record on first contact, then
// issues the code.
func (s *AuthService) SendDeliveryOTP(ctx context.Context, phone string) (string, error) {
	if phone == "" {
		return "", fmt.Errorf("%w: phone is required", ErrValidation)
	}

	agent, err := s.Repo.GetOrCreateAgent(ctx, phone)
	if err != nil {
		return "", err
	}
	if !agent.IsActive {
		return "", fmt.Errorf("%w: account is inactive", ErrConflict)
	}
	return s.SendOTP(ctx, phone)
}

func (s *AuthService) VerifyDeliveryOTP(ctx context.Context, phone, code string) (*LoginResult, error) {
	if err := s.verifyCode(ctx, phone, code); err != nil {
		return nil, err
	}

	agent, err := s.Repo.AgentByPhone(ctx, phone)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: delivery agent", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !agent.IsRegistered {
		return &LoginResult{NeedsSignup: true}, nil
	}

	pair, err := s.Tokens.IssuePair(tokens.RoleDelivery, agent.ID.String())
	if err != nil {
		return nil, err
	}
	return &LoginResult{SubjectID: agent.ID.String(), Pair: pair}, nil
}

func (s *AuthService) VendorSignup(ctx context.Context, req transport.VendorSignupRequest) (*models.Vendor, error) {
	if req.Phone == "" || req.RestaurantName == "" || req.Email == "" {
		return nil, fmt.Errorf("%w: phone, restaurant_name and email are required", ErrValidation)
	}

	if _, err := s.Repo.VendorByPhone(ctx, req.Phone); err == nil {
		return nil, fmt.Errorf("%w: vendor with this phone already exists", ErrConflict)
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	vendor := &models.Vendor{
		Phone:          req.Phone,
		RestaurantName: req.RestaurantName,
		Email:          req.Email,
		Address:        req.Address,
		ContactNumber:  req.ContactNumber,
		OpenHours:      req.OpenHours,
		CuisineType:    req.CuisineType,
		Pincode:        req.Pincode,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		IsActive:       true,
	}
	if err := s.Repo.CreateVendor(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *AuthService) CustomerSignup(ctx context.Context, req transport.CustomerSignupRequest) (*models.Customer, *tokens.Pair, error) {
	if req.Phone == "" || req.Name == "" || req.Email == "" {
		return nil, nil, fmt.Errorf("%w: phone, name and email are required", ErrValidation)
	}

	exists, err := s.Repo.CustomerExists(ctx, req.Phone, req.Email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, fmt.Errorf("%w: an account with this phone or email already exists", ErrConflict)
	}

	customer := &models.Customer{
		Phone:    req.Phone,
		FullName: req.Name,
		Email:    req.Email,
	}
	if err := s.Repo.CreateCustomer(ctx, customer); err != nil {
		return nil, nil, err
	}

	pair, err := s.Tokens.IssuePair(tokens.RoleCustomer, customer.Code)
	if err != nil {
		return nil, nil, err
	}
	return customer, pair, nil
}

// DeliveryRegister completes an agent profile after OTP verification and
// issues the first token pair.
func (s *AuthService) DeliveryRegister(ctx context.Context, req transport.DeliveryRegisterRequest) (*models.DeliveryAgent, *tokens.Pair, error) {
	if req.Phone == "" || req.Name == "" {
		return nil, nil, fmt.Errorf("%w: phone and name are required", ErrValidation)
	}

	agent, err := s.Repo.AgentByPhone(ctx, req.Phone)
	if err == gorm.ErrRecordNotFound {
		return nil, nil, fmt.Errorf("%w: verify OTP first", ErrNotFound)
	}
	if err != nil {
		return nil, nil, err
	}
	if agent.IsRegistered {
		return nil, nil, fmt.Errorf("%w: already registered", ErrConflict)
	}

	agent.Name = req.Name
	agent.Email = req.Email
	agent.IsRegistered = true
	if err := s.Repo.SaveAgent(ctx, agent); err != nil {
		return nil, nil, err
	}

	pair, err := s.Tokens.IssuePair(tokens.RoleDelivery, agent.ID.String())
	if err != nil {
		return nil, nil, err
	}
	return agent, pair, nil
}

// Refresh re-validates the token type and subject for the role, then
// rotates the pair. Old refresh tokens stay valid until natural expiry.
func (s *AuthService) Refresh(ctx context.Context, role, refreshToken string) (*tokens.Pair, error) {
	subject, err := s.Tokens.ParseRefresh(refreshToken, role)
	if err != nil {
		return nil, err
	}

	switch role {
	case tokens.RoleVendor:
		if _, err := s.Repo.VendorByCode(ctx, subject); err != nil {
			return nil, tokens.ErrInvalidToken
		}
	case tokens.RoleCustomer:
		if _, err := s.Repo.CustomerByCode(ctx, subject); err != nil {
			return nil, tokens.ErrInvalidToken
		}
	case tokens.RoleDelivery:
		id, err := parseAgentID(subject)
		if err != nil {
			return nil, tokens.ErrInvalidToken
		}
		if _, err := s.Repo.AgentByID(ctx, id); err != nil {
			return nil, tokens.ErrInvalidToken
		}
	default:
		return nil, tokens.ErrInvalidToken
	}

	return s.Tokens.IssuePair(role, subject)
}
