package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"arenapix-be/internal/logger"
	"arenapix-be/internal/openpix"
	"arenapix-be/internal/payment"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoPixKey           = errors.New("no pix key configured")
)

type Service interface {
	Register(ctx context.Context, name, email, password string) (string, User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	GetByID(ctx context.Context, id uint) (User, error)

	// Seller payment settings.
	SavePaymentSettings(ctx context.Context, userID uint, pixKey string) (*openpix.SubAccount, error)
	GetBalance(ctx context.Context, userID uint) (int64, error)
	Withdraw(ctx context.Context, userID uint, value *int64) (*openpix.Withdrawal, error)
}

type service struct {
	repo    Repository
	gateway payment.Gateway
}

func NewService(repo Repository, gateway payment.Gateway) Service {
	return &service{repo: repo, gateway: gateway}
}

func (s *service) Register(ctx context.Context, name, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, name, email, hashed, string(RoleUser))
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return "", User{}, ErrEmailExists
		}
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), email)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", fmt.Sprint(u.ID)), zap.Error(err))
		return "", User{}, err
	}

	log.Info("user registered", zap.String("email", email))
	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", User{}, ErrInvalidCredentials
		}
		return "", User{}, err
	}

	if !CheckPasswordHash(password, u.Password) {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		return "", User{}, err
	}
	return token, u, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (User, error) {
	return s.repo.FindByID(ctx, id)
}

// SavePaymentSettings stores the seller's Pix key and makes sure the provider
// sub-account for it exists. Ensure semantics: saving the same key twice does
// not create a duplicate sub-account.
func (s *service) SavePaymentSettings(ctx context.Context, userID uint, pixKey string) (*openpix.SubAccount, error) {
	pixKey = strings.TrimSpace(pixKey)
	if pixKey == "" {
		return nil, ErrNoPixKey
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	account, err := s.gateway.EnsureSubAccount(ctx, u.Name, pixKey)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to ensure sub-account",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.repo.UpdatePixKey(ctx, userID, pixKey); err != nil {
		return nil, err
	}

	return account, nil
}

func (s *service) GetBalance(ctx context.Context, userID uint) (int64, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if u.PixKey == nil || *u.PixKey == "" {
		return 0, ErrNoPixKey
	}
	return s.gateway.GetSubAccountBalance(ctx, *u.PixKey)
}

func (s *service) Withdraw(ctx context.Context, userID uint, value *int64) (*openpix.Withdrawal, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.PixKey == nil || *u.PixKey == "" {
		return nil, ErrNoPixKey
	}
	return s.gateway.Withdraw(ctx, *u.PixKey, value)
}
