package service

import (
	"context"
	"errors"
	"time"

	"github.com/craftify/craftify-backend/config"
	"github.com/craftify/craftify-backend/internal/app/model"
	"github.com/craftify/craftify-backend/internal/app/repository"
	"github.com/craftify/craftify-backend/pkg/logger"
	"github.com/craftify/craftify-backend/pkg/redis"
	"github.com/craftify/craftify-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrUsernameExists     = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidPhone       = errors.New("phone must be 10-15 digits with optional + prefix")
	ErrInvalidCountryCode = errors.New("country code must be + followed by 1-3 digits")
	ErrInvalidAddress     = errors.New("address requires street, city, state, postal code and country")
	ErrInvalidPostalCode  = errors.New("postal code must be 12345 or 12345-6789")
)

// RegisterInput carries the registration payload into the service
type RegisterInput struct {
	Email       string
	Username    string
	Password    string
	FirstName   string
	LastName    string
	Bio         string
	Phone       string
	CountryCode string
	DateOfBirth *time.Time
	Address     *AddressInput
}

type AddressInput struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

type UpdateProfileInput struct {
	FirstName   *string
	LastName    *string
	Bio         *string
	Phone       *string
	CountryCode *string
	DateOfBirth *time.Time
	Address     *AddressInput
}

type AuthService interface {
	Register(input RegisterInput) (*model.User, *util.TokenPair, error)
	Login(email, password string) (*model.User, *util.TokenPair, error)
	Logout(ctx context.Context, token string, expiry time.Duration) error
	GetProfile(userID uint) (*model.User, error)
	UpdateProfile(userID uint, input UpdateProfileInput) (*model.User, error)
	ListUsers(limit, offset int) ([]model.User, int64, error)
	GetUser(id uint) (*model.User, error)
	DeleteUser(id uint) error
}

type authService struct {
	userRepo repository.UserRepository
	jwtCfg   *config.JWTConfig
}

func NewAuthService(userRepo repository.UserRepository, jwtCfg *config.JWTConfig) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
	}
}

func (s *authService) Register(input RegisterInput) (*model.User, *util.TokenPair, error) {
	logger.Info("Registering new user", map[string]interface{}{
		"email":    input.Email,
		"username": input.Username,
	})

	if input.Phone != "" && !util.IsValidPhoneNumber(input.Phone) {
		return nil, nil, ErrInvalidPhone
	}
	if input.CountryCode != "" && !util.IsValidCountryCode(input.CountryCode) {
		return nil, nil, ErrInvalidCountryCode
	}

	var address *model.Address
	if input.Address != nil {
		addr, err := validateAddress(input.Address)
		if err != nil {
			return nil, nil, err
		}
		address = addr
	}

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		logger.Warn("Registration rejected: email exists", map[string]interface{}{
			"email": input.Email,
		})
		return nil, nil, ErrEmailExists
	}
	if _, err := s.userRepo.FindByUsername(input.Username); err == nil {
		logger.Warn("Registration rejected: username exists", map[string]interface{}{
			"username": input.Username,
		})
		return nil, nil, ErrUsernameExists
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, nil)
		return nil, nil, err
	}

	user := &model.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Bio:          input.Bio,
		Phone:        input.Phone,
		CountryCode:  input.CountryCode,
		DateOfBirth:  input.DateOfBirth,
		Role:         model.RoleUser,
		Address:      address,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, nil, err
	}

	tokens, err := util.GenerateTokenPair(
		user.ID, user.Email, string(user.Role),
		s.jwtCfg.Secret, s.jwtCfg.AccessTokenExpiry, s.jwtCfg.RefreshTokenExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate token pair", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, tokens, nil
}

func validateAddress(input *AddressInput) (*model.Address, error) {
	if input.Street == "" || input.City == "" || input.State == "" ||
		input.PostalCode == "" || input.Country == "" {
		return nil, ErrInvalidAddress
	}
	if !util.IsValidPostalCode(input.PostalCode) {
		return nil, ErrInvalidPostalCode
	}
	return &model.Address{
		Street:     input.Street,
		City:       input.City,
		State:      input.State,
		PostalCode: input.PostalCode,
		Country:    input.Country,
	}, nil
}

func (s *authService) Login(email, password string) (*model.User, *util.TokenPair, error) {
	logger.Info("User login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login rejected: wrong password", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := util.GenerateTokenPair(
		user.ID, user.Email, string(user.Role),
		s.jwtCfg.Secret, s.jwtCfg.AccessTokenExpiry, s.jwtCfg.RefreshTokenExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate token pair", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, tokens, nil
}

// Logout revokes the presented access token for the rest of its lifetime
func (s *authService) Logout(ctx context.Context, token string, expiry time.Duration) error {
	return redis.BlacklistToken(ctx, token, expiry)
}

func (s *authService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(userID uint, input UpdateProfileInput) (*model.User, error) {
	logger.Info("Updating user profile", map[string]interface{}{
		"user_id": userID,
	})

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Phone != nil {
		if *input.Phone != "" && !util.IsValidPhoneNumber(*input.Phone) {
			return nil, ErrInvalidPhone
		}
		user.Phone = *input.Phone
	}
	if input.CountryCode != nil {
		if *input.CountryCode != "" && !util.IsValidCountryCode(*input.CountryCode) {
			return nil, ErrInvalidCountryCode
		}
		user.CountryCode = *input.CountryCode
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.DateOfBirth != nil {
		user.DateOfBirth = input.DateOfBirth
	}

	if input.Address != nil {
		addr, err := validateAddress(input.Address)
		if err != nil {
			return nil, err
		}
		addr.UserID = user.ID
		if user.Address != nil {
			addr.ID = user.Address.ID
		}
		if err := s.userRepo.SaveAddress(addr); err != nil {
			return nil, err
		}
		user.Address = addr
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("User profile updated", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}

func (s *authService) ListUsers(limit, offset int) ([]model.User, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.FindAll(limit, offset)
}

func (s *authService) GetUser(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account and everything hanging off it
func (s *authService) DeleteUser(id uint) error {
	logger.Info("Deleting user account", map[string]interface{}{
		"user_id": id,
	})

	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.Delete(id)
}
