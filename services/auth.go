package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Kariqs/foodhub-api/apperrors"
	"github.com/Kariqs/foodhub-api/models"
	"github.com/Kariqs/foodhub-api/utils"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const msgInvalidCredentials = "invalid email or password"

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret}
}

// ParseRole maps the :role path segment to a role. Management can log in but
// never sign up.
func ParseRole(segment string, forSignup bool) (models.Role, bool) {
	switch segment {
	case "customer":
		return models.RoleCustomer, true
	case "restaurant":
		return models.RoleRestaurantOwner, true
	case "delivery-partner":
		return models.RoleDeliveryPartner, true
	case "management":
		return models.RoleManagement, !forSignup
	}
	return "", false
}

func (s *AuthService) Signup(ctx context.Context, role models.Role, data models.SignupData) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(data.Email))
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, dbError("failed to check user", err)
	}
	if count > 0 {
		return nil, apperrors.Conflict("user already exists")
	}

	hash, err := utils.HashPassword(data.Password)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user := models.User{
		Fullname: strings.TrimSpace(data.Fullname),
		Email:    email,
		Phone:    strings.TrimSpace(data.Phone),
		Password: hash,
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("user already exists")
		}
		return nil, dbError("failed to create user", err)
	}
	log.Info().Uint("userId", user.ID).Str("role", string(role)).Msg("user_signed_up")
	return &user, nil
}

// Login returns a signed token for a user of the given role.
func (s *AuthService) Login(ctx context.Context, role models.Role, data models.LoginData) (string, *models.User, error) {
	email := strings.ToLower(strings.TrimSpace(data.Email))

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ? AND role = ?", email, role).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.Unauthorized(msgInvalidCredentials)
		}
		return "", nil, dbError("failed to load user", err)
	}
	if err := utils.ComparePasswords(user.Password, data.Password); err != nil {
		return "", nil, apperrors.Unauthorized(msgInvalidCredentials)
	}

	token, err := utils.GenerateJWT(user, s.jwtSecret)
	if err != nil {
		return "", nil, apperrors.Internal("failed to generate token", err)
	}
	return token, &user, nil
}
