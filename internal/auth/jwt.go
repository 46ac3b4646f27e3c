package auth

import (
	"time"

	"pos-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

type JWTCustomClaims struct {
	UserID string            `json:"user_id"`
	Name   string            `json:"name"`
	Email  string            `json:"email"`
	Roles  []models.RoleName `json:"roles"`
	jwt.RegisteredClaims
}

// GenerateToken token'ı verilen oturuma bağlar; oturum kimliği jti alanında taşınır.
func GenerateToken(secret string, user *models.User, session *models.Session, roles []models.RoleName) (string, error) {
	claims := &JWTCustomClaims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// CreateSession kullanıcı için tokenTTL süreli yeni bir oturum satırı açar.
func CreateSession(tx *gorm.DB, userID string) (*models.Session, error) {
	now := time.Now()
	session := &models.Session{
		UserID:    userID,
		ExpiresAt: now.Add(tokenTTL),
		CreatedAt: now,
	}
	if err := tx.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}
