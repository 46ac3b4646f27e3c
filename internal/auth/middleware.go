package auth

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const (
	CtxUserIDKey    = "user_id"
	CtxUserNameKey  = "user_name"
	CtxUserRolesKey = "user_roles"
)

// JWTMiddleware imzayı doğrular ve token'ın bağlı olduğu oturumun hâlâ kayıtlı olmasını ister.
// Fabrika ayarlarına dönüş oturumları sildiği için eski token'lar geçersiz kalır.
func JWTMiddleware(db *gorm.DB, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header eksik")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization formatı 'Bearer <token>' olmalı")
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("geçersiz imzalama yöntemi")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token çözümlenemedi")
		}
		if claims.ID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		}

		var session models.Session
		err = db.WithContext(c.UserContext()).
			Where("id = ? AND user_id = ? AND expires_at > ?", claims.ID, claims.UserID, time.Now()).
			First(&session).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Oturum sona ermiş, tekrar giriş yapın")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Oturum doğrulanamadı")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUserNameKey, claims.Name)
		c.Locals(CtxUserRolesKey, claims.Roles)

		return c.Next()
	}
}

// RequireRole kullanıcının izin verilen rollerden en az birine sahip olmasını ister.
func RequireRole(allowedRoles ...models.RoleName) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, ok := c.Locals(CtxUserRolesKey).([]models.RoleName)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
		}

		for _, r := range allowedRoles {
			if slices.Contains(roles, r) {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Bu işlem için yetkiniz yok")
	}
}

// Actor istek sahibinin kimliğini middleware'in yazdığı değerlerden okur.
func Actor(c *fiber.Ctx) (userID, userName string) {
	userID, _ = c.Locals(CtxUserIDKey).(string)
	userName, _ = c.Locals(CtxUserNameKey).(string)
	return userID, userName
}
