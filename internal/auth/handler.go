package auth

import (
	"errors"
	"strings"
	"time"

	"pos-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var validate = validator.New()

var errSetupCompleted = errors.New("kurulum zaten tamamlanmış")

type SetupRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email,max=100"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	BusinessName string `json:"business_name" validate:"omitempty,max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GET /api/setup
func SetupStatusHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var setting models.SystemSetting
		if err := db.WithContext(c.UserContext()).First(&setting, models.SystemSettingID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sistem ayarları okunamadı")
		}
		return c.JSON(fiber.Map{
			"setup_completed":    setting.SetupCompletedAt != nil,
			"setup_completed_at": setting.SetupCompletedAt,
		})
	}
}

// POST /api/setup
// İlk kurulum: sahip hesabını ve rolleri oluşturur. Kurulum tamamlandıktan sonra
// (fabrika ayarlarına dönülene kadar) tekrar çalışmaz.
func SetupHandler(db *gorm.DB, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SetupRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.Name = strings.TrimSpace(body.Name)
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "İsim, geçerli bir email ve en az 8 karakterlik şifre zorunlu")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
		}
		var session *models.Session
		err = db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
			var setting models.SystemSetting
			if err := lockedSetting(tx, &setting).Error; err != nil {
				return err
			}
			if setting.SetupCompletedAt != nil {
				return errSetupCompleted
			}

			roles, err := EnsureRoles(tx)
			if err != nil {
				return err
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.UserRole{UserID: user.ID, RoleID: roles[models.RoleOwner].ID}).Error; err != nil {
				return err
			}
			if session, err = CreateSession(tx, user.ID); err != nil {
				return err
			}
			if body.BusinessName != "" {
				branding := models.BrandingSetting{BusinessName: body.BusinessName}
				if err := tx.Create(&branding).Error; err != nil {
					return err
				}
			}
			return tx.Model(&models.SystemSetting{}).
				Where("id = ?", models.SystemSettingID).
				Update("setup_completed_at", time.Now()).Error
		})
		if errors.Is(err, errSetupCompleted) {
			return fiber.NewError(fiber.StatusConflict, "Kurulum zaten tamamlanmış")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kurulum tamamlanamadı")
		}

		roles := []models.RoleName{models.RoleOwner}
		token, err := GenerateToken(secret, &user, session, roles)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"token": token,
			"user":  userResponse(&user, roles),
		})
	}
}

// lockedSetting ayar satırını FOR UPDATE ile okur; eşzamanlı kurulum istekleri sıraya girer.
func lockedSetting(tx *gorm.DB, setting *models.SystemSetting) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(setting, models.SystemSettingID)
}

// POST /api/auth/login
func LoginHandler(db *gorm.DB, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Email ve şifre zorunlu")
		}

		dbc := db.WithContext(c.UserContext())
		var user models.User
		if err := dbc.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}

		roles, err := UserRoles(dbc, user.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Roller okunamadı")
		}

		session, err := CreateSession(dbc, user.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Oturum açılamadı")
		}
		token, err := GenerateToken(secret, &user, session, roles)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user":  userResponse(&user, roles),
		})
	}
}

// GET /api/auth/me
func MeHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := Actor(c)

		dbc := db.WithContext(c.UserContext())
		var user models.User
		if err := dbc.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}
		roles, err := UserRoles(dbc, user.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Roller okunamadı")
		}
		return c.JSON(userResponse(&user, roles))
	}
}

func userResponse(user *models.User, roles []models.RoleName) fiber.Map {
	return fiber.Map{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"roles":     roles,
		"branch_id": user.BranchID,
	}
}

// EnsureRoles sabit rollerin var olmasını sağlar; isimden role eşleme döner.
func EnsureRoles(tx *gorm.DB) (map[models.RoleName]models.Role, error) {
	out := make(map[models.RoleName]models.Role, 3)
	for _, name := range []models.RoleName{models.RoleOwner, models.RoleAdmin, models.RoleStaff} {
		role := models.Role{Name: name}
		if err := tx.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return nil, err
		}
		out[name] = role
	}
	return out, nil
}

func UserRoles(db *gorm.DB, userID string) ([]models.RoleName, error) {
	names := []models.RoleName{}
	err := db.Model(&models.Role{}).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Order("roles.name").
		Pluck("roles.name", &names).Error
	return names, err
}
