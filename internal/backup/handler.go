package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"pos-backend/internal/audit"
	"pos-backend/internal/auth"
	"pos-backend/internal/maintenance"
	"pos-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const (
	ResetConfirmation        = "RESET"
	FactoryResetConfirmation = "FACTORY RESET"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ResetRequest struct {
	Scope   string `json:"scope" validate:"required,oneof=transactions operational"`
	Confirm string `json:"confirm" validate:"required"`
}

type FactoryResetRequest struct {
	Confirm string `json:"confirm" validate:"required"`
}

type Handler struct {
	engine   *maintenance.Engine
	archive  *Archive
	validate *validator.Validate
	log      zerolog.Logger
}

func NewHandler(engine *maintenance.Engine, archive *Archive, log zerolog.Logger) *Handler {
	return &Handler{
		engine:   engine,
		archive:  archive,
		validate: validator.New(),
		log:      log.With().Str("component", "backup").Logger(),
	}
}

// writeAudit işlemi geri almaz; log yazılamazsa sadece uyarı düşülür.
func (h *Handler) writeAudit(c *fiber.Ctx, opts audit.LogOptions) {
	opts.UserID, opts.UserName = auth.Actor(c)
	if err := audit.WriteLog(h.engine.DB().WithContext(c.UserContext()), opts); err != nil {
		h.log.Warn().Err(err).Str("action", string(opts.Action)).Msg("audit log yazılamadı")
	}
}

// GET /api/admin/backup
func (h *Handler) DownloadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		snapshot, err := h.engine.Build(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yedek oluşturulamadı")
		}
		raw, err := json.Marshal(snapshot)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yedek oluşturulamadı")
		}

		userID, _ := auth.Actor(c)
		record, err := h.archive.Save(c.UserContext(), snapshot, raw, userID)
		if err != nil {
			h.log.Error().Err(err).Msg("yedek arşivlenemedi")
			return fiber.NewError(fiber.StatusInternalServerError, "Yedek arşivlenemedi")
		}

		h.writeAudit(c, audit.LogOptions{
			EntityType:  audit.EntityBackupRecord,
			EntityID:    record.ID,
			Action:      models.AuditActionBackup,
			Description: "Sistem yedeği indirildi",
			Details:     snapshot.Data.Counts(),
		})

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		c.Attachment(downloadName(snapshot, "json"))
		c.Set("X-Backup-Id", record.ID)
		return c.Send(raw)
	}
}

// GET /api/admin/backup/export.xlsx
func (h *Handler) ExportWorkbookHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		snapshot, err := h.engine.Build(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yedek oluşturulamadı")
		}

		var buf bytes.Buffer
		if err := maintenance.WriteWorkbook(snapshot, &buf); err != nil {
			h.log.Error().Err(err).Msg("excel dosyası yazılamadı")
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}

		h.writeAudit(c, audit.LogOptions{
			EntityType:  audit.EntitySystemSnapshot,
			Action:      models.AuditActionBackup,
			Description: "Sistem verisi Excel olarak dışa aktarıldı",
			Details:     snapshot.Data.Counts(),
		})

		c.Attachment(downloadName(snapshot, "xlsx"))
		c.Set(fiber.HeaderContentType, xlsxContentType)
		return c.Send(buf.Bytes())
	}
}

func downloadName(snapshot *maintenance.SystemSnapshot, ext string) string {
	day := time.Now().UTC().Format("2006-01-02")
	if t, err := time.Parse(time.RFC3339Nano, snapshot.ExportedAt); err == nil {
		day = t.UTC().Format("2006-01-02")
	}
	return fmt.Sprintf("pos-backup-%s.%s", day, ext)
}

// GET /api/admin/backups
func (h *Handler) ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := h.archive.List(c.UserContext(), 100)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yedekler listelenemedi")
		}
		return c.JSON(records)
	}
}

// POST /api/admin/restore
// Dosya multipart "file" alanında ya da doğrudan JSON gövde olarak gönderilebilir.
func (h *Handler) RestoreUploadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := uploadedSnapshot(c)
		if err != nil {
			return err
		}
		snapshot, err := maintenance.DecodeSnapshot(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz yedek dosyası")
		}
		return h.restore(c, snapshot, "")
	}
}

func uploadedSnapshot(c *fiber.Ctx) ([]byte, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if len(c.Body()) == 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Yedek dosyası gönderilmedi")
		}
		return bytes.Clone(c.Body()), nil
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Yedek dosyası gönderilmedi")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Yedek dosyası okunamadı")
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Yedek dosyası okunamadı")
	}
	return raw, nil
}

// POST /api/admin/backups/:id/restore
func (h *Handler) RestoreArchivedHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		snapshot, _, err := h.archive.Load(c.UserContext(), id)
		switch {
		case errors.Is(err, ErrRecordNotFound), errors.Is(err, ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Yedek bulunamadı")
		case errors.Is(err, maintenance.ErrInvalidSnapshot):
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Arşivdeki yedek dosyası bozuk")
		case err != nil:
			h.log.Error().Err(err).Str("backup_id", id).Msg("yedek okunamadı")
			return fiber.NewError(fiber.StatusInternalServerError, "Yedek okunamadı")
		}
		return h.restore(c, snapshot, id)
	}
}

func (h *Handler) restore(c *fiber.Ctx, snapshot *maintenance.SystemSnapshot, backupID string) error {
	report, err := h.engine.Restore(c.UserContext(), snapshot)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Geri yükleme başarısız, veriler değiştirilmedi")
	}

	entityType := audit.EntitySystemSnapshot
	if backupID != "" {
		entityType = audit.EntityBackupRecord
	}
	h.writeAudit(c, audit.LogOptions{
		EntityType:  entityType,
		EntityID:    backupID,
		Action:      models.AuditActionRestore,
		Description: fmt.Sprintf("Yedek geri yüklendi (%d satır, %d atlandı)", report.Inserted(), report.Dropped()),
		Details:     report,
	})

	return c.JSON(fiber.Map{
		"message": "Yedek geri yüklendi",
		"report":  report,
	})
}

// POST /api/admin/reset
func (h *Handler) ResetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ResetRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := h.validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Kapsam 'transactions' veya 'operational' olmalı")
		}
		if body.Confirm != ResetConfirmation {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Onay için %q yazılmalı", ResetConfirmation))
		}

		scope, err := maintenance.ParseScope(body.Scope)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		result, err := h.engine.Reset(c.UserContext(), scope)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sıfırlama başarısız, veriler değiştirilmedi")
		}

		h.writeAudit(c, audit.LogOptions{
			EntityType:  audit.EntitySystemData,
			Action:      models.AuditActionReset,
			Description: fmt.Sprintf("Veriler sıfırlandı (%s)", scope),
			Details:     result,
		})
		return c.JSON(result)
	}
}

// POST /api/admin/factory-reset
// Audit tablosu da silindiği için log yazılmaz, sadece uygulama loguna düşer.
func (h *Handler) FactoryResetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body FactoryResetRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := h.validate.Struct(body); err != nil || body.Confirm != FactoryResetConfirmation {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Onay için %q yazılmalı", FactoryResetConfirmation))
		}

		userID, userName := auth.Actor(c)
		result, err := h.engine.FactoryReset(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fabrika ayarlarına dönülemedi, veriler değiştirilmedi")
		}
		h.log.Warn().Str("user_id", userID).Str("user_name", userName).Msg("fabrika ayarlarına dönüş yapıldı")

		return c.JSON(result)
	}
}
