package maintenance

import (
	"context"
	"fmt"

	"pos-backend/internal/models"

	"gorm.io/gorm"
)

type Scope string

const (
	// ScopeTransactions sadece hareket kayıtlarını siler, ana veriler kalır
	ScopeTransactions Scope = "transactions"
	// ScopeOperational hareketlerle birlikte tüm ana verileri de siler
	ScopeOperational Scope = "operational"
)

func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeTransactions, ScopeOperational:
		return Scope(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidScope, s)
	}
}

type table struct {
	name  string
	model any
}

// Silme sırası çocuk tablolardan ebeveynlere doğrudur; değiştirilmemeli.
var (
	transactionTables = []table{
		{"sale_items", &models.SaleItem{}},
		{"sales", &models.Sale{}},
		{"order_items", &models.OrderItem{}},
		{"orders", &models.Order{}},
		{"purchase_items", &models.PurchaseItem{}},
		{"purchases", &models.Purchase{}},
		{"wastes", &models.Waste{}},
		{"expenses", &models.Expense{}},
		{"attendances", &models.Attendance{}},
		{"shift_logs", &models.ShiftLog{}},
		{"payrolls", &models.Payroll{}},
		{"leaves", &models.Leave{}},
	}
	masterTables = []table{
		{"recipe_items", &models.RecipeItem{}},
		{"products", &models.Product{}},
		{"categories", &models.Category{}},
		{"materials", &models.Material{}},
		{"suppliers", &models.Supplier{}},
		{"zones", &models.Zone{}},
		{"tax_rates", &models.TaxRate{}},
		{"drivers", &models.Driver{}},
		{"dining_tables", &models.DiningTable{}},
		{"shift_templates", &models.ShiftTemplate{}},
		{"employees", &models.Employee{}},
	}
	identityTables = []table{
		{"branches", &models.Branch{}},
		{"branding_settings", &models.BrandingSetting{}},
		{"backup_records", &models.BackupRecord{}},
		{"audit_logs", &models.AuditLog{}},
		{"sessions", &models.Session{}},
		{"invites", &models.Invite{}},
		{"user_roles", &models.UserRole{}},
		{"role_permissions", &models.RolePermission{}},
		{"roles", &models.Role{}},
		{"users", &models.User{}},
	}
)

// ResetResult tablo başına silinen satır sayıları.
type ResetResult struct {
	Scope   string           `json:"scope"`
	Deleted map[string]int64 `json:"deleted"`
}

func newResetResult(scope string) *ResetResult {
	return &ResetResult{Scope: scope, Deleted: make(map[string]int64)}
}

func (r *ResetResult) Total() int64 {
	var total int64
	for _, n := range r.Deleted {
		total += n
	}
	return total
}

// ResetSystemData verilen kapsamı tek bir transaction içinde temizler.
func ResetSystemData(ctx context.Context, db *gorm.DB, scope Scope) (*ResetResult, error) {
	if _, err := ParseScope(string(scope)); err != nil {
		return nil, err
	}

	result := newResetResult(string(scope))
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return clearScope(tx, scope, result)
	})
	if err != nil {
		return nil, fmt.Errorf("sıfırlama başarısız (%s): %w", scope, err)
	}
	return result, nil
}

// FactoryResetSystemData operasyonel veriye ek olarak kimlik ve ayar tablolarını da siler,
// ardından uygulamayı ilk kurulum durumuna döndürür.
// Çağıran katman bu işlemi yalnızca en yetkili role açmalıdır.
func FactoryResetSystemData(ctx context.Context, db *gorm.DB) (*ResetResult, error) {
	result := newResetResult("factory")
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearScope(tx, ScopeOperational, result); err != nil {
			return err
		}
		if err := deleteAll(tx, identityTables, result); err != nil {
			return err
		}
		return tx.Model(&models.SystemSetting{}).
			Where("id = ?", models.SystemSettingID).
			Update("setup_completed_at", nil).Error
	})
	if err != nil {
		return nil, fmt.Errorf("fabrika ayarlarına dönüş başarısız: %w", err)
	}
	return result, nil
}

func clearScope(tx *gorm.DB, scope Scope, result *ResetResult) error {
	if err := clearTransactions(tx, result); err != nil {
		return err
	}
	if scope == ScopeOperational {
		return deleteAll(tx, masterTables, result)
	}
	return nil
}

func clearTransactions(tx *gorm.DB, result *ResetResult) error {
	if err := deleteAll(tx, transactionTables, result); err != nil {
		return err
	}
	// Hareketler silindiği için türetilmiş durum da sıfırlanır
	if err := tx.Model(&models.DiningTable{}).Where("1 = 1").Update("is_occupied", false).Error; err != nil {
		return fmt.Errorf("masalar boşaltılamadı: %w", err)
	}
	if err := tx.Model(&models.Driver{}).Where("1 = 1").Update("active_orders", 0).Error; err != nil {
		return fmt.Errorf("kurye sayaçları sıfırlanamadı: %w", err)
	}
	return nil
}

func deleteAll(tx *gorm.DB, tables []table, result *ResetResult) error {
	for _, t := range tables {
		res := tx.Where("1 = 1").Delete(t.model)
		if res.Error != nil {
			return fmt.Errorf("%s silinemedi: %w", t.name, res.Error)
		}
		if result != nil {
			result.Deleted[t.name] += res.RowsAffected
		}
	}
	return nil
}
