package maintenance

import (
	"path/filepath"
	"testing"

	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func ptr[T any](v T) *T { return &v }

// fixtureSnapshot builder'ın sıralamasıyla uyumlu, her koleksiyonda en az bir satır içeren snapshot.
func fixtureSnapshot() *SystemSnapshot {
	return &SystemSnapshot{
		Version:    SnapshotVersion,
		ExportedAt: "2024-04-01T00:00:00.000Z",
		Data: SnapshotData{
			Categories: []CategoryRecord{
				{ID: "cat-1", Name: "Drinks", Description: ptr("Sıcak ve soğuk")},
				{ID: "cat-2", Name: "Food"},
			},
			Materials: []MaterialRecord{
				{ID: "mat-1", Name: "Coffee", Unit: "kg", Cost: 120.5, Stock: 3, MinStock: 1},
				{ID: "mat-2", Name: "Milk", Unit: "lt", Cost: 30, Stock: 12.5, MinStock: 4},
			},
			Products: []ProductRecord{
				{ID: "prod-1", Name: "Latte", CategoryID: "cat-1", Price: 45, IsActive: true},
				{ID: "prod-2", Name: "Toast", CategoryID: "cat-2", Price: 60, ImageURL: ptr("https://cdn.example.com/toast.png")},
			},
			RecipeItems: []RecipeItemRecord{
				{ID: "ri-1", ProductID: "prod-1", MaterialID: "mat-1", Quantity: 0.018},
				{ID: "ri-2", ProductID: "prod-1", MaterialID: "mat-2", Quantity: 0.2},
			},
			Suppliers: []SupplierRecord{
				{ID: "sup-1", Name: "Bean Co", Phone: ptr("555-0100"), IsActive: true},
			},
			Purchases: []PurchaseRecord{
				{ID: "pur-1", Code: "PO-1", SupplierID: "sup-1", Date: "2024-03-01T09:00:00.000Z",
					Total: 241, Status: models.PurchaseStatusReceived, Notes: ptr("ilk sipariş")},
			},
			PurchaseItems: []PurchaseItemRecord{
				{ID: "pi-1", PurchaseID: "pur-1", MaterialID: "mat-1", Quantity: 2, UnitCost: 120.5, TotalCost: 241},
			},
			Waste: []WasteRecord{
				{ID: "w-1", Date: "2024-03-02T18:00:00.000Z", MaterialID: "mat-2", Quantity: 0.5, Reason: ptr("döküldü"), Cost: 15},
			},
			Zones: []ZoneRecord{
				{ID: "zone-1", Name: "Center", LimitKm: 5, Fee: 15, MinOrder: 100, Status: models.ZoneStatusActive},
			},
			Taxes: []TaxRateRecord{
				{ID: "tax-1", Name: "KDV", Rate: 10, IsDefault: true, IsActive: true},
			},
			Drivers: []DriverRecord{
				{ID: "drv-1", Name: "Ali", Status: "ON_DELIVERY", ActiveOrders: 1},
			},
			DiningTables: []DiningTableRecord{
				{ID: "tbl-1", Name: "T1", Number: 1, IsOccupied: true},
				{ID: "tbl-2", Name: "T2", Number: 2},
			},
			Orders: []OrderRecord{
				{ID: "ord-1", Code: "A-1", Type: models.OrderTypeDelivery, Status: models.OrderStatusOutForDelivery,
					CustomerName: ptr("Ayşe"), ZoneID: ptr("zone-1"), DriverID: ptr("drv-1"),
					TaxRate: 10, TaxAmount: 4.5, Payment: models.PaymentMethodCard,
					ReceiptSnapshot: datatypes.JSON(`{"lines":1}`),
					CreatedAt:       "2024-03-03T12:00:00.000Z", UpdatedAt: "2024-03-03T12:30:00.000Z"},
				{ID: "ord-2", Code: "A-2", Type: models.OrderTypeDineIn, Status: models.OrderStatusPreparing,
					TableID: ptr("tbl-1"), Discount: 5, Payment: models.PaymentMethodCash, Notes: ptr("acısız"),
					CreatedAt: "2024-03-03T13:00:00.000Z", UpdatedAt: "2024-03-03T13:00:00.000Z"},
			},
			OrderItems: []OrderItemRecord{
				{ID: "oi-1", OrderID: "ord-1", ProductID: ptr("prod-1"), Quantity: 1, UnitPrice: 45, TotalPrice: 45},
				{ID: "oi-2", OrderID: "ord-2", Quantity: 2, UnitPrice: 30, TotalPrice: 60},
			},
			Sales: []SaleRecord{
				{ID: "sale-1", InvoiceNo: "INV-1", OrderID: ptr("ord-1"), Date: "2024-03-03T12:35:00.000Z",
					CustomerName: ptr("Ayşe"), Total: 49.5, Status: models.SaleStatusPaid},
			},
			SaleItems: []SaleItemRecord{
				{ID: "si-1", SaleID: "sale-1", ProductID: ptr("prod-1"), Name: "Latte", Quantity: 1, UnitPrice: 45, TotalPrice: 45},
			},
			Expenses: []ExpenseRecord{
				{ID: "exp-1", Date: "2024-03-04T00:00:00.000Z", Title: "Kira", Vendor: ptr("Emlak"), Amount: 5000},
			},
			Employees: []EmployeeRecord{
				{ID: "emp-1", Name: "Zeynep", RoleTitle: "Barista", Phone: ptr("555-0101"), Status: models.EmployeeStatusActive},
			},
			Attendance: []AttendanceRecord{
				{ID: "att-1", EmployeeID: "emp-1", CheckIn: "2024-03-03T08:00:00.000Z",
					CheckOut: ptr("2024-03-03T16:00:00.000Z"), Status: "PRESENT"},
			},
			ShiftTemplates: []ShiftTemplateRecord{
				{ID: "st-1", Name: "Sabah", StartTime: "08:00", EndTime: "16:00", StaffCount: ptr(2), Status: models.ShiftStatusActive},
			},
			ShiftLogs: []ShiftLogRecord{
				{ID: "sl-1", EmployeeID: "emp-1", StartedAt: "2024-03-03T08:00:00.000Z", EndedAt: ptr("2024-03-03T16:00:00.000Z"),
					DurationMinutes: 465, Pauses: []ShiftPause{
						{Start: "2024-03-03T12:00:00.000Z", End: ptr("2024-03-03T12:15:00.000Z")},
					}},
				{ID: "sl-2", EmployeeID: "emp-1", StartedAt: "2024-03-04T08:00:00.000Z", Pauses: []ShiftPause{}},
			},
			Payroll: []PayrollRecord{
				{ID: "pay-1", EmployeeID: "emp-1", Type: models.PayrollTypeSalary, Amount: 25000, Date: "2024-03-31T00:00:00.000Z"},
			},
			Leaves: []LeaveRecord{
				{ID: "lv-1", EmployeeID: "emp-1", FromDate: "2024-04-01T00:00:00.000Z", ToDate: "2024-04-03T00:00:00.000Z",
					Status: models.LeaveStatusApproved, Reason: ptr("yıllık izin")},
			},
		},
	}
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
