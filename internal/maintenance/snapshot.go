// Package maintenance sistem yedeği (snapshot), geri yükleme ve sıfırlama işlemlerini içerir.
//
// Snapshot tüm operasyonel verinin sürümlü JSON halidir. Kimlik, oturum, marka ve
// sistem ayarı tabloları snapshot'a girmez.
package maintenance

import (
	"errors"

	"pos-backend/internal/models"

	"gorm.io/datatypes"
)

const SnapshotVersion = 1

var (
	ErrInvalidSnapshot = errors.New("geçersiz yedek dosyası")
	ErrInvalidScope    = errors.New("geçersiz sıfırlama kapsamı")
)

// Koleksiyon anahtarları, dosya formatındaki adlarıyla.
const (
	CollectionCategories     = "categories"
	CollectionMaterials      = "materials"
	CollectionProducts       = "products"
	CollectionRecipeItems    = "recipeItems"
	CollectionSuppliers      = "suppliers"
	CollectionPurchases      = "purchases"
	CollectionPurchaseItems  = "purchaseItems"
	CollectionWaste          = "waste"
	CollectionZones          = "zones"
	CollectionTaxes          = "taxes"
	CollectionDrivers        = "drivers"
	CollectionDiningTables   = "diningTables"
	CollectionOrders         = "orders"
	CollectionOrderItems     = "orderItems"
	CollectionSales          = "sales"
	CollectionSaleItems      = "saleItems"
	CollectionExpenses       = "expenses"
	CollectionEmployees      = "employees"
	CollectionAttendance     = "attendance"
	CollectionShiftTemplates = "shiftTemplates"
	CollectionShiftLogs      = "shiftLogs"
	CollectionPayroll        = "payroll"
	CollectionLeaves         = "leaves"
)

// RequiredCollections bir yedeğin içermesi zorunlu olan 22 koleksiyon.
// taxes eski dışa aktarımlarda bulunmayabilir, yoksa boş kabul edilir.
var RequiredCollections = []string{
	CollectionCategories, CollectionMaterials, CollectionProducts, CollectionRecipeItems,
	CollectionSuppliers, CollectionPurchases, CollectionPurchaseItems, CollectionWaste,
	CollectionZones, CollectionDrivers, CollectionDiningTables, CollectionOrders,
	CollectionOrderItems, CollectionSales, CollectionSaleItems, CollectionExpenses,
	CollectionEmployees, CollectionAttendance, CollectionShiftTemplates, CollectionShiftLogs,
	CollectionPayroll, CollectionLeaves,
}

type SystemSnapshot struct {
	Version    int          `json:"version"`
	ExportedAt string       `json:"exportedAt"`
	Data       SnapshotData `json:"data"`
}

type SnapshotData struct {
	Categories     []CategoryRecord      `json:"categories"`
	Materials      []MaterialRecord      `json:"materials"`
	Products       []ProductRecord       `json:"products"`
	RecipeItems    []RecipeItemRecord    `json:"recipeItems"`
	Suppliers      []SupplierRecord      `json:"suppliers"`
	Purchases      []PurchaseRecord      `json:"purchases"`
	PurchaseItems  []PurchaseItemRecord  `json:"purchaseItems"`
	Waste          []WasteRecord         `json:"waste"`
	Zones          []ZoneRecord          `json:"zones"`
	Taxes          []TaxRateRecord       `json:"taxes"`
	Drivers        []DriverRecord        `json:"drivers"`
	DiningTables   []DiningTableRecord   `json:"diningTables"`
	Orders         []OrderRecord         `json:"orders"`
	OrderItems     []OrderItemRecord     `json:"orderItems"`
	Sales          []SaleRecord          `json:"sales"`
	SaleItems      []SaleItemRecord      `json:"saleItems"`
	Expenses       []ExpenseRecord       `json:"expenses"`
	Employees      []EmployeeRecord      `json:"employees"`
	Attendance     []AttendanceRecord    `json:"attendance"`
	ShiftTemplates []ShiftTemplateRecord `json:"shiftTemplates"`
	ShiftLogs      []ShiftLogRecord      `json:"shiftLogs"`
	Payroll        []PayrollRecord       `json:"payroll"`
	Leaves         []LeaveRecord         `json:"leaves"`
}

// Counts koleksiyon başına satır sayısı.
func (d *SnapshotData) Counts() map[string]int {
	return map[string]int{
		CollectionCategories:     len(d.Categories),
		CollectionMaterials:      len(d.Materials),
		CollectionProducts:       len(d.Products),
		CollectionRecipeItems:    len(d.RecipeItems),
		CollectionSuppliers:      len(d.Suppliers),
		CollectionPurchases:      len(d.Purchases),
		CollectionPurchaseItems:  len(d.PurchaseItems),
		CollectionWaste:          len(d.Waste),
		CollectionZones:          len(d.Zones),
		CollectionTaxes:          len(d.Taxes),
		CollectionDrivers:        len(d.Drivers),
		CollectionDiningTables:   len(d.DiningTables),
		CollectionOrders:         len(d.Orders),
		CollectionOrderItems:     len(d.OrderItems),
		CollectionSales:          len(d.Sales),
		CollectionSaleItems:      len(d.SaleItems),
		CollectionExpenses:       len(d.Expenses),
		CollectionEmployees:      len(d.Employees),
		CollectionAttendance:     len(d.Attendance),
		CollectionShiftTemplates: len(d.ShiftTemplates),
		CollectionShiftLogs:      len(d.ShiftLogs),
		CollectionPayroll:        len(d.Payroll),
		CollectionLeaves:         len(d.Leaves),
	}
}

type CategoryRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type MaterialRecord struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Cost     float64 `json:"cost"`
	Stock    float64 `json:"stock"`
	MinStock float64 `json:"minStock"`
}

type ProductRecord struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	CategoryID string  `json:"categoryId"`
	Price      float64 `json:"price"`
	IsActive   bool    `json:"isActive"`
	ImageURL   *string `json:"imageUrl"`
}

type RecipeItemRecord struct {
	ID         string  `json:"id"`
	ProductID  string  `json:"productId"`
	MaterialID string  `json:"materialId"`
	Quantity   float64 `json:"quantity"`
}

type SupplierRecord struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	IsActive bool    `json:"isActive"`
}

type PurchaseRecord struct {
	ID         string                `json:"id"`
	Code       string                `json:"code"`
	SupplierID string                `json:"supplierId"`
	Date       string                `json:"date"`
	Total      float64               `json:"total"`
	Status     models.PurchaseStatus `json:"status"`
	Notes      *string               `json:"notes"`
}

type PurchaseItemRecord struct {
	ID         string  `json:"id"`
	PurchaseID string  `json:"purchaseId"`
	MaterialID string  `json:"materialId"`
	Quantity   float64 `json:"quantity"`
	UnitCost   float64 `json:"unitCost"`
	TotalCost  float64 `json:"totalCost"`
}

type WasteRecord struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`
	MaterialID string  `json:"materialId"`
	Quantity   float64 `json:"quantity"`
	Reason     *string `json:"reason"`
	Cost       float64 `json:"cost"`
}

type ZoneRecord struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	LimitKm  float64           `json:"limitKm"`
	Fee      float64           `json:"fee"`
	MinOrder float64           `json:"minOrder"`
	Status   models.ZoneStatus `json:"status"`
}

type TaxRateRecord struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Rate      float64 `json:"rate"`
	IsDefault bool    `json:"isDefault"`
	IsActive  bool    `json:"isActive"`
}

type DriverRecord struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Phone        *string `json:"phone"`
	Status       string  `json:"status"`
	ActiveOrders int     `json:"activeOrders"`
}

type DiningTableRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Number     int    `json:"number"`
	IsOccupied bool   `json:"isOccupied"`
}

type OrderRecord struct {
	ID              string               `json:"id"`
	Code            string               `json:"code"`
	Type            models.OrderType     `json:"type"`
	Status          models.OrderStatus   `json:"status"`
	CustomerName    *string              `json:"customerName"`
	ZoneID          *string              `json:"zoneId"`
	DriverID        *string              `json:"driverId"`
	TableID         *string              `json:"tableId"`
	Discount        float64              `json:"discount"`
	TaxRate         float64              `json:"taxRate"`
	TaxAmount       float64              `json:"taxAmount"`
	Payment         models.PaymentMethod `json:"payment"`
	Notes           *string              `json:"notes"`
	ReceiptSnapshot datatypes.JSON       `json:"receiptSnapshot"`
	CreatedAt       string               `json:"createdAt"`
	UpdatedAt       string               `json:"updatedAt"`
}

type OrderItemRecord struct {
	ID         string  `json:"id"`
	OrderID    string  `json:"orderId"`
	ProductID  *string `json:"productId"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

type SaleRecord struct {
	ID           string            `json:"id"`
	InvoiceNo    string            `json:"invoiceNo"`
	OrderID      *string           `json:"orderId"`
	Date         string            `json:"date"`
	CustomerName *string           `json:"customerName"`
	Total        float64           `json:"total"`
	Status       models.SaleStatus `json:"status"`
	Notes        *string           `json:"notes"`
}

type SaleItemRecord struct {
	ID         string  `json:"id"`
	SaleID     string  `json:"saleId"`
	ProductID  *string `json:"productId"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

type ExpenseRecord struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Title  string  `json:"title"`
	Vendor *string `json:"vendor"`
	Amount float64 `json:"amount"`
	Notes  *string `json:"notes"`
}

type EmployeeRecord struct {
	ID        string                `json:"id"`
	UserID    *string               `json:"userId"`
	Name      string                `json:"name"`
	RoleTitle string                `json:"roleTitle"`
	Phone     *string               `json:"phone"`
	Status    models.EmployeeStatus `json:"status"`
}

type AttendanceRecord struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employeeId"`
	CheckIn    string  `json:"checkIn"`
	CheckOut   *string `json:"checkOut"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes"`
}

type ShiftTemplateRecord struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	StartTime  string             `json:"startTime"`
	EndTime    string             `json:"endTime"`
	StaffCount *int               `json:"staffCount"`
	Status     models.ShiftStatus `json:"status"`
}

type ShiftPause struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

type ShiftLogRecord struct {
	ID              string       `json:"id"`
	EmployeeID      string       `json:"employeeId"`
	StartedAt       string       `json:"startedAt"`
	EndedAt         *string      `json:"endedAt"`
	DurationMinutes int          `json:"durationMinutes"`
	Pauses          []ShiftPause `json:"pauses"`
}

type PayrollRecord struct {
	ID         string             `json:"id"`
	EmployeeID string             `json:"employeeId"`
	Type       models.PayrollType `json:"type"`
	Amount     float64            `json:"amount"`
	Date       string             `json:"date"`
	Note       *string            `json:"note"`
}

type LeaveRecord struct {
	ID         string             `json:"id"`
	EmployeeID string             `json:"employeeId"`
	FromDate   string             `json:"fromDate"`
	ToDate     string             `json:"toDate"`
	Status     models.LeaveStatus `json:"status"`
	Reason     *string            `json:"reason"`
}
