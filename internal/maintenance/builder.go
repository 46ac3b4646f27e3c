package maintenance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pos-backend/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const isoLayout = "2006-01-02T15:04:05.000Z"

// BuildSystemSnapshot canlı veritabanını okuyup snapshot üretir.
// db bir transaction da olabilir; bu durumda okumalar tek bağlantı üzerinde sırayla yapılır.
func BuildSystemSnapshot(ctx context.Context, db *gorm.DB) (*SystemSnapshot, error) {
	var (
		categories     []models.Category
		materials      []models.Material
		products       []models.Product
		recipeItems    []models.RecipeItem
		suppliers      []models.Supplier
		purchases      []models.Purchase
		purchaseItems  []models.PurchaseItem
		waste          []models.Waste
		zones          []models.Zone
		taxes          []models.TaxRate
		drivers        []models.Driver
		diningTables   []models.DiningTable
		orders         []models.Order
		orderItems     []models.OrderItem
		sales          []models.Sale
		saleItems      []models.SaleItem
		expenses       []models.Expense
		employees      []models.Employee
		attendance     []models.Attendance
		shiftTemplates []models.ShiftTemplate
		shiftLogs      []models.ShiftLog
		payroll        []models.Payroll
		leaves         []models.Leave
	)

	g, gctx := errgroup.WithContext(ctx)
	if inTransaction(db) {
		g.SetLimit(1)
	}
	load := func(order string, dest any) {
		g.Go(func() error {
			return db.WithContext(gctx).Order(order).Find(dest).Error
		})
	}

	load("name, id", &categories)
	load("name, id", &materials)
	load("name, id", &products)
	load("product_id, id", &recipeItems)
	load("name, id", &suppliers)
	load("date, id", &purchases)
	load("purchase_id, id", &purchaseItems)
	load("date, id", &waste)
	load("name, id", &zones)
	load("name, id", &taxes)
	load("name, id", &drivers)
	load("number, id", &diningTables)
	load("created_at, id", &orders)
	load("order_id, id", &orderItems)
	load("date, id", &sales)
	load("sale_id, id", &saleItems)
	load("date, id", &expenses)
	load("name, id", &employees)
	load("check_in, id", &attendance)
	load("name, id", &shiftTemplates)
	load("started_at, id", &shiftLogs)
	load("date, id", &payroll)
	load("from_date, id", &leaves)

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("snapshot okunamadı: %w", err)
	}

	return &SystemSnapshot{
		Version:    SnapshotVersion,
		ExportedAt: isoTime(time.Now()),
		Data: SnapshotData{
			Categories:     mapSlice(categories, categoryRecord),
			Materials:      mapSlice(materials, materialRecord),
			Products:       mapSlice(products, productRecord),
			RecipeItems:    mapSlice(recipeItems, recipeItemRecord),
			Suppliers:      mapSlice(suppliers, supplierRecord),
			Purchases:      mapSlice(purchases, purchaseRecord),
			PurchaseItems:  mapSlice(purchaseItems, purchaseItemRecord),
			Waste:          mapSlice(waste, wasteRecord),
			Zones:          mapSlice(zones, zoneRecord),
			Taxes:          mapSlice(taxes, taxRateRecord),
			Drivers:        mapSlice(drivers, driverRecord),
			DiningTables:   mapSlice(diningTables, diningTableRecord),
			Orders:         mapSlice(orders, orderRecord),
			OrderItems:     mapSlice(orderItems, orderItemRecord),
			Sales:          mapSlice(sales, saleRecord),
			SaleItems:      mapSlice(saleItems, saleItemRecord),
			Expenses:       mapSlice(expenses, expenseRecord),
			Employees:      mapSlice(employees, employeeRecord),
			Attendance:     mapSlice(attendance, attendanceRecord),
			ShiftTemplates: mapSlice(shiftTemplates, shiftTemplateRecord),
			ShiftLogs:      mapSlice(shiftLogs, shiftLogRecord),
			Payroll:        mapSlice(payroll, payrollRecord),
			Leaves:         mapSlice(leaves, leaveRecord),
		},
	}, nil
}

// inTransaction tek bağlantılı bir sql.Tx üzerinde çalışılıp çalışılmadığını söyler.
func inTransaction(db *gorm.DB) bool {
	_, ok := db.Statement.ConnPool.(gorm.TxCommitter)
	return ok
}

// mapSlice her zaman nil olmayan bir slice döner; JSON'da null yerine [] yazılır.
func mapSlice[M any, R any](rows []M, convert func(M) R) []R {
	out := make([]R, 0, len(rows))
	for _, row := range rows {
		out = append(out, convert(row))
	}
	return out
}

func isoTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

func isoTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := isoTime(*t)
	return &s
}

func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func categoryRecord(m models.Category) CategoryRecord {
	return CategoryRecord{ID: m.ID, Name: m.Name, Description: m.Description}
}

func materialRecord(m models.Material) MaterialRecord {
	return MaterialRecord{
		ID:       m.ID,
		Name:     m.Name,
		Unit:     m.Unit,
		Cost:     num(m.Cost),
		Stock:    num(m.Stock),
		MinStock: num(m.MinStock),
	}
}

func productRecord(m models.Product) ProductRecord {
	return ProductRecord{
		ID:         m.ID,
		Name:       m.Name,
		CategoryID: m.CategoryID,
		Price:      num(m.Price),
		IsActive:   m.IsActive,
		ImageURL:   m.ImageURL,
	}
}

func recipeItemRecord(m models.RecipeItem) RecipeItemRecord {
	return RecipeItemRecord{
		ID:         m.ID,
		ProductID:  m.ProductID,
		MaterialID: m.MaterialID,
		Quantity:   num(m.Quantity),
	}
}

func supplierRecord(m models.Supplier) SupplierRecord {
	return SupplierRecord{ID: m.ID, Name: m.Name, Phone: m.Phone, Email: m.Email, IsActive: m.IsActive}
}

func purchaseRecord(m models.Purchase) PurchaseRecord {
	return PurchaseRecord{
		ID:         m.ID,
		Code:       m.Code,
		SupplierID: m.SupplierID,
		Date:       isoTime(m.Date),
		Total:      num(m.Total),
		Status:     m.Status,
		Notes:      m.Notes,
	}
}

func purchaseItemRecord(m models.PurchaseItem) PurchaseItemRecord {
	return PurchaseItemRecord{
		ID:         m.ID,
		PurchaseID: m.PurchaseID,
		MaterialID: m.MaterialID,
		Quantity:   num(m.Quantity),
		UnitCost:   num(m.UnitCost),
		TotalCost:  num(m.TotalCost),
	}
}

func wasteRecord(m models.Waste) WasteRecord {
	return WasteRecord{
		ID:         m.ID,
		Date:       isoTime(m.Date),
		MaterialID: m.MaterialID,
		Quantity:   num(m.Quantity),
		Reason:     m.Reason,
		Cost:       num(m.Cost),
	}
}

func zoneRecord(m models.Zone) ZoneRecord {
	return ZoneRecord{
		ID:       m.ID,
		Name:     m.Name,
		LimitKm:  num(m.LimitKm),
		Fee:      num(m.Fee),
		MinOrder: num(m.MinOrder),
		Status:   m.Status,
	}
}

func taxRateRecord(m models.TaxRate) TaxRateRecord {
	return TaxRateRecord{ID: m.ID, Name: m.Name, Rate: num(m.Rate), IsDefault: m.IsDefault, IsActive: m.IsActive}
}

func driverRecord(m models.Driver) DriverRecord {
	return DriverRecord{ID: m.ID, Name: m.Name, Phone: m.Phone, Status: m.Status, ActiveOrders: m.ActiveOrders}
}

func diningTableRecord(m models.DiningTable) DiningTableRecord {
	return DiningTableRecord{ID: m.ID, Name: m.Name, Number: m.Number, IsOccupied: m.IsOccupied}
}

func orderRecord(m models.Order) OrderRecord {
	var receipt datatypes.JSON
	if m.ReceiptSnapshot != nil && len(*m.ReceiptSnapshot) > 0 {
		receipt = *m.ReceiptSnapshot
	}
	return OrderRecord{
		ID:              m.ID,
		Code:            m.Code,
		Type:            m.Type,
		Status:          m.Status,
		CustomerName:    m.CustomerName,
		ZoneID:          m.ZoneID,
		DriverID:        m.DriverID,
		TableID:         m.TableID,
		Discount:        num(m.Discount),
		TaxRate:         num(m.TaxRate),
		TaxAmount:       num(m.TaxAmount),
		Payment:         m.Payment,
		Notes:           m.Notes,
		ReceiptSnapshot: receipt,
		CreatedAt:       isoTime(m.CreatedAt),
		UpdatedAt:       isoTime(m.UpdatedAt),
	}
}

func orderItemRecord(m models.OrderItem) OrderItemRecord {
	return OrderItemRecord{
		ID:         m.ID,
		OrderID:    m.OrderID,
		ProductID:  m.ProductID,
		Quantity:   num(m.Quantity),
		UnitPrice:  num(m.UnitPrice),
		TotalPrice: num(m.TotalPrice),
	}
}

func saleRecord(m models.Sale) SaleRecord {
	return SaleRecord{
		ID:           m.ID,
		InvoiceNo:    m.InvoiceNo,
		OrderID:      m.OrderID,
		Date:         isoTime(m.Date),
		CustomerName: m.CustomerName,
		Total:        num(m.Total),
		Status:       m.Status,
		Notes:        m.Notes,
	}
}

func saleItemRecord(m models.SaleItem) SaleItemRecord {
	return SaleItemRecord{
		ID:         m.ID,
		SaleID:     m.SaleID,
		ProductID:  m.ProductID,
		Name:       m.Name,
		Quantity:   num(m.Quantity),
		UnitPrice:  num(m.UnitPrice),
		TotalPrice: num(m.TotalPrice),
	}
}

func expenseRecord(m models.Expense) ExpenseRecord {
	return ExpenseRecord{
		ID:     m.ID,
		Date:   isoTime(m.Date),
		Title:  m.Title,
		Vendor: m.Vendor,
		Amount: num(m.Amount),
		Notes:  m.Notes,
	}
}

func employeeRecord(m models.Employee) EmployeeRecord {
	return EmployeeRecord{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		RoleTitle: m.RoleTitle,
		Phone:     m.Phone,
		Status:    m.Status,
	}
}

func attendanceRecord(m models.Attendance) AttendanceRecord {
	return AttendanceRecord{
		ID:         m.ID,
		EmployeeID: m.EmployeeID,
		CheckIn:    isoTime(m.CheckIn),
		CheckOut:   isoTimePtr(m.CheckOut),
		Status:     m.Status,
		Notes:      m.Notes,
	}
}

func shiftTemplateRecord(m models.ShiftTemplate) ShiftTemplateRecord {
	return ShiftTemplateRecord{
		ID:         m.ID,
		Name:       m.Name,
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
		StaffCount: m.StaffCount,
		Status:     m.Status,
	}
}

func shiftLogRecord(m models.ShiftLog) ShiftLogRecord {
	pauses := []ShiftPause{}
	if len(m.Pauses) > 0 {
		// Bozuk kayıt boş liste olarak dışa aktarılır
		if err := json.Unmarshal(m.Pauses, &pauses); err != nil || pauses == nil {
			pauses = []ShiftPause{}
		}
	}
	return ShiftLogRecord{
		ID:              m.ID,
		EmployeeID:      m.EmployeeID,
		StartedAt:       isoTime(m.StartedAt),
		EndedAt:         isoTimePtr(m.EndedAt),
		DurationMinutes: m.DurationMinutes,
		Pauses:          pauses,
	}
}

func payrollRecord(m models.Payroll) PayrollRecord {
	return PayrollRecord{
		ID:         m.ID,
		EmployeeID: m.EmployeeID,
		Type:       m.Type,
		Amount:     num(m.Amount),
		Date:       isoTime(m.Date),
		Note:       m.Note,
	}
}

func leaveRecord(m models.Leave) LeaveRecord {
	return LeaveRecord{
		ID:         m.ID,
		EmployeeID: m.EmployeeID,
		FromDate:   isoTime(m.FromDate),
		ToDate:     isoTime(m.ToDate),
		Status:     m.Status,
		Reason:     m.Reason,
	}
}
