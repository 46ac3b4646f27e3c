package maintenance

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"pos-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 500

// RestoreSystemSnapshot tüm operasyonel veriyi snapshot içeriğiyle değiştirir.
//
// İşlem tek transaction'dır: önce operasyonel tablolar boşaltılır, sonra koleksiyonlar
// bağımlılık sırasıyla eklenir. Referansı bulunmayan veya tarihi çözümlenemeyen satırlar
// hata üretmez, atlanır ve rapora yazılır.
func RestoreSystemSnapshot(ctx context.Context, db *gorm.DB, snapshot *SystemSnapshot) (*RestoreReport, error) {
	if snapshot == nil {
		return nil, ErrInvalidSnapshot
	}

	start := time.Now()
	report := newRestoreReport()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearScope(tx, ScopeOperational, nil); err != nil {
			return err
		}
		return newRestorer(tx, report).run(&snapshot.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("geri yükleme başarısız: %w", err)
	}
	report.Duration = time.Since(start)
	return report, nil
}

type idSet map[string]struct{}

func (s idSet) has(id string) bool {
	_, ok := s[id]
	return ok
}

// hasOptional boş referansı geçerli sayar.
func (s idSet) hasOptional(id *string) bool {
	return id == nil || s.has(*id)
}

type restorer struct {
	tx     *gorm.DB
	report *RestoreReport

	categories, materials, products, recipeItems idSet
	suppliers, purchases, purchaseItems, waste   idSet
	zones, taxes, drivers, diningTables          idSet
	employees, attendance, shiftLogs             idSet
	payroll, leaves, shiftTemplates              idSet
	orders, orderItems, sales, saleItems         idSet
	expenses                                     idSet
}

func newRestorer(tx *gorm.DB, report *RestoreReport) *restorer {
	return &restorer{
		tx: tx, report: report,
		categories: idSet{}, materials: idSet{}, products: idSet{}, recipeItems: idSet{},
		suppliers: idSet{}, purchases: idSet{}, purchaseItems: idSet{}, waste: idSet{},
		zones: idSet{}, taxes: idSet{}, drivers: idSet{}, diningTables: idSet{},
		employees: idSet{}, attendance: idSet{}, shiftLogs: idSet{},
		payroll: idSet{}, leaves: idSet{}, shiftTemplates: idSet{},
		orders: idSet{}, orderItems: idSet{}, sales: idSet{}, saleItems: idSet{},
		expenses: idSet{},
	}
}

func (r *restorer) run(d *SnapshotData) error {
	steps := []func(*SnapshotData) error{
		r.restoreCategories,
		r.restoreMaterials,
		r.restoreProducts,
		r.restoreRecipeItems,
		r.restoreSuppliers,
		r.restorePurchases,
		r.restorePurchaseItems,
		r.restoreWaste,
		r.restoreZones,
		r.restoreTaxes,
		r.restoreDrivers,
		r.restoreDiningTables,
		r.restoreEmployees,
		r.restoreAttendance,
		r.restoreShiftLogs,
		r.restorePayroll,
		r.restoreLeaves,
		r.restoreShiftTemplates,
		r.restoreOrders,
		r.restoreOrderItems,
		r.restoreSales,
		r.restoreSaleItems,
		r.restoreExpenses,
	}
	for _, step := range steps {
		if err := step(d); err != nil {
			return err
		}
	}
	return nil
}

// accept satırın kimliğini doğrular ve eklenecek kümeye kaydeder.
// Referans ve tarih kontrolleri accept çağrısından önce yapılmalıdır.
func accept(c *CollectionReport, seen idSet, id string) bool {
	if id == "" {
		c.drop(DropMissingID)
		return false
	}
	if seen.has(id) {
		c.drop(DropDuplicateID)
		return false
	}
	seen[id] = struct{}{}
	return true
}

func insertAll[T any](tx *gorm.DB, c *CollectionReport, name string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Omit(clause.Associations).CreateInBatches(&rows, insertBatchSize).Error; err != nil {
		return fmt.Errorf("%s eklenemedi: %w", name, err)
	}
	c.Inserted = len(rows)
	return nil
}

func dec(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func (r *restorer) restoreCategories(d *SnapshotData) error {
	c := r.report.collection(CollectionCategories, len(d.Categories))
	rows := make([]models.Category, 0, len(d.Categories))
	for _, in := range d.Categories {
		if !accept(c, r.categories, in.ID) {
			continue
		}
		rows = append(rows, models.Category{ID: in.ID, Name: in.Name, Description: in.Description})
	}
	return insertAll(r.tx, c, CollectionCategories, rows)
}

func (r *restorer) restoreMaterials(d *SnapshotData) error {
	c := r.report.collection(CollectionMaterials, len(d.Materials))
	rows := make([]models.Material, 0, len(d.Materials))
	for _, in := range d.Materials {
		if !accept(c, r.materials, in.ID) {
			continue
		}
		rows = append(rows, models.Material{
			ID:       in.ID,
			Name:     in.Name,
			Unit:     in.Unit,
			Cost:     dec(in.Cost),
			Stock:    dec(in.Stock),
			MinStock: dec(in.MinStock),
		})
	}
	return insertAll(r.tx, c, CollectionMaterials, rows)
}

func (r *restorer) restoreProducts(d *SnapshotData) error {
	c := r.report.collection(CollectionProducts, len(d.Products))
	rows := make([]models.Product, 0, len(d.Products))
	for _, in := range d.Products {
		if !r.categories.has(in.CategoryID) {
			c.drop(DropMissingReference)
			continue
		}
		if !accept(c, r.products, in.ID) {
			continue
		}
		rows = append(rows, models.Product{
			ID:         in.ID,
			Name:       in.Name,
			CategoryID: in.CategoryID,
			Price:      dec(in.Price),
			IsActive:   in.IsActive,
			ImageURL:   in.ImageURL,
		})
	}
	return insertAll(r.tx, c, CollectionProducts, rows)
}

func (r *restorer) restoreRecipeItems(d *SnapshotData) error {
	c := r.report.collection(CollectionRecipeItems, len(d.RecipeItems))
	rows := make([]models.RecipeItem, 0, len(d.RecipeItems))
	for _, in := range d.RecipeItems {
		if !r.products.has(in.ProductID) || !r.materials.has(in.MaterialID) {
			c.drop(DropMissingReference)
			continue
		}
		if !accept(c, r.recipeItems, in.ID) {
			continue
		}
		rows = append(rows, models.RecipeItem{
			ID:         in.ID,
			ProductID:  in.ProductID,
			MaterialID: in.MaterialID,
			Quantity:   dec(in.Quantity),
		})
	}
	return insertAll(r.tx, c, CollectionRecipeItems, rows)
}

func (r *restorer) restoreSuppliers(d *SnapshotData) error {
	c := r.report.collection(CollectionSuppliers, len(d.Suppliers))
	rows := make([]models.Supplier, 0, len(d.Suppliers))
	for _, in := range d.Suppliers {
		if !accept(c, r.suppliers, in.ID) {
			continue
		}
		rows = append(rows, models.Supplier{
			ID:       in.ID,
			Name:     in.Name,
			Phone:    in.Phone,
			Email:    in.Email,
			IsActive: in.IsActive,
		})
	}
	return insertAll(r.tx, c, CollectionSuppliers, rows)
}

func (r *restorer) restorePurchases(d *SnapshotData) error {
	c := r.report.collection(CollectionPurchases, len(d.Purchases))
	rows := make([]models.Purchase, 0, len(d.Purchases))
	for _, in := range d.Purchases {
		if !r.suppliers.has(in.SupplierID) {
			c.drop(DropMissingReference)
			continue
		}
		date, ok := parseDate(in.Date)
		if !ok {
			c.drop(DropInvalidDate)
			continue
		}
		if !accept(c, r.purchases, in.ID) {
			continue
		}
		rows = append(rows, models.Purchase{
			ID:         in.ID,
			Code:       in.Code,
			SupplierID: in.SupplierID,
			Date:       date,
			Total:      dec(in.Total),
			Status:     purchaseStatuses.coerce(string(in.Status)),
			Notes:      in.Notes,
		})
	}
	return insertAll(r.tx, c, CollectionPurchases, rows)
}

func (r *restorer) restorePurchaseItems(d *SnapshotData) error {
	c := r.report.collection(CollectionPurchaseItems, len(d.PurchaseItems))
	rows := make([]models.PurchaseItem, 0, len(d.PurchaseItems))
	for _, in := range d.PurchaseItems {
		if !r.purchases.has(in.PurchaseID) || !r.materials.has(in.MaterialID) {
			c.drop(DropMissingReference)
			continue
		}
		if !accept(c, r.purchaseItems, in.ID) {
			continue
		}
		rows = append(rows, models.PurchaseItem{
			ID:         in.ID,
			PurchaseID: in.PurchaseID,
			MaterialID: in.MaterialID,
			Quantity:   dec(in.Quantity),
			UnitCost:   dec(in.UnitCost),
			TotalCost:  dec(in.TotalCost),
		})
	}
	return insertAll(r.tx, c, CollectionPurchaseItems, rows)
}

func (r *restorer) restoreWaste(d *SnapshotData) error {
	c := r.report.collection(CollectionWaste, len(d.Waste))
	rows := make([]models.Waste, 0, len(d.Waste))
	for _, in := range d.Waste {
		if !r.materials.has(in.MaterialID) {
			c.drop(DropMissingReference)
			continue
		}
		date, ok := parseDate(in.Date)
		if !ok {
			c.drop(DropInvalidDate)
			continue
		}
		if !accept(c, r.waste, in.ID) {
			continue
		}
		rows = append(rows, models.Waste{
			ID:         in.ID,
			Date:       date,
			MaterialID: in.MaterialID,
			Quantity:   dec(in.Quantity),
			Reason:     in.Reason,
			Cost:       dec(in.Cost),
		})
	}
	return insertAll(r.tx, c, CollectionWaste, rows)
}

func (r *restorer) restoreZones(d *SnapshotData) error {
	c := r.report.collection(CollectionZones, len(d.Zones))
	rows := make([]models.Zone, 0, len(d.Zones))
	for _, in := range d.Zones {
		if !accept(c, r.zones, in.ID) {
			continue
		}
		rows = append(rows, models.Zone{
			ID:       in.ID,
			Name:     in.Name,
			LimitKm:  dec(in.LimitKm),
			Fee:      dec(in.Fee),
			MinOrder: dec(in.MinOrder),
			Status:   zoneStatuses.coerce(string(in.Status)),
		})
	}
	return insertAll(r.tx, c, CollectionZones, rows)
}

func (r *restorer) restoreTaxes(d *SnapshotData) error {
	c := r.report.collection(CollectionTaxes, len(d.Taxes))
	rows := make([]models.TaxRate, 0, len(d.Taxes))
	for _, in := range d.Taxes {
		if !accept(c, r.taxes, in.ID) {
			continue
		}
		rows = append(rows, models.TaxRate{
			ID:        in.ID,
			Name:      in.Name,
			Rate:      dec(in.Rate),
			IsDefault: in.IsDefault,
			IsActive:  in.IsActive,
		})
	}
	return insertAll(r.tx, c, CollectionTaxes, rows)
}

func (r *restorer) restoreDrivers(d *SnapshotData) error {
	c := r.report.collection(CollectionDrivers, len(d.Drivers))
	rows := make([]models.Driver, 0, len(d.Drivers))
	for _, in := range d.Drivers {
		if !accept(c, r.drivers, in.ID) {
			continue
		}
		rows = append(rows, models.Driver{
			ID:           in.ID,
			Name:         in.Name,
			Phone:        in.Phone,
			Status:       in.Status,
			ActiveOrders: in.ActiveOrders,
		})
	}
	return insertAll(r.tx, c, CollectionDrivers, rows)
}

func (r *restorer) restoreDiningTables(d *SnapshotData) error {
	c := r.report.collection(CollectionDiningTables, len(d.DiningTables))
	rows := make([]models.DiningTable, 0, len(d.DiningTables))
	for _, in := range d.DiningTables {
		if !accept(c, r.diningTables, in.ID) {
			continue
		}
		rows = append(rows, models.DiningTable{
			ID:         in.ID,
			Name:       in.Name,
			Number:     in.Number,
			IsOccupied: in.IsOccupied,
		})
	}
	return insertAll(r.tx, c, CollectionDiningTables, rows)
}

// restoreEmployees kullanıcı tablolarına dokunmaz; var olmayan kullanıcıya bağlı
// personelin userId alanı boşaltılır.
func (r *restorer) restoreEmployees(d *SnapshotData) error {
	var userIDs []string
	if err := r.tx.Model(&models.User{}).Pluck("id", &userIDs).Error; err != nil {
		return fmt.Errorf("kullanıcılar okunamadı: %w", err)
	}
	users := make(idSet, len(userIDs))
	for _, id := range userIDs {
		users[id] = struct{}{}
	}

	c := r.report.collection(CollectionEmployees, len(d.Employees))
	rows := make([]models.Employee, 0, len(d.Employees))
	for _, in := range d.Employees {
		if !accept(c, r.employees, in.ID) {
			continue
		}
		userID := in.UserID
		if !users.hasOptional(userID) {
			userID = nil
			r.report.RemappedUserIDs++
		}
		rows = append(rows, models.Employee{
			ID:        in.ID,
			UserID:    userID,
			Name:      in.Name,
			RoleTitle: in.RoleTitle,
			Phone:     in.Phone,
			Status:    employeeStatuses.coerce(string(in.Status)),
		})
	}
	return insertAll(r.tx, c, CollectionEmployees, rows)
}

func (r *restorer) restoreAttendance(d *SnapshotData) error {
	c := r.report.collection(CollectionAttendance, len(d.Attendance))
	rows := make([]models.Attendance, 0, len(d.Attendance))
	for _, in := range d.Attendance {
		if !r.employees.has(in.EmployeeID) {
			c.drop(DropMissingReference)
			continue
		}
		checkIn, ok := parseDate(in.CheckIn)
		checkOut, okOut := parseOptionalDate(in.CheckOut)
		if !ok || !okOut {
			c.drop(DropInvalidDate)
			continue
		}
		if !accept(c, r.attendance, in.ID) {
			continue
		}
		rows = append(rows, models.Attendance{
			ID:         in.ID,
			EmployeeID: in.EmployeeID,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Status:     in.Status,
			Notes:      in.Notes,
		})
	}
	return insertAll(r.tx, c, CollectionAttendance, rows)
}

func (r *restorer) restoreShiftLogs(d *SnapshotData) error {
	c := r.report.collection(CollectionShiftLogs, len(d.ShiftLogs))
	rows := make([]models.ShiftLog, 0, len(d.ShiftLogs))
	for _, in := range d.ShiftLogs {
		if !r.employees.has(in.EmployeeID) {
			c.drop(DropMissingReference)
			continue
		}
		startedAt, ok := parseDate(in.StartedAt)
		endedAt, okEnd := parseOptionalDate(in.EndedAt)
		if !ok || !okEnd {
			c.drop(DropInvalidDate)
			continue
		}
		if !accept(c, r.shiftLogs, in.ID) {
			continue
		}
		pauses := in.Pauses
		if pauses == nil {
			pauses = []ShiftPause{}
		}
		raw, err := json.Marshal(pauses)
		if err != nil {
			return fmt.Errorf("mola bilgisi yazılamadı: %w", err)
		}
		rows = append(rows, models.ShiftLog{
			ID:              in.ID,
			EmployeeID:      in.EmployeeID,
			StartedAt:       startedAt,
			EndedAt:         endedAt,
			DurationMinutes: in.DurationMinutes,
			Pauses:          datatypes.JSON(raw),
		})
	}
	return insertAll(r.tx, c, CollectionShiftLogs, rows)
}

func (r *restorer) restorePayroll(d *SnapshotData) error {
	c := r.report.collection(CollectionPayroll, len(d.Payroll))
	rows := make([]models.Payroll, 0, len(d.Payroll))
	for _, in := range d.Payroll {
		if !r.employees.has(in.EmployeeID) {
			c.drop(DropMissingReference)
			continue
		}
		date, ok := parseDate(in.Date)
		if !ok {
			c.drop(DropInvalidDate)
			continue
		}
		if !accept(c, r.payroll, in.ID) {
			continue
		}
		rows = append(rows, models.Payroll{
			ID:         in.ID,
			EmployeeID: in.EmployeeID,
			Type:       payrollTypes.coerce(string(in.Type)),
			Amount:     dec(in.Amount),
			Date:       date,
			Note:       in.Note,
		})
	}
	return insertAll(r.tx, c, CollectionPayroll, rows)
}

func (r *restorer) restoreLeaves(d *SnapshotData) error {
	c := r.report.collection(CollectionLeaves, len(d.Leaves))
	rows := make([]models.Leave, 0, len(d.Leaves))
	for _, in := range d.Leaves {
		if !r.employees.has(in.EmployeeID) {
			c.drop(DropMissingReference)
			continue
		}
		from, okFrom := parseDate(in.FromDate)
		to, okTo := parseDate(in.ToDate)
		if !okFrom || !okTo {
			c.drop(DropInvalidDate)
			continue
		}
		if !accept(c, r.leaves, in.ID) {
			continue
		}
		rows = append(rows, models.Leave{
			ID:         in.ID,
			EmployeeID: in.EmployeeID,
			FromDate:   from,
			ToDate:     to,
			Status:     leaveStatuses.coerce(string(in.Status)),
			Reason:     in.Reason,
		})
	}
	return insertAll(r.tx, c, CollectionLeaves, rows)
}

func (r *restorer) restoreShiftTemplates(d *SnapshotData) error {
	c := r.report.collection(CollectionShiftTemplates, len(d.ShiftTemplates))
	rows := make([]models.ShiftTemplate, 0, len(d.ShiftTemplates))
	for _, in := range d.ShiftTemplates {
		if !accept(c, r.shiftTemplates, in.ID) {
			continue
		}
		rows = append(rows, models.ShiftTemplate{
			ID:         in.ID,
			Name:       in.Name,
			StartTime:  in.StartTime,
			EndTime:    in.EndTime,
			StaffCount: in.StaffCount,
			Status:     shiftStatuses.coerce(string(in.Status)),
		})
	}
	return insertAll(r.tx, c, CollectionShiftTemplates, rows)
}

func (r *restorer) restoreOrders(d *SnapshotData) error {
	c := r.report.collection(CollectionOrders, len(d.Orders))
	rows := make([]models.Order, 0, len(d.Orders))
	for _, in := range d.Orders {
		if !r.zones.hasOptional(in.ZoneID) || !r.drivers.hasOptional(in.DriverID) || !r.diningTables.hasOptional(in.TableID) {
			c.drop(DropMissingReference)
			continue
		}
		createdAt, okCreated := parseDate(in.CreatedAt)
		updatedAt, okUpdated := parseDate(in.UpdatedAt)
		if !okCreated || !okUpdated {
			c.drop(DropInvalidDate)
			continue
		}
		if !accept(c, r.orders, in.ID) {
			continue
		}
		rows = append(rows, models.Order{
			ID:              in.ID,
			Code:            in.Code,
			Type:            orderTypes.coerce(string(in.Type)),
			Status:          orderStatuses.coerce(string(in.Status)),
			CustomerName:    in.CustomerName,
			ZoneID:          in.ZoneID,
			DriverID:        in.DriverID,
			TableID:         in.TableID,
			Discount:        dec(in.Discount),
			TaxRate:         dec(in.TaxRate),
			TaxAmount:       dec(in.TaxAmount),
			Payment:         paymentMethods.coerce(string(in.Payment)),
			Notes:           in.Notes,
			ReceiptSnapshot: receiptColumn(in.ReceiptSnapshot),
			CreatedAt:       createdAt,
			UpdatedAt:       updatedAt,
		})
	}
	return insertAll(r.tx, c, CollectionOrders, rows)
}

func receiptColumn(raw datatypes.JSON) *datatypes.JSON {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return &raw
}

func (r *restorer) restoreOrderItems(d *SnapshotData) error {
	c := r.report.collection(CollectionOrderItems, len(d.OrderItems))
	rows := make([]models.OrderItem, 0, len(d.OrderItems))
	for _, in := range d.OrderItems {
		if !r.orders.has(in.OrderID) || !r.products.hasOptional(in.ProductID) {
			c.drop(DropMissingReference)
			continue
		}
		if !accept(c, r.orderItems, in.ID) {
			continue
		}
		rows = append(rows, models.OrderItem{
			ID:         in.ID,
			OrderID:    in.OrderID,
			ProductID:  in.ProductID,
			Quantity:   dec(in.Quantity),
			UnitPrice:  dec(in.UnitPrice),
			TotalPrice: dec(in.TotalPrice),
		})
	}
	return insertAll(r.tx, c, CollectionOrderItems, rows)
}

func (r *restorer) restoreSales(d *SnapshotData) error {
	c := r.report.collection(CollectionSales, len(d.Sales))
	rows := make([]models.Sale, 0, len(d.Sales))
	for _, in := range d.Sales {
		if !r.orders.hasOptional(in.OrderID) {
			c.drop(DropMissingReference)
			continue
		}
		date, ok := parseDate(in.Date)
		if !ok {
			c.drop(DropInvalidDate)
			continue
		}
		if !accept(c, r.sales, in.ID) {
			continue
		}
		rows = append(rows, models.Sale{
			ID:           in.ID,
			InvoiceNo:    in.InvoiceNo,
			OrderID:      in.OrderID,
			Date:         date,
			CustomerName: in.CustomerName,
			Total:        dec(in.Total),
			Status:       saleStatuses.coerce(string(in.Status)),
			Notes:        in.Notes,
		})
	}
	return insertAll(r.tx, c, CollectionSales, rows)
}

func (r *restorer) restoreSaleItems(d *SnapshotData) error {
	c := r.report.collection(CollectionSaleItems, len(d.SaleItems))
	rows := make([]models.SaleItem, 0, len(d.SaleItems))
	for _, in := range d.SaleItems {
		if !r.sales.has(in.SaleID) || !r.products.hasOptional(in.ProductID) {
			c.drop(DropMissingReference)
			continue
		}
		if !accept(c, r.saleItems, in.ID) {
			continue
		}
		rows = append(rows, models.SaleItem{
			ID:         in.ID,
			SaleID:     in.SaleID,
			ProductID:  in.ProductID,
			Name:       in.Name,
			Quantity:   dec(in.Quantity),
			UnitPrice:  dec(in.UnitPrice),
			TotalPrice: dec(in.TotalPrice),
		})
	}
	return insertAll(r.tx, c, CollectionSaleItems, rows)
}

func (r *restorer) restoreExpenses(d *SnapshotData) error {
	c := r.report.collection(CollectionExpenses, len(d.Expenses))
	rows := make([]models.Expense, 0, len(d.Expenses))
	for _, in := range d.Expenses {
		date, ok := parseDate(in.Date)
		if !ok {
			c.drop(DropInvalidDate)
			continue
		}
		if !accept(c, r.expenses, in.ID) {
			continue
		}
		rows = append(rows, models.Expense{
			ID:     in.ID,
			Date:   date,
			Title:  in.Title,
			Vendor: in.Vendor,
			Amount: dec(in.Amount),
			Notes:  in.Notes,
		})
	}
	return insertAll(r.tx, c, CollectionExpenses, rows)
}
