package maintenance

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"gorm.io/datatypes"
)

type object = map[string]any

// ParseSystemSnapshot güvenilmeyen bir JSON değerini snapshot'a dönüştürür.
// Yapı uygun değilse nil döner; alan seviyesindeki bozukluklar varsayılanlara düşer.
// Hiçbir girdi için panic oluşmaz; beklenmeyen bir durumda da nil döner.
func ParseSystemSnapshot(input any) (snapshot *SystemSnapshot) {
	defer func() {
		if recover() != nil {
			snapshot = nil
		}
	}()

	root, ok := input.(object)
	if !ok {
		return nil
	}

	data := snapshotRoot(root)
	if data == nil {
		return nil
	}

	return &SystemSnapshot{
		Version:    parseVersion(root["version"]),
		ExportedAt: parseExportedAt(root["exportedAt"]),
		Data: SnapshotData{
			Categories:     mapObjects(data[CollectionCategories], parseCategory),
			Materials:      mapObjects(data[CollectionMaterials], parseMaterial),
			Products:       mapObjects(data[CollectionProducts], parseProduct),
			RecipeItems:    mapObjects(data[CollectionRecipeItems], parseRecipeItem),
			Suppliers:      mapObjects(data[CollectionSuppliers], parseSupplier),
			Purchases:      mapObjects(data[CollectionPurchases], parsePurchase),
			PurchaseItems:  mapObjects(data[CollectionPurchaseItems], parsePurchaseItem),
			Waste:          mapObjects(data[CollectionWaste], parseWaste),
			Zones:          mapObjects(data[CollectionZones], parseZone),
			Taxes:          mapObjects(data[CollectionTaxes], parseTaxRate),
			Drivers:        mapObjects(data[CollectionDrivers], parseDriver),
			DiningTables:   mapObjects(data[CollectionDiningTables], parseDiningTable),
			Orders:         mapObjects(data[CollectionOrders], parseOrder),
			OrderItems:     mapObjects(data[CollectionOrderItems], parseOrderItem),
			Sales:          mapObjects(data[CollectionSales], parseSale),
			SaleItems:      mapObjects(data[CollectionSaleItems], parseSaleItem),
			Expenses:       mapObjects(data[CollectionExpenses], parseExpense),
			Employees:      mapObjects(data[CollectionEmployees], parseEmployee),
			Attendance:     mapObjects(data[CollectionAttendance], parseAttendance),
			ShiftTemplates: mapObjects(data[CollectionShiftTemplates], parseShiftTemplate),
			ShiftLogs:      mapObjects(data[CollectionShiftLogs], parseShiftLog),
			Payroll:        mapObjects(data[CollectionPayroll], parsePayroll),
			Leaves:         mapObjects(data[CollectionLeaves], parseLeave),
		},
	}
}

// DecodeSnapshot ham dosya içeriğini çözer; yapı geçersizse ErrInvalidSnapshot döner.
func DecodeSnapshot(raw []byte) (*SystemSnapshot, error) {
	var input any
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	snapshot := ParseSystemSnapshot(input)
	if snapshot == nil {
		return nil, ErrInvalidSnapshot
	}
	return snapshot, nil
}

// snapshotRoot iki biçimi destekler: {"version", "data": {...}} ya da koleksiyonlar doğrudan kökte.
func snapshotRoot(root object) object {
	if wrapped, ok := root["data"].(object); ok && hasCollections(wrapped) {
		return wrapped
	}
	if hasCollections(root) {
		return root
	}
	return nil
}

func hasCollections(data object) bool {
	for _, key := range RequiredCollections {
		if _, ok := data[key].([]any); !ok {
			return false
		}
	}
	if taxes, present := data[CollectionTaxes]; present && taxes != nil {
		if _, ok := taxes.([]any); !ok {
			return false
		}
	}
	return true
}

// parseVersion sayısal değeri olduğu gibi alır, sadece eksik ya da yanlış tipte ise varsayılana düşer.
func parseVersion(value any) int {
	switch n := value.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return SnapshotVersion
		}
		return int(n)
	case int:
		return n
	default:
		return SnapshotVersion
	}
}

func parseExportedAt(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return isoTime(time.Now())
}

// mapObjects nesne olmayan elemanları sessizce atlar.
func mapObjects[T any](value any, parse func(object) T) []T {
	items, _ := value.([]any)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if o, ok := item.(object); ok {
			out = append(out, parse(o))
		}
	}
	return out
}

func parseCategory(o object) CategoryRecord {
	return CategoryRecord{
		ID:          toText(o["id"], ""),
		Name:        toText(o["name"], ""),
		Description: toNullableText(o["description"]),
	}
}

func parseMaterial(o object) MaterialRecord {
	return MaterialRecord{
		ID:       toText(o["id"], ""),
		Name:     toText(o["name"], ""),
		Unit:     toText(o["unit"], ""),
		Cost:     toNumber(o["cost"]),
		Stock:    toNumber(o["stock"]),
		MinStock: toNumber(o["minStock"]),
	}
}

func parseProduct(o object) ProductRecord {
	return ProductRecord{
		ID:         toText(o["id"], ""),
		Name:       toText(o["name"], ""),
		CategoryID: toText(o["categoryId"], ""),
		Price:      toNumber(o["price"]),
		IsActive:   toBoolean(o["isActive"]),
		ImageURL:   toNullableText(o["imageUrl"]),
	}
}

func parseRecipeItem(o object) RecipeItemRecord {
	return RecipeItemRecord{
		ID:         toText(o["id"], ""),
		ProductID:  toText(o["productId"], ""),
		MaterialID: toText(o["materialId"], ""),
		Quantity:   toNumber(o["quantity"]),
	}
}

func parseSupplier(o object) SupplierRecord {
	return SupplierRecord{
		ID:       toText(o["id"], ""),
		Name:     toText(o["name"], ""),
		Phone:    toNullableText(o["phone"]),
		Email:    toNullableText(o["email"]),
		IsActive: toBoolean(o["isActive"]),
	}
}

func parsePurchase(o object) PurchaseRecord {
	return PurchaseRecord{
		ID:         toText(o["id"], ""),
		Code:       toText(o["code"], ""),
		SupplierID: toText(o["supplierId"], ""),
		Date:       toText(o["date"], ""),
		Total:      toNumber(o["total"]),
		Status:     purchaseStatuses.coerce(o["status"]),
		Notes:      toNullableText(o["notes"]),
	}
}

func parsePurchaseItem(o object) PurchaseItemRecord {
	return PurchaseItemRecord{
		ID:         toText(o["id"], ""),
		PurchaseID: toText(o["purchaseId"], ""),
		MaterialID: toText(o["materialId"], ""),
		Quantity:   toNumber(o["quantity"]),
		UnitCost:   toNumber(o["unitCost"]),
		TotalCost:  toNumber(o["totalCost"]),
	}
}

func parseWaste(o object) WasteRecord {
	return WasteRecord{
		ID:         toText(o["id"], ""),
		Date:       toText(o["date"], ""),
		MaterialID: toText(o["materialId"], ""),
		Quantity:   toNumber(o["quantity"]),
		Reason:     toNullableText(o["reason"]),
		Cost:       toNumber(o["cost"]),
	}
}

func parseZone(o object) ZoneRecord {
	return ZoneRecord{
		ID:       toText(o["id"], ""),
		Name:     toText(o["name"], ""),
		LimitKm:  toNumber(o["limitKm"]),
		Fee:      toNumber(o["fee"]),
		MinOrder: toNumber(o["minOrder"]),
		Status:   zoneStatuses.coerce(o["status"]),
	}
}

func parseTaxRate(o object) TaxRateRecord {
	return TaxRateRecord{
		ID:        toText(o["id"], ""),
		Name:      toText(o["name"], ""),
		Rate:      toNumber(o["rate"]),
		IsDefault: toBoolean(o["isDefault"]),
		IsActive:  toBoolean(o["isActive"]),
	}
}

func parseDriver(o object) DriverRecord {
	return DriverRecord{
		ID:           toText(o["id"], ""),
		Name:         toText(o["name"], ""),
		Phone:        toNullableText(o["phone"]),
		Status:       toText(o["status"], defaultDriverStatus),
		ActiveOrders: toInt(o["activeOrders"]),
	}
}

func parseDiningTable(o object) DiningTableRecord {
	return DiningTableRecord{
		ID:         toText(o["id"], ""),
		Name:       toText(o["name"], ""),
		Number:     toInt(o["number"]),
		IsOccupied: toBoolean(o["isOccupied"]),
	}
}

func parseOrder(o object) OrderRecord {
	return OrderRecord{
		ID:              toText(o["id"], ""),
		Code:            toText(o["code"], ""),
		Type:            orderTypes.coerce(o["type"]),
		Status:          orderStatuses.coerce(o["status"]),
		CustomerName:    toNullableText(o["customerName"]),
		ZoneID:          toNullableText(o["zoneId"]),
		DriverID:        toNullableText(o["driverId"]),
		TableID:         toNullableText(o["tableId"]),
		Discount:        toNumber(o["discount"]),
		TaxRate:         toNumber(o["taxRate"]),
		TaxAmount:       toNumber(o["taxAmount"]),
		Payment:         paymentMethods.coerce(o["payment"]),
		Notes:           toNullableText(o["notes"]),
		ReceiptSnapshot: toJSON(o["receiptSnapshot"]),
		CreatedAt:       toText(o["createdAt"], ""),
		UpdatedAt:       toText(o["updatedAt"], ""),
	}
}

func parseOrderItem(o object) OrderItemRecord {
	return OrderItemRecord{
		ID:         toText(o["id"], ""),
		OrderID:    toText(o["orderId"], ""),
		ProductID:  toNullableText(o["productId"]),
		Quantity:   toNumber(o["quantity"]),
		UnitPrice:  toNumber(o["unitPrice"]),
		TotalPrice: toNumber(o["totalPrice"]),
	}
}

func parseSale(o object) SaleRecord {
	return SaleRecord{
		ID:           toText(o["id"], ""),
		InvoiceNo:    toText(o["invoiceNo"], ""),
		OrderID:      toNullableText(o["orderId"]),
		Date:         toText(o["date"], ""),
		CustomerName: toNullableText(o["customerName"]),
		Total:        toNumber(o["total"]),
		Status:       saleStatuses.coerce(o["status"]),
		Notes:        toNullableText(o["notes"]),
	}
}

func parseSaleItem(o object) SaleItemRecord {
	return SaleItemRecord{
		ID:         toText(o["id"], ""),
		SaleID:     toText(o["saleId"], ""),
		ProductID:  toNullableText(o["productId"]),
		Name:       toText(o["name"], ""),
		Quantity:   toNumber(o["quantity"]),
		UnitPrice:  toNumber(o["unitPrice"]),
		TotalPrice: toNumber(o["totalPrice"]),
	}
}

func parseExpense(o object) ExpenseRecord {
	return ExpenseRecord{
		ID:     toText(o["id"], ""),
		Date:   toText(o["date"], ""),
		Title:  toText(o["title"], ""),
		Vendor: toNullableText(o["vendor"]),
		Amount: toNumber(o["amount"]),
		Notes:  toNullableText(o["notes"]),
	}
}

func parseEmployee(o object) EmployeeRecord {
	return EmployeeRecord{
		ID:        toText(o["id"], ""),
		UserID:    toNullableText(o["userId"]),
		Name:      toText(o["name"], ""),
		RoleTitle: toText(o["roleTitle"], ""),
		Phone:     toNullableText(o["phone"]),
		Status:    employeeStatuses.coerce(o["status"]),
	}
}

func parseAttendance(o object) AttendanceRecord {
	return AttendanceRecord{
		ID:         toText(o["id"], ""),
		EmployeeID: toText(o["employeeId"], ""),
		CheckIn:    toText(o["checkIn"], ""),
		CheckOut:   toNullableText(o["checkOut"]),
		Status:     toText(o["status"], defaultAttendanceStatus),
		Notes:      toNullableText(o["notes"]),
	}
}

func parseShiftTemplate(o object) ShiftTemplateRecord {
	return ShiftTemplateRecord{
		ID:         toText(o["id"], ""),
		Name:       toText(o["name"], ""),
		StartTime:  toText(o["startTime"], ""),
		EndTime:    toText(o["endTime"], ""),
		StaffCount: toNullableInt(o["staffCount"]),
		Status:     shiftStatuses.coerce(o["status"]),
	}
}

func parseShiftLog(o object) ShiftLogRecord {
	return ShiftLogRecord{
		ID:              toText(o["id"], ""),
		EmployeeID:      toText(o["employeeId"], ""),
		StartedAt:       toText(o["startedAt"], ""),
		EndedAt:         toNullableText(o["endedAt"]),
		DurationMinutes: toInt(o["durationMinutes"]),
		Pauses:          mapObjects(o["pauses"], parseShiftPause),
	}
}

func parseShiftPause(o object) ShiftPause {
	return ShiftPause{
		Start: toText(o["start"], ""),
		End:   toNullableText(o["end"]),
	}
}

func parsePayroll(o object) PayrollRecord {
	return PayrollRecord{
		ID:         toText(o["id"], ""),
		EmployeeID: toText(o["employeeId"], ""),
		Type:       payrollTypes.coerce(o["type"]),
		Amount:     toNumber(o["amount"]),
		Date:       toText(o["date"], ""),
		Note:       toNullableText(o["note"]),
	}
}

func parseLeave(o object) LeaveRecord {
	return LeaveRecord{
		ID:         toText(o["id"], ""),
		EmployeeID: toText(o["employeeId"], ""),
		FromDate:   toText(o["fromDate"], ""),
		ToDate:     toText(o["toDate"], ""),
		Status:     leaveStatuses.coerce(o["status"]),
		Reason:     toNullableText(o["reason"]),
	}
}

// toJSON opak bir JSON değerini olduğu gibi saklar; null ve eksik değer nil olur.
func toJSON(value any) datatypes.JSON {
	if value == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
