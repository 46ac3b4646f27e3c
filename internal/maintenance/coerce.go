package maintenance

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"pos-backend/internal/models"
)

// Bu dosyadaki dönüşümler asla hata dönmez; bozuk değer belgelenmiş varsayılana düşer.

func toText(value any, fallback string) string {
	switch v := value.(type) {
	case nil:
		return fallback
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatNumber(v)
	case float32:
		return formatNumber(float64(v))
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = toText(item, "")
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fallback
		}
		return string(b)
	}
}

func toNullableText(value any) *string {
	if value == nil {
		return nil
	}
	s := toText(value, "")
	if len(s) == 0 {
		return nil
	}
	return &s
}

func toNumber(value any) float64 {
	var n float64
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case json.Number:
		n = parseNumber(v.String())
	case string:
		n = parseNumber(v)
	case []any:
		if len(v) > 1 {
			return 0
		}
		n = parseNumber(toText(v, ""))
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

func toInt(value any) int {
	return int(math.Trunc(toNumber(value)))
}

func toNullableInt(value any) *int {
	if value == nil {
		return nil
	}
	n := toInt(value)
	return &n
}

func toBoolean(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0 && !math.IsNaN(v)
	case int:
		return v != 0
	case int64:
		return v != 0
	case json.Number:
		f, err := v.Float64()
		return err == nil && f != 0
	case string:
		return v != ""
	default:
		return true
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseOptionalDate(s *string) (*time.Time, bool) {
	if s == nil {
		return nil, true
	}
	t, ok := parseDate(*s)
	if !ok {
		return nil, false
	}
	return &t, true
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.Abs(v) >= 1e21 || (v != 0 && math.Abs(v) < 1e-6):
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// enum bir değer kümesini ve bilinmeyen değerler için varsayılanı tanımlar.
type enum[T ~string] struct {
	values   map[T]struct{}
	fallback T
}

func newEnum[T ~string](fallback T, values ...T) enum[T] {
	e := enum[T]{values: make(map[T]struct{}, len(values)+1), fallback: fallback}
	e.values[fallback] = struct{}{}
	for _, v := range values {
		e.values[v] = struct{}{}
	}
	return e
}

func (e enum[T]) coerce(value any) T {
	s, ok := value.(string)
	if !ok {
		return e.fallback
	}
	if _, ok := e.values[T(s)]; ok {
		return T(s)
	}
	return e.fallback
}

var (
	purchaseStatuses = newEnum(models.PurchaseStatusDraft,
		models.PurchaseStatusOrdered, models.PurchaseStatusReceived, models.PurchaseStatusCancelled)
	zoneStatuses = newEnum(models.ZoneStatusActive,
		models.ZoneStatusInactive)
	employeeStatuses = newEnum(models.EmployeeStatusActive,
		models.EmployeeStatusInactive, models.EmployeeStatusOnLeave)
	shiftStatuses = newEnum(models.ShiftStatusActive,
		models.ShiftStatusInactive)
	payrollTypes = newEnum(models.PayrollTypeSalary,
		models.PayrollTypeBonus, models.PayrollTypeAdvance, models.PayrollTypeDeduction)
	leaveStatuses = newEnum(models.LeaveStatusPending,
		models.LeaveStatusApproved, models.LeaveStatusRejected)
	orderTypes = newEnum(models.OrderTypeDineIn,
		models.OrderTypeTakeaway, models.OrderTypeDelivery)
	orderStatuses = newEnum(models.OrderStatusPreparing,
		models.OrderStatusPending, models.OrderStatusReady, models.OrderStatusOutForDelivery,
		models.OrderStatusDelivered, models.OrderStatusCompleted, models.OrderStatusCancelled)
	paymentMethods = newEnum(models.PaymentMethodCash,
		models.PaymentMethodCard, models.PaymentMethodOnline)
	saleStatuses = newEnum(models.SaleStatusDraft,
		models.SaleStatusIssued, models.SaleStatusPaid, models.SaleStatusCancelled)
)

const (
	defaultAttendanceStatus = "PRESENT"
	defaultDriverStatus     = "AVAILABLE"
)
