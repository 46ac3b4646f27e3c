package maintenance

import (
	"math"
	"testing"
	"time"

	"pos-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestToText(t *testing.T) {
	assert.Equal(t, "fallback", toText(nil, "fallback"))
	assert.Equal(t, "abc", toText("abc", ""))
	assert.Equal(t, "true", toText(true, ""))
	assert.Equal(t, "12", toText(12.0, ""))
	assert.Equal(t, "12.5", toText(12.5, ""))
	assert.Equal(t, "NaN", toText(math.NaN(), ""))
	assert.Equal(t, "1,2", toText([]any{1.0, 2.0}, ""))
	assert.Equal(t, "[object Object]", toText(map[string]any{"a": 1}, ""))
}

func TestToNullableText(t *testing.T) {
	assert.Nil(t, toNullableText(nil))
	assert.Nil(t, toNullableText(""))
	if s := toNullableText(5.0); assert.NotNil(t, s) {
		assert.Equal(t, "5", *s)
	}
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{nil, 0},
		{3.5, 3.5},
		{"  42 ", 42},
		{"", 0},
		{"abc", 0},
		{"0x1f", 31},
		{true, 1},
		{false, 0},
		{[]any{"7"}, 7},
		{[]any{1.0, 2.0}, 0},
		{map[string]any{}, 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toNumber(tt.in), "girdi: %#v", tt.in)
	}
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 3, toInt(3.9))
	assert.Equal(t, -3, toInt(-3.9))
	assert.Nil(t, toNullableInt(nil))
	if n := toNullableInt("4"); assert.NotNil(t, n) {
		assert.Equal(t, 4, *n)
	}
}

func TestToBoolean(t *testing.T) {
	assert.False(t, toBoolean(nil))
	assert.False(t, toBoolean(0.0))
	assert.False(t, toBoolean(""))
	assert.False(t, toBoolean(math.NaN()))
	assert.True(t, toBoolean("false"))
	assert.True(t, toBoolean(1.0))
	assert.True(t, toBoolean([]any{}))
}

func TestParseDate(t *testing.T) {
	got, ok := parseDate("2024-03-01T10:00:00.000Z")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), got)

	got, ok = parseDate("2024-03-01T12:00:00+02:00")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), got)

	_, ok = parseDate("2024-03-01")
	assert.True(t, ok)

	for _, bad := range []string{"", "not-a-date", "2024-13-45"} {
		_, ok := parseDate(bad)
		assert.False(t, ok, bad)
	}
}

func TestParseOptionalDate(t *testing.T) {
	got, ok := parseOptionalDate(nil)
	assert.True(t, ok)
	assert.Nil(t, got)

	bad := "yarın"
	_, ok = parseOptionalDate(&bad)
	assert.False(t, ok)
}

func TestEnumCoerce(t *testing.T) {
	assert.Equal(t, models.OrderStatusReady, orderStatuses.coerce("READY"))
	assert.Equal(t, models.OrderStatusPreparing, orderStatuses.coerce("BOGUS_STATUS"))
	assert.Equal(t, models.OrderStatusPreparing, orderStatuses.coerce(nil))
	assert.Equal(t, models.OrderStatusPreparing, orderStatuses.coerce(3.0))
	// büyük/küçük harf duyarlı
	assert.Equal(t, models.PaymentMethodCash, paymentMethods.coerce("card"))
	assert.Equal(t, models.LeaveStatusApproved, leaveStatuses.coerce("APPROVED"))
}
