package paymentlist

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	t.Run("пустой запрос дает пустой фильтр", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/payments", nil)
		filter, err := parseFilter(r)
		require.NoError(t, err)
		assert.Nil(t, filter.PaidCourseID)
		assert.Nil(t, filter.PaymentMethod)
		assert.Empty(t, filter.OrderBy)
	})

	t.Run("все параметры разбираются", func(t *testing.T) {
		r := httptest.NewRequest("GET",
			"/payments?paid_course_id=10&payment_method=cash&date_from=2026-01-01&date_to=2026-06-30&amount_min=100&amount_max=5000&order_by=-amount", nil)
		filter, err := parseFilter(r)
		require.NoError(t, err)

		require.NotNil(t, filter.PaidCourseID)
		assert.Equal(t, 10, *filter.PaidCourseID)
		require.NotNil(t, filter.PaymentMethod)
		assert.Equal(t, "cash", *filter.PaymentMethod)
		require.NotNil(t, filter.DateFrom)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *filter.DateFrom)
		require.NotNil(t, filter.AmountMin)
		assert.Equal(t, 100.0, *filter.AmountMin)
		require.NotNil(t, filter.AmountMax)
		assert.Equal(t, 5000.0, *filter.AmountMax)
		assert.Equal(t, "-amount", filter.OrderBy)
	})

	t.Run("нечисловой id курса", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/payments?paid_course_id=abc", nil)
		_, err := parseFilter(r)
		assert.Error(t, err)
	})

	t.Run("некорректная дата", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/payments?date_from=01.06.2026", nil)
		_, err := parseFilter(r)
		assert.Error(t, err)
	})

	t.Run("некорректная сумма", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/payments?amount_min=many", nil)
		_, err := parseFilter(r)
		assert.Error(t, err)
	})
}
