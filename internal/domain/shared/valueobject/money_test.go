package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), EUR)
		require.NoError(t, err)
		assert.Equal(t, EUR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromFloat(t *testing.T) {
	m, err := NewMoneyFromFloat(99.99, USD)
	require.NoError(t, err)
	assert.Equal(t, USD, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(99.99)))
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", EUR)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", EUR)
		assert.Error(t, err)
	})
}

func TestNewMoneyEUR(t *testing.T) {
	m := NewMoneyEUR(decimal.NewFromFloat(50.00))
	assert.Equal(t, EUR, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(50.00)))
}

func TestZero(t *testing.T) {
	m := Zero(USD)
	assert.True(t, m.IsZero())
	assert.Equal(t, USD, m.Currency())
}

func TestZeroEUR(t *testing.T) {
	m := ZeroEUR()
	assert.True(t, m.IsZero())
	assert.Equal(t, EUR, m.Currency())
}

func TestMoneyIsPositiveNegativeZero(t *testing.T) {
	positive := NewMoneyEURFromFloat(100)
	negative := NewMoneyEURFromFloat(-100)
	zero := ZeroEUR()

	assert.True(t, positive.IsPositive())
	assert.False(t, positive.IsNegative())
	assert.False(t, positive.IsZero())

	assert.False(t, negative.IsPositive())
	assert.True(t, negative.IsNegative())
	assert.False(t, negative.IsZero())

	assert.False(t, zero.IsPositive())
	assert.False(t, zero.IsNegative())
	assert.True(t, zero.IsZero())
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		m1 := NewMoneyEURFromFloat(100.50)
		m2 := NewMoneyEURFromFloat(50.25)
		result, err := m1.Add(m2)
		require.NoError(t, err)
		assert.True(t, result.Amount().Equal(decimal.NewFromFloat(150.75)))
	})

	t.Run("fails for different currencies", func(t *testing.T) {
		m1, _ := NewMoneyFromFloat(100, EUR)
		m2, _ := NewMoneyFromFloat(50, USD)
		_, err := m1.Add(m2)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "different currencies")
	})
}

func TestMoneyMustAdd(t *testing.T) {
	t.Run("returns sum for same currency", func(t *testing.T) {
		m1 := NewMoneyEURFromFloat(10)
		m2 := NewMoneyEURFromFloat(5)
		assert.Equal(t, 15.0, m1.MustAdd(m2).Float64())
	})

	t.Run("panics for different currencies", func(t *testing.T) {
		m1, _ := NewMoneyFromFloat(10, EUR)
		m2, _ := NewMoneyFromFloat(5, USD)
		assert.Panics(t, func() { m1.MustAdd(m2) })
	})
}

func TestMoneySubtract(t *testing.T) {
	t.Run("subtracts same currency", func(t *testing.T) {
		m1 := NewMoneyEURFromFloat(100)
		m2 := NewMoneyEURFromFloat(40)
		result, err := m1.Subtract(m2)
		require.NoError(t, err)
		assert.Equal(t, 60.0, result.Float64())
	})

	t.Run("fails for different currencies", func(t *testing.T) {
		m1, _ := NewMoneyFromFloat(100, EUR)
		m2, _ := NewMoneyFromFloat(40, GBP)
		_, err := m1.Subtract(m2)
		assert.Error(t, err)
	})
}

func TestMoneyMultiply(t *testing.T) {
	m := NewMoneyEURFromFloat(50)
	result := m.Multiply(decimal.NewFromInt(10))
	assert.Equal(t, 500.0, result.Float64())
	assert.Equal(t, EUR, result.Currency())
}

func TestMoneyNegate(t *testing.T) {
	m := NewMoneyEURFromFloat(25)
	assert.Equal(t, -25.0, m.Negate().Float64())
	assert.Equal(t, 25.0, m.Negate().Negate().Float64())
}

func TestMoneyRound(t *testing.T) {
	t.Run("rounds half up", func(t *testing.T) {
		m, _ := NewMoneyFromString("10.005", EUR)
		assert.Equal(t, "10.01", m.Round(2).StringFixed(2))
	})

	t.Run("keeps already-rounded amounts", func(t *testing.T) {
		m := NewMoneyEURFromFloat(10.25)
		assert.Equal(t, "10.25", m.Round(2).StringFixed(2))
	})
}

func TestMoneyEquals(t *testing.T) {
	m1 := NewMoneyEURFromFloat(100)
	m2 := NewMoneyEURFromFloat(100)
	m3 := NewMoneyEURFromFloat(99)
	m4, _ := NewMoneyFromFloat(100, USD)

	assert.True(t, m1.Equals(m2))
	assert.False(t, m1.Equals(m3))
	assert.False(t, m1.Equals(m4))
}

func TestMoneyComparisons(t *testing.T) {
	small := NewMoneyEURFromFloat(10)
	big := NewMoneyEURFromFloat(20)

	lt, err := small.LessThan(big)
	require.NoError(t, err)
	assert.True(t, lt)

	gt, err := big.GreaterThan(small)
	require.NoError(t, err)
	assert.True(t, gt)

	other, _ := NewMoneyFromFloat(10, USD)
	_, err = small.LessThan(other)
	assert.Error(t, err)
}

func TestMoneyCalculatePercentage(t *testing.T) {
	m := NewMoneyEURFromFloat(500)
	tax := m.CalculatePercentage(decimal.NewFromInt(20))
	assert.Equal(t, 100.0, tax.Float64())
}

func TestMoneyString(t *testing.T) {
	m := NewMoneyEURFromFloat(1234.5)
	assert.Equal(t, "1234.50 EUR", m.String())
	assert.Equal(t, "1234.500", m.StringFixed(3))
}

func TestMoneyJSON(t *testing.T) {
	t.Run("marshals amount and currency", func(t *testing.T) {
		m := NewMoneyEURFromFloat(42.10)
		data, err := json.Marshal(m)
		require.NoError(t, err)
		assert.JSONEq(t, `{"amount":"42.1","currency":"EUR"}`, string(data))
	})

	t.Run("unmarshals amount and currency", func(t *testing.T) {
		var m Money
		err := json.Unmarshal([]byte(`{"amount":"99.99","currency":"USD"}`), &m)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.Equal(t, 99.99, m.Float64())
	})

	t.Run("rejects invalid amount", func(t *testing.T) {
		var m Money
		err := json.Unmarshal([]byte(`{"amount":"xx","currency":"EUR"}`), &m)
		assert.Error(t, err)
	})
}

func TestMoneyScan(t *testing.T) {
	t.Run("scans string value", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("150.75"))
		assert.Equal(t, 150.75, m.Float64())
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("scans nil as zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan(true))
	})
}

func TestMoneyValue(t *testing.T) {
	m := NewMoneyEURFromFloat(12.34)
	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, "12.34", v)
}
