package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVND(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0 ₫"},
		{999, "999 ₫"},
		{60000, "60.000 ₫"},
		{3191600, "3.191.600 ₫"},
		{4331599.5, "4.331.600 ₫"},
		{1439999.9999999998, "1.440.000 ₫"},
		{-2500.5, "-2.501 ₫"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, VND(tc.in), "VND(%v)", tc.in)
	}
}

func TestVNDPlain(t *testing.T) {
	assert.Equal(t, "2.553.280 VND", VNDPlain(2553280.4))
}

func TestRound(t *testing.T) {
	assert.Equal(t, int64(3), Round(2.5))
	assert.Equal(t, int64(-3), Round(-2.5))
	assert.Equal(t, int64(2), Round(2.49))
}

func TestNonFiniteAmountsDoNotPanic(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.NotPanics(t, func() {
			assert.Equal(t, Unknown, VND(v))
			assert.Equal(t, "N/A", VNDPlain(v))
		})
	}

	assert.Equal(t, int64(0), Round(math.NaN()))
	assert.Equal(t, int64(math.MaxInt64), Round(math.Inf(1)))
	assert.Equal(t, int64(math.MaxInt64), Round(1e30))
	assert.Equal(t, int64(math.MinInt64), Round(-1e30))
}
