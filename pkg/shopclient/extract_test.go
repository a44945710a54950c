package shopclient

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProductIDDeterministic(t *testing.T) {
	a := ProductID("candles.html", "Lavender Candle")
	b := ProductID("candles.html", "Lavender Candle")
	require.Equal(t, a, b)
	require.Equal(t, "candles-html-lavender-candle", a)
}

func TestProductIDDistinctAcrossPages(t *testing.T) {
	a := ProductID("candles.html", "Lavender Candle")
	b := ProductID("gifts.html", "Lavender Candle")
	require.NotEqual(t, a, b)
}

func TestCleanPrice(t *testing.T) {
	cases := map[string]string{
		"₹500":         "500",
		"Rs. 1,299.50": "1299.50",
		"$12.99":       "12.99",
		"free":         "",
	}
	for raw, want := range cases {
		require.Equal(t, want, CleanPrice(raw), "raw=%q", raw)
	}
}

func TestValidateShipping(t *testing.T) {
	ok := Shipping{Mobile: "9876543210", Pincode: "560001"}
	require.NoError(t, ValidateShipping(ok))

	badPin := ok
	badPin.Pincode = "56001"
	require.ErrorIs(t, ValidateShipping(badPin), ErrInvalidPincode)

	badMobile := ok
	badMobile.Mobile = "98765"
	require.ErrorIs(t, ValidateShipping(badMobile), ErrInvalidMobile)

	// pincode failure reported first when both are wrong
	bothBad := Shipping{Mobile: "1", Pincode: "2"}
	require.ErrorIs(t, ValidateShipping(bothBad), ErrInvalidPincode)
}
