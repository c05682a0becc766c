package core

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_Encode(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{
			name:   "empty",
			params: nil,
			want:   "",
		},
		{
			name:   "insertion_order",
			params: Params{}.Add("symbol", "BTCUSDT").Add("side", "BUY").Add("type", "LIMIT"),
			want:   "symbol=BTCUSDT&side=BUY&type=LIMIT",
		},
		{
			name:   "empty_key_dropped",
			params: Params{{Key: "", Value: "x"}, {Key: "a", Value: "1"}, {Key: "", Value: ""}, {Key: "b", Value: "2"}},
			want:   "a=1&b=2",
		},
		{
			name:   "empty_value_kept",
			params: Params{}.Add("listenKey", ""),
			want:   "listenKey=",
		},
		{
			name:   "no_percent_encoding",
			params: Params{}.Add("symbols", `["BTCUSDT","ETHUSDT"]`).Add("note", "a b"),
			want:   `symbols=["BTCUSDT","ETHUSDT"]&note=a b`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Encode())
		})
	}
}

func TestParams_TypedAdders(t *testing.T) {
	p := Params{}.
		AddInt("limit", -5).
		AddUint("orderId", 18446744073709551615).
		AddFloat("quantity", 0.1).
		AddFloat("price", 25000).
		AddFloat("tiny", 0.00000123).
		AddBool("reduceOnly", true).
		AddOptional("newClientOrderId", "").
		AddOptional("timeInForce", "GTC")

	assert.Equal(t,
		"limit=-5&orderId=18446744073709551615&quantity=0.1&price=25000&tiny=0.00000123&reduceOnly=true&timeInForce=GTC",
		p.Encode())
}

func TestParams_AddFloatStable(t *testing.T) {
	values := []float64{0.1 + 0.2, 1e21, 123.456, 1.0 / 3.0}
	for _, v := range values {
		first := Params{}.AddFloat("v", v).Encode()
		second := Params{}.AddFloat("v", v).Encode()
		assert.Equal(t, first, second)
	}
}

func TestParams_AddDecimal(t *testing.T) {
	price, _, err := apd.NewFromString("0.00100")
	require.NoError(t, err)

	p := Params{}.
		AddDecimal("price", price).
		AddDecimal("quantity", apd.New(1, 3)).
		AddDecimal("stopPrice", nil).
		AddDecimal("callbackRate", apd.New(15, -1))

	assert.Equal(t, "price=0.00100&quantity=1000&callbackRate=1.5", p.Encode())
}

func TestParams_Get(t *testing.T) {
	p := Params{}.Add("symbol", "BTCUSDT").Add("symbol", "ETHUSDT")

	v, ok := p.Get("symbol")
	assert.True(t, ok)
	assert.Equal(t, "BTCUSDT", v)

	_, ok = p.Get("side")
	assert.False(t, ok)
}
