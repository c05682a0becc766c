package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		want      string
	}{
		{"unknown", ErrorTypeUnknown, "UNKNOWN"},
		{"network", ErrorTypeNetwork, "NETWORK"},
		{"timeout", ErrorTypeTimeout, "TIMEOUT"},
		{"rate_limit", ErrorTypeRateLimit, "RATE_LIMIT"},
		{"authentication", ErrorTypeAuthentication, "AUTHENTICATION"},
		{"bad_request", ErrorTypeBadRequest, "BAD_REQUEST"},
		{"invalid_order", ErrorTypeInvalidOrder, "INVALID_ORDER"},
		{"insufficient_funds", ErrorTypeInsufficientFunds, "INSUFFICIENT_FUNDS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.errorType.String())
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "with_code",
			err:  &APIError{StatusCode: 400, Code: -1121, Msg: "Invalid symbol."},
			want: "api error -1121 (http 400): Invalid symbol.",
		},
		{
			name: "without_code",
			err:  &APIError{StatusCode: 502, Msg: "Bad Gateway"},
			want: "api error (http 502): Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAPIError_IsUnknown(t *testing.T) {
	assert.True(t, (&APIError{Code: -1000}).IsUnknown())
	assert.False(t, (&APIError{Code: -1001}).IsUnknown())
	assert.False(t, (&APIError{Code: -1121}).IsUnknown())
	assert.False(t, (&APIError{Code: 0}).IsUnknown())
}

func TestClassifyCode(t *testing.T) {
	tests := []struct {
		name string
		code APICode
		want ErrorType
	}{
		{"unknown", CodeUnknown, ErrorTypeUnknown},
		{"disconnected", CodeDisconnected, ErrorTypeNetwork},
		{"server_timeout", CodeTimeout, ErrorTypeTimeout},
		{"too_many_requests", CodeTooManyRequests, ErrorTypeRateLimit},
		{"too_many_orders", CodeTooManyOrders, ErrorTypeRateLimit},
		{"bad_signature", CodeInvalidSignature, ErrorTypeAuthentication},
		{"stale_timestamp", CodeInvalidTimestamp, ErrorTypeAuthentication},
		{"rejected_key", CodeRejectedMBXKey, ErrorTypeAuthentication},
		{"invalid_symbol", CodeInvalidSymbol, ErrorTypeBadRequest},
		{"mandatory_param", CodeMandatoryParamEmpty, ErrorTypeBadRequest},
		{"no_such_order", CodeNoSuchOrder, ErrorTypeInvalidOrder},
		{"position_side", CodePositionSideMismatch, ErrorTypeInvalidOrder},
		{"balance", CodeBalanceInsufficient, ErrorTypeInsufficientFunds},
		{"unmapped", APICode(-9999), ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCode(tt.code))
		})
	}
}

func TestIsAPIError(t *testing.T) {
	wrapped := fmt.Errorf("place order: %w", &APIError{StatusCode: 400, Code: -2019, Msg: "Margin is insufficient."})

	apiErr, ok := IsAPIError(wrapped)
	require.True(t, ok)
	assert.Equal(t, -2019, apiErr.Code)
	assert.Equal(t, ErrorTypeInsufficientFunds, apiErr.Type())

	_, ok = IsAPIError(errors.New("plain"))
	assert.False(t, ok)
}

func TestIsNetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("ping: %w", &NetworkError{Method: "GET", Path: "/fapi/v1/ping", Err: cause})

	assert.True(t, IsNetworkError(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsNetworkError(&APIError{Code: -1000}))
}

func TestIsDecodeError(t *testing.T) {
	err := &DecodeError{Target: "ServerTime", Size: 12, Err: errors.New("unexpected token")}

	assert.True(t, IsDecodeError(err))
	assert.Equal(t, "decode ServerTime (12 bytes): invalid payload", err.Error())
	assert.False(t, IsDecodeError(ErrDisconnected))
}

func TestNewDecodeError(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantReason string
		wantType   string
	}{
		{"type_mismatch", `{"serverTime":"secret-value"}`, "type mismatch", "int64"},
		{"syntax", `{"serverTime":secret-value}`, "syntax error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				ServerTime int64 `json:"serverTime"`
			}
			cause := sonic.Unmarshal([]byte(tt.body), &out)
			require.Error(t, cause)

			err := NewDecodeError("ServerTime", len(tt.body), cause)
			assert.Equal(t, tt.wantReason, err.Reason)
			assert.Equal(t, tt.wantType, err.Expected)
			assert.GreaterOrEqual(t, err.Offset, int64(0))
			assert.Less(t, err.Offset, int64(len(tt.body)))
			assert.Contains(t, err.Error(), "at offset")
			assert.NotContains(t, err.Error(), "secret")
			assert.ErrorIs(t, err, cause)
		})
	}
}

func TestNewDecodeError_OpaqueCause(t *testing.T) {
	err := NewDecodeError("Kline", 40, errors.New("parse mantissa: secret-value"))

	assert.Equal(t, int64(-1), err.Offset)
	assert.Equal(t, "decode Kline (40 bytes): invalid payload", err.Error())
}

func TestIsHandshakeError(t *testing.T) {
	err := &HandshakeError{URL: "wss://fstream.binance.com/ws/btcusdt@trade", Err: errors.New("403")}

	assert.True(t, IsHandshakeError(err))
	assert.Contains(t, err.Error(), "btcusdt@trade")
}

func TestIsRateLimitError(t *testing.T) {
	assert.True(t, IsRateLimitError(&APIError{StatusCode: 400, Code: -1003}))
	assert.True(t, IsRateLimitError(&APIError{StatusCode: 429}))
	assert.True(t, IsRateLimitError(&APIError{StatusCode: 418}))
	assert.False(t, IsRateLimitError(&APIError{StatusCode: 400, Code: -1121}))
	assert.False(t, IsRateLimitError(errors.New("slow down")))
}

func TestIsAuthenticationError(t *testing.T) {
	assert.True(t, IsAuthenticationError(ErrMissingCredentials))
	assert.True(t, IsAuthenticationError(fmt.Errorf("account: %w", ErrMissingCredentials)))
	assert.True(t, IsAuthenticationError(&APIError{Code: -1022}))
	assert.False(t, IsAuthenticationError(&APIError{Code: -1121}))
}

func TestUnsupportedRouteError(t *testing.T) {
	err := &UnsupportedRouteError{MarketType: MarketInverse, Route: "MultiAssetsMargin"}
	assert.Equal(t, "route MultiAssetsMargin is not supported for inverse market", err.Error())
}
