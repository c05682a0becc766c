package futures

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradewire/pkg/core"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		marketType core.MarketType
		route      Route
		want       string
	}{
		{"linear_ping", core.MarketLinear, RoutePing, "/fapi/v1/ping"},
		{"inverse_ping", core.MarketInverse, RoutePing, "/dapi/v1/ping"},
		{"linear_order", core.MarketLinear, RouteOrder, "/fapi/v1/order"},
		{"inverse_order", core.MarketInverse, RouteOrder, "/dapi/v1/order"},
		{"linear_position_risk", core.MarketLinear, RoutePositionRisk, "/fapi/v2/positionRisk"},
		{"inverse_position_risk", core.MarketInverse, RoutePositionRisk, "/dapi/v1/positionRisk"},
		{"linear_listen_key", core.MarketLinear, RouteUserDataStream, "/fapi/v1/listenKey"},
		{"linear_multi_assets", core.MarketLinear, RouteMultiAssetsMargin, "/fapi/v1/multiAssetsMargin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.marketType, tt.route)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_EveryRouteHasAPrefixedPath(t *testing.T) {
	for r := RoutePing; r <= RouteMultiAssetsMargin; r++ {
		linear, err := Resolve(core.MarketLinear, r)
		require.NoError(t, err, r.String())
		assert.True(t, strings.HasPrefix(linear, "/fapi/"), r.String())

		if r == RouteMultiAssetsMargin {
			continue
		}
		inverse, err := Resolve(core.MarketInverse, r)
		require.NoError(t, err, r.String())
		assert.True(t, strings.HasPrefix(inverse, "/dapi/"), r.String())
		assert.NotEqual(t, linear, inverse)
	}
}

func TestResolve_Unsupported(t *testing.T) {
	_, err := Resolve(core.MarketInverse, RouteMultiAssetsMargin)

	var routeErr *core.UnsupportedRouteError
	require.ErrorAs(t, err, &routeErr)
	assert.Equal(t, core.MarketInverse, routeErr.MarketType)
	assert.Equal(t, "MultiAssetsMargin", routeErr.Route)
	assert.Equal(t, "route MultiAssetsMargin is not supported for inverse market", err.Error())

	_, err = Resolve(core.MarketLinear, Route(99))
	assert.ErrorAs(t, err, &routeErr)
	assert.Equal(t, "Route(99)", routeErr.Route)
}

func TestMustResolve(t *testing.T) {
	assert.Equal(t, "/dapi/v1/time", MustResolve(core.MarketInverse, RouteTime))
	assert.Panics(t, func() { MustResolve(core.MarketInverse, RouteMultiAssetsMargin) })
}
