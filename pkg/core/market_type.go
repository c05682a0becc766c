package core

import "fmt"

// MarketType selects a family of futures contracts. The families share every
// operation but live on different hosts and path prefixes.
type MarketType int

// Market type constants define the supported contract families.
const (
	// MarketLinear is USDⓈ-margined contracts (fapi / fstream).
	MarketLinear MarketType = iota
	// MarketInverse is coin-margined contracts (dapi / dstream).
	MarketInverse
)

// String returns the string representation of the market type ("linear" or "inverse").
func (m MarketType) String() string {
	switch m {
	case MarketLinear:
		return "linear"
	case MarketInverse:
		return "inverse"
	default:
		return fmt.Sprintf("MarketType(%d)", int(m))
	}
}

// ParseMarketType parses "linear" or "inverse".
func ParseMarketType(s string) (MarketType, error) {
	switch s {
	case "linear", "LINEAR", "usdm", "":
		return MarketLinear, nil
	case "inverse", "INVERSE", "coinm":
		return MarketInverse, nil
	default:
		return 0, fmt.Errorf("unknown market type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m MarketType) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so market types can be read
// from YAML and JSON configuration.
func (m *MarketType) UnmarshalText(text []byte) error {
	mt, err := ParseMarketType(string(text))
	if err != nil {
		return err
	}
	*m = mt
	return nil
}

// Endpoints holds the REST and WebSocket base URLs of one market family.
type Endpoints struct {
	REST string
	WS   string
}

// EndpointsFor returns the default hosts for a market type.
func EndpointsFor(m MarketType, sandbox bool) Endpoints {
	switch m {
	case MarketInverse:
		if sandbox {
			return Endpoints{REST: "https://testnet.binancefuture.com", WS: "wss://dstream.binancefuture.com"}
		}
		return Endpoints{REST: "https://dapi.binance.com", WS: "wss://dstream.binance.com"}
	default:
		if sandbox {
			return Endpoints{REST: "https://testnet.binancefuture.com", WS: "wss://stream.binancefuture.com"}
		}
		return Endpoints{REST: "https://fapi.binance.com", WS: "wss://fstream.binance.com"}
	}
}

// SpotEndpoints returns the default spot hosts. Spot is not a MarketType:
// it has its own client and ignores Config.MarketType.
func SpotEndpoints(sandbox bool) Endpoints {
	if sandbox {
		return Endpoints{REST: "https://testnet.binance.vision", WS: "wss://testnet.binance.vision"}
	}
	return Endpoints{REST: "https://api.binance.com", WS: "wss://stream.binance.com:9443"}
}
