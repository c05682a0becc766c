package core

import (
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"
)

// Kline is one candle of the spot or futures REST API. The wire form is a
// positional array.
type Kline struct {
	OpenTime            int64
	Open                apd.Decimal
	High                apd.Decimal
	Low                 apd.Decimal
	Close               apd.Decimal
	Volume              apd.Decimal
	CloseTime           int64
	QuoteVolume         apd.Decimal
	TradeCount          int64
	TakerBuyBaseVolume  apd.Decimal
	TakerBuyQuoteVolume apd.Decimal
}

func (k *Kline) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := sonic.Unmarshal(data, &fields); err != nil {
		return err
	}
	if len(fields) < 11 {
		return fmt.Errorf("kline has %d fields, want at least 11", len(fields))
	}

	ints := []struct {
		idx int
		dst *int64
	}{
		{0, &k.OpenTime},
		{6, &k.CloseTime},
		{8, &k.TradeCount},
	}
	for _, f := range ints {
		if err := sonic.Unmarshal(fields[f.idx], f.dst); err != nil {
			return fmt.Errorf("kline field %d: %w", f.idx, err)
		}
	}

	decimals := []struct {
		idx int
		dst *apd.Decimal
	}{
		{1, &k.Open},
		{2, &k.High},
		{3, &k.Low},
		{4, &k.Close},
		{5, &k.Volume},
		{7, &k.QuoteVolume},
		{9, &k.TakerBuyBaseVolume},
		{10, &k.TakerBuyQuoteVolume},
	}
	for _, f := range decimals {
		var s string
		if err := sonic.Unmarshal(fields[f.idx], &s); err != nil {
			return fmt.Errorf("kline field %d: %w", f.idx, err)
		}
		if _, _, err := f.dst.SetString(s); err != nil {
			return fmt.Errorf("kline field %d: %w", f.idx, err)
		}
	}
	return nil
}

