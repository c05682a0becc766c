package stream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"

	"tradewire/pkg/core"
)

// ErrUnknownEvent is wrapped by the DecodeError of a frame whose event tag is
// missing or not recognised.
var ErrUnknownEvent = errors.New("unknown event type")

// envelope inspects a frame for the combined-stream wrapper and the event tag.
type envelope struct {
	Stream string `json:"stream"`
	Type   string `json:"e"`
	// Declared so the event time is not folded into Type.
	Time json.RawMessage `json:"E"`
}

// Decode parses one text frame. A frame with a top-level "data" key is a
// combined-stream envelope and its data is decoded, whatever the value:
// "data":null is an envelope without an event and fails to decode. Otherwise
// the frame itself is the event. An unknown or missing event tag is a
// *core.DecodeError wrapping ErrUnknownEvent.
func Decode(raw []byte) (Event, error) {
	_, event, err := DecodeEnvelope(raw)
	return event, err
}

// DecodeEnvelope is Decode that also returns the stream name of a combined
// frame, or "" for a bare frame.
func DecodeEnvelope(raw []byte) (string, Event, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		event, err := decodeArray(trimmed)
		return "", event, err
	}

	var env envelope
	if err := sonic.Unmarshal(trimmed, &env); err != nil {
		return "", nil, decodeError("stream frame", raw, err)
	}
	data, err := sonic.Get(trimmed, "data")
	switch {
	case err == nil:
		payload, err := data.Raw()
		if err != nil {
			return "", nil, decodeError("stream frame", raw, err)
		}
		event, err := decodePayload([]byte(payload))
		return env.Stream, event, err
	case !errors.Is(err, ast.ErrNotExist):
		return "", nil, decodeError("stream frame", raw, err)
	}
	event, err := decodeTagged(env.Type, trimmed)
	return "", event, err
}

func decodePayload(raw []byte) (Event, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return decodeArray(trimmed)
	}
	var env envelope
	if err := sonic.Unmarshal(trimmed, &env); err != nil {
		return nil, decodeError("stream event", raw, err)
	}
	return decodeTagged(env.Type, trimmed)
}

// decodeArray decodes every element; one bad element fails the whole frame.
func decodeArray(raw []byte) (Event, error) {
	var items []json.RawMessage
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return nil, decodeError("stream batch", raw, err)
	}
	batch := &BatchEvent{Events: make([]Event, 0, len(items))}
	for _, item := range items {
		var env envelope
		if err := sonic.Unmarshal(item, &env); err != nil {
			return nil, decodeError("stream batch", raw, err)
		}
		event, err := decodeTagged(env.Type, item)
		if err != nil {
			return nil, err
		}
		batch.Events = append(batch.Events, event)
	}
	return batch, nil
}

func decodeTagged(tag string, raw []byte) (Event, error) {
	event := newEvent(tag)
	if event == nil {
		return nil, &core.DecodeError{
			Target: "stream event",
			Size:   len(raw),
			Offset: -1,
			Reason: fmt.Sprintf("%s %q", ErrUnknownEvent, tag),
			Err:    ErrUnknownEvent,
		}
	}
	if err := sonic.Unmarshal(raw, event); err != nil {
		return nil, decodeError(tag, raw, err)
	}
	return event, nil
}

func newEvent(tag string) Event {
	switch tag {
	case EventAggTrade:
		return &AggTradeEvent{}
	case EventTrade:
		return &TradeEvent{}
	case EventKline:
		return &KlineEvent{}
	case EventTicker:
		return &TickerEvent{}
	case EventMiniTicker:
		return &MiniTickerEvent{}
	case EventDepthUpdate:
		return &DepthUpdateEvent{}
	case EventBookTicker:
		return &BookTickerEvent{}
	case EventMarkPrice:
		return &MarkPriceEvent{}
	case EventAccountPosition:
		return &AccountPositionEvent{}
	case EventBalanceUpdate:
		return &BalanceUpdateEvent{}
	case EventExecutionReport:
		return &ExecutionReportEvent{}
	case EventListStatus:
		return &ListStatusEvent{}
	case EventAccountUpdate:
		return &AccountUpdateEvent{}
	case EventOrderTradeUpdate:
		return &OrderTradeUpdateEvent{}
	case EventListenKeyExpired:
		return &ListenKeyExpiredEvent{}
	default:
		return nil
	}
}

func decodeError(target string, raw []byte, err error) error {
	return core.NewDecodeError(target, len(raw), err)
}
