package futures

import (
	"context"
	"net/http"

	"tradewire/pkg/core"
)

// UserStream manages the listen key of the user data stream. The key is
// valid for 60 minutes unless kept alive; connect to it with
// Client.Streams(...).Connect(ctx, listenKey).
type UserStream struct {
	*service
}

// Start creates or returns the active listen key. It needs an API key but no
// signature.
func (u *UserStream) Start(ctx context.Context) (string, error) {
	if !u.http.HasAPIKey() {
		return "", core.ErrMissingCredentials
	}

	var out ListenKey
	if err := u.do(ctx, http.MethodPost, RouteUserDataStream, nil, core.ModePublic, 1, &out); err != nil {
		return "", err
	}
	return out.ListenKey, nil
}

// KeepAlive extends the validity of listenKey.
func (u *UserStream) KeepAlive(ctx context.Context, listenKey string) error {
	if !u.http.HasAPIKey() {
		return core.ErrMissingCredentials
	}
	params := core.Params{}.Add("listenKey", listenKey)
	return u.do(ctx, http.MethodPut, RouteUserDataStream, params, core.ModePublic, 1, nil)
}

// Close invalidates listenKey.
func (u *UserStream) Close(ctx context.Context, listenKey string) error {
	if !u.http.HasAPIKey() {
		return core.ErrMissingCredentials
	}
	params := core.Params{}.Add("listenKey", listenKey)
	return u.do(ctx, http.MethodDelete, RouteUserDataStream, params, core.ModePublic, 1, nil)
}
