// Package signer builds the query strings accepted by the futures REST API.
//
// A signed query is assembled as
//
//	[recvWindow=W&]timestamp=<ms>[&caller params]&signature=<hex hmac>
//
// and the HMAC covers every byte before "&signature=". Parameter values are
// written verbatim; callers own casing and numeric formatting.
package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"tradewire/pkg/core"
)

// Encode renders public parameters. Entries with an empty key are dropped.
func Encode(params core.Params) string {
	return params.Encode()
}

// Canonical returns the string that is signed: recvWindow when window > 0,
// then timestamp, then the caller parameters in order.
func Canonical(params core.Params, recvWindow uint64, now time.Time) string {
	var b strings.Builder
	if recvWindow > 0 {
		b.WriteString("recvWindow=")
		b.WriteString(strconv.FormatUint(recvWindow, 10))
		b.WriteByte('&')
	}
	b.WriteString("timestamp=")
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	if rest := params.Encode(); rest != "" {
		b.WriteByte('&')
		b.WriteString(rest)
	}
	return b.String()
}

// Sign returns the lowercase hex HMAC-SHA256 of query keyed by secret.
func Sign(query, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(query))
	return hex.EncodeToString(mac.Sum(nil))
}

// Builder assembles final query strings for one set of credentials.
// The zero value builds public queries and signs with the wall clock.
type Builder struct {
	Secret     string
	RecvWindow uint64
	// Now is the clock read once per Build. Nil means time.Now.
	Now func() time.Time
}

// Build returns the query for the given security mode. A signed build without
// a secret fails with core.ErrMissingCredentials before anything is hashed.
func (b Builder) Build(params core.Params, mode core.SecurityMode) (string, error) {
	switch mode {
	case core.ModePublic:
		return Encode(params), nil
	default:
		if b.Secret == "" {
			return "", core.ErrMissingCredentials
		}
		query := Canonical(params, b.RecvWindow, b.now())
		return query + "&signature=" + Sign(query, b.Secret), nil
	}
}

// WithRecvWindow returns a copy of the builder using window.
func (b Builder) WithRecvWindow(window uint64) Builder {
	b.RecvWindow = window
	return b
}

func (b Builder) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}
