//go:build (!amd64 && !arm64) || go1.27 || !go1.17 || (arm64 && !go1.20)

package core

// sonic falls back to encoding/json on these platforms, whose errors are
// handled by describeParseError.
func describeSonicError(error) (parseFailure, bool) {
	return parseFailure{}, false
}
