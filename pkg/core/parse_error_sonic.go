//go:build (amd64 && go1.17 && !go1.27) || (arm64 && go1.20 && !go1.27)

package core

import (
	"errors"

	"github.com/bytedance/sonic/decoder"
)

// describeSonicError reads the position and target type of sonic's native
// decoder errors. Their Src field holds the whole input and is never used.
func describeSonicError(err error) (parseFailure, bool) {
	var mismatch *decoder.MismatchTypeError
	if errors.As(err, &mismatch) {
		return mismatchFailure(*mismatch), true
	}
	var mismatchValue decoder.MismatchTypeError
	if errors.As(err, &mismatchValue) {
		return mismatchFailure(mismatchValue), true
	}
	var syntax *decoder.SyntaxError
	if errors.As(err, &syntax) {
		return parseFailure{reason: "syntax error", offset: int64(syntax.Pos)}, true
	}
	var syntaxValue decoder.SyntaxError
	if errors.As(err, &syntaxValue) {
		return parseFailure{reason: "syntax error", offset: int64(syntaxValue.Pos)}, true
	}
	return parseFailure{}, false
}

func mismatchFailure(e decoder.MismatchTypeError) parseFailure {
	return parseFailure{reason: "type mismatch", offset: int64(e.Pos), expected: typeName(e.Type)}
}
