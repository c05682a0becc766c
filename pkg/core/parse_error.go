package core

import (
	"encoding/json"
	"errors"
	"reflect"
)

type parseFailure struct {
	reason   string
	offset   int64
	expected string
}

var unknownFailure = parseFailure{offset: -1}

func describeParseError(err error) parseFailure {
	if err == nil {
		return unknownFailure
	}
	if f, ok := describeSonicError(err); ok {
		return f
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return parseFailure{reason: "type mismatch", offset: typeErr.Offset, expected: typeName(typeErr.Type)}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return parseFailure{reason: "syntax error", offset: syntaxErr.Offset}
	}
	return unknownFailure
}

func typeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}
