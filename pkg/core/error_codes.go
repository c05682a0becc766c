package core

// APICode is a numeric error code returned in the {code,msg} error body.
type APICode int

// Well-known codes. Callers branch on these without parsing msg.
const (
	CodeUnknown              APICode = -1000
	CodeDisconnected         APICode = -1001
	CodeUnauthorized         APICode = -1002
	CodeTooManyRequests      APICode = -1003
	CodeUnexpectedResponse   APICode = -1006
	CodeTimeout              APICode = -1007
	CodeTooManyOrders        APICode = -1015
	CodeInvalidTimestamp     APICode = -1021
	CodeInvalidSignature     APICode = -1022
	CodeIllegalChars         APICode = -1100
	CodeTooManyParameters    APICode = -1101
	CodeMandatoryParamEmpty  APICode = -1102
	CodeUnknownParam         APICode = -1103
	CodeUnreadParameters     APICode = -1104
	CodeParamEmpty           APICode = -1105
	CodeParamNotRequired     APICode = -1106
	CodeInvalidSymbol        APICode = -1121
	CodeInvalidListenKey     APICode = -1125
	CodeNewOrderRejected     APICode = -2010
	CodeCancelRejected       APICode = -2011
	CodeNoSuchOrder          APICode = -2013
	CodeBadAPIKeyFormat      APICode = -2014
	CodeRejectedMBXKey       APICode = -2015
	CodeBalanceInsufficient  APICode = -2019
	CodeReduceOnlyRejected   APICode = -2022
	CodePositionSideMismatch APICode = -4061
)

// ClassifyCode maps a server code to an ErrorType.
func ClassifyCode(code APICode) ErrorType {
	switch code {
	case CodeUnknown:
		return ErrorTypeUnknown
	case CodeDisconnected, CodeUnexpectedResponse:
		return ErrorTypeNetwork
	case CodeTimeout:
		return ErrorTypeTimeout
	case CodeTooManyRequests, CodeTooManyOrders:
		return ErrorTypeRateLimit
	case CodeUnauthorized, CodeInvalidTimestamp, CodeInvalidSignature,
		CodeInvalidListenKey, CodeBadAPIKeyFormat, CodeRejectedMBXKey:
		return ErrorTypeAuthentication
	case CodeBalanceInsufficient:
		return ErrorTypeInsufficientFunds
	}
	switch {
	case code <= -1100 && code > -1200:
		return ErrorTypeBadRequest
	case code <= -2000 && code > -3000, code <= -4000 && code > -5000:
		return ErrorTypeInvalidOrder
	default:
		return ErrorTypeUnknown
	}
}
