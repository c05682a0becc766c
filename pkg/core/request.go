package core

// SecurityMode controls how the query string of a request is assembled.
type SecurityMode int

const (
	// ModePublic sends the caller parameters only.
	ModePublic SecurityMode = iota
	// ModeSigned prefixes recvWindow/timestamp and appends an HMAC signature.
	ModeSigned
)

// String returns the string representation of the security mode.
func (m SecurityMode) String() string {
	return [...]string{"PUBLIC", "SIGNED"}[m]
}

// Request describes a single REST call before the query string is built.
type Request struct {
	Method string
	Path   string
	Params Params
	Mode   SecurityMode
	// RecvWindow overrides the client default when greater than zero.
	RecvWindow uint64
	// Weight is the request weight charged against the rate limiter.
	Weight int
	// Bucket is an extra named limiter bucket, such as order placement.
	Bucket string
}

func NewRequest(method, path string) *Request {
	return &Request{
		Method: method,
		Path:   path,
		Weight: 1,
	}
}

func (r *Request) SetParams(params Params) *Request {
	r.Params = params
	return r
}

func (r *Request) SetParam(key, value string) *Request {
	r.Params = r.Params.Add(key, value)
	return r
}

func (r *Request) SetMode(mode SecurityMode) *Request {
	r.Mode = mode
	return r
}

func (r *Request) SetSigned() *Request {
	return r.SetMode(ModeSigned)
}

func (r *Request) SetRecvWindow(window uint64) *Request {
	r.RecvWindow = window
	return r
}

func (r *Request) SetWeight(weight int) *Request {
	r.Weight = weight
	return r
}

func (r *Request) SetBucket(bucket string) *Request {
	r.Bucket = bucket
	return r
}
