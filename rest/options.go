package rest

type requestOptions struct {
	noAuth  bool
	noRetry bool
}

// RequestOption adjusts how a single request is issued.
type RequestOption func(*requestOptions)

// WithoutAuth skips the bearer header. Used by the token and register
// endpoints, which authenticate by payload rather than by header.
func WithoutAuth() RequestOption {
	return func(o *requestOptions) {
		o.noAuth = true
	}
}

// WithoutRetry disables the 401 refresh-and-retry cycle for this request.
// The refresh call itself runs with this option, otherwise a rejected
// refresh token would recurse into another refresh.
func WithoutRetry() RequestOption {
	return func(o *requestOptions) {
		o.noRetry = true
	}
}

func applyOptions(opts []RequestOption) requestOptions {
	options := requestOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
