package auth

type options struct {
	scopes []string
}

type Option func(*options)

// WithScopes replaces the OAuth2 scopes requested by a credential.
func WithScopes(scopes ...string) Option {
	return func(o *options) {
		o.scopes = normalizeScopes(scopes)
	}
}

func resolveOptions(opts []Option) options {
	resolved := options{
		scopes: normalizeScopes(nil),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&resolved)
	}
	return resolved
}
