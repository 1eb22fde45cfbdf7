package komparu

import (
	"context"
	"fmt"

	"github.com/ashm-dev/komparu/internal/chunkcmp"
	"github.com/ashm-dev/komparu/internal/httpsource"
	"github.com/ashm-dev/komparu/internal/source"
)

// openHandle resolves a Source into a chunkcmp.Source, applying the
// call's global options with per-source overrides shadowing them.
func openHandle(ctx context.Context, s Source, opts *CompareOptions) (chunkcmp.Source, func() error, error) {
	switch s.Kind {
	case KindLocal:
		h, err := source.OpenLocal(s.Path, opts.FollowSymlinks)
		if err != nil {
			return nil, nil, err
		}
		return h, h.Close, nil

	case KindMemory:
		h := source.NewMemory(s.Bytes)
		return h, h.Close, nil

	case KindRemote:
		httpOpts := buildHTTPOptions(s, opts)
		h, err := httpsource.NewSource(ctx, s.URL, httpOpts...)
		if err != nil {
			return nil, nil, err
		}
		return h, h.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown source kind %d", ErrConfig, s.Kind)
	}
}

// buildHTTPOptions merges per-source overrides over the call's global
// HTTP options, key-by-key for headers rather than wholesale replacement.
func buildHTTPOptions(s Source, opts *CompareOptions) []httpsource.Option {
	headers := make(map[string]string, len(opts.Headers)+len(s.Headers))
	for k, v := range opts.Headers {
		headers[k] = v
	}
	for k, v := range s.Headers {
		headers[k] = v
	}

	timeout := opts.Timeout
	if s.Timeout > 0 {
		timeout = s.Timeout
	}
	followRedirects := opts.FollowRedirects
	if s.FollowRedirects {
		followRedirects = true
	}
	verifyTLS := opts.VerifyTLS
	if s.VerifyTLS != nil {
		verifyTLS = *s.VerifyTLS
	}
	proxy := opts.Proxy
	if s.Proxy != "" {
		proxy = s.Proxy
	}
	allowPrivate := opts.AllowPrivate || s.AllowPrivate

	return []httpsource.Option{
		httpsource.WithHeaders(headers),
		httpsource.WithTimeout(timeout),
		httpsource.WithFollowRedirects(followRedirects),
		httpsource.WithVerifyTLS(verifyTLS),
		httpsource.WithProxy(proxy),
		httpsource.WithAllowPrivate(allowPrivate),
		httpsource.WithRetries(opts.Retries),
		httpsource.WithRetryBackoff(opts.RetryBackoff),
		httpsource.WithLogger(opts.log()),
	}
}

// asSource wraps a bare string as a Source, inferring Local vs Remote
// from a URL scheme prefix — the same affordance Compare and friends
// give callers so they don't need NewLocalSource/NewRemoteSource for the
// common case.
func asSource(v any) Source {
	switch t := v.(type) {
	case Source:
		return t
	case string:
		if isURL(t) {
			return NewRemoteSource(t)
		}
		return NewLocalSource(t)
	case []byte:
		return NewMemorySource(t)
	default:
		return Source{}
	}
}

func isURL(s string) bool {
	for _, prefix := range [...]string{"http://", "https://"} {
		if len(s) >= len(prefix) && s[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
