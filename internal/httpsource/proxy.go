package httpsource

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"golang.org/x/net/proxy"
)

// buildTransport constructs an *http.Transport honoring proxyURL
// (http://, https://, or socks5://) and the SSRF guard, applied whether
// or not a proxy is configured.
func buildTransport(proxyURL string, verifyTLS, allowPrivate bool) (*http.Transport, error) {
	base := &net.Dialer{}
	var dial dialFunc = base.DialContext

	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("parse proxy url: %w", err)
		}
		switch u.Scheme {
		case "socks5", "socks5h":
			d, err := proxy.FromURL(u, base)
			if err != nil {
				return nil, fmt.Errorf("configure socks5 proxy: %w", err)
			}
			if ctxDialer, ok := d.(proxy.ContextDialer); ok {
				dial = ctxDialer.DialContext
			} else {
				dial = proxyDialer(d)
			}
		case "http", "https":
			// handled via Transport.Proxy below; dial stays direct.
		default:
			return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
		}
	}

	t := &http.Transport{
		DialContext: guardedDialContext(allowPrivate, dial),
	}
	if !verifyTLS {
		t.TLSClientConfig = insecureTLSConfig()
	}
	if proxyURL != "" {
		u, _ := url.Parse(proxyURL)
		if u.Scheme == "http" || u.Scheme == "https" {
			t.Proxy = http.ProxyURL(u)
		}
	}
	return t, nil
}

// proxyDialer adapts golang.org/x/net/proxy.Dialer's context-less Dial to
// the context-aware signature used everywhere else, for proxies that
// don't implement ContextDialer.
func proxyDialer(d proxy.Dialer) dialFunc {
	return func(_ context.Context, network, addr string) (net.Conn, error) {
		return d.Dial(network, addr)
	}
}
