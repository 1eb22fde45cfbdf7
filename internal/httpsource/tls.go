package httpsource

import "crypto/tls"

// insecureTLSConfig disables certificate verification for sources built
// with WithVerifyTLS(false). Used deliberately and only on request.
func insecureTLSConfig() *tls.Config {
	return &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via WithVerifyTLS(false)
}
