package httpsource

import (
	"context"
	"fmt"
	"net"
)

// checkAddrAllowed rejects private, loopback, link-local, and multicast
// addresses unless allowPrivate is set. It runs at dial time, after DNS
// resolution, so a hostname that round-trips through a public-looking
// name to a private address is still caught.
func checkAddrAllowed(ip net.IP, allowPrivate bool) error {
	if allowPrivate {
		return nil
	}
	switch {
	case ip.IsLoopback():
		return fmt.Errorf("refusing to dial loopback address %s", ip)
	case ip.IsPrivate():
		return fmt.Errorf("refusing to dial private address %s", ip)
	case ip.IsLinkLocalUnicast(), ip.IsLinkLocalMulticast():
		return fmt.Errorf("refusing to dial link-local address %s", ip)
	case ip.IsMulticast():
		return fmt.Errorf("refusing to dial multicast address %s", ip)
	case ip.IsUnspecified():
		return fmt.Errorf("refusing to dial unspecified address %s", ip)
	}
	return nil
}

// dialFunc matches net.Dialer.DialContext and http.Transport.DialContext.
type dialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// guardedDialContext wraps a base dial function with the SSRF address
// check, applied to the resolved IP of every connection this client's
// transport opens — including ones made mid-redirect-chain, since each
// redirect hop dials fresh.
func guardedDialContext(allowPrivate bool, base dialFunc) dialFunc {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			host = addr
		}
		if ip := net.ParseIP(host); ip != nil {
			if err := checkAddrAllowed(ip, allowPrivate); err != nil {
				return nil, err
			}
			return base(ctx, network, addr)
		}
		// Hostname: resolve first so every candidate address is checked;
		// dialing proceeds only once every resolved IP is allowed.
		ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
		if err != nil {
			return nil, err
		}
		for _, candidate := range ips {
			if err := checkAddrAllowed(candidate.IP, allowPrivate); err != nil {
				return nil, err
			}
		}
		// Dial the checked addresses themselves rather than the hostname,
		// so a second DNS answer cannot substitute an unchecked address.
		lastErr := fmt.Errorf("no addresses found for %s", host)
		for _, candidate := range ips {
			target := candidate.IP.String()
			if port != "" {
				target = net.JoinHostPort(target, port)
			}
			conn, err := base(ctx, network, target)
			if err == nil {
				return conn, nil
			}
			lastErr = err
		}
		return nil, lastErr
	}
}
