package utils

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"
)

const authorizerProbeTimeout = 1500 * time.Millisecond

// ProbeTCP checks that something is listening at the URL's host and port.
// Scheme only matters for the implied port when none is given.
func ProbeTCP(rawURL string, timeout time.Duration) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	port := u.Port()
	if port == "" {
		if u.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}
	address := net.JoinHostPort(u.Hostname(), port)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	return conn.Close()
}

// PingAuthorizer checks if the Authorizer service is reachable
func PingAuthorizer(authzURL string) error {
	return ProbeTCP(authzURL, authorizerProbeTimeout)
}
