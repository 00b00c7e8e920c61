// Package security provides the outbound-call guard and the HTML
// sanitizer used by the portfolio service.
package security

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/doyensec/safeurl"
)

// OutboundGuardService guards the two operator-configured outbound
// endpoints (mail relay, captcha verification). The URLs come from
// configuration, not from users, but a misconfigured deployment must
// not become a proxy into the private network.
type OutboundGuardService interface {
	// NewSafeClient builds an HTTP client that refuses connections to
	// private, loopback, link-local and metadata addresses, including
	// after DNS resolution (rebinding protection).
	NewSafeClient(timeout time.Duration) *http.Client

	// ValidateURL statically checks a configured endpoint URL before
	// the server starts accepting traffic.
	ValidateURL(rawURL string) error
}

// allowedSchemes are the URL schemes accepted for outbound endpoints.
var allowedSchemes = []string{"http", "https"}

// blockedNetworks are the ranges rejected by ValidateURL. Parsed once
// at package init; the safeurl dialer re-checks resolved addresses, so
// DNS rebinding cannot bypass this list.
var blockedNetworks []net.IPNet

func init() {
	cidrs := []string{
		// private ranges (RFC 1918)
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		// loopback (RFC 1122)
		"127.0.0.0/8",
		// link-local (RFC 3927), includes cloud metadata 169.254.169.254
		"169.254.0.0/16",
		// current network
		"0.0.0.0/8",
		// IPv6 loopback
		"::1/128",
		// IPv6 link-local
		"fe80::/10",
		// IPv6 unique local
		"fc00::/7",
	}
	for _, cidr := range cidrs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(fmt.Sprintf("invalid CIDR in blockedNetworks: %s: %v", cidr, err))
		}
		blockedNetworks = append(blockedNetworks, *network)
	}
}

// OutboundGuard implements OutboundGuardService.
type OutboundGuard struct{}

// NewOutboundGuard returns a new OutboundGuardService.
func NewOutboundGuard() *OutboundGuard {
	return &OutboundGuard{}
}

// NewSafeClient builds the guarded HTTP client shared by the mailer
// and captcha clients.
func (g *OutboundGuard) NewSafeClient(timeout time.Duration) *http.Client {
	config := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes(allowedSchemes...).
		SetAllowedPorts(80, 443).
		Build()

	wrappedClient := safeurl.Client(config)
	return wrappedClient.Client
}

// ValidateURL statically checks scheme, host and literal IPs. It does
// not resolve DNS; resolved addresses are checked by the safeurl
// dialer at request time.
func (g *OutboundGuard) ValidateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if !isAllowedScheme(scheme) {
		return fmt.Errorf("disallowed scheme: %s (allowed: %v)", scheme, allowedSchemes)
	}

	host := parsed.Hostname()
	if host == "" {
		return fmt.Errorf("empty host in URL: %s", rawURL)
	}

	if ip := net.ParseIP(host); ip != nil {
		if isBlockedIP(ip) {
			return fmt.Errorf("blocked IP address: %s", ip.String())
		}
		return nil
	}

	if isBlockedHostname(host) {
		return fmt.Errorf("blocked host: %s", host)
	}

	return nil
}

// isAllowedScheme reports whether the scheme is on the allow list.
func isAllowedScheme(scheme string) bool {
	for _, allowed := range allowedSchemes {
		if strings.EqualFold(scheme, allowed) {
			return true
		}
	}
	return false
}

// isBlockedIP reports whether the IP falls in a blocked range.
func isBlockedIP(ip net.IP) bool {
	for _, network := range blockedNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// blockedHostnames are rejected without DNS resolution.
var blockedHostnames = []string{
	"localhost",
}

// isBlockedHostname reports whether the hostname is blocked outright.
func isBlockedHostname(host string) bool {
	lower := strings.ToLower(host)
	for _, blocked := range blockedHostnames {
		if lower == blocked {
			return true
		}
	}
	return false
}
