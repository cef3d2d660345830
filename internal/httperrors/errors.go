// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns network failures talking to the HawkCD server into
// user-friendly terminal messages.
package httperrors

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// Category is the broad cause of a network failure.
type Category int

const (
	Other Category = iota
	Timeout
	DNS
	Refused
	TLS
	Server
)

func (c Category) String() string {
	switch c {
	case Timeout:
		return "timeout"
	case DNS:
		return "dns"
	case Refused:
		return "refused"
	case TLS:
		return "tls"
	case Server:
		return "server"
	default:
		return "other"
	}
}

// Classify inspects err and its chain. Typed net errors win over message
// matching.
func Classify(err error) Category {
	if err == nil {
		return Other
	}
	lower := strings.ToLower(err.Error())

	var netErr net.Error
	if (errors.As(err, &netErr) && netErr.Timeout()) ||
		strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded") {
		return Timeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return DNS
	}

	if errors.Is(err, syscall.ECONNREFUSED) || strings.Contains(lower, "connection refused") {
		return Refused
	}

	for _, s := range []string{"tls", "x509", "certificate", "handshake"} {
		if strings.Contains(lower, s) {
			return TLS
		}
	}

	for _, s := range []string{" 500 ", " 502 ", " 503 ", " 504 ", "bad gateway", "service unavailable", "gateway timeout", "internal server error"} {
		if strings.Contains(lower+" ", s) {
			return Server
		}
	}
	return Other
}

type advice struct {
	icon     string
	headline string
	intro    string
	bullets  []string
	footer   string
}

func adviceFor(c Category, host string) advice {
	switch c {
	case Timeout:
		return advice{
			icon:     "⏱️ ",
			headline: "Connection timeout",
			intro:    "The HawkCD server took too long to respond. This could mean:",
			bullets:  []string{"Slow network connection", "Server is under heavy load", "A firewall is silently dropping the connection"},
			footer:   "Raise http.timeout (HAWK_HTTP_TIMEOUT) or try again in a few moments.",
		}
	case DNS:
		return advice{
			icon:     "🌐",
			headline: "Cannot resolve server address",
			intro:    fmt.Sprintf("Unable to look up %s. Please check:", host),
			bullets:  []string{"server_url (HAWK_SERVER_URL) is spelled correctly", "Your DNS settings", "VPN connection if the server is internal"},
		}
	case Refused:
		return advice{
			icon:     "🚫",
			headline: "Connection refused",
			intro:    fmt.Sprintf("Nothing is accepting connections at %s. This could mean:", host),
			bullets:  []string{"The HawkCD server is not running", "Wrong port in server_url", "A firewall is rejecting the connection"},
			footer:   "Please try again later or contact your HawkCD administrator.",
		}
	case TLS:
		return advice{
			icon:     "🔒",
			headline: "Secure connection failed",
			intro:    "Cannot establish an HTTPS connection. This could mean:",
			bullets:  []string{"The server certificate is self-signed or expired", "A proxy is intercepting HTTPS", "Your system clock is wrong"},
		}
	case Server:
		return advice{
			icon:     "⚠️ ",
			headline: "Server error",
			intro:    "The HawkCD server encountered an internal error. This is not a problem with your credentials.",
			bullets:  []string{"Check the server logs", "Try again in a few minutes"},
		}
	default:
		return advice{
			icon:     "❌",
			headline: "Cannot reach the HawkCD server",
			intro:    "Please check:",
			bullets:  []string{"Your network connection", fmt.Sprintf("Whether %s is reachable from this machine", host), "Proxy settings (HTTP_PROXY / HTTPS_PROXY)"},
		}
	}
}

// FormatNetworkError prints troubleshooting advice for err to stdout and
// returns err wrapped for the exit status. context describes what the CLI was
// doing ("signing in"); serverURL names the server in the advice.
func FormatNetworkError(err error, context, serverURL string) error {
	if err == nil {
		return nil
	}
	Render(os.Stdout, err, context, serverURL)
	return fmt.Errorf("network error: %w", err)
}

// Render writes the advice for err to w.
func Render(w io.Writer, err error, context, serverURL string) {
	a := adviceFor(Classify(err), ExtractHostFromURL(serverURL))

	fmt.Fprintln(w, fmt.Sprintf("%s %s while %s", a.icon, a.headline, context))
	fmt.Fprintln(w)
	fmt.Fprintln(w, a.intro)
	for _, b := range a.bullets {
		fmt.Fprintln(w, "  • "+b)
	}
	fmt.Fprintln(w)
	if a.footer != "" {
		fmt.Fprintln(w, a.footer)
		fmt.Fprintln(w)
	}
	pterm.Debug.WithWriter(w).Printfln("Technical details: %s", abbreviate(err.Error()))
}

func abbreviate(s string) string {
	if r := []rune(s); len(r) > 100 {
		return string(r[:100]) + "..."
	}
	return s
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
