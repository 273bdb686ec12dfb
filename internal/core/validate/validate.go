// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
)

// HTTPURL validates an absolute http or https URL with a host.
func HTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url %q has no host", raw)
	}
	return nil
}

// URLPath validates a path appended to a base URL. Query strings, fragments
// and spaces are rejected.
func URLPath(path string) error {
	if strings.ContainsAny(path, "?# ") {
		return fmt.Errorf("invalid path %q", path)
	}
	return nil
}

// ListenAddr validates a host:port listen address. The host may be empty.
func ListenAddr(addr string) error {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid listen address: %w", err)
	}
	return nil
}

// DirOrMissing validates that a path is a directory or doesn't exist.
func DirOrMissing(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
