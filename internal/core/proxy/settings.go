package proxy

import "fmt"

// Settings contains the upstream proxy configuration used by browser-driven
// carrier adapters. Immutable after startup.
type Settings struct {
	Enabled  bool
	Hostname string
	Port     int
	Username string
	Password string
}

// HasProxy returns true if a usable proxy is configured.
func (s Settings) HasProxy() bool {
	return s.Enabled && s.Hostname != "" && s.Port > 0
}

// HostPort returns the proxy address without credentials, e.g. "http://proxy.example:12321".
func (s Settings) HostPort() string {
	if !s.HasProxy() {
		return ""
	}
	return fmt.Sprintf("http://%s:%d", s.Hostname, s.Port)
}

// FullURL returns the proxy URL including credentials when present.
func (s Settings) FullURL() string {
	if !s.HasProxy() {
		return ""
	}
	if s.Username != "" && s.Password != "" {
		return fmt.Sprintf("http://%s:%s@%s:%d", s.Username, s.Password, s.Hostname, s.Port)
	}
	return s.HostPort()
}
