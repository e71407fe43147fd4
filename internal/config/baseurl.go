package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// androidHostLoopback is how the Android emulator reaches the host machine.
const androidHostLoopback = "10.0.2.2"

// ResolveBaseURL trims trailing slashes and, on Android, rewrites a
// localhost or 127.0.0.1 host to 10.0.2.2 keeping scheme, port and path.
func ResolveBaseURL(raw string, platform Platform) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty base URL")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base URL %q must be absolute", raw)
	}
	if platform == PlatformAndroid {
		host := u.Hostname()
		if host == "localhost" || host == "127.0.0.1" {
			if port := u.Port(); port != "" {
				u.Host = net.JoinHostPort(androidHostLoopback, port)
			} else {
				u.Host = androidHostLoopback
			}
		}
	}
	return strings.TrimRight(u.String(), "/"), nil
}
