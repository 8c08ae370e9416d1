package visa

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// defPort is the conventional SCPI raw-socket port.
const defPort = 5025

// ResourceError indicates a malformed or unsupported resource string.
type ResourceError struct {
	Name   string
	Reason string
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("invalid resource %q: %s", e.Name, e.Reason)
}

// ParseResource converts a VISA-style resource string into a TCP dial
// address. Accepted forms:
//
//	TCPIP[board]::host[::port]::SOCKET
//	host:port
//
// The port defaults to 5025 when omitted. Other VISA resource classes
// (GPIB, ASRL, USB) are rejected.
func ParseResource(name string) (string, error) {
	if !strings.Contains(name, "::") {
		host, port, err := net.SplitHostPort(name)
		if err != nil || host == "" {
			return "", &ResourceError{name, "expected TCPIP resource or host:port address"}
		}
		if _, err := strconv.Atoi(port); err != nil {
			return "", &ResourceError{name, "port is not numeric"}
		}

		return net.JoinHostPort(host, port), nil
	}

	parts := strings.Split(name, "::")
	if !strings.HasPrefix(strings.ToUpper(parts[0]), "TCPIP") {
		return "", &ResourceError{name, "only the TCPIP resource class is supported"}
	}
	if strings.ToUpper(parts[len(parts)-1]) != "SOCKET" {
		return "", &ResourceError{name, "only SOCKET resources are supported"}
	}

	var host string
	port := defPort
	switch len(parts) {
	case 3: // TCPIP::host::SOCKET
		host = parts[1]
	case 4: // TCPIP::host::port::SOCKET
		host = parts[1]
		p, err := strconv.Atoi(parts[2])
		if err != nil || p < 1 || p > 65535 {
			return "", &ResourceError{name, "port is out of range [1, 65535]"}
		}
		port = p
	default:
		return "", &ResourceError{name, "expected TCPIP[board]::host[::port]::SOCKET"}
	}

	if host == "" {
		return "", &ResourceError{name, "host is empty"}
	}

	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}
