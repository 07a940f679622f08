package utils

import (
	"net"
	"strings"

	"github.com/charmbracelet/log"
)

// SourceRemoteAddr names the transport peer fallback in a ClientIPResult.
const SourceRemoteAddr = "remote_addr"

// ProxyHeaders lists the headers consulted for the client address, highest
// priority first. CF-Connecting-IP is set by Cloudflare.
var ProxyHeaders = []string{
	"X-Forwarded-For",
	"X-Real-IP",
	"X-Forwarded",
	"X-Cluster-Client-IP",
	"CF-Connecting-IP",
}

// HeaderGetter is a case-insensitive header lookup. http.Header satisfies it.
type HeaderGetter interface {
	Get(key string) string
}

// ClientIPResult holds the resolved address and where it came from.
type ClientIPResult struct {
	IP     string
	Source string
}

// ClientIPResolver picks the apparent client address from proxy headers,
// falling back to the transport peer. Header values are trusted as-is.
type ClientIPResolver struct {
	headers []string
	logger  *log.Logger
}

// NewClientIPResolver returns a resolver using ProxyHeaders. A nil logger
// disables the per-resolution log line.
func NewClientIPResolver(logger *log.Logger) *ClientIPResolver {
	return &ClientIPResolver{
		headers: ProxyHeaders,
		logger:  logger,
	}
}

// Resolve returns the first non-empty proxy header in priority order. For
// comma-separated values only the leftmost element is returned, trimmed.
// Without a matching header peerAddr is returned unchanged, which may be empty.
func (r *ClientIPResolver) Resolve(h HeaderGetter, peerAddr string) ClientIPResult {
	for _, name := range r.headers {
		ip := h.Get(name)
		if ip == "" {
			continue
		}
		if strings.Contains(ip, ",") {
			ip = strings.TrimSpace(strings.Split(ip, ",")[0])
		}
		r.info("Found client IP in header", "header", name, "ip", ip)
		return ClientIPResult{IP: ip, Source: name}
	}

	r.info("Using remote address", "ip", peerAddr)
	return ClientIPResult{IP: peerAddr, Source: SourceRemoteAddr}
}

func (r *ClientIPResolver) info(msg string, keyvals ...interface{}) {
	if r.logger != nil {
		r.logger.Info(msg, keyvals...)
	}
}

// PeerAddress strips the port from an http.Request RemoteAddr. Values that
// carry no port are returned trimmed.
func PeerAddress(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return strings.TrimSpace(remoteAddr)
	}
	return host
}
