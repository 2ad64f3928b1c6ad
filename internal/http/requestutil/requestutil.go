// Package requestutil holds request helpers shared by middleware and handlers.
package requestutil

import (
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const maxRequestIDLen = 64

var (
	requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	// newUUID is swapped in tests to exercise the fallback path.
	newUUID  = uuid.NewV7
	fallback atomic.Uint64
)

// SanitizeRequestID keeps a caller-supplied X-Request-ID when it is short and
// made of safe characters, otherwise it mints a new one.
func SanitizeRequestID(incoming string) string {
	incoming = strings.TrimSpace(incoming)
	if incoming != "" && len(incoming) <= maxRequestIDLen && requestIDPattern.MatchString(incoming) {
		return incoming
	}
	return NewRequestID()
}

// NewRequestID returns a time-ordered UUIDv7. If the generator fails it falls
// back to a timestamp plus a process-local sequence number.
func NewRequestID() string {
	if id, err := newUUID(); err == nil {
		return id.String()
	}
	seq := fallback.Add(1)
	return strconv.FormatInt(time.Now().UnixNano(), 36) + "-" + strconv.FormatUint(seq, 36)
}

// ClientIP returns the first X-Forwarded-For hop, then X-Real-IP, then the
// host part of RemoteAddr.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
