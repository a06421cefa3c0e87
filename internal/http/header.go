package http

import (
	"net/http"
	"strings"

	"github.com/mileusna/useragent"
)

const (
	headerRequestID   = "x-request-id"
	headerContentType = "content-type"
	headerSourceName  = "x-source-name"

	clientUnknown = "unknown"
)

func requestID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerRequestID))
}

func setRequestID(r *http.Request, requestID string) {
	r.Header.Set(headerRequestID, requestID)
}

func sourceName(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerSourceName))
}

// clientFamily reduces the User-Agent to its family (curl, Chrome, ...) so it can be a metric label.
func clientFamily(r *http.Request) string {
	ua := strings.TrimSpace(r.UserAgent())
	if ua == "" {
		return clientUnknown
	}
	if parsed := useragent.Parse(ua); parsed.Name != "" {
		return parsed.Name
	}
	return clientUnknown
}
