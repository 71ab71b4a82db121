package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/dmitrymomot/httpkernel/core/event"
	"github.com/dmitrymomot/httpkernel/core/kernel"
)

// AttrClientIP holds the resolved client IP on main requests.
const AttrClientIP = "_client_ip"

// Headers consulted by GetIP, most trusted first.
var clientIPHeaders = []string{"CF-Connecting-IP", "X-Real-IP", "X-Forwarded-For"}

// ClientIP stores the client IP of every main request in AttrClientIP.
func ClientIP() event.Subscriber {
	resolve := func(_ context.Context, evt *kernel.RequestEvent) error {
		if !evt.IsMainRequest() || evt.Request().HTTP() == nil {
			return nil
		}
		evt.Request().SetAttr(AttrClientIP, GetIP(evt.Request().HTTP()))
		return nil
	}
	return subscriber{
		kernel.EventRequest: {event.Bind(resolve, PriorityClientIP)},
	}
}

// GetIP extracts the client IP from proxy headers, falling back to RemoteAddr.
// Only the first address of X-Forwarded-For is used. Invalid addresses are ignored.
func GetIP(r *http.Request) string {
	for _, h := range clientIPHeaders {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		if first, _, found := strings.Cut(v, ","); found {
			v = first
		}
		if ip := net.ParseIP(strings.TrimSpace(v)); ip != nil {
			return ip.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.String()
	}
	return ""
}

// GetClientIP returns the IP stored by ClientIP, or an empty string.
func GetClientIP(req *kernel.Request) string {
	ip, _ := req.Attr(AttrClientIP).(string)
	return ip
}
