package ratelimit

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/jonwraymond/placegate/identity"
)

// ipv6PrefixBits is the prefix length IPv6 client addresses are
// truncated to. A /64 is the smallest allocation end users normally
// get, so counting per full address would let one device rotate
// through a whole subnet of fresh quotas.
const ipv6PrefixBits = 64

// CallerKey derives the counter partition key for a caller.
// An authenticated identity always wins over the client address, so a
// user keeps one quota across IP changes.
func CallerKey(id *identity.Identity, remoteAddr string) string {
	if !id.IsAnonymous() {
		return "user-" + id.Principal
	}
	return "ip-" + NormalizeAddr(remoteAddr)
}

// NormalizeAddr canonicalizes a client address for keying: the port is
// dropped, IPv4 stays as-is, and IPv6 is truncated to its /64 prefix.
// Unparseable input is keyed verbatim rather than being collapsed into
// one shared bucket.
func NormalizeAddr(remoteAddr string) string {
	addrStr := strings.TrimSpace(remoteAddr)
	if host, _, err := net.SplitHostPort(addrStr); err == nil {
		addrStr = host
	}

	addr, err := netip.ParseAddr(addrStr)
	if err != nil {
		if addrStr == "" {
			return "unknown"
		}
		return addrStr
	}
	addr = addr.Unmap()

	if addr.Is4() {
		return addr.String()
	}
	prefix, err := addr.Prefix(ipv6PrefixBits)
	if err != nil {
		return addr.String()
	}
	return prefix.String()
}

// ClientAddr extracts the client address from a request. When trustXFF
// is set, the first entry of X-Forwarded-For (the original client
// behind a trusted proxy chain) wins over RemoteAddr.
func ClientAddr(r *http.Request, trustXFF bool) string {
	if trustXFF {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
	}
	return r.RemoteAddr
}
