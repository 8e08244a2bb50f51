package ratelimit

import (
	"net/http"
	"testing"

	"github.com/jonwraymond/placegate/identity"
)

func TestCallerKey_UserWinsOverIP(t *testing.T) {
	id := &identity.Identity{Principal: "u42", Method: identity.MethodBearer}

	got := CallerKey(id, "203.0.113.7:1234")
	if got != "user-u42" {
		t.Errorf("CallerKey = %q, want user-u42", got)
	}
}

func TestCallerKey_AnonymousFallsBackToIP(t *testing.T) {
	tests := []struct {
		name string
		id   *identity.Identity
	}{
		{"nil identity", nil},
		{"anonymous", identity.Anonymous()},
		{"empty principal", &identity.Identity{Method: identity.MethodBearer}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CallerKey(tt.id, "203.0.113.7:1234")
			if got != "ip-203.0.113.7" {
				t.Errorf("CallerKey = %q, want ip-203.0.113.7", got)
			}
		})
	}
}

func TestNormalizeAddr(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ipv4 with port", "203.0.113.7:8080", "203.0.113.7"},
		{"ipv4 bare", "203.0.113.7", "203.0.113.7"},
		{"ipv6 with port", "[2001:db8:1:2:3:4:5:6]:443", "2001:db8:1:2::/64"},
		{"ipv6 bare", "2001:db8:1:2:3:4:5:6", "2001:db8:1:2::/64"},
		{"ipv4-mapped ipv6", "[::ffff:203.0.113.7]:80", "203.0.113.7"},
		{"empty", "", "unknown"},
		{"garbage keyed verbatim", "not-an-ip", "not-an-ip"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAddr(tt.in); got != tt.want {
				t.Errorf("NormalizeAddr(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeAddr_SameSubnetSharesKey(t *testing.T) {
	// Two addresses in one /64 must map to the same counter key.
	a := NormalizeAddr("2001:db8:1:2::1")
	b := NormalizeAddr("2001:db8:1:2:ffff::9")
	if a != b {
		t.Errorf("same /64 should share a key: %q vs %q", a, b)
	}

	// A different /64 must not.
	c := NormalizeAddr("2001:db8:1:3::1")
	if a == c {
		t.Errorf("different /64 must not share a key: %q", c)
	}
}

func TestClientAddr(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.9:4321"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 198.51.100.1")

	if got := ClientAddr(req, false); got != "198.51.100.9:4321" {
		t.Errorf("untrusted XFF: got %q, want RemoteAddr", got)
	}
	if got := ClientAddr(req, true); got != "203.0.113.7" {
		t.Errorf("trusted XFF: got %q, want first entry", got)
	}

	req.Header.Del("X-Forwarded-For")
	if got := ClientAddr(req, true); got != "198.51.100.9:4321" {
		t.Errorf("trusted but absent XFF: got %q, want RemoteAddr", got)
	}
}
