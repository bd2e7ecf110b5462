package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that the address domain actually resolves,
// via MX first and A/AAAA as fallback. Format validation happens at
// the binding layer; this only filters out throwaway domains.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := strings.ToLower(email[at+1:])

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
