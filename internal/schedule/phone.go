package schedule

import "strings"

// DefaultCallingCode is prepended to proxy numbers stored without a country
// code. It assumes Singapore numbers.
// TODO: make the calling code a per-user setting before shipping outside SG.
const DefaultCallingCode = "+65 "

// FormatProxyPhone prefixes DefaultCallingCode unless phone already starts
// with "+". Blank input is returned unchanged.
func FormatProxyPhone(phone string) string {
	if strings.TrimSpace(phone) == "" {
		return phone
	}
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	return DefaultCallingCode + phone
}
