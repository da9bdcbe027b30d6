package notify

import "strings"

// FormatPhoneNumber converts a local Indonesian number (08xx...) to the
// 62-prefixed international form the messaging gateway expects. Numbers
// already prefixed with 62, and anything unrecognized, pass through
// unchanged.
func FormatPhoneNumber(phoneNumber string) string {
	if strings.HasPrefix(phoneNumber, "0") {
		return "62" + phoneNumber[1:]
	}
	return phoneNumber
}
