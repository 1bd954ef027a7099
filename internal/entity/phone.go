package entity

import (
	"regexp"
	"strings"
)

// PhoneNumber is the canonical +91XXXXXXXXXX form used as the join key
// between chat events and CRM leads. Only NormalizePhone produces values;
// nothing else in the codebase builds one by hand.
type PhoneNumber string

func (p PhoneNumber) String() string {
	return string(p)
}

var (
	nonDigits      = regexp.MustCompile(`\D`)
	canonicalPhone = regexp.MustCompile(`^\+91\d{10}$`)
)

// NormalizePhone turns arbitrary raw phone text into canonical form.
// "9876543210", "+91 98765 43210" and "0919876543210" all normalize to
// "+919876543210". Anything that cannot be a valid Indian number yields
// ok == false so callers can short-circuit before touching the CRM.
func NormalizePhone(raw string) (PhoneNumber, bool) {
	num := strings.TrimSpace(raw)
	if num == "" {
		return "", false
	}

	if strings.HasPrefix(num, "+") {
		num = "+" + nonDigits.ReplaceAllString(num, "")
	} else {
		num = nonDigits.ReplaceAllString(num, "")
		num = strings.TrimLeft(num, "0")
	}

	if strings.HasPrefix(num, "91") && len(num) == 12 {
		num = "+" + num
	} else if len(num) == 10 {
		num = "+91" + num
	}

	if !canonicalPhone.MatchString(num) {
		return "", false
	}
	return PhoneNumber(num), true
}
