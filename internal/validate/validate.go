package validate

import (
	"regexp"
	"strings"
	"time"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reSKU   = regexp.MustCompile(`^[A-Za-z0-9_-]{1,50}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 255 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 3 || len(s) > 50 {
		return "", false
	}
	return s, true
}

// Name validates a displayable name with the schema's max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// SKU validates a stock-keeping unit identifier.
func SKU(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reSKU.MatchString(s)
}

// Password enforces a length window plus character-class mix. The upper
// bound matches bcrypt's input limit.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 72 {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}

// Date validates a YYYY-MM-DD value.
func Date(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func InventoryStatus(s string) bool {
	return s == "ACTIVE" || s == "INACTIVE"
}

func InventoryType(s string) bool {
	return s == "WAREHOUSE" || s == "STORE" || s == "ONLINE"
}

func ProductStatus(s string) bool {
	return s == "AVAILABLE" || s == "UNAVAILABLE"
}
