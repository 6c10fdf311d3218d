package utils

import "strings"

// FormatDollars prefixes the amount with a single "$" and keeps the digits
// as given. Separators are the caller's business.
func FormatDollars(amount string) string {
	amount = strings.TrimSpace(amount)
	amount = strings.TrimPrefix(amount, "$")
	return "$" + amount
}
