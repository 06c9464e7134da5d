package validation

import (
	"time"
)

const dateLayout = "2006-01-02"

// IsValidDate accepts calendar dates in YYYY-MM-DD form, the shape every
// date-bearing field in the store uses.
func IsValidDate(s string) bool {
	if len(s) != len(dateLayout) {
		return false
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// Today returns the current date in store form.
func Today() string {
	return time.Now().Format(dateLayout)
}

// IsValidRating bounds crew feedback ratings.
func IsValidRating(r int) bool {
	return r >= 1 && r <= 5
}

// IsValidTaxRate bounds expense tax rates (percent).
func IsValidTaxRate(r float64) bool {
	return r >= 0 && r <= 100
}
