// Package format holds display formatting helpers shared by the API
// layer and the client state mirrors.
package format

import (
	"fmt"
	"time"
)

// Price renders a price as a currency string with two decimals,
// e.g. Price(10.999) -> "$11.00".
func Price(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// Date renders a timestamp as a short human-readable date,
// e.g. "Jan 1, 2023".
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
