// Package ident produces customer identifiers and registration timestamps.
package ident

import (
	"fmt"
	"time"
)

// TimestampLayout second precision, local time
const TimestampLayout = "2006-01-02 15:04:05"

// Clock source of "now"; swapped in tests.
type Clock func() time.Time

// NextCustomerID "CUS" + zero-padded count+1. Pass the table's row count before
// inserting the new row.
func NextCustomerID(count int) string {
	return fmt.Sprintf("CUS%06d", count+1)
}

// CustomerIDs n consecutive ids starting after count.
func CustomerIDs(count, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = NextCustomerID(count + i)
	}
	return ids
}

// NowTimestamp current local time formatted with TimestampLayout.
func NowTimestamp() string {
	return Timestamp(time.Now)
}

// Timestamp formats clock() with TimestampLayout.
func Timestamp(clock Clock) string {
	return clock().Local().Format(TimestampLayout)
}
