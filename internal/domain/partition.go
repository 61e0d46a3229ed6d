package domain

import (
	"fmt"
	"time"
)

// PartitionKey addresses the archive's hourly storage layout. It is always
// derived in UTC and never cached across calls.
type PartitionKey struct {
	Year      int // 4-digit year
	DayOfYear int // 1-366
	Hour      int // 0-23
}

// PartitionKeyAt derives the partition key for the given instant.
func PartitionKeyAt(now time.Time) PartitionKey {
	u := now.UTC()
	return PartitionKey{
		Year:      u.Year(),
		DayOfYear: u.YearDay(),
		Hour:      u.Hour(),
	}
}

// Prefix builds the archive listing prefix for a satellite and product,
// e.g. "noaa-goes19/ABI-L2-MCMIPC/2026/242/14/".
func (k PartitionKey) Prefix(satellite, product string) string {
	return fmt.Sprintf("%s/%s/%04d/%03d/%02d/", satellite, product, k.Year, k.DayOfYear, k.Hour)
}
