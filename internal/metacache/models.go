package metacache

import "time"

// Stats describes aggregated cache contents for the CLI.
type Stats struct {
	DBPath  string
	TTL     time.Duration
	Entries int
	Expired int
	Oldest  time.Time
	Newest  time.Time
}
