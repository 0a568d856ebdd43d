package ratelimiter

import "time"

type Limiter interface {
	// Allow counts one request for key and, when refused, reports how long
	// until the key's window resets.
	Allow(key string) (bool, time.Duration)
}

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

// Set groups the limiters applied to each route family.
type Set struct {
	General Limiter
	Auth    Limiter
	Admin   Limiter
}
