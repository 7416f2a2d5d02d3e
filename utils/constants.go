// File: utils/constants.go
package utils

import "time"

// ScheduleCachePrefix is the prefix used for Redis weekly-schedule cache keys.
const ScheduleCachePrefix = "schedule:"

// ScheduleCacheTTL is the time-to-live for weekly-schedule cache entries.
const ScheduleCacheTTL = 15 * time.Minute
