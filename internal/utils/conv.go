package utils

import (
	"strconv"
)

// StringToUint converts a route parameter to uint, returns 0 if invalid.
// Zero is never a valid record id, so callers treat it as "not found".
func StringToUint(s string) uint {
	i, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(i)
}
