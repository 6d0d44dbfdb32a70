package utils

import (
	"strconv"
)

// ParseID converts a route parameter to a numeric id, 0 if invalid.
func ParseID(s string) uint {
	i, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint(i)
}
