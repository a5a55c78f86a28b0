package search

import (
	"strconv"
	"strings"
)

// CaloriesValue extracts a numeric calories value from a nutrients
// display string such as "450 kcal": the leading decimal token is parsed
// and the unit suffix discarded. ok is false when the string carries no
// leading number (absent entry, "none", ...); such records never satisfy
// a calories predicate, matching the NULL comparison semantics of the
// store's derived column.
func CaloriesValue(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)

	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		i = j
	}

	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// DeriveCalories is CaloriesValue with the underivable case collapsed
// to 0, the value the response layer reports for such records.
func DeriveCalories(raw string) float64 {
	v, _ := CaloriesValue(raw)
	return v
}
