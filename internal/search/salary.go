package search

import (
	"regexp"
	"strconv"
	"strings"
)

// Salary bucket labels, coarse by design: filtering compares labels, not
// parsed numeric ranges.
const (
	BucketUnder50k  = "0-50k"
	Bucket50kTo100k = "50k-100k"
	Bucket100kTo150 = "100k-150k"
	BucketOver150k  = "150k+"
)

var salaryNumber = regexp.MustCompile(`(\d[\d,.]*)\s*([kK])?`)

// SalaryBucket classifies a salary display string ("$70,000 - $90,000",
// "85k", "50k-100k") into a bucket label by the midpoint of the figures it
// finds. Strings with no usable figure produce "", which never matches an
// active salary filter.
func SalaryBucket(salary string) string {
	s := strings.TrimSpace(salary)
	if s == "" {
		return ""
	}

	var figures []float64
	for _, m := range salaryNumber.FindAllStringSubmatch(s, -1) {
		raw := strings.ReplaceAll(m[1], ",", "")
		v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "."), 64)
		if err != nil {
			continue
		}
		if m[2] != "" {
			v *= 1000
		}
		// Hourly rates and stray small figures carry no bucket signal.
		if v < 1000 {
			continue
		}
		figures = append(figures, v)
	}
	if len(figures) == 0 {
		return ""
	}

	mid := figures[0]
	if len(figures) > 1 {
		mid = (figures[0] + figures[len(figures)-1]) / 2
	}

	switch {
	case mid < 50_000:
		return BucketUnder50k
	case mid < 100_000:
		return Bucket50kTo100k
	case mid < 150_000:
		return Bucket100kTo150
	default:
		return BucketOver150k
	}
}
