package search

import "strings"

type SalaryRange string

const (
	SalaryAny        SalaryRange = "any"
	SalarySpecified  SalaryRange = "specified"
	Salary0To1000    SalaryRange = "0-1000"
	Salary1000To2000 SalaryRange = "1000-2000"
	Salary2000To5000 SalaryRange = "2000-5000"
	Salary5000Plus   SalaryRange = "5000+"
)

var SalaryRanges = []SalaryRange{
	SalaryAny,
	SalarySpecified,
	Salary0To1000,
	Salary1000To2000,
	Salary2000To5000,
	Salary5000Plus,
}

// ParseSalaryRange falls back to SalaryAny for unknown input.
func ParseSalaryRange(raw string) SalaryRange {
	v := SalaryRange(strings.ToLower(strings.TrimSpace(raw)))
	for _, r := range SalaryRanges {
		if v == r {
			return r
		}
	}
	return SalaryAny
}

// ResolveSalary picks the value used for bucketing: min when present,
// otherwise max. A malformed range such as min=6000,max=100 still resolves to min.
func ResolveSalary(min, max *float64) (float64, bool) {
	if min != nil {
		return *min, true
	}
	if max != nil {
		return *max, true
	}
	return 0, false
}

func (r SalaryRange) Matches(min, max *float64) bool {
	switch r {
	case SalaryAny, "":
		return true
	case SalarySpecified:
		return min != nil || max != nil
	}

	v, ok := ResolveSalary(min, max)
	if !ok {
		return false
	}

	switch r {
	case Salary0To1000:
		return v >= 0 && v <= 1000
	case Salary1000To2000:
		return v >= 1000 && v <= 2000
	case Salary2000To5000:
		return v >= 2000 && v <= 5000
	case Salary5000Plus:
		return v >= 5000
	default:
		return true
	}
}
