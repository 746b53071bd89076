package group

import (
	"sort"
	"strings"
	"time"
)

func ParsePeriod(value string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(value))) {
	case "", PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	default:
		return "", ErrInvalidPeriod
	}
}

func windowStart(period Period, now time.Time) (time.Time, error) {
	switch period {
	case PeriodWeek:
		return now.AddDate(0, 0, -7), nil
	case PeriodMonth:
		return now.AddDate(0, -1, 0), nil
	default:
		return time.Time{}, ErrInvalidPeriod
	}
}

// pickContributors returns the highest and lowest completed counts. Ties go to
// the lowest user id so repeated calls agree.
func pickContributors(contributors []Contribution) (*Contribution, *Contribution) {
	if len(contributors) == 0 {
		return nil, nil
	}

	ordered := make([]Contribution, len(contributors))
	copy(ordered, contributors)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].UserID < ordered[j].UserID })

	top := ordered[0]
	least := ordered[0]
	for _, c := range ordered[1:] {
		if c.Completed > top.Completed {
			top = c
		}
		if c.Completed < least.Completed {
			least = c
		}
	}
	return &top, &least
}
