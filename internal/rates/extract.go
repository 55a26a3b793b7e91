package rates

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Point is one observation in a currency's rate history.
type Point struct {
	Date time.Time
	Rate decimal.Decimal
}

// Series maps a currency code to its chronologically ordered observations.
type Series map[string][]Point

// Snapshot holds the rates in force on a given date. Date is the date of the
// sheet the rates were taken from and is zero when no sheet qualified.
type Snapshot struct {
	Date  time.Time
	Rates map[string]decimal.Decimal
}

// Empty reports whether the snapshot carries no sheet.
func (s Snapshot) Empty() bool {
	return s.Date.IsZero()
}

// ExtractSeries returns, for each requested currency, every (date, rate) pair
// from sheets dated within [from, to]. Every requested currency gets a key,
// even when its series is empty. Currencies missing from a sheet are skipped
// for that date.
func ExtractSeries(doc *Document, from, to time.Time, currencies []string) (Series, error) {
	from, to = Day(from), Day(to)
	if from.After(to) {
		return nil, ErrInvalidRange
	}

	out := make(Series, len(currencies))
	for _, code := range currencies {
		if _, ok := out[code]; !ok {
			out[code] = []Point{}
		}
	}
	if len(out) == 0 || doc.Len() == 0 {
		return out, nil
	}

	start := sort.Search(len(doc.sheets), func(i int) bool {
		return !doc.sheets[i].Date.Before(from)
	})
	for _, s := range doc.sheets[start:] {
		if s.Date.After(to) {
			break
		}
		for code := range out {
			if rate, ok := s.Rates[code]; ok {
				out[code] = append(out[code], Point{Date: s.Date, Rate: rate})
			}
		}
	}

	return out, nil
}

// ExtractSnapshot returns the requested rates from the most recent sheet dated
// on or before date. Rates are published on business days only, so a weekend
// date resolves to the preceding sheet. If date precedes every sheet the
// snapshot is empty.
func ExtractSnapshot(doc *Document, date time.Time, currencies []string) Snapshot {
	out := Snapshot{Rates: map[string]decimal.Decimal{}}
	if doc.Len() == 0 {
		return out
	}

	date = Day(date)
	idx := sort.Search(len(doc.sheets), func(i int) bool {
		return doc.sheets[i].Date.After(date)
	}) - 1
	if idx < 0 {
		return out
	}

	sheet := doc.sheets[idx]
	out.Date = sheet.Date
	for _, code := range currencies {
		if rate, ok := sheet.Rates[code]; ok {
			out.Rates[code] = rate
		}
	}
	return out
}

// DaysBetween returns the number of calendar days from from to to.
func DaysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}

// TickUnit suggests an axis tick interval in days for charting [from, to]:
// one day for ranges under 31 days, otherwise ceil(days/12) so the range
// spans roughly twelve ticks.
func TickUnit(from, to time.Time) (int, error) {
	days := DaysBetween(from, to)
	if days < 0 {
		return 0, ErrInvalidRange
	}
	if days < 31 {
		return 1, nil
	}
	return (days + 11) / 12, nil
}

// DefaultRange returns the range shown when the caller gives no bounds: one
// year back from today, inclusive of today.
func DefaultRange(today time.Time) (from, to time.Time) {
	to = Day(today)
	return to.AddDate(-1, 0, 0), to
}
