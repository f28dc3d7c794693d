package heatmap

import (
	"time"
)

// DateLayout is the wire format of Day.Date.
const DateLayout = "2006-01-02"

// MaxLevel is the highest intensity bucket a source may report.
const MaxLevel = 4

var monthAbbr = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Day is one calendar day's activity as reported by the contribution source.
type Day struct {
	Date  string `json:"date" jsonschema:"pattern=^\\d{4}-\\d{2}-\\d{2}$"`
	Count int    `json:"count" jsonschema:"minimum=0"`
	Level int    `json:"level" jsonschema:"minimum=0,maximum=4"`
}

// Week holds the days of one grid column, Sunday first.
type Week [7]Day

// MonthLabel anchors a month name to the first week its in-year days appear in.
type MonthLabel struct {
	Text      string `json:"text"`
	WeekIndex int    `json:"weekIndex"`
}

// Calendar is the render-ready result of Aggregate.
type Calendar struct {
	Year   int          `json:"year"`
	Weeks  []Week       `json:"weeks"`
	Months []MonthLabel `json:"months"`
	Total  int          `json:"total"`
}

// Aggregate buckets days into Sunday-aligned weeks covering year, derives
// month label anchors and totals the counts. reported may carry an
// authoritative total per year that replaces the summed one.
func Aggregate(days []Day, year int, reported map[int]int) Calendar {
	byDate := make(map[string]Day, len(days))
	total := 0
	for _, d := range days {
		total += d.Count
		byDate[d.Date] = d
	}
	if v, ok := reported[year]; ok {
		total = v
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	firstSunday := yearStart.AddDate(0, 0, -int(yearStart.Weekday()))

	cal := Calendar{Year: year, Total: total}
	lastMonth := time.Month(0)

	for current := firstSunday; !current.After(yearEnd); {
		var week Week
		firstInYear := -1

		for i := range week {
			key := current.Format(DateLayout)
			day := Day{Date: key}
			if current.Year() == year {
				if d, ok := byDate[key]; ok {
					day = d
				}
				if firstInYear < 0 {
					firstInYear = i
				}
			}
			week[i] = day
			current = current.AddDate(0, 0, 1)
		}

		if firstInYear < 0 {
			continue
		}

		index := len(cal.Weeks)
		cal.Weeks = append(cal.Weeks, week)

		month := monthOf(week[firstInYear].Date)
		if month != lastMonth {
			cal.Months = append(cal.Months, MonthLabel{Text: monthAbbr[month-1], WeekIndex: index})
			lastMonth = month
		}
	}

	return cal
}

// Cell returns the day at the given week and weekday (0 = Sunday).
func (c Calendar) Cell(week, weekday int) (Day, bool) {
	if week < 0 || week >= len(c.Weeks) || weekday < 0 || weekday > 6 {
		return Day{}, false
	}
	return c.Weeks[week][weekday], true
}

// InYear reports whether d falls inside the calendar's year, i.e. is not a
// padding placeholder.
func (c Calendar) InYear(d Day) bool {
	t, err := ParseDate(d.Date)
	if err != nil {
		return false
	}
	return t.Year() == c.Year
}

// ParseDate parses a YYYY-MM-DD string as a midnight UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// MonthAbbr returns the three-letter label for m.
func MonthAbbr(m time.Month) string {
	return monthAbbr[m-1]
}

func monthOf(date string) time.Month {
	// Dates inside a Week are always produced by Aggregate.
	t, _ := ParseDate(date)
	return t.Month()
}
