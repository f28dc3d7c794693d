package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	naturaldate "github.com/tj/go-naturaldate"
)

// resolveYear accepts "", a four-digit year or a phrase such as "last year".
// Phrases are resolved against now, looking backwards.
func resolveYear(s string, now time.Time) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || currentYearPhrases[strings.ToLower(s)] {
		return now.Year(), nil
	}
	if y, err := strconv.Atoi(s); err == nil {
		if y < 1 || y > 9999 {
			return 0, fmt.Errorf("year %d out of range", y)
		}
		return y, nil
	}

	t, err := naturaldate.Parse(s, now, naturaldate.WithDirection(naturaldate.Past))
	if err != nil {
		return 0, fmt.Errorf("parsing year %q: %w", s, err)
	}
	// Parse hands back now for text it does not understand.
	if t.Equal(now) {
		return 0, fmt.Errorf("parsing year %q: not a year or date phrase", s)
	}
	return t.Year(), nil
}

var currentYearPhrases = map[string]bool{
	"this year": true,
	"now":       true,
	"today":     true,
}
