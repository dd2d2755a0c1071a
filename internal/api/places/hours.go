package places

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultHours is used when the directory has no line for today.
const DefaultHours = "10:00 AM - 6:00 PM"

var (
	dashReplacer = strings.NewReplacer(
		"‐", "-", "‑", "-", "‒", "-", "–", "-",
		"—", "-", "―", "-", "−", "-", "﹘", "-",
		"﹣", "-", "－", "-",
	)
	spaceRe     = regexp.MustCompile(`\s+`)
	dashSpaceRe = regexp.MustCompile(`\s*-\s*`)
	meridiemRe  = regexp.MustCompile(`(\d)\s*([AaPp])\.?\s*[Mm]\.?\b`)
	openingRe   = regexp.MustCompile(`^(\d{1,2}(?::\d{2})?) - `)
	clockRe     = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?(?: (AM|PM))?$`)
)

func asciiTransformer() transform.Transformer {
	return transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if r > unicode.MaxASCII {
				return -1
			}
			return r
		}),
	)
}

// CleanHours normalizes one working-hours string to the form "9:00 AM - 5:00 PM".
func CleanHours(s string) string {
	s = dashReplacer.Replace(s)
	if out, _, err := transform.String(asciiTransformer(), s); err == nil {
		s = out
	}
	s = strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
	s = dashSpaceRe.ReplaceAllString(s, " - ")
	s = meridiemRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := meridiemRe.FindStringSubmatch(m)
		return sub[1] + " " + strings.ToUpper(sub[2]) + "M"
	})

	intervals := strings.Split(s, ",")
	for i, iv := range intervals {
		iv = strings.TrimSpace(iv)
		intervals[i] = openingRe.ReplaceAllString(iv, "$1 AM - ")
	}
	return strings.Join(intervals, ", ")
}

// TodayHours picks the cleaned line for the given weekday out of a
// "Monday: 9:00 AM - 5:00 PM" style list. ok is false when the day is missing.
func TodayHours(weekdayText []string, day time.Weekday) (string, bool) {
	want := day.String()
	for _, line := range weekdayText {
		name, hours, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), want) {
			return CleanHours(hours), true
		}
	}
	return DefaultHours, false
}

// ParseHours turns a cleaned hours string into a daily window.
// Multiple intervals collapse to first opening through last closing.
// A closing time before the opening time is read as past midnight and clamped to 23:59.
func ParseHours(s string) (types.TimeWindow, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return types.TimeWindow{}, fmt.Errorf("empty hours")
	case "open 24 hours":
		return types.TimeWindow{Start: 0, End: types.EndOfDay}, nil
	case "closed":
		return types.TimeWindow{}, fmt.Errorf("closed today")
	}

	intervals := strings.Split(s, ",")
	first := strings.TrimSpace(intervals[0])
	last := strings.TrimSpace(intervals[len(intervals)-1])

	openText, _, ok := strings.Cut(first, " - ")
	if !ok {
		return types.TimeWindow{}, fmt.Errorf("no interval in %q", s)
	}
	_, closeText, ok := strings.Cut(last, " - ")
	if !ok {
		return types.TimeWindow{}, fmt.Errorf("no interval in %q", s)
	}

	start, err := parseMeridiemClock(openText)
	if err != nil {
		return types.TimeWindow{}, err
	}
	end, err := parseMeridiemClock(closeText)
	if err != nil {
		return types.TimeWindow{}, err
	}
	if end < start {
		end = types.EndOfDay
	}
	return types.TimeWindow{Start: start, End: end}, nil
}

func parseMeridiemClock(s string) (types.Clock, error) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("unrecognized time %q", s)
	}
	h, _ := strconv.Atoi(m[1])
	min := 0
	if m[2] != "" {
		min, _ = strconv.Atoi(m[2])
	}
	if min > 59 {
		return 0, fmt.Errorf("unrecognized time %q", s)
	}
	switch m[3] {
	case "AM":
		if h < 1 || h > 12 {
			return 0, fmt.Errorf("unrecognized time %q", s)
		}
		if h == 12 {
			h = 0
		}
	case "PM":
		if h < 1 || h > 12 {
			return 0, fmt.Errorf("unrecognized time %q", s)
		}
		if h != 12 {
			h += 12
		}
	default:
		if h > 23 {
			return 0, fmt.Errorf("unrecognized time %q", s)
		}
	}
	return types.Clock(h*60 + min), nil
}
