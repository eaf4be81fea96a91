package analyze

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/khoj-tools/lostfoundscan/internal/model"
)

// DateTimeLayout is the timestamp format the portal renders in the
// "Date & Time" field: day, month, year, then 24-hour time, with no
// separators inside each part.
const DateTimeLayout = "02012006 1504"

// DefaultAreas are the Mumbai locality keywords used to group records
// by area. Matching is word-bounded and case-insensitive, over the
// place-details and article-description fields.
var DefaultAreas = []string{
	"Andheri",
	"Bandra",
	"Borivali",
	"Chembur",
	"Dadar",
	"Goregaon",
	"Juhu",
	"Kandivali",
	"Kurla",
	"Malad",
	"Powai",
	"Santacruz",
	"Vile Parle",
	"Worli",
	"Colaba",
	"Versova",
	"BKC",
	"Vikhroli",
}

// mumbaiPinPattern matches Mumbai pin codes: six digits starting 400.
var mumbaiPinPattern = regexp.MustCompile(`^400\d{3}$`)

// emailDomainPattern captures the provider part of an e-mail address,
// up to the first dot of the domain ("gmail" from "x@gmail.com").
var emailDomainPattern = regexp.MustCompile(`@([^.\s]+)`)

// Summary holds the aggregate statistics of one record set.
type Summary struct {
	// TotalRecords is the number of records analyzed.
	TotalRecords int

	// Stations counts records per police station.
	Stations map[string]int

	// Hours counts records per hour of day (0-23), from the parsed
	// date-time field.
	Hours [24]int

	// Weekdays counts records per day of week.
	Weekdays map[time.Weekday]int

	// Months counts records per calendar month.
	Months map[time.Month]int

	// ParsedDates and UnparsedDates split the records with a date-time
	// field by whether it matched DateTimeLayout.
	ParsedDates   int
	UnparsedDates int

	// Areas counts locality keyword mentions in the place-details and
	// article-description fields. A keyword appearing in both fields of
	// one record counts once per field.
	Areas map[string]int

	// MumbaiPins, OtherPins, and MissingPins partition the records by
	// pin code: a Mumbai 400xxx code, some other value, or no pin
	// field at all.
	MumbaiPins  int
	OtherPins   int
	MissingPins int

	// EmailDomains counts records per e-mail provider.
	EmailDomains map[string]int
}

// Analyzer computes summaries over record sets.
type Analyzer struct {
	areas        []string
	areaPatterns []*regexp.Regexp
	logger       *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithAreas replaces the locality keywords used for area grouping.
func WithAreas(areas []string) Option {
	return func(a *Analyzer) {
		if len(areas) > 0 {
			a.areas = areas
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Analyzer with the default Mumbai locality keywords.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		areas:  DefaultAreas,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.areaPatterns = make([]*regexp.Regexp, len(a.areas))
	for i, area := range a.areas {
		a.areaPatterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(area) + `\b`)
	}
	return a
}

// Analyze computes the summary of the given records. Records missing a
// field simply don't contribute to that field's statistics; nothing is
// skipped wholesale.
func (a *Analyzer) Analyze(records []model.Record) Summary {
	s := Summary{
		TotalRecords: len(records),
		Stations:     make(map[string]int),
		Weekdays:     make(map[time.Weekday]int),
		Months:       make(map[time.Month]int),
		Areas:        make(map[string]int),
		EmailDomains: make(map[string]int),
	}

	for _, rec := range records {
		if station := strings.TrimSpace(rec[model.FieldPoliceStation]); station != "" {
			s.Stations[station]++
		}

		a.analyzeDateTime(rec, &s)
		a.analyzeArea(rec, &s)
		analyzePin(rec, &s)
		analyzeEmail(rec, &s)
	}

	a.logger.Debug("analysis complete",
		"records", s.TotalRecords,
		"stations", len(s.Stations),
		"unparsed_dates", s.UnparsedDates,
	)
	return s
}

func (a *Analyzer) analyzeDateTime(rec model.Record, s *Summary) {
	raw, ok := rec[model.FieldDateTime]
	if !ok {
		return
	}

	t, err := time.Parse(DateTimeLayout, strings.TrimSpace(raw))
	if err != nil {
		s.UnparsedDates++
		a.logger.Debug("unparseable date-time", "value", raw)
		return
	}

	s.ParsedDates++
	s.Hours[t.Hour()]++
	s.Weekdays[t.Weekday()]++
	s.Months[t.Month()]++
}

func (a *Analyzer) analyzeArea(rec model.Record, s *Summary) {
	for _, field := range []string{model.FieldPlaceDetails, model.FieldArticleDesc} {
		text, ok := rec[field]
		if !ok || text == "" {
			continue
		}
		for i, pattern := range a.areaPatterns {
			if pattern.MatchString(text) {
				s.Areas[a.areas[i]]++
			}
		}
	}
}

func analyzePin(rec model.Record, s *Summary) {
	pin, ok := rec[model.FieldPinCode]
	if !ok || strings.TrimSpace(pin) == "" {
		s.MissingPins++
		return
	}
	if mumbaiPinPattern.MatchString(strings.TrimSpace(pin)) {
		s.MumbaiPins++
	} else {
		s.OtherPins++
	}
}

func analyzeEmail(rec model.Record, s *Summary) {
	email, ok := rec[model.FieldEmailID]
	if !ok {
		return
	}
	m := emailDomainPattern.FindStringSubmatch(email)
	if m == nil {
		return
	}
	s.EmailDomains[strings.ToLower(m[1])]++
}

// Count is one name with its record count, used for ranked output.
type Count struct {
	Name  string
	Count int
}

// TopCounts ranks a count map by descending count, ties broken by
// name, truncated to n entries. n <= 0 returns the full ranking.
func TopCounts(m map[string]int, n int) []Count {
	counts := make([]Count, 0, len(m))
	for name, c := range m {
		counts = append(counts, Count{Name: name, Count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
