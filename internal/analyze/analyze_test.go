package analyze

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/khoj-tools/lostfoundscan/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnalyzeStations(t *testing.T) {
	t.Parallel()

	records := []model.Record{
		{model.FieldPoliceStation: "Andheri"},
		{model.FieldPoliceStation: "Andheri"},
		{model.FieldPoliceStation: "  Bandra  "},
		{model.FieldPoliceStation: ""},
		{},
	}

	s := New(WithLogger(discardLogger())).Analyze(records)

	if s.TotalRecords != 5 {
		t.Errorf("TotalRecords = %d, want 5", s.TotalRecords)
	}
	if got := s.Stations["Andheri"]; got != 2 {
		t.Errorf("Stations[Andheri] = %d, want 2", got)
	}
	if got := s.Stations["Bandra"]; got != 1 {
		t.Errorf("Stations[Bandra] = %d, want 1 (trimmed)", got)
	}
	if len(s.Stations) != 2 {
		t.Errorf("len(Stations) = %d, want 2 (blank stations excluded)", len(s.Stations))
	}
}

func TestAnalyzeDateTime(t *testing.T) {
	t.Parallel()

	// 15 March 2026 is a Sunday.
	records := []model.Record{
		{model.FieldDateTime: "15032026 0915"},
		{model.FieldDateTime: "15032026 2359"},
		{model.FieldDateTime: "not a date"},
		{},
	}

	s := New(WithLogger(discardLogger())).Analyze(records)

	if s.ParsedDates != 2 {
		t.Errorf("ParsedDates = %d, want 2", s.ParsedDates)
	}
	if s.UnparsedDates != 1 {
		t.Errorf("UnparsedDates = %d, want 1", s.UnparsedDates)
	}
	if s.Hours[9] != 1 || s.Hours[23] != 1 {
		t.Errorf("Hours[9] = %d, Hours[23] = %d, want 1 and 1", s.Hours[9], s.Hours[23])
	}
	if got := s.Weekdays[time.Sunday]; got != 2 {
		t.Errorf("Weekdays[Sunday] = %d, want 2", got)
	}
	if got := s.Months[time.March]; got != 2 {
		t.Errorf("Months[March] = %d, want 2", got)
	}
}

func TestAnalyzeAreas(t *testing.T) {
	t.Parallel()

	records := []model.Record{
		{model.FieldPlaceDetails: "Lost near BANDRA railway station"},
		{
			model.FieldPlaceDetails: "Flat 4, Juhu Tara Road, near juhu beach",
			model.FieldArticleDesc:  "Wallet dropped in an auto at Dadar",
		},
		{model.FieldArticleDesc: "Bag left on the Andheri-Versova metro"},
		{model.FieldPlaceDetails: "Somewhere in Pune"},
	}

	s := New(WithLogger(discardLogger())).Analyze(records)

	if got := s.Areas["Bandra"]; got != 1 {
		t.Errorf("Areas[Bandra] = %d, want 1", got)
	}
	if got := s.Areas["Juhu"]; got != 1 {
		t.Errorf("Areas[Juhu] = %d, want 1 (one field, two mentions)", got)
	}
	if got := s.Areas["Dadar"]; got != 1 {
		t.Errorf("Areas[Dadar] = %d, want 1 (from article description)", got)
	}
	// One description names two localities; it counts once for each.
	if got := s.Areas["Andheri"]; got != 1 {
		t.Errorf("Areas[Andheri] = %d, want 1", got)
	}
	if got := s.Areas["Versova"]; got != 1 {
		t.Errorf("Areas[Versova] = %d, want 1", got)
	}
	if _, ok := s.Areas["Worli"]; ok {
		t.Error("unmatched area present in Areas")
	}
}

func TestAnalyzeAreasWordBoundary(t *testing.T) {
	t.Parallel()

	records := []model.Record{
		// "Worli" embedded in a longer word must not match.
		{model.FieldPlaceDetails: "Worlidarshan Apartments"},
		// The address field is not searched for localities.
		{model.FieldAddress: "12 Hill Road, Bandra West"},
	}

	s := New(WithLogger(discardLogger())).Analyze(records)

	if len(s.Areas) != 0 {
		t.Errorf("Areas = %v, want empty", s.Areas)
	}
}

func TestAnalyzeAreasInBothFields(t *testing.T) {
	t.Parallel()

	// A keyword found in both fields of one record counts once per field.
	records := []model.Record{
		{
			model.FieldPlaceDetails: "Lost at Kurla terminus",
			model.FieldArticleDesc:  "Rail pass issued at Kurla",
		},
	}

	s := New(WithLogger(discardLogger())).Analyze(records)

	if got := s.Areas["Kurla"]; got != 2 {
		t.Errorf("Areas[Kurla] = %d, want 2", got)
	}
}

func TestAnalyzeCustomAreas(t *testing.T) {
	t.Parallel()

	records := []model.Record{
		{model.FieldPlaceDetails: "Sector 5, Kharghar"},
	}

	s := New(WithAreas([]string{"Kharghar"}), WithLogger(discardLogger())).Analyze(records)
	if got := s.Areas["Kharghar"]; got != 1 {
		t.Errorf("Areas[Kharghar] = %d, want 1", got)
	}
}

func TestAnalyzePins(t *testing.T) {
	t.Parallel()

	records := []model.Record{
		{model.FieldPinCode: "400058"},
		{model.FieldPinCode: "400001"},
		{model.FieldPinCode: "411014"}, // Pune
		{model.FieldPinCode: "40005"},  // too short
		{model.FieldPinCode: "  "},
		{},
	}

	s := New(WithLogger(discardLogger())).Analyze(records)

	if s.MumbaiPins != 2 {
		t.Errorf("MumbaiPins = %d, want 2", s.MumbaiPins)
	}
	if s.OtherPins != 2 {
		t.Errorf("OtherPins = %d, want 2", s.OtherPins)
	}
	if s.MissingPins != 2 {
		t.Errorf("MissingPins = %d, want 2", s.MissingPins)
	}
}

func TestAnalyzeEmailDomains(t *testing.T) {
	t.Parallel()

	records := []model.Record{
		{model.FieldEmailID: "a@gmail.com"},
		{model.FieldEmailID: "b@GMAIL.com"},
		{model.FieldEmailID: "c@yahoo.co.in"},
		{model.FieldEmailID: "no-at-sign"},
		{},
	}

	s := New(WithLogger(discardLogger())).Analyze(records)

	if got := s.EmailDomains["gmail"]; got != 2 {
		t.Errorf("EmailDomains[gmail] = %d, want 2", got)
	}
	if got := s.EmailDomains["yahoo"]; got != 1 {
		t.Errorf("EmailDomains[yahoo] = %d, want 1", got)
	}
	if len(s.EmailDomains) != 2 {
		t.Errorf("len(EmailDomains) = %d, want 2", len(s.EmailDomains))
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	t.Parallel()

	s := New(WithLogger(discardLogger())).Analyze(nil)
	if s.TotalRecords != 0 {
		t.Errorf("TotalRecords = %d, want 0", s.TotalRecords)
	}
	if len(s.Stations) != 0 || len(s.Areas) != 0 || len(s.EmailDomains) != 0 {
		t.Error("empty input produced non-empty counts")
	}
}

func TestTopCounts(t *testing.T) {
	t.Parallel()

	m := map[string]int{"c": 3, "a": 3, "b": 1, "d": 5}

	got := TopCounts(m, 3)
	want := []Count{{"d", 5}, {"a", 3}, {"c", 3}}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if full := TopCounts(m, 0); len(full) != 4 {
		t.Errorf("TopCounts(m, 0) returned %d entries, want 4", len(full))
	}
}
