package database

import (
	"context"
	"testing"
	"time"

	"github.com/khoj-tools/lostfoundscan/internal/model"
)

func openTestDB(t *testing.T) *RecordDB {
	t.Helper()

	rdb, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := rdb.Close(); err != nil {
			t.Errorf("Close returned error: %v", err)
		}
	})
	return rdb
}

func testRecords() []model.Record {
	return []model.Record{
		{
			model.FieldPoliceStation: "Andheri",
			model.FieldFullName:      "R. Mehta",
			model.FieldPinCode:       "400058",
			model.FieldArticleDesc:   "",
		},
		{
			model.FieldPoliceStation: "Bandra",
			model.FieldEmailID:       "someone@example.com",
		},
	}
}

func TestOpenRequiresExistingDatabase(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := DefaultOptions()
	opts.CreateIfNotExists = false

	if _, err := Open(dir, opts); err == nil {
		t.Error("Open succeeded on missing database with CreateIfNotExists=false")
	}
}

func TestSaveRunRoundTrip(t *testing.T) {
	t.Parallel()

	rdb := openTestDB(t)
	ctx := context.Background()

	params := model.SearchParams{
		ComplaintType: model.ComplaintTypeFound,
		ArticleType:   model.ArticlePANCard,
		ArticleDesc:   "pan",
		Page:          1,
	}

	runID, err := rdb.SaveRun(ctx, params, "ordered", testRecords())
	if err != nil {
		t.Fatalf("SaveRun returned error: %v", err)
	}
	if runID == 0 {
		t.Fatal("SaveRun returned zero run ID")
	}

	run, err := rdb.GetRun(ctx, runID)
	if err != nil {
		t.Fatalf("GetRun returned error: %v", err)
	}
	if run == nil {
		t.Fatal("GetRun returned nil for saved run")
	}
	if run.ComplaintType != model.ComplaintTypeFound {
		t.Errorf("ComplaintType = %v, want found", run.ComplaintType)
	}
	if run.ArticleType != model.ArticlePANCard {
		t.Errorf("ArticleType = %v, want PAN Card", run.ArticleType)
	}
	if run.ArticleDesc != "pan" {
		t.Errorf("ArticleDesc = %q, want %q", run.ArticleDesc, "pan")
	}
	if run.Scheduler != "ordered" {
		t.Errorf("Scheduler = %q, want %q", run.Scheduler, "ordered")
	}
	if run.TotalRecords != 2 {
		t.Errorf("TotalRecords = %d, want 2", run.TotalRecords)
	}

	records, err := rdb.Records(ctx, runID)
	if err != nil {
		t.Fatalf("Records returned error: %v", err)
	}
	want := testRecords()
	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d", len(records), len(want))
	}
	for i := range want {
		if !records[i].Equal(want[i]) {
			t.Errorf("records[%d] = %v, want %v", i, records[i], want[i])
		}
	}
}

func TestRecordsPreserveMissingFields(t *testing.T) {
	t.Parallel()

	rdb := openTestDB(t)
	ctx := context.Background()

	in := model.Record{
		model.FieldFullName:    "X",
		model.FieldArticleDesc: "", // present but blank
	}

	runID, err := rdb.SaveRun(ctx, model.NewSearchParams(), "pool", []model.Record{in})
	if err != nil {
		t.Fatalf("SaveRun returned error: %v", err)
	}

	records, err := rdb.Records(ctx, runID)
	if err != nil {
		t.Fatalf("Records returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	got := records[0]
	if v, ok := got[model.FieldArticleDesc]; !ok || v != "" {
		t.Errorf("blank field = (%q, %v), want empty string present", v, ok)
	}
	if _, ok := got[model.FieldPinCode]; ok {
		t.Error("absent field came back as present")
	}
	if len(got) != 2 {
		t.Errorf("record has %d fields, want 2", len(got))
	}
}

func TestLatestRunAndListRuns(t *testing.T) {
	t.Parallel()

	rdb := openTestDB(t)
	ctx := context.Background()

	if run, err := rdb.LatestRun(ctx); err != nil || run != nil {
		t.Fatalf("LatestRun on empty db = (%v, %v), want (nil, nil)", run, err)
	}

	first, err := rdb.SaveRun(ctx, model.NewSearchParams(), "ordered", nil)
	if err != nil {
		t.Fatalf("SaveRun returned error: %v", err)
	}
	second, err := rdb.SaveRun(ctx, model.NewSearchParams().WithPage(1), "pool", testRecords())
	if err != nil {
		t.Fatalf("SaveRun returned error: %v", err)
	}

	latest, err := rdb.LatestRun(ctx)
	if err != nil {
		t.Fatalf("LatestRun returned error: %v", err)
	}
	if latest == nil || latest.ID != second {
		t.Errorf("LatestRun ID = %v, want %d", latest, second)
	}

	runs, err := rdb.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("runs ordered %d, %d; want most recent first (%d, %d)", runs[0].ID, runs[1].ID, second, first)
	}
	if runs[0].Timestamp.IsZero() {
		t.Error("run timestamp is zero")
	}
}

func TestGetRunMissing(t *testing.T) {
	t.Parallel()

	rdb := openTestDB(t)

	run, err := rdb.GetRun(context.Background(), 9999)
	if err != nil {
		t.Fatalf("GetRun returned error: %v", err)
	}
	if run != nil {
		t.Errorf("GetRun = %v, want nil for missing run", run)
	}
}

func TestDeleteRun(t *testing.T) {
	t.Parallel()

	rdb := openTestDB(t)
	ctx := context.Background()

	runID, err := rdb.SaveRun(ctx, model.NewSearchParams(), "ordered", testRecords())
	if err != nil {
		t.Fatalf("SaveRun returned error: %v", err)
	}

	if err := rdb.DeleteRun(ctx, runID); err != nil {
		t.Fatalf("DeleteRun returned error: %v", err)
	}

	run, err := rdb.GetRun(ctx, runID)
	if err != nil {
		t.Fatalf("GetRun returned error: %v", err)
	}
	if run != nil {
		t.Error("run still present after DeleteRun")
	}

	records, err := rdb.Records(ctx, runID)
	if err != nil {
		t.Fatalf("Records returned error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records after DeleteRun, want 0", len(records))
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		zero  bool
	}{
		{name: "sqlite default", input: "2026-08-24 10:30:00"},
		{name: "iso with Z", input: "2026-08-24T10:30:00Z"},
		{name: "rfc3339", input: time.Now().UTC().Format(time.RFC3339)},
		{name: "garbage", input: "not a time", zero: true},
		{name: "empty", input: "", zero: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parseTimestamp(tt.input)
			if got.IsZero() != tt.zero {
				t.Errorf("parseTimestamp(%q).IsZero() = %v, want %v", tt.input, got.IsZero(), tt.zero)
			}
		})
	}
}
