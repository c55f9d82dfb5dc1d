package store

import (
	"testing"

	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

func testReport(path string, score int) *quality.QualityReport {
	return &quality.QualityReport{
		ProjectPath:  path,
		ProjectTypes: []string{"react"},
		Score:        score,
		Issues: []quality.Issue{
			{
				Severity: quality.SeverityError,
				Category: quality.CategoryCodeQuality,
				Message:  "Remove console.log",
				File:     "src/App.jsx",
				Line:     10,
				Rule:     "no-console",
			},
		},
		Recommendations: []string{"Remove debug statements before committing"},
		Stats: quality.QualityStats{
			TotalFiles: 12,
			TotalLines: 3400,
		},
		AnalysisType: quality.AnalysisStandard,
	}
}

func TestSaveAndLatestRoundTrip(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	defer db.Close()

	report := testReport("/home/dev/shop", 93)
	if err := db.SaveSnapshot(report); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, err := db.LatestReport("/home/dev/shop")
	if err != nil {
		t.Fatalf("LatestReport: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored report, got nil")
	}
	if got.ProjectPath != report.ProjectPath {
		t.Errorf("ProjectPath = %q, want %q", got.ProjectPath, report.ProjectPath)
	}
	if got.Score != report.Score {
		t.Errorf("Score = %v, want %v", got.Score, report.Score)
	}
	if len(got.ProjectTypes) != 1 || got.ProjectTypes[0] != "react" {
		t.Errorf("ProjectTypes = %v, want [react]", got.ProjectTypes)
	}
	if len(got.Issues) != 1 {
		t.Fatalf("Issues = %d, want 1", len(got.Issues))
	}
	if got.Issues[0] != report.Issues[0] {
		t.Errorf("Issues[0] = %+v, want %+v", got.Issues[0], report.Issues[0])
	}
	if len(got.Recommendations) != 1 || got.Recommendations[0] != report.Recommendations[0] {
		t.Errorf("Recommendations = %v, want %v", got.Recommendations, report.Recommendations)
	}
	if got.Stats.TotalFiles != 12 || got.Stats.TotalLines != 3400 {
		t.Errorf("Stats = %+v, want %+v", got.Stats, report.Stats)
	}
	if got.AnalysisType != quality.AnalysisStandard {
		t.Errorf("AnalysisType = %q, want %q", got.AnalysisType, quality.AnalysisStandard)
	}
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	defer db.Close()

	if err := db.SaveSnapshot(testReport("/home/dev/shop", 70)); err != nil {
		t.Fatalf("first SaveSnapshot: %v", err)
	}
	if err := db.SaveSnapshot(testReport("/home/dev/shop", 85)); err != nil {
		t.Fatalf("second SaveSnapshot: %v", err)
	}

	got, err := db.LatestReport("/home/dev/shop")
	if err != nil {
		t.Fatalf("LatestReport: %v", err)
	}
	if got == nil || got.Score != 85 {
		t.Fatalf("expected latest score 85, got %+v", got)
	}

	snaps, err := db.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(snaps) != 1 {
		t.Errorf("expected a single snapshot per path, got %d", len(snaps))
	}
}

func TestLatestReturnsNilForUnknownPath(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	defer db.Close()

	snap, err := db.LatestSnapshot("/never/analyzed")
	if err != nil {
		t.Fatalf("LatestSnapshot: %v", err)
	}
	if snap != nil {
		t.Errorf("expected nil snapshot, got %+v", snap)
	}

	report, err := db.LatestReport("/never/analyzed")
	if err != nil {
		t.Fatalf("LatestReport: %v", err)
	}
	if report != nil {
		t.Errorf("expected nil report, got %+v", report)
	}
}

func TestSnapshotsAreIsolatedByPath(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	defer db.Close()

	if err := db.SaveSnapshot(testReport("/home/dev/shop", 60)); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if err := db.SaveSnapshot(testReport("/home/dev/blog", 95)); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	shop, err := db.LatestReport("/home/dev/shop")
	if err != nil || shop == nil {
		t.Fatalf("shop report: %v, %v", shop, err)
	}
	blog, err := db.LatestReport("/home/dev/blog")
	if err != nil || blog == nil {
		t.Fatalf("blog report: %v, %v", blog, err)
	}
	if shop.Score != 60 || blog.Score != 95 {
		t.Errorf("scores = %v, %v; want 60, 95", shop.Score, blog.Score)
	}
}

func TestDeleteSnapshot(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	defer db.Close()

	if err := db.SaveSnapshot(testReport("/home/dev/shop", 50)); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if err := db.DeleteSnapshot("/home/dev/shop"); err != nil {
		t.Fatalf("DeleteSnapshot: %v", err)
	}
	snap, err := db.LatestSnapshot("/home/dev/shop")
	if err != nil {
		t.Fatalf("LatestSnapshot: %v", err)
	}
	if snap != nil {
		t.Errorf("expected snapshot removed, got %+v", snap)
	}
}

func TestPathKey(t *testing.T) {
	a := PathKey("/home/dev/shop")
	b := PathKey("/home/dev/shop")
	c := PathKey("/home/dev/blog")

	if a != b {
		t.Errorf("PathKey not stable: %q vs %q", a, b)
	}
	if a == c {
		t.Errorf("distinct paths produced the same key %q", a)
	}
	if len(a) != 16 {
		t.Errorf("key length = %d, want 16", len(a))
	}
	for _, r := range a {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			t.Errorf("key %q contains non-hex character %q", a, r)
		}
	}
}

func TestSaveNilReport(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	defer db.Close()

	if err := db.SaveSnapshot(nil); err == nil {
		t.Error("expected error for nil report")
	}
}
