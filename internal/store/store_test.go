package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/decaesar/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "decaesar.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListAnalyses(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	sources := []string{model.SourceKeyboard, model.SourceFile + "a_b.txt", model.SourceFile + "axb.txt"}
	var ids []int64
	for i, src := range sources {
		rec := model.AnalysisRecord{
			CreatedAt:  time.Unix(0, 0).Add(time.Duration(i) * time.Minute),
			Source:     src,
			Length:     10 + i,
			Letters:    8,
			Shift:      i + 1,
			ChiSquared: 1.5,
			Perfect:    i == 0,
			Preview:    "hello",
		}
		id, err := st.InsertAnalysis(ctx, rec)
		if err != nil {
			t.Fatalf("insert analysis: %v", err)
		}
		ids = append(ids, id)
	}

	all, err := st.ListAnalyses(ctx, model.HistoryFilter{})
	if err != nil {
		t.Fatalf("list analyses: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	if all[0].ID != ids[0] || !all[0].Perfect || all[1].Perfect {
		t.Fatalf("unexpected records: %+v", all)
	}
	if !all[2].CreatedAt.Equal(time.Unix(0, 0).Add(2 * time.Minute)) {
		t.Fatalf("unexpected created_at: %v", all[2].CreatedAt)
	}

	last, err := st.ListAnalyses(ctx, model.HistoryFilter{Last: 2})
	if err != nil {
		t.Fatalf("list last: %v", err)
	}
	if len(last) != 2 || last[0].ID != ids[1] || last[1].ID != ids[2] {
		t.Fatalf("expected last two records in order, got %+v", last)
	}

	files, err := st.ListAnalyses(ctx, model.HistoryFilter{Source: model.SourceFile + "a_"})
	if err != nil {
		t.Fatalf("list by source: %v", err)
	}
	if len(files) != 1 || files[0].ID != ids[1] {
		t.Fatalf("expected literal underscore match only, got %+v", files)
	}

	since := time.Unix(0, 0).Add(90 * time.Second)
	recent, err := st.ListAnalyses(ctx, model.HistoryFilter{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != ids[2] {
		t.Fatalf("expected only the newest record, got %+v", recent)
	}
}

func TestShiftCountsAndClear(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	for _, shift := range []int{3, 3, 7} {
		if _, err := st.InsertAnalysis(ctx, model.AnalysisRecord{CreatedAt: time.Now(), Source: model.SourceText, Shift: shift}); err != nil {
			t.Fatalf("insert analysis: %v", err)
		}
	}
	counts, err := st.ShiftCounts(ctx)
	if err != nil {
		t.Fatalf("shift counts: %v", err)
	}
	if counts[3] != 2 || counts[7] != 1 || len(counts) != 2 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	removed, err := st.Clear(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed, got %d", removed)
	}
	all, err := st.ListAnalyses(ctx, model.HistoryFilter{})
	if err != nil {
		t.Fatalf("list analyses: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty history, got %d", len(all))
	}
}
