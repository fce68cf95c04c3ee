package decrypt

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/decaesar/internal/cipher"
	"github.com/verte-zerg/decaesar/internal/freq"
	"github.com/verte-zerg/decaesar/internal/model"
	"github.com/verte-zerg/decaesar/internal/reference"
	"github.com/verte-zerg/decaesar/internal/store"
)

type failingRecorder struct{}

func (failingRecorder) InsertAnalysis(context.Context, model.AnalysisRecord) (int64, error) {
	return 0, errors.New("disk full")
}

func TestDecryptRecordsHistory(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "decaesar.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	svc, err := New(reference.English(), freq.Options{}, st)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	svc.now = func() time.Time { return time.Unix(100, 0) }

	plain := "the quick brown fox jumps over the lazy dog"
	ctx := context.Background()
	res, err := svc.Decrypt(ctx, model.SourceKeyboard, cipher.Encrypt(plain, 5))
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if res.Text != plain {
		t.Fatalf("expected %q, got %q", plain, res.Text)
	}

	records, err := st.ListAnalyses(ctx, model.HistoryFilter{})
	if err != nil {
		t.Fatalf("list analyses: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Source != model.SourceKeyboard || rec.Shift != 5 || rec.Letters != 35 || rec.Length != len(plain) {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Preview != plain {
		t.Fatalf("unexpected preview: %q", rec.Preview)
	}
	if !rec.CreatedAt.Equal(time.Unix(100, 0)) {
		t.Fatalf("unexpected created_at: %v", rec.CreatedAt)
	}
}

func TestDecryptSurvivesRecorderFailure(t *testing.T) {
	svc, err := New(reference.English(), freq.Options{}, failingRecorder{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	var errOut bytes.Buffer
	svc.errOut = &errOut

	if _, err := svc.Decrypt(context.Background(), model.SourceText, "khoor"); err != nil {
		t.Fatalf("expected decryption to succeed, got %v", err)
	}
	if !strings.Contains(errOut.String(), "disk full") {
		t.Fatalf("expected recorder error to be reported, got %q", errOut.String())
	}
}

func TestNewRejectsInvalidReference(t *testing.T) {
	ref := reference.English()
	ref[0] = -1
	if _, err := New(ref, freq.Options{}, nil); !errors.Is(err, freq.ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}
}
