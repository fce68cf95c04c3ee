// Package decrypt runs the frequency analyzer and records results.
package decrypt

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/verte-zerg/decaesar/internal/freq"
	"github.com/verte-zerg/decaesar/internal/model"
	"github.com/verte-zerg/decaesar/internal/report"
)

const previewWidth = 80

// Recorder persists finished analyses. *store.Store satisfies it.
type Recorder interface {
	InsertAnalysis(ctx context.Context, rec model.AnalysisRecord) (int64, error)
}

// Service decrypts text against a fixed reference table.
type Service struct {
	ref    freq.Distribution
	opts   freq.Options
	rec    Recorder
	now    func() time.Time
	errOut io.Writer
}

// New returns a Service. rec may be nil to disable history.
func New(ref freq.Distribution, opts freq.Options, rec Recorder) (*Service, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		ref:    ref,
		opts:   opts,
		rec:    rec,
		now:    time.Now,
		errOut: os.Stderr,
	}, nil
}

// Reference returns the table the service analyzes against.
func (s *Service) Reference() freq.Distribution {
	return s.ref
}

// Decrypt analyzes text and records the outcome under source. A failed
// history write is reported but does not fail the decryption.
func (s *Service) Decrypt(ctx context.Context, source, text string) (freq.Result, error) {
	res, err := freq.AnalyzeWithOptions(text, s.ref, s.opts)
	if err != nil {
		return freq.Result{}, fmt.Errorf("failed to analyze text: %w", err)
	}
	if s.rec == nil {
		return res, nil
	}
	rec := model.AnalysisRecord{
		CreatedAt:  s.now(),
		Source:     source,
		Length:     len(text),
		Letters:    res.Letters,
		Shift:      res.Shift,
		ChiSquared: res.ChiSquared,
		Perfect:    res.Perfect,
		Preview:    report.Preview(res.Text, previewWidth),
	}
	if _, err := s.rec.InsertAnalysis(ctx, rec); err != nil {
		if _, werr := fmt.Fprintf(s.errOut, "failed to save analysis: %v\n", err); werr != nil {
			// Best-effort logging to stderr.
			_ = werr
		}
	}
	return res, nil
}
