package compactors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"outlog/internal/models"
	"outlog/internal/shared/loggers"
	"outlog/internal/shared/metrics"
	"outlog/internal/shared/svcerrors"
	"outlog/internal/shared/ulid"
	"outlog/internal/stores"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultGlob      = "*.log"
	DefaultOutputDir = "concise_logs"

	maxSourceNameLen = 255
)

// CompactDirectoryRequest selects the outlogs of one run. Zero values fall back to the
// service options.
type CompactDirectoryRequest struct {
	Glob    string
	Workers int
}

// Options configures where compacted logs go and how many files are compacted at once.
type Options struct {
	Glob      string
	OutputDir string
	Workers   int
}

//go:generate mockgen -source=compaction_service.go -destination=./mocks/compaction_service_mock.go -package=mocks
type CompactionService interface {
	// CompactDirectory compacts every matching outlog, writes the filtered logs and a run report.
	CompactDirectory(ctx context.Context, req CompactDirectoryRequest) (*models.RunReport, error)
	// CompactFile compacts a single outlog and writes its filtered log.
	CompactFile(ctx context.Context, sourceName string) (*models.CompactionResult, error)
	// CompactStream compacts an uploaded log without touching storage.
	CompactStream(ctx context.Context, sourceName string, r io.Reader) (*models.CompactionResult, error)
	// Patterns returns the catalogue in scan order.
	Patterns() []models.Pattern
}

type compactionService struct {
	compactor   Compactor
	outlogStore stores.OutlogStore
	reportStore stores.RunReportStore
	opts        Options
}

func NewCompactionService(compactor Compactor, outlogStore stores.OutlogStore, reportStore stores.RunReportStore, opts Options) CompactionService {
	if opts.Glob == "" {
		opts.Glob = DefaultGlob
	}
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &compactionService{
		compactor:   compactor,
		outlogStore: outlogStore,
		reportStore: reportStore,
		opts:        opts,
	}
}

func (s *compactionService) Patterns() []models.Pattern {
	return s.compactor.Catalogue().Patterns()
}

func (s *compactionService) CompactDirectory(ctx context.Context, req CompactDirectoryRequest) (*models.RunReport, error) {
	glob := strings.TrimSpace(req.Glob)
	if glob == "" {
		glob = s.opts.Glob
	}
	workers := req.Workers
	if workers <= 0 {
		workers = s.opts.Workers
	}

	runID := ulid.NewULID()
	ctx = loggers.Ctx(ctx).With().Str(loggers.FieldRunID, runID).Logger().WithContext(ctx)
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started compaction run over %s (glob=%s, workers=%d)", s.outlogStore.Root(), glob, workers)

	names, err := s.outlogStore.List(ctx, glob)
	if err != nil {
		if errors.Is(err, stores.ErrInvalidGlob) {
			return nil, errValidationFailed(fmt.Sprintf("invalid glob: %q", glob), err)
		}
		return nil, errInternalInputReadFailed(err)
	}
	names = s.skipOutputs(names)
	if len(names) == 0 {
		return nil, errNoInputsMatched(s.outlogStore.Root(), glob)
	}

	report := &models.RunReport{
		RunID:     runID,
		InputDir:  s.outlogStore.Root(),
		StartedAt: time.Now().UTC(),
		Files:     make([]*models.FileReport, len(names)),
		Totals:    models.NewLoopCounts(s.compactor.Catalogue().Names()...),
	}

	results := make([]*models.CompactionResult, len(names))
	errGrp, gCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(workers)
	for idx, name := range names {
		errGrp.Go(func() error {
			result, err := s.CompactFile(gCtx, name)
			if err != nil {
				return err
			}
			results[idx] = result
			return nil
		})
	}
	if err := errGrp.Wait(); err != nil {
		return nil, err
	}

	for idx, result := range results {
		report.Files[idx] = models.NewFileReport(result)
		report.Totals.Merge(result.Loops)
	}
	report.FinishedAt = time.Now().UTC()

	if err := s.reportStore.Put(ctx, report); err != nil {
		return nil, errInternalReportStoreFailed(err)
	}

	logger.Info().
		Int("files", len(report.Files)).
		Int("loops", report.Totals.Total()).
		Dur(loggers.FieldDuration, report.FinishedAt.Sub(report.StartedAt)).
		Msg("compaction run finished")
	return report, nil
}

func (s *compactionService) CompactFile(ctx context.Context, sourceName string) (*models.CompactionResult, error) {
	if err := validateSourceName(sourceName); err != nil {
		return nil, s.countFile(err)
	}

	rc, err := s.outlogStore.Open(ctx, sourceName)
	if err != nil {
		if errors.Is(err, stores.ErrOutlogNotFound) {
			return nil, s.countFile(errValidationFailed(fmt.Sprintf("outlog not found: %q", sourceName), err))
		}
		return nil, s.countFile(errInternalInputReadFailed(err))
	}
	defer rc.Close()

	result, err := s.compactor.CompactReader(ctx, sourceName, rc)
	if err != nil {
		return nil, s.countFile(errInternalInputReadFailed(err))
	}
	result.OutputName = s.outputName(sourceName)

	if err := s.outlogStore.PutCompacted(ctx, result); err != nil {
		return nil, s.countFile(errInternalOutputWriteFailed(err))
	}

	loggers.Ctx(ctx).Debug().
		Str(loggers.FieldSourceName, sourceName).
		Str(loggers.FieldOutputName, result.OutputName).
		Int(loggers.FieldLinesRead, result.LinesRead).
		Int(loggers.FieldLinesKept, result.LinesKept).
		Msg("outlog compacted")
	s.countFile(nil)
	return result, nil
}

func (s *compactionService) CompactStream(ctx context.Context, sourceName string, r io.Reader) (*models.CompactionResult, error) {
	if r == nil {
		return nil, errValidationFailed("empty request body", nil)
	}
	sourceName = strings.TrimSpace(sourceName)
	if len(sourceName) > maxSourceNameLen {
		return nil, errValidationFailed(fmt.Sprintf("source name too long: max %d characters", maxSourceNameLen), nil)
	}

	result, err := s.compactor.CompactReader(ctx, sourceName, r)
	if err != nil {
		return nil, errValidationFailed("unreadable log body", err)
	}
	return result, nil
}

// outputName mirrors the input layout: dir/run.log -> dir/<output dir>/run.filtered.log.
func (s *compactionService) outputName(sourceName string) string {
	base := strings.ReplaceAll(filepath.Base(sourceName), ".log", ".filtered.log")
	return filepath.Join(filepath.Dir(sourceName), s.opts.OutputDir, base)
}

// skipOutputs drops names inside an output directory so recursive globs never re-compact
// their own filtered logs.
func (s *compactionService) skipOutputs(names []string) []string {
	kept := names[:0:0]
	for _, name := range names {
		inOutput := false
		for _, part := range strings.Split(filepath.ToSlash(filepath.Dir(name)), "/") {
			if part == s.opts.OutputDir {
				inOutput = true
				break
			}
		}
		if !inOutput {
			kept = append(kept, name)
		}
	}
	return kept
}

func (s *compactionService) countFile(err *svcerrors.ServiceError) *svcerrors.ServiceError {
	if err != nil {
		metricFilesCompactedTotal.WithLabelValues(err.Code).Inc()
		return err
	}
	metricFilesCompactedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return nil
}

func validateSourceName(name string) *svcerrors.ServiceError {
	if strings.TrimSpace(name) == "" {
		return errValidationFailed("source name is required", nil)
	}
	if len(name) > maxSourceNameLen {
		return errValidationFailed(fmt.Sprintf("source name too long: max %d characters", maxSourceNameLen), nil)
	}
	return nil
}
