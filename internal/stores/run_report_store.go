package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"outlog/internal/models"
	"outlog/internal/shared/filestorages"
)

var (
	ErrRunReportAlreadyExist = errors.New("run report already exists")
	ErrRunReportNotFound     = errors.New("run report not found")
)

// RunReportStore keeps one immutable JSON report per compaction run, keyed by run ID.
//
//go:generate mockgen -source=run_report_store.go -destination=./mocks/run_report_store_mock.go -package=mocks
type RunReportStore interface {
	Put(ctx context.Context, report *models.RunReport) error
	Get(ctx context.Context, runID string) (*models.RunReport, error)
}

type runReportStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewRunReportStore(fileStorage filestorages.FileStorage, dir string) RunReportStore {
	return &runReportStore{fileStorage: fileStorage, dir: dir}
}

func (s *runReportStore) Put(ctx context.Context, report *models.RunReport) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}

	_, err = s.fileStorage.Put(ctx, s.getKey(report.RunID), bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return ErrRunReportAlreadyExist
		}
		return fmt.Errorf("failed to put run report: %w", err)
	}
	return nil
}

func (s *runReportStore) Get(ctx context.Context, runID string) (*models.RunReport, error) {
	readCloser, err := s.fileStorage.Get(ctx, s.getKey(runID))
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, ErrRunReportNotFound
		}
		return nil, fmt.Errorf("failed to get run report: %w", err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read run report: %w", err)
	}

	var report models.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run report: %w", err)
	}
	return &report, nil
}

func (s *runReportStore) getKey(runID string) string {
	return filepath.Join(s.dir, runID+".json")
}
