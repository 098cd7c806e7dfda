package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// File-backed implementation of the ReportRepository port: one JSON document
// per report under a data directory. Used when no DATABASE_URL is configured,
// so a bare checkout still keeps history across restarts.
type FileReportRepository struct {
	dir string
	mu  sync.Mutex
}

func NewFileReportRepository(dir string) (*FileReportRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file report repository: create %q: %w", dir, err)
	}
	return &FileReportRepository{dir: dir}, nil
}

func (r *FileReportRepository) path(id string) string {
	return filepath.Join(r.dir, id+".json")
}

// validID rejects ids that could escape the data directory.
func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && id != "." && id != ".."
}

func (r *FileReportRepository) SaveReport(_ context.Context, entry domain.HistoryEntry) error {
	if !validID(entry.ID) {
		return fmt.Errorf("save report: invalid id %q", entry.ID)
	}

	raw, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("save report: encode id=%s: %w", entry.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tmp := r.path(entry.ID) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("save report: write id=%s: %w", entry.ID, err)
	}
	if err := os.Rename(tmp, r.path(entry.ID)); err != nil {
		return fmt.Errorf("save report: rename id=%s: %w", entry.ID, err)
	}
	return nil
}

func (r *FileReportRepository) ListReports(_ context.Context) ([]domain.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	names, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("list reports: read dir %q: %w", r.dir, err)
	}

	entries := make([]domain.HistoryEntry, 0, len(names))
	for _, name := range names {
		if name.IsDir() || !strings.HasSuffix(name.Name(), ".json") {
			continue
		}

		entry, err := r.read(filepath.Join(r.dir, name.Name()))
		if err != nil {
			return nil, fmt.Errorf("list reports: %w", err)
		}
		// Listing carries summaries only.
		entry.Report = domain.OptimizationReport{}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (r *FileReportRepository) GetReport(_ context.Context, id string) (domain.HistoryEntry, error) {
	if !validID(id) {
		return domain.HistoryEntry{}, ports.ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, err := r.read(r.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return domain.HistoryEntry{}, ports.ErrNotFound
	}
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("get report id=%s: %w", id, err)
	}
	return entry, nil
}

func (r *FileReportRepository) DeleteReport(_ context.Context, id string) error {
	if !validID(id) {
		return ports.ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := os.Remove(r.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return ports.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete report id=%s: %w", id, err)
	}
	return nil
}

func (r *FileReportRepository) read(path string) (domain.HistoryEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.HistoryEntry{}, err
	}

	var entry domain.HistoryEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("decode %q: %w", filepath.Base(path), err)
	}
	return entry, nil
}
