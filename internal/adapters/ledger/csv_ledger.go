// Package ledger contains the append-only CSV implementation of the
// application ledger: one file for submitted applications, one for failed
// and skipped ones.
package ledger

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/example/applypilot/internal/models"
)

var header = []string{"listing_id", "title", "company", "term", "timestamp", "outcome", "reason", "answers"}

// CSVLedger implements secondary.LedgerRepository over two append-only CSV
// files. Each Record call appends one fully formed row with a single write
// followed by an fsync, so a crash mid-write can at worst leave a torn
// trailing line, which readers skip.
type CSVLedger struct {
	appliedPath string
	failedPath  string

	mu sync.Mutex
}

// NewCSVLedger creates a ledger over the configured history file paths.
func NewCSVLedger(appliedPath, failedPath string) *CSVLedger {
	return &CSVLedger{appliedPath: appliedPath, failedPath: failedPath}
}

// Record appends one application record. Submitted records go to the applied
// file; failed and skipped records go to the failed file.
func (l *CSVLedger) Record(ctx context.Context, rec *models.ApplicationRecord) error {
	path := l.failedPath
	if rec.Outcome == models.OutcomeSubmitted {
		path = l.appliedPath
	}

	row, err := recordToRow(rec)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.appendRow(path, row)
}

// HasApplied reports whether a Submitted record exists for the listing.
func (l *CSVLedger) HasApplied(ctx context.Context, listingID string) (bool, error) {
	records, err := l.AppliedRecords(ctx)
	if err != nil {
		return false, err
	}
	for _, r := range records {
		if r.ListingID == listingID {
			return true, nil
		}
	}
	return false, nil
}

// AppliedRecords returns all submitted applications in append order.
func (l *CSVLedger) AppliedRecords(ctx context.Context) ([]*models.ApplicationRecord, error) {
	return readRecords(l.appliedPath)
}

// FailedRecords returns all failed and skipped applications in append order.
func (l *CSVLedger) FailedRecords(ctx context.Context) ([]*models.ApplicationRecord, error) {
	return readRecords(l.failedPath)
}

// appendRow writes one row (plus the header on a fresh file) as a single
// write and flushes it to disk before returning.
func (l *CSVLedger) appendRow(path string, row []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat history file: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("failed to encode header: %w", err)
		}
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync history file: %w", err)
	}

	return nil
}

func recordToRow(rec *models.ApplicationRecord) ([]string, error) {
	answers := ""
	if len(rec.Answers) > 0 {
		data, err := json.Marshal(rec.Answers)
		if err != nil {
			return nil, fmt.Errorf("failed to encode answers: %w", err)
		}
		answers = string(data)
	}

	return []string{
		rec.ListingID,
		rec.Title,
		rec.Company,
		rec.Term,
		rec.Timestamp.UTC().Format(time.RFC3339),
		string(rec.Outcome),
		rec.Reason,
		answers,
	}, nil
}

// readRecords reads a history file. A missing file is an empty ledger.
// A torn trailing line (crash mid-append) ends the read without error.
func readRecords(path string) ([]*models.ApplicationRecord, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var records []*models.ApplicationRecord
	first := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Torn or malformed tail; everything before it is intact.
			break
		}
		if first {
			first = false
			if len(row) > 0 && row[0] == header[0] {
				continue
			}
		}
		rec, ok := rowToRecord(row)
		if ok {
			records = append(records, rec)
		}
	}

	return records, nil
}

func rowToRecord(row []string) (*models.ApplicationRecord, bool) {
	if len(row) < 7 {
		return nil, false
	}

	ts, err := time.Parse(time.RFC3339, row[4])
	if err != nil {
		return nil, false
	}

	rec := &models.ApplicationRecord{
		ListingID: row[0],
		Title:     row[1],
		Company:   row[2],
		Term:      row[3],
		Timestamp: ts,
		Outcome:   models.Outcome(row[5]),
		Reason:    row[6],
	}

	if len(row) > 7 && row[7] != "" {
		// Answers are best effort on read; a bad cell loses the detail only.
		_ = json.Unmarshal([]byte(row[7]), &rec.Answers)
	}

	return rec, true
}
