package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/omnibrief/omnibrief/internal/model"
)

// Append adds a record to the store.
func (s *implStore) Append(ctx context.Context, rec model.SummaryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}

	records = append(records, rec)
	return s.save(records)
}

// ListByOwner returns the user's records, newest first.
func (s *implStore) ListByOwner(ctx context.Context, userID string) ([]model.SummaryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	owned := make([]model.SummaryRecord, 0)
	for _, rec := range records {
		if rec.UserID == userID {
			owned = append(owned, rec)
		}
	}

	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	return owned, nil
}

// GetByOwner finds one record by id, only if userID owns it.
func (s *implStore) GetByOwner(ctx context.Context, id, userID string) (model.SummaryRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return model.SummaryRecord{}, false, err
	}

	for _, rec := range records {
		if rec.ID == id && rec.UserID == userID {
			return rec, true, nil
		}
	}
	return model.SummaryRecord{}, false, nil
}

// DeleteByOwner removes one record by id, only if userID owns it. Returns
// whether anything was deleted.
func (s *implStore) DeleteByOwner(ctx context.Context, id, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return false, err
	}

	for i, rec := range records {
		if rec.ID == id && rec.UserID == userID {
			records = append(records[:i], records[i+1:]...)
			return true, s.save(records)
		}
	}
	return false, nil
}

// load reads the whole file; a missing file is an empty store.
func (s *implStore) load() ([]model.SummaryRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read store: %w", err)
	}

	var records []model.SummaryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse store: %w", err)
	}
	return records, nil
}

func (s *implStore) save(records []model.SummaryRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	return nil
}
