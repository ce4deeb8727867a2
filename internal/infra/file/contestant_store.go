// Package file persists contestants as a single JSON document on disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"millionaire-quiz-service/internal/domain"
)

// ContestantStore is a JSON-file implementation of app.ContestantStore. The
// whole document is re-read and re-written per operation; the store is meant
// for single-instance deployments without a database.
type ContestantStore struct {
	path string
	mu   sync.Mutex
}

type storeDocument struct {
	Contestants map[string]domain.Contestant `json:"contestants"`
	Order       []string                     `json:"order"`
}

func NewContestantStore(path string) *ContestantStore {
	return &ContestantStore{path: path}
}

func (s *ContestantStore) List(_ context.Context) ([]domain.Contestant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Contestant, 0, len(doc.Order))
	for _, id := range doc.Order {
		if contestant, ok := doc.Contestants[id]; ok {
			out = append(out, contestant)
		}
	}
	return out, nil
}

func (s *ContestantStore) Get(_ context.Context, id string) (domain.Contestant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return domain.Contestant{}, err
	}
	contestant, ok := doc.Contestants[id]
	if !ok {
		return domain.Contestant{}, domain.ErrContestantNotFound
	}
	return contestant, nil
}

func (s *ContestantStore) Create(_ context.Context, insert domain.NewContestant) (domain.Contestant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return domain.Contestant{}, err
	}
	contestant := domain.Materialize(insert, uuid.NewString())
	doc.Contestants[contestant.ID] = contestant
	doc.Order = append(doc.Order, contestant.ID)
	if err := s.write(doc); err != nil {
		return domain.Contestant{}, err
	}
	return contestant, nil
}

func (s *ContestantStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := doc.Contestants[id]; !ok {
		return nil
	}
	delete(doc.Contestants, id)
	for i, existing := range doc.Order {
		if existing == id {
			doc.Order = append(doc.Order[:i], doc.Order[i+1:]...)
			break
		}
	}
	return s.write(doc)
}

func (s *ContestantStore) read() (storeDocument, error) {
	doc := storeDocument{Contestants: make(map[string]domain.Contestant)}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return doc, fmt.Errorf("read contestants file: %w", err)
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("parse contestants file: %w", err)
	}
	if doc.Contestants == nil {
		doc.Contestants = make(map[string]domain.Contestant)
	}
	return doc, nil
}

// write replaces the document atomically via a temp file rename so a crash
// mid-write cannot corrupt the store.
func (s *ContestantStore) write(doc storeDocument) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode contestants file: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write contestants file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace contestants file: %w", err)
	}
	return nil
}
