package store

import "github.com/amishk599/tailor/internal/model"

// NopStore is a no-op store used with --no-save. It never persists anything,
// so every run starts from an empty snapshot.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) Load() (model.Snapshot, error) { return model.Snapshot{}, nil }
func (s *NopStore) Save(model.Snapshot) error     { return nil }
func (s *NopStore) Clear() error                  { return nil }
