package testutil

import (
	"context"
	"errors"
)

// ErrStorageDisabled is returned by every FailingStore call.
var ErrStorageDisabled = errors.New("storage disabled")

// FailingStore is a key-value store whose every call fails.
type FailingStore struct {
	Err error
}

func NewFailingStore() *FailingStore {
	return &FailingStore{Err: ErrStorageDisabled}
}

func (s *FailingStore) Get(context.Context, string) ([]byte, error) { return nil, s.Err }

func (s *FailingStore) Set(context.Context, string, []byte) error { return s.Err }

func (s *FailingStore) Remove(context.Context, string) error { return s.Err }

func (s *FailingStore) List(context.Context, string) (map[string][]byte, error) {
	return nil, s.Err
}
