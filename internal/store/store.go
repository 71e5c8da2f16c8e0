package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	ErrMissingID = errors.New("record id is required")
	ErrIDChanged = errors.New("record id cannot be changed")
)

// Record is anything that can be stored under a string id
type Record interface {
	RecordID() string
}

// Repository is the CRUD contract shared by every clinic collection.
// There is no delete: records are deactivated or cancelled instead.
type Repository[T Record] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, item T) (T, error)
	// Update applies mutate to a copy of the record and persists the copy
	// only if mutate returns nil. The whole read-modify-write is atomic
	// with respect to other mutations of the same record. Checks spanning
	// several records need Lock.
	Update(ctx context.Context, id string, mutate func(*T) error) (T, error)
}

// Locker is implemented by stores shared between processes. Lock blocks
// until key is held and returns the function releasing it.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// Lock acquires key on repo when it is a Locker and is a no-op otherwise.
// Callers still hold their own mutex for the in-process case.
func Lock(ctx context.Context, repo any, key string) (func(), error) {
	if l, ok := repo.(Locker); ok {
		return l.Lock(ctx, key)
	}
	return func() {}, nil
}

// Seed inserts items when the collection is empty. Returns how many were inserted.
func Seed[T Record](ctx context.Context, repo Repository[T], items []T) (int, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list existing records: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for _, item := range items {
		if _, err := repo.Create(ctx, item); err != nil {
			return 0, fmt.Errorf("failed to seed record %s: %w", item.RecordID(), err)
		}
	}
	return len(items), nil
}

// clone deep-copies v through its JSON form, the same representation the
// Postgres backend stores, so both backends hand out independent values.
func clone[T any](v T) (T, error) {
	var out T
	b, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("failed to encode record: %w", err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("failed to decode record: %w", err)
	}
	return out, nil
}
