// Package library keeps a named collection of blueprint strings.
//
// Every string is decoded before it is stored, so the library only ever
// holds blueprints the codec accepts. Entries are stored by a [Store]:
// [SQLiteStore] for a local file, [MongoStore] for a shared server.
//
//	store, err := library.OpenSQLite(ctx, path)
//	if err != nil {
//	    return err
//	}
//	lib := library.New(store, logger)
//	defer lib.Close()
//	entry, err := lib.Save(ctx, "memory 4x16", s)
package library

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/TheJP/factorio-blueprint/pkg/blueprint"
	"github.com/TheJP/factorio-blueprint/pkg/errors"
)

// Entry is a stored blueprint.
type Entry struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Blueprint string    `json:"blueprint" bson:"blueprint"`
	Entities  int       `json:"entities" bson:"entities"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Store persists entries. Implementations report a missing entry with
// NOT_FOUND and a taken name with INVALID_INPUT.
type Store interface {
	Insert(ctx context.Context, e Entry) error
	// Find returns the entry whose id or name equals key.
	Find(ctx context.Context, key string) (*Entry, error)
	// List returns all entries ordered by name.
	List(ctx context.Context) ([]Entry, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Library validates blueprints and stores them in a [Store].
type Library struct {
	store  Store
	logger *log.Logger
	now    func() time.Time
}

// New returns a library backed by store. If logger is nil, log.Default()
// is used.
func New(store Store, logger *log.Logger) *Library {
	if logger == nil {
		logger = log.Default()
	}
	return &Library{store: store, logger: logger, now: time.Now}
}

// Save decodes s and stores it under name.
func (l *Library) Save(ctx context.Context, name, s string) (*Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "name must not be empty")
	}
	s = strings.TrimSpace(s)
	bp, err := blueprint.Decode(s)
	if err != nil {
		return nil, err
	}

	e := Entry{
		ID:        uuid.NewString(),
		Name:      name,
		Blueprint: s,
		Entities:  bp.Len(),
		CreatedAt: l.now().UTC().Truncate(time.Millisecond),
	}
	if err := l.store.Insert(ctx, e); err != nil {
		return nil, err
	}
	l.logger.Debug("saved blueprint", "id", e.ID, "name", e.Name, "entities", e.Entities)
	return &e, nil
}

// Get returns the entry whose id or name equals key.
func (l *Library) Get(ctx context.Context, key string) (*Entry, error) {
	return l.store.Find(ctx, strings.TrimSpace(key))
}

// List returns all entries ordered by name.
func (l *Library) List(ctx context.Context) ([]Entry, error) {
	return l.store.List(ctx)
}

// Delete removes the entry with the given id.
func (l *Library) Delete(ctx context.Context, id string) error {
	if err := l.store.Delete(ctx, id); err != nil {
		return err
	}
	l.logger.Debug("deleted blueprint", "id", id)
	return nil
}

// Close closes the store.
func (l *Library) Close() error {
	return l.store.Close()
}

func notFound(key string) error {
	return errors.New(errors.ErrCodeNotFound, "no blueprint %q in library", key)
}

func nameTaken(name string) error {
	return errors.New(errors.ErrCodeInvalidInput, "library already has a blueprint named %q", name)
}
