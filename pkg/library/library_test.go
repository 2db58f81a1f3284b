package library

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/TheJP/factorio-blueprint/pkg/errors"
	"github.com/TheJP/factorio-blueprint/pkg/fixtures"
)

func openSQLite(t *testing.T) *Library {
	t.Helper()
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "lib", "library.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	lib := New(store, log.New(io.Discard))
	t.Cleanup(func() { _ = lib.Close() })
	return lib
}

// stores returns the backends to run the shared tests against. MongoDB is
// only used when FBP_TEST_MONGO_URI is set.
func stores(t *testing.T) map[string]func(t *testing.T) *Library {
	out := map[string]func(t *testing.T) *Library{"sqlite": openSQLite}
	if uri := os.Getenv("FBP_TEST_MONGO_URI"); uri != "" {
		out["mongo"] = func(t *testing.T) *Library {
			ctx := context.Background()
			store, err := OpenMongo(ctx, uri, "fbp_test_"+time.Now().Format("150405.000000"))
			if err != nil {
				t.Fatalf("OpenMongo: %v", err)
			}
			t.Cleanup(func() {
				_ = store.coll.Database().Drop(ctx)
				_ = store.Close()
			})
			return New(store, log.New(io.Discard))
		}
	}
	return out
}

func TestSaveAndGet(t *testing.T) {
	for name, open := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			lib := open(t)

			saved, err := lib.Save(ctx, " loader ", "\n"+fixtures.LoaderCell+"\n")
			if err != nil {
				t.Fatal(err)
			}
			if saved.Name != "loader" || saved.Blueprint != fixtures.LoaderCell {
				t.Errorf("Save trimmed to %q, %q", saved.Name, saved.Blueprint)
			}
			if saved.Entities != 2 {
				t.Errorf("Entities = %d, want 2", saved.Entities)
			}

			for _, key := range []string{saved.ID, "loader"} {
				got, err := lib.Get(ctx, key)
				if err != nil {
					t.Fatalf("Get(%q): %v", key, err)
				}
				if got.ID != saved.ID || got.Blueprint != saved.Blueprint || !got.CreatedAt.Equal(saved.CreatedAt) {
					t.Errorf("Get(%q) = %+v, want %+v", key, got, saved)
				}
			}
		})
	}
}

func TestSaveRejects(t *testing.T) {
	for name, open := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			lib := open(t)
			if _, err := lib.Save(ctx, "clock", fixtures.Clock); err != nil {
				t.Fatal(err)
			}

			tests := []struct {
				name, entryName, blueprint string
				code                       errors.Code
			}{
				{"empty name", "  ", fixtures.Clock, errors.ErrCodeInvalidInput},
				{"bad version", "x", "1abc", errors.ErrCodeInvalidVersion},
				{"bad base64", "x", "0!!!", errors.ErrCodeBase64Decode},
				{"duplicate name", "clock", fixtures.MemoryCell, errors.ErrCodeInvalidInput},
			}
			for _, tt := range tests {
				_, err := lib.Save(ctx, tt.entryName, tt.blueprint)
				if got := errors.GetCode(err); got != tt.code {
					t.Errorf("%s: code = %v, want %v (%v)", tt.name, got, tt.code, err)
				}
			}

			entries, err := lib.List(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 1 {
				t.Errorf("List() has %d entries, want 1", len(entries))
			}
		})
	}
}

func TestListAndDelete(t *testing.T) {
	for name, open := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			lib := open(t)

			ids := map[string]string{}
			for _, n := range []string{"memory", "clock", "loader"} {
				e, err := lib.Save(ctx, n, fixtures.LoaderCell)
				if err != nil {
					t.Fatal(err)
				}
				ids[n] = e.ID
			}

			entries, err := lib.List(ctx)
			if err != nil {
				t.Fatal(err)
			}
			var names []string
			for _, e := range entries {
				names = append(names, e.Name)
			}
			if want := []string{"clock", "loader", "memory"}; !slices.Equal(names, want) {
				t.Errorf("List() names = %v, want %v", names, want)
			}

			if err := lib.Delete(ctx, ids["clock"]); err != nil {
				t.Fatal(err)
			}
			if _, err := lib.Get(ctx, "clock"); !errors.Is(err, errors.ErrCodeNotFound) {
				t.Errorf("Get after Delete: err = %v, want NOT_FOUND", err)
			}
			if err := lib.Delete(ctx, ids["clock"]); !errors.Is(err, errors.ErrCodeNotFound) {
				t.Errorf("second Delete: err = %v, want NOT_FOUND", err)
			}
		})
	}
}

func TestOpenSQLiteReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "library.db")

	store, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	lib := New(store, log.New(io.Discard))
	saved, err := lib.Save(ctx, "pair", fixtures.MemoryPair)
	if err != nil {
		t.Fatal(err)
	}
	if err := lib.Close(); err != nil {
		t.Fatal(err)
	}

	store, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	got, err := store.Find(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Find after reopen: %v", err)
	}
	if got.Name != "pair" {
		t.Errorf("Name = %q, want pair", got.Name)
	}
}
