package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/applypilot/internal/adapters/sqlite"
	"github.com/example/applypilot/internal/db"
	"github.com/example/applypilot/internal/models"
	"github.com/example/applypilot/internal/ports/secondary"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := conn.Exec(db.SchemaSQL); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		conn.Close()
	})

	return conn
}

func TestAnswerCachePutAndGet(t *testing.T) {
	repo := sqlite.NewAnswerCacheRepository(setupTestDB(t))
	ctx := context.Background()

	entry := &secondary.CachedAnswer{
		Key:      "how many years of experience do you have",
		Question: "How many years of experience do you have?",
		Answer:   "8",
		Source:   models.AnswerSourceLiveAI,
	}
	if err := repo.Put(ctx, entry, false); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, err := repo.Get(ctx, entry.Key)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got == nil {
		t.Fatal("Get() returned nil for existing key")
	}
	if got.Answer != "8" {
		t.Errorf("Get() answer = %q, want %q", got.Answer, "8")
	}
	if got.Source != models.AnswerSourceLiveAI {
		t.Errorf("Get() source = %q, want %q", got.Source, models.AnswerSourceLiveAI)
	}
}

func TestAnswerCacheGetMissing(t *testing.T) {
	repo := sqlite.NewAnswerCacheRepository(setupTestDB(t))

	got, err := repo.Get(context.Background(), "never seen")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v, want nil for missing key", got)
	}
}

func TestAnswerCacheInsertIfAbsent(t *testing.T) {
	repo := sqlite.NewAnswerCacheRepository(setupTestDB(t))
	ctx := context.Background()

	first := &secondary.CachedAnswer{Key: "k", Question: "Q", Answer: "first", Source: models.AnswerSourceManual}
	second := &secondary.CachedAnswer{Key: "k", Question: "Q", Answer: "second", Source: models.AnswerSourceLiveAI}

	if err := repo.Put(ctx, first, false); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := repo.Put(ctx, second, false); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, err := repo.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Answer != "first" {
		t.Errorf("without overwrite, answer = %q, want %q", got.Answer, "first")
	}

	if err := repo.Put(ctx, second, true); err != nil {
		t.Fatalf("Put() overwrite error: %v", err)
	}
	got, err = repo.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Answer != "second" {
		t.Errorf("with overwrite, answer = %q, want %q", got.Answer, "second")
	}
}

func TestAnswerCacheListAndDelete(t *testing.T) {
	repo := sqlite.NewAnswerCacheRepository(setupTestDB(t))
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		entry := &secondary.CachedAnswer{Key: k, Question: k, Answer: "x", Source: models.AnswerSourceConfig}
		if err := repo.Put(ctx, entry, false); err != nil {
			t.Fatalf("Put(%q) error: %v", k, err)
		}
	}

	entries, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(entries))
	}

	if err := repo.Delete(ctx, "b"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	entries, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("List() after delete returned %d entries, want 2", len(entries))
	}
}
