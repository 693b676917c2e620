package repos

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/akvideo/technikliste-backend/internal/logger"
	"github.com/akvideo/technikliste-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.VerificationRecord{}, &types.Device{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func TestSaveAndFetchRoundTrip(t *testing.T) {
	repo := NewVerificationRepo(newTestDB(t), newTestLogger())
	ctx := context.Background()

	tex := `\documentclass{article} 100% \& {special}`
	if err := repo.Save(ctx, tex, "GRABCDEF", 42, ""); err != nil {
		t.Fatalf("save: %v", err)
	}

	record, err := repo.Fetch(ctx, "GRABCDEF")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if record.Tex != tex {
		t.Fatalf("fetched document differs: got=%q want=%q", record.Tex, tex)
	}
	if record.Devices != 42 {
		t.Fatalf("devices: got=%d want=42", record.Devices)
	}
	if record.Timestamp.IsZero() {
		t.Fatalf("timestamp not set on insert")
	}
}

func TestSaveStoresDocumentEncoded(t *testing.T) {
	db := newTestDB(t)
	repo := NewVerificationRepo(db, newTestLogger())
	ctx := context.Background()

	if err := repo.Save(ctx, "plain text", "GR222222", 1, ""); err != nil {
		t.Fatalf("save: %v", err)
	}

	var raw types.VerificationRecord
	if err := db.Where("id = ?", "GR222222").First(&raw).Error; err != nil {
		t.Fatalf("raw fetch: %v", err)
	}
	if raw.Tex == "plain text" {
		t.Fatalf("document stored unencoded")
	}
	if raw.Tex != "cGxhaW4gdGV4dA==" {
		t.Fatalf("stored form: got=%q", raw.Tex)
	}
}

func TestSaveRejectsDuplicateID(t *testing.T) {
	repo := NewVerificationRepo(newTestDB(t), newTestLogger())
	ctx := context.Background()

	if err := repo.Save(ctx, "first", "GRAAAAAA", 1, ""); err != nil {
		t.Fatalf("first save: %v", err)
	}
	err := repo.Save(ctx, "second", "GRAAAAAA", 2, "")
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("duplicate save: got=%v want ErrDuplicateID", err)
	}
}

func TestFetchUnknownIDIsNotFound(t *testing.T) {
	repo := NewVerificationRepo(newTestDB(t), newTestLogger())

	_, err := repo.Fetch(context.Background(), "GR999999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("fetch unknown: got=%v want ErrNotFound", err)
	}
}

func TestTakenIDsMatchesPrefixOnly(t *testing.T) {
	repo := NewVerificationRepo(newTestDB(t), newTestLogger())
	ctx := context.Background()

	for _, id := range []string{"GRAAAAAA", "GRBBBBBB", "YLCCCCCC"} {
		if err := repo.Save(ctx, "doc", id, 1, ""); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	ids, err := repo.TakenIDs(ctx, "GR")
	if err != nil {
		t.Fatalf("taken ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("taken ids for GR: got=%d want=2 (%v)", len(ids), ids)
	}
	for _, id := range ids {
		if id[:2] != "GR" {
			t.Fatalf("unexpected id in prefix query: %q", id)
		}
	}

	empty, err := repo.TakenIDs(ctx, "ZZ")
	if err != nil {
		t.Fatalf("taken ids for ZZ: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("taken ids for ZZ: got=%v want empty", empty)
	}
}
