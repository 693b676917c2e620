package repos

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/akvideo/technikliste-backend/internal/logger"
	"github.com/akvideo/technikliste-backend/internal/types"
)

var (
	// ErrNotFound is returned by Fetch when no report matches the given code.
	// It is distinct from connectivity failures, callers branch on it.
	ErrNotFound = errors.New("no matching record")

	// ErrDuplicateID is returned by Save on a primary key violation.
	ErrDuplicateID = errors.New("id already taken")
)

type VerificationRepo interface {
	// TakenIDs returns every stored report code starting with prefix.
	TakenIDs(ctx context.Context, prefix string) ([]string, error)
	// Save inserts one immutable row. The LaTeX source is stored base64
	// encoded.
	Save(ctx context.Context, tex string, id string, devices int, query string) error
	// Fetch looks up one report by exact code. The returned record carries
	// the decoded LaTeX source.
	Fetch(ctx context.Context, id string) (*types.VerificationRecord, error)
}

type verificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVerificationRepo(db *gorm.DB, baseLog *logger.Logger) VerificationRepo {
	return &verificationRepo{db: db, log: baseLog.With("repo", "VerificationRepo")}
}

func (vr *verificationRepo) TakenIDs(ctx context.Context, prefix string) ([]string, error) {
	var ids []string
	if err := vr.db.WithContext(ctx).
		Model(&types.VerificationRecord{}).
		Where("id LIKE ?", prefix+"%").
		Pluck("id", &ids).Error; err != nil {
		vr.log.Error("Failed to fetch taken ids", "prefix", prefix, "error", err)
		return nil, fmt.Errorf("fetch taken ids for prefix %q: %w", prefix, err)
	}
	return ids, nil
}

func (vr *verificationRepo) Save(ctx context.Context, tex string, id string, devices int, query string) error {
	record := &types.VerificationRecord{
		ID:      id,
		Devices: devices,
		Query:   query,
		Tex:     base64.StdEncoding.EncodeToString([]byte(tex)),
	}
	if err := vr.db.WithContext(ctx).Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			vr.log.Warn("Report id already taken", "id", id)
			return fmt.Errorf("save record %q: %w", id, ErrDuplicateID)
		}
		vr.log.Error("Failed to save verification record", "id", id, "error", err)
		return fmt.Errorf("save record %q: %w", id, err)
	}
	return nil
}

func (vr *verificationRepo) Fetch(ctx context.Context, id string) (*types.VerificationRecord, error) {
	var record types.VerificationRecord
	if err := vr.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		vr.log.Error("Failed to fetch verification record", "id", id, "error", err)
		return nil, fmt.Errorf("fetch record %q: %w", id, err)
	}
	decoded, err := base64.StdEncoding.DecodeString(record.Tex)
	if err != nil {
		return nil, fmt.Errorf("decode stored document for %q: %w", id, err)
	}
	record.Tex = string(decoded)
	return &record, nil
}
