package repos

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/akvideo/technikliste-backend/internal/logger"
	"github.com/akvideo/technikliste-backend/internal/types"
)

type DeviceRepo interface {
	ListAll(ctx context.Context) ([]types.Device, error)
	Insert(ctx context.Context, device *types.Device) error
	// IDs returns every device id currently in use, for the importer's
	// uniqueness check.
	IDs(ctx context.Context) ([]string, error)
	DeleteAll(ctx context.Context) error
}

type deviceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDeviceRepo(db *gorm.DB, baseLog *logger.Logger) DeviceRepo {
	return &deviceRepo{db: db, log: baseLog.With("repo", "DeviceRepo")}
}

func (dr *deviceRepo) ListAll(ctx context.Context) ([]types.Device, error) {
	var devices []types.Device
	if err := dr.db.WithContext(ctx).
		Order(`"index" asc`).
		Find(&devices).Error; err != nil {
		dr.log.Error("Failed to list devices", "error", err)
		return nil, fmt.Errorf("list devices: %w", err)
	}
	return devices, nil
}

func (dr *deviceRepo) Insert(ctx context.Context, device *types.Device) error {
	if err := dr.db.WithContext(ctx).Create(device).Error; err != nil {
		dr.log.Error("Failed to insert device", "id", device.ID, "error", err)
		return fmt.Errorf("insert device %q: %w", device.ID, err)
	}
	return nil
}

func (dr *deviceRepo) IDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := dr.db.WithContext(ctx).
		Model(&types.Device{}).
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list device ids: %w", err)
	}
	return ids, nil
}

func (dr *deviceRepo) DeleteAll(ctx context.Context) error {
	if err := dr.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.Device{}).Error; err != nil {
		return fmt.Errorf("delete devices: %w", err)
	}
	return nil
}
