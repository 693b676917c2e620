package types

import (
	"time"
)

// VerificationRecord is one issued report: the base64 encoded LaTeX source it
// was generated from, keyed by the 8 character code printed on the document.
// Rows are written once and never updated.
type VerificationRecord struct {
	ID        string    `gorm:"column:id;type:char(8);primaryKey" json:"id"`
	Timestamp time.Time `gorm:"column:timestamp;not null;autoCreateTime" json:"timestamp"`
	Devices   int       `gorm:"column:devices;not null" json:"devices"`
	Query     string    `gorm:"column:query" json:"query"`
	Tex       string    `gorm:"column:tex" json:"-"`
}

func (VerificationRecord) TableName() string {
	return "verify"
}
