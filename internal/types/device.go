package types

import (
	"time"
)

// Device mirrors one row of the inventory table. Column names match the
// legacy schema, the JSON names match what the dashboard expects.
type Device struct {
	Index        int        `gorm:"column:index;not null" json:"index"`
	Amount       int        `gorm:"column:amount;default:1" json:"amount"`
	Description  string     `gorm:"column:description;not null" json:"description"`
	Location     string     `gorm:"column:location;default:Medienraum" json:"location"`
	LocationPrec string     `gorm:"column:location_prec" json:"location_prec"`
	Container    string     `gorm:"column:container" json:"container"`
	Category     string     `gorm:"column:category;default:Sonstiges" json:"category"`
	Brand        string     `gorm:"column:brand" json:"brand"`
	Price        *float64   `gorm:"column:price;type:numeric(7,2)" json:"price"`
	Store        string     `gorm:"column:store" json:"store"`
	Comments     string     `gorm:"column:comments" json:"comments"`
	ID           string     `gorm:"column:id;type:char(6);primaryKey" json:"id"`
	Date         *time.Time `gorm:"column:date;type:date" json:"date"`
}

func (Device) TableName() string {
	return "devices"
}
