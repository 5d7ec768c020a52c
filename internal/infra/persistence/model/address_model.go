package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AddressModel is the GORM-specific struct for the 'addresses' table.
type AddressModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Street       string    `gorm:"type:varchar(255);not null;default:''"`
	Number       string    `gorm:"type:varchar(50);not null;default:''"`
	Unit         string    `gorm:"type:varchar(50);not null;default:''"`
	BuildingName string    `gorm:"type:varchar(255);not null;default:''"`
	Block        string    `gorm:"type:varchar(50);not null;default:''"`
	Floor        string    `gorm:"type:varchar(50);not null;default:''"`
	City         string    `gorm:"type:varchar(255);not null;default:''"`
	State        string    `gorm:"type:varchar(255);not null;default:''"`
	PostalCode   string    `gorm:"type:varchar(20);not null;default:''"`
	Country      string    `gorm:"type:varchar(100);not null;default:''"`
	CountryCode  string    `gorm:"type:char(2);not null;default:''"`
	Neighborhood string    `gorm:"type:varchar(255);not null;default:''"`
	District     string    `gorm:"type:varchar(255);not null;default:''"`

	AddressLines datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'"`
	PlotBlock    string                      `gorm:"type:varchar(50);not null;default:''"`
	PlotLot      string                      `gorm:"type:varchar(50);not null;default:''"`
	PlotParcel   string                      `gorm:"type:varchar(50);not null;default:''"`
	Extras       datatypes.JSONMap           `gorm:"type:jsonb;not null;default:'{}'"`

	Latitude  float64 `gorm:"type:decimal(10,8);not null"`
	Longitude float64 `gorm:"type:decimal(11,8);not null"`

	// NormalizedKey carries the unique index that arbitrates concurrent find-or-create calls.
	NormalizedKey string `gorm:"type:char(64);not null;uniqueIndex:idx_addresses_normalized_key"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}
