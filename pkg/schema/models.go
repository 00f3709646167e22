// Package schema provides GORM models of the convention registration
// tables. Tables live in a PostgreSQL schema per convention year, so
// models carry no schema name. It is supplied by NamingStrategy.
package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// Registree is an attendee of the convention.
type Registree struct {
	// RegNum is the registration number. It is assigned by the database
	// when not given.
	RegNum int `gorm:"primaryKey;autoIncrement"`

	// Timestamp is the moment the registration form was submitted.
	Timestamp time.Time `gorm:"not null;default:now()"`

	FirstNames string `gorm:"type:text;not null"`
	LastName   string `gorm:"type:text;not null"`
	Cell       string `gorm:"type:text"`
	Email      string `gorm:"type:text"`
	Dietary    string `gorm:"type:text"`
	Disability string `gorm:"type:text"`
	NameBadge  string `gorm:"type:text"`

	// FirstMDC is true for a first multiple district convention.
	FirstMDC bool `gorm:"column:first_mdc;not null;default:false"`

	// MJFLunch is true for attendees of the Melvin Jones Fellows lunch.
	MJFLunch bool `gorm:"column:mjf_lunch;not null;default:false"`

	IsLion bool    `gorm:"not null;default:false"`
	Title  *string `gorm:"type:text"`

	// CancellationTimestamp is NULL while the registration is active.
	CancellationTimestamp *time.Time
}

// Club is the club and district of a lion registree.
type Club struct {
	RegNum   int    `gorm:"primaryKey;autoIncrement:false"`
	Club     string `gorm:"type:text"`
	District string `gorm:"type:text"`
}

// PartnerProgram marks a non-lion registree as a member of the partner
// program.
type PartnerProgram struct {
	RegNum   int `gorm:"primaryKey;autoIncrement:false"`
	Quantity int `gorm:"not null;default:1"`
}

// FullReg is the number of full registrations bought.
type FullReg struct {
	RegNum   int `gorm:"primaryKey;autoIncrement:false"`
	Quantity int `gorm:"not null;default:0"`
}

// PartialReg is the number of tickets for separate events.
type PartialReg struct {
	RegNum             int `gorm:"primaryKey;autoIncrement:false"`
	BanquetQuantity    int `gorm:"not null;default:0"`
	ConventionQuantity int `gorm:"not null;default:0"`
	ThemeQuantity      int `gorm:"not null;default:0"`
}

// Pins is the number of convention pins bought.
type Pins struct {
	RegNum   int `gorm:"primaryKey;autoIncrement:false"`
	Quantity int `gorm:"not null;default:0"`
}

// Payment is a single payment made by a registree. Payments are never
// updated or deleted.
type Payment struct {
	ID        int64           `gorm:"primaryKey"`
	RegNum    int             `gorm:"not null;index:idx_payment_reg_num"`
	Timestamp time.Time       `gorm:"not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

// RegistreePair links two registrees that registered together. A
// registree is the first member of at most one pair.
type RegistreePair struct {
	FirstRegNum  int `gorm:"primaryKey;autoIncrement:false"`
	SecondRegNum int `gorm:"not null;index:idx_registree_pair_second"`
}
