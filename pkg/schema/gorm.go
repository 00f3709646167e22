package schema

import (
	"gorm.io/gorm"
	gschema "gorm.io/gorm/schema"
)

// AllModels returns models of the current convention tables.
func AllModels() []any {
	return []any{
		&Registree{},
		&Club{},
		&PartnerProgram{},
		&FullReg{},
		&PartialReg{},
		&Pins{},
		&Payment{},
		&RegistreePair{},
	}
}

// PriorYearModels returns models of the tables read from the prior
// convention.
func PriorYearModels() []any {
	return []any{
		&Registree{},
		&Payment{},
		&RegistreePair{},
	}
}

// NamingStrategy places all tables into the given PostgreSQL schema
// and keeps table names singular ("registree", "full_reg").
func NamingStrategy(dbSchema string) gschema.Namer {
	return gschema.NamingStrategy{
		TablePrefix:   dbSchema + ".",
		SingularTable: true,
	}
}

// Migrate runs GORM AutoMigrate for the given models. The db must be
// opened with NamingStrategy of the target schema.
func Migrate(db *gorm.DB, models ...any) error {
	return db.AutoMigrate(models...)
}
