package registree

import (
	"time"
)

// PartialReg is a purchase of separate convention events instead of a
// full registration.
type PartialReg struct {
	Banquet    int `yaml:"banquet"    validate:"gte=0"`
	Convention int `yaml:"convention" validate:"gte=0"`
	Theme      int `yaml:"theme"      validate:"gte=0"`
}

// IsEmpty is true when no partial event was bought.
func (p *PartialReg) IsEmpty() bool {
	return p == nil || p.Banquet+p.Convention+p.Theme == 0
}

// Registration is a request to create (or replace) a registree together
// with its affiliation and purchases.
type Registration struct {
	// RegNum is zero when the database should assign the number.
	RegNum     int       `yaml:"reg_num"     validate:"gte=0"`
	Timestamp  time.Time `yaml:"timestamp"`
	FirstNames string    `yaml:"first_names" validate:"notblank"`
	LastName   string    `yaml:"last_name"   validate:"notblank"`
	Cell       string    `yaml:"cell"`
	Email      string    `yaml:"email"       validate:"omitempty,email"`
	Title      string    `yaml:"title"`
	Dietary    string    `yaml:"dietary"`
	Disability string    `yaml:"disability"`
	NameBadge  string    `yaml:"name_badge"`
	FirstMDC   bool      `yaml:"first_mdc"`
	MJFLunch   bool      `yaml:"mjf_lunch"`

	// IsLion registrees belong to a club, others join the partner
	// program.
	IsLion   bool   `yaml:"is_lion"`
	Club     string `yaml:"club"     validate:"required_if=IsLion true"`
	District string `yaml:"district"`

	FullReg    int         `yaml:"full_reg"    validate:"gte=0"`
	PartialReg *PartialReg `yaml:"partial_reg"`
	Pins       int         `yaml:"pins"        validate:"gte=0"`
}

// Validate checks identity fields and purchases. A registration may
// hold a full registration or a partial one, not both.
func (r Registration) Validate() error {
	if err := validate.Struct(r); err != nil {
		return ValidationError(r.RegNum, err)
	}
	if r.FullReg > 0 && !r.PartialReg.IsEmpty() {
		return ValidationError(r.RegNum, errFullAndPartial)
	}
	return nil
}

// Quantities returns the purchases of the registration.
func (r Registration) Quantities() Quantities {
	res := Quantities{FullRegs: r.FullReg, Pins: r.Pins}
	if r.PartialReg != nil {
		res.Banquets = r.PartialReg.Banquet
		res.Conventions = r.PartialReg.Convention
		res.Themes = r.PartialReg.Theme
	}
	return res
}
