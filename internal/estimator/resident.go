package estimator

import (
	"fmt"
	"strings"
)

// Dwelling is the kind of building the household lives in.
type Dwelling string

// Supported dwelling kinds.
const (
	DwellingFlat     Dwelling = "Flat"
	DwellingTenement Dwelling = "Tenement"
)

// Age bounds accepted for a resident.
const (
	MinAge = 1
	MaxAge = 120
)

// Resident carries the personal details shown in the report greeting.
// None of these fields take part in the estimate.
type Resident struct {
	Name     string   `json:"name,omitempty"     yaml:"name,omitempty"`
	Age      int      `json:"age,omitempty"      yaml:"age,omitempty"`
	City     string   `json:"city,omitempty"     yaml:"city,omitempty"`
	Area     string   `json:"area,omitempty"     yaml:"area,omitempty"`
	Dwelling Dwelling `json:"dwelling,omitempty" yaml:"dwelling,omitempty"`
}

// Validate checks the age range and the dwelling kind. A zero age and an
// empty dwelling mean "not given".
func (r Resident) Validate() error {
	if r.Age != 0 && (r.Age < MinAge || r.Age > MaxAge) {
		return fmt.Errorf("%w: got %d", ErrInvalidAge, r.Age)
	}
	if _, err := ParseDwelling(string(r.Dwelling)); err != nil {
		return err
	}
	return nil
}

// HasName reports whether a non-blank name was given.
func (r Resident) HasName() bool {
	return strings.TrimSpace(r.Name) != ""
}

// Greeting returns "Hello <name>!" or an empty string without a name.
func (r Resident) Greeting() string {
	if !r.HasName() {
		return ""
	}
	return fmt.Sprintf("Hello %s!", strings.TrimSpace(r.Name))
}

// LocationLine describes where the resident lives and in what kind of home.
func (r Resident) LocationLine(h HousingType) string {
	dwelling, err := ParseDwelling(string(r.Dwelling))
	if err != nil {
		dwelling = r.Dwelling
	}
	return fmt.Sprintf("Location: %s, %s | Housing: %s %s", r.Area, r.City, h, dwelling)
}
