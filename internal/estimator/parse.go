package estimator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Input errors returned by the parsing helpers. Estimate itself never fails;
// these are raised while collecting user input.
var (
	ErrUnknownHousingType    = errors.New("unknown housing type")
	ErrUnknownDwelling       = errors.New("unknown dwelling kind")
	ErrInvalidAnswer         = errors.New("invalid yes/no answer")
	ErrInvalidAge            = errors.New("age must be between 1 and 120")
	ErrInvalidProjectionDays = errors.New("invalid projection length")
)

// ParseHousingType accepts "1BHK", "1 bhk", "1-bhk", "1" and the like.
func ParseHousingType(s string) (HousingType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(normalized)

	switch normalized {
	case "1bhk", "1", "one", "onebhk":
		return OneBHK, nil
	case "2bhk", "2", "two", "twobhk":
		return TwoBHK, nil
	case "3bhk", "3", "three", "threebhk":
		return ThreeBHK, nil
	default:
		return 0, fmt.Errorf("%w: %q (expected 1BHK, 2BHK or 3BHK)", ErrUnknownHousingType, s)
	}
}

// ParseYesNo accepts yes/no, y/n, true/false and 1/0, case-insensitively.
func ParseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "on":
		return true, nil
	case "no", "n", "false", "0", "off", "":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidAnswer, s)
	}
}

// ParseDwelling accepts "Flat" or "Tenement", case-insensitively.
func ParseDwelling(s string) (Dwelling, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flat", "":
		return DwellingFlat, nil
	case "tenement":
		return DwellingTenement, nil
	default:
		return "", fmt.Errorf("%w: %q (expected Flat or Tenement)", ErrUnknownDwelling, s)
	}
}

// ParseAge accepts a whole number of years between MinAge and MaxAge. Blank
// input yields 0, meaning "not given".
func ParseAge(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	age, err := strconv.Atoi(s)
	if err != nil || age < MinAge || age > MaxAge {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAge, s)
	}
	return age, nil
}
