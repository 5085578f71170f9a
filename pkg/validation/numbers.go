// Package validation implements the Dutch number checks used across the
// case registration API (RSIN, BSN, A-nummer).
package validation

import "regexp"

var aNummerPattern = regexp.MustCompile(`^[1-9][0-9]{9}$`)

// ElfProef runs the "11-proof" over a 9 digit number string. The first eight
// digits weigh 9..2, the last digit weighs -1; the weighted sum must be a
// multiple of 11.
func ElfProef(value string) bool {
	if len(value) != 9 {
		return false
	}
	total := 0
	for i, r := range value {
		if r < '0' || r > '9' {
			return false
		}
		digit := int(r - '0')
		weight := 9 - i
		if i == 8 {
			weight = -1
		}
		total += digit * weight
	}
	return total%11 == 0
}

// IsRSIN validates a bronorganisatie (RSIN).
func IsRSIN(value string) bool {
	return ElfProef(value)
}

// IsBSN validates a burgerservicenummer.
func IsBSN(value string) bool {
	return ElfProef(value)
}

// IsANummer validates the administratienummer of a natuurlijk persoon.
func IsANummer(value string) bool {
	return aNummerPattern.MatchString(value)
}
