// Package valueobject contains value objects that represent concepts without identity.
// Value objects are immutable and compared by their attributes rather than identity.
//
// Value Objects follow these principles:
//   - Immutability: Once created, they cannot be changed.
//   - Equality: Two value objects are equal if all their attributes are equal.
//   - Side-effect free: Methods return new values rather than modifying state.
package valueobject

import (
	"errors"
	"fmt"
)

// LengthUnit is a linear measurement unit accepted by the calculators.
type LengthUnit string

// Supported length units.
const (
	UnitInches      LengthUnit = "in"
	UnitFeet        LengthUnit = "ft"
	UnitYards       LengthUnit = "yd"
	UnitCentimeters LengthUnit = "cm"
	UnitMeters      LengthUnit = "m"
)

// ErrUnknownUnit is returned when a unit symbol is not one of the supported units.
var ErrUnknownUnit = errors.New("unknown length unit")

// LengthUnits lists the supported units in display order.
//
// Returns:
//   - []LengthUnit: a fresh slice; callers may modify it freely
func LengthUnits() []LengthUnit {
	return []LengthUnit{UnitInches, UnitFeet, UnitYards, UnitCentimeters, UnitMeters}
}

// ParseLengthUnit converts a raw symbol into a LengthUnit.
//
// Parameters:
//   - s: unit symbol (e.g., "ft")
//
// Returns:
//   - LengthUnit: the parsed unit
//   - error: ErrUnknownUnit if s is not a supported symbol
func ParseLengthUnit(s string) (LengthUnit, error) {
	u := LengthUnit(s)
	if !u.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return u, nil
}

// ToMeters returns the number of meters in one unit.
//
// Returns:
//   - float64: conversion factor to meters
//   - error: ErrUnknownUnit if the unit is not supported
func (u LengthUnit) ToMeters() (float64, error) {
	switch u {
	case UnitInches:
		return 0.0254, nil
	case UnitFeet:
		return 0.3048, nil
	case UnitYards:
		return 0.9144, nil
	case UnitCentimeters:
		return 0.01, nil
	case UnitMeters:
		return 1, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, string(u))
}

// Name returns the human-readable unit name, or an empty string for unknown units.
func (u LengthUnit) Name() string {
	switch u {
	case UnitInches:
		return "Inches"
	case UnitFeet:
		return "Feet"
	case UnitYards:
		return "Yards"
	case UnitCentimeters:
		return "Centimeters"
	case UnitMeters:
		return "Meters"
	}
	return ""
}

// IsValid reports whether the unit is one of the supported units.
func (u LengthUnit) IsValid() bool {
	_, err := u.ToMeters()
	return err == nil
}

// String implements fmt.Stringer.
func (u LengthUnit) String() string {
	return string(u)
}
