// Package session knows the bookable session kinds, how long they last and
// what they cost.
package session

import (
	"strings"

	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/clocktime"
)

var (
	ErrInvalidType     = apperror.New(apperror.KindValidation, "invalid session type")
	ErrInvalidDuration = apperror.New(apperror.KindValidation, "invalid session duration")
	ErrInvalidPair     = apperror.New(apperror.KindValidation, "duration not offered for this session type")
)

type Type string

const (
	TypeConsultation Type = "CONSULTATION"
	TypeFullSession  Type = "FULL_SESSION"
)

type Duration string

const (
	Minutes15 Duration = "MINUTES_15"
	Minutes60 Duration = "MINUTES_60"
	Minutes90 Duration = "MINUTES_90"
)

const consultationMinutes = 15

var (
	fullSession60Price = 75.0
	fullSession90Price = 110.0
	minutesByDuration  = map[Duration]int{Minutes15: 15, Minutes60: 60, Minutes90: 90}
	durationsByType    = map[Type][]Duration{TypeConsultation: {Minutes15}, TypeFullSession: {Minutes60, Minutes90}}
)

// ParseType validates a session type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := durationsByType[t]; !ok {
		return "", ErrInvalidType
	}
	return t, nil
}

// ParseDuration validates a duration enum value.
func ParseDuration(s string) (Duration, error) {
	d := Duration(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := minutesByDuration[d]; !ok {
		return "", ErrInvalidDuration
	}
	return d, nil
}

// ValidatePair checks that the duration is one the session type is sold with.
func ValidatePair(t Type, d Duration) error {
	allowed, ok := durationsByType[t]
	if !ok {
		return ErrInvalidType
	}
	for _, a := range allowed {
		if a == d {
			return nil
		}
	}
	return ErrInvalidPair
}

// Minutes returns the length of a session. Consultations always last 15
// minutes; every other type follows the duration enum.
func Minutes(t Type, d Duration) int {
	if t == TypeConsultation {
		return consultationMinutes
	}
	return minutesByDuration[d]
}

// EndTime computes the 12-hour end time of a session starting at start12h.
func EndTime(start12h string, t Type, d Duration) (string, error) {
	return clocktime.AddMinutes(start12h, Minutes(t, d))
}

// Price returns the session price, or nil when the session is free or the
// combination has no price.
func Price(t Type, d Duration) *float64 {
	if t != TypeFullSession {
		return nil
	}
	switch d {
	case Minutes60:
		p := fullSession60Price
		return &p
	case Minutes90:
		p := fullSession90Price
		return &p
	}
	return nil
}

// Label is the lower-case human name used in messages ("full session").
func (t Type) Label() string {
	return strings.ReplaceAll(strings.ToLower(string(t)), "_", " ")
}
