package utils

import "github.com/google/uuid"

// UUIDGenerator produces sync IDs for newly created catalog records.
// UUIDv7 keeps IDs time-ordered; v4 is the fallback when the system clock
// cannot produce a v7 value.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
