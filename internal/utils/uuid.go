package utils

import "github.com/google/uuid"

// UUIDGenerator issues X-Request-ID values. Time-ordered v7 IDs keep log lines
// of one tab sortable; v4 is the fallback when the clock source fails.
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
