package utils

import "github.com/google/uuid"

// UUIDGenerator hands out time-ordered UUIDv7 strings, falling back to a
// random UUIDv4 if the clock source fails.
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

// GenerateUnique returns an id not present in taken. Collisions are
// astronomically unlikely; the loop only guards against a broken source.
func (g *UUIDGenerator) GenerateUnique(taken func(id string) bool) string {
	for {
		id := g.Generate()
		if !taken(id) {
			return id
		}
	}
}
