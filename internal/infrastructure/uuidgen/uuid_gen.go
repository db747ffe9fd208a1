package uuidgen

import (
	"github.com/google/uuid"
	"github.com/mikiasgoitom/airhost/internal/domain/contract"
)

// Generator issues time-ordered version 7 UUIDs so that ids of new documents
// sort after older ones in the _id index.
type Generator struct{}

func NewGenerator() contract.IUUIDGenerator {
	return &Generator{}
}

// NewUUID falls back to a random v4 id if the v7 clock read fails.
func (g *Generator) NewUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Ensure Generator implements the contract.IUUIDGenerator interface
var _ contract.IUUIDGenerator = (*Generator)(nil)
