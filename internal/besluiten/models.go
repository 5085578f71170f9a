// Package besluiten mirrors the besluiten component resources the case
// registration reads for brondatum derivation.
package besluiten

import (
	"github.com/google/uuid"

	"zaakregister/pkg/types"
)

// Besluit is the slice of the besluit resource the case registration uses.
type Besluit struct {
	UUID         uuid.UUID
	URL          string
	Zaak         string
	Ingangsdatum types.Date
	Vervaldatum  *types.Date
}
