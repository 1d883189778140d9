package reconcile

import (
	"errors"

	"github.com/temirov/scangap/internal/githubrepos"
)

const (
	percentageScaleFactorConstant         = 100
	emptyInventoryErrorMessageConstant    = "coverage percentage undefined for an empty repository inventory"
)

// ErrEmptyInventory signals that a coverage percentage was requested for an
// empty repository inventory.
var ErrEmptyInventory = errors.New(emptyInventoryErrorMessageConstant)

// Result partitions a repository inventory into entries with and without a
// registry counterpart. Both slices preserve the inventory fetch order and
// are disjoint by construction.
type Result struct {
	Matches    []githubrepos.Repository
	NonMatches []githubrepos.Repository
}

// PartitionByName splits the inventory by registry name membership. Lookup is
// keyed by exact repository name.
func PartitionByName(inventory []githubrepos.Repository, registryNames []string) Result {
	registeredNames := make(map[string]struct{}, len(registryNames))
	for _, registryName := range registryNames {
		registeredNames[registryName] = struct{}{}
	}

	result := Result{}
	for _, repository := range inventory {
		if _, registered := registeredNames[repository.Name]; registered {
			result.Matches = append(result.Matches, repository)
			continue
		}
		result.NonMatches = append(result.NonMatches, repository)
	}

	return result
}

// CoveragePercentage computes the share of inventory entries carrying a
// registry counterpart, scaled to a percentage. An empty inventory returns
// ErrEmptyInventory instead of dividing by zero.
func CoveragePercentage(matchCount int, inventoryCount int) (float64, error) {
	if inventoryCount == 0 {
		return 0, ErrEmptyInventory
	}
	return float64(matchCount) / float64(inventoryCount) * percentageScaleFactorConstant, nil
}
