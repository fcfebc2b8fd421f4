package groceryscout

import (
	"fmt"
	"strings"

	"github.com/grocersmart/backend/internal/domain"
)

// storeRecord is the provider's supermarket shape
type storeRecord struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Distance float64 `json:"distance"` // miles
	Image    string  `json:"image,omitempty"`
}

// mapStores converts provider supermarket records to domain stores.
// Records without a name cannot be matched against basket lines and are dropped.
// Records without an id get a 1-based positional id.
func mapStores(records []storeRecord) []domain.Store {
	stores := make([]domain.Store, 0, len(records))
	for i, r := range records {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}

		id := r.ID
		if id == 0 {
			id = i + 1
		}

		stores = append(stores, domain.Store{
			ID:       id,
			Name:     name,
			Address:  r.Address,
			Distance: formatDistance(r.Distance),
			Image:    r.Image,
		})
	}
	return stores
}

func formatDistance(miles float64) string {
	if miles <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f miles", miles)
}
