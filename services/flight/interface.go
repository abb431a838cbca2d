// File: skybook/services/flight/interface.go
package flight

import (
	"context"

	"skybook/models"
)

// Searcher finds bookable offers for a route and date. An empty result is
// not an error; remote failures are.
type Searcher interface {
	Search(ctx context.Context, origin, destination, date string) ([]models.Offer, error)
}
