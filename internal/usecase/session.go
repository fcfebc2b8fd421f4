package usecase

import (
	"context"
	"log"

	"github.com/grocersmart/backend/internal/domain"
)

// Session is the single user's shopping state: one basket and one location.
// Handlers receive it by injection.
type Session struct {
	Basket   *Basket
	Location *Location

	repo domain.StateRepository
}

// NewSession creates an empty session. Call Load to restore saved state.
func NewSession(repo domain.StateRepository, registry *StoreRegistry) *Session {
	return &Session{
		Basket:   NewBasket(repo),
		Location: NewLocation(repo, registry),
		repo:     repo,
	}
}

// Load restores the basket and location from the state repository
func (s *Session) Load(ctx context.Context) {
	s.Basket.Load(ctx)
	s.Location.Load(ctx)
	log.Printf("[SESSION] Loaded %d basket lines, location set: %t",
		len(s.Basket.Items()), s.Location.Selection().IsLocationSet)
}

// Compare ranks the selected stores for the current basket.
// Returns nil when the basket is empty or no store is selected.
func (s *Session) Compare() *domain.ComparisonSummary {
	return Compare(s.Basket.Items(), s.Location.SelectedStores())
}

// Checkout prices the current basket with the given delivery option
func (s *Session) Checkout(option string) (domain.CheckoutSummary, error) {
	return PriceCheckout(s.Basket.Items(), option)
}

// Reset clears the basket and location, including their persisted keys
func (s *Session) Reset(ctx context.Context) {
	s.Basket.Clear(ctx)
	if err := s.repo.Delete(ctx, domain.StateKeyBasket); err != nil {
		log.Printf("[SESSION] Failed to delete basket state: %v", err)
	}
	s.Location.Clear(ctx)
}
