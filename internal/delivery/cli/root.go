package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/grocersmart/backend/internal/domain"
)

const version = "1.0.0"

// ProductSearcher finds normalized products for a query
type ProductSearcher interface {
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
}

// StoreResolver lists candidate stores for a postal code
type StoreResolver interface {
	ResolveStores(ctx context.Context, zip string) []domain.Store
}

var (
	searchService ProductSearcher
	storeRegistry StoreResolver
	serveFunc     func() error
	debounceDelay time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "grocersmart",
	Short:         "Compare grocery prices across nearby stores",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Services are the dependencies the commands run against
type Services struct {
	Search   ProductSearcher
	Stores   StoreResolver
	Serve    func() error
	Debounce time.Duration
}

// SetServices installs the dependencies used by every command
func SetServices(s Services) {
	searchService = s.Search
	storeRegistry = s.Stores
	serveFunc = s.Serve
	debounceDelay = s.Debounce
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
