package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grocersmart/backend/internal/domain"
	"github.com/grocersmart/backend/internal/usecase"
)

var storesJSON bool

var storesCmd = &cobra.Command{
	Use:   "stores [zip]",
	Short: "List stores near a postal code",
	Args:  cobra.ExactArgs(1),
	RunE:  runStores,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if serveFunc == nil {
			return errors.New("server not configured")
		}
		return serveFunc()
	},
}

func init() {
	storesCmd.Flags().BoolVar(&storesJSON, "json", false, "output stores as JSON")
	rootCmd.AddCommand(storesCmd)
	rootCmd.AddCommand(serveCmd)
}

func runStores(cmd *cobra.Command, args []string) error {
	if storeRegistry == nil {
		return errors.New("store registry not configured")
	}

	zip := usecase.SanitizeZipCode(args[0])
	if !usecase.IsLocationSet(zip) {
		return fmt.Errorf("%q: %w", args[0], domain.ErrInvalidZipCode)
	}

	stores := storeRegistry.ResolveStores(context.Background(), zip)

	if storesJSON {
		data, err := json.MarshalIndent(stores, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stores: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(stores) == 0 {
		cmd.Printf("No stores found near %s.\n", zip)
		return nil
	}

	cmd.Printf("Stores near %s:\n", zip)
	for _, s := range stores {
		cmd.Printf("  [%d] %s, %s (%s)\n", s.ID, s.Name, s.Address, s.Distance)
	}
	return nil
}
