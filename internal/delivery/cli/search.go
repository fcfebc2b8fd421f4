package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/grocersmart/backend/internal/domain"
	"github.com/grocersmart/backend/internal/usecase"
)

// finalResultWait bounds how long interactive mode waits for the last search after input ends
const finalResultWait = 15 * time.Second

var (
	searchJSON        bool
	searchInteractive bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search grocery products",
	Long: `Searches the grocery provider and prints normalized products with
their store prices, cheapest first. With --interactive, each line read
from stdin is treated as the query being typed and searches are debounced.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if searchInteractive {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVarP(&searchInteractive, "interactive", "i", false, "read queries from stdin as they are typed")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	if searchInteractive {
		return runInteractiveSearch(cmd, cmd.InOrStdin())
	}

	products, err := searchService.SearchProducts(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	return outputProducts(cmd, products)
}

// runInteractiveSearch feeds every input line to a debouncer and prints
// only the settled query's results. It returns once input ends and the
// last query has been answered.
func runInteractiveSearch(cmd *cobra.Command, in io.Reader) error {
	answered := make(chan string, 1)

	debouncer := usecase.NewDebouncer(debounceDelay, searchService.SearchProducts, func(result usecase.DebouncedResult) {
		if result.Err != nil {
			cmd.PrintErrf("search %q failed: %v\n", result.Query, result.Err)
		} else {
			cmd.Printf("Results for %q:\n", result.Query)
			if err := outputProducts(cmd, result.Products); err != nil {
				cmd.PrintErrln(err)
			}
		}

		// Deliveries are serialized, so after draining the slot the send
		// cannot block. The slot always holds the newest answer.
		select {
		case <-answered:
		default:
		}
		answered <- result.Query
	})
	defer debouncer.Stop()

	last := ""
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		last = strings.TrimSpace(scanner.Text())
		debouncer.Trigger(last)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if last == "" {
		return nil
	}

	timeout := time.After(debounceDelayOrDefault() + finalResultWait)
	for {
		select {
		case query := <-answered:
			if query == last {
				return nil
			}
		case <-timeout:
			return fmt.Errorf("timed out waiting for results for %q", last)
		}
	}
}

func debounceDelayOrDefault() time.Duration {
	if debounceDelay <= 0 {
		return usecase.DefaultDebounceDelay
	}
	return debounceDelay
}

func outputProducts(cmd *cobra.Command, products []domain.Product) error {
	if searchJSON {
		data, err := json.MarshalIndent(products, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(products) == 0 {
		cmd.Println("No products found.")
		return nil
	}

	for i := range products {
		p := &products[i]
		title := p.Name
		if p.Brand != "" {
			title = fmt.Sprintf("%s (%s)", p.Name, p.Brand)
		}
		cmd.Printf("  [%d] %s\n", i+1, title)
		for _, sp := range p.Prices {
			cmd.Printf("      $%.2f at %s / %s\n", sp.Price, sp.Store, p.Unit)
		}
	}

	return nil
}
