package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocersmart/backend/internal/domain"
)

type mockSearcher struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (m *mockSearcher) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	m.mu.Lock()
	m.calls = append(m.calls, query)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	return []domain.Product{{
		ID:    "upc-" + query,
		Name:  "Whole " + query,
		Brand: "Dairy Fresh",
		Unit:  "gal",
		Prices: []domain.StorePrice{
			{Store: "Value Supermarket", Price: 3.79},
			{Store: "Fresh Market", Price: 3.99},
		},
	}}, nil
}

func (m *mockSearcher) queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

type mockResolver struct {
	stores []domain.Store
}

func (m *mockResolver) ResolveStores(ctx context.Context, zip string) []domain.Store {
	return m.stores
}

// setupTestServices installs mocks and resets flags bound to package state
func setupTestServices(searcher ProductSearcher) func() {
	oldSearch, oldStores, oldServe, oldDelay := searchService, storeRegistry, serveFunc, debounceDelay

	SetServices(Services{
		Search: searcher,
		Stores: &mockResolver{stores: []domain.Store{
			{ID: 1, Name: "Fresh Market", Address: "123 Main St", Distance: "0.8 miles"},
		}},
		Debounce: 20 * time.Millisecond,
	})
	searchJSON, searchInteractive, storesJSON = false, false, false

	return func() {
		searchService, storeRegistry, serveFunc, debounceDelay = oldSearch, oldStores, oldServe, oldDelay
		searchJSON, searchInteractive, storesJSON = false, false, false
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	defer setupTestServices(&mockSearcher{})()

	_, err := execute(t, "", "search")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_PrintsProducts(t *testing.T) {
	searcher := &mockSearcher{}
	defer setupTestServices(searcher)()

	out, err := execute(t, "", "search", "milk")

	require.NoError(t, err)
	assert.Contains(t, out, "[1] Whole milk (Dairy Fresh)")
	assert.Contains(t, out, "$3.79 at Value Supermarket / gal")
	assert.Equal(t, []string{"milk"}, searcher.queries())
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	defer setupTestServices(&mockSearcher{})()

	out, err := execute(t, "", "search", "milk", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"id": "upc-milk"`)
}

func TestSearchCmd_PropagatesError(t *testing.T) {
	defer setupTestServices(&mockSearcher{err: domain.ErrInvalidQuery})()

	_, err := execute(t, "", "search", "!!!")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuery))
}

func TestSearchCmd_NotConfigured(t *testing.T) {
	defer setupTestServices(nil)()
	searchService = nil

	_, err := execute(t, "", "search", "milk")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSearchCmd_InteractiveSearchesSettledQuery(t *testing.T) {
	searcher := &mockSearcher{}
	defer setupTestServices(searcher)()

	out, err := execute(t, "m\nmi\nmil\nmilk\n", "search", "--interactive")

	require.NoError(t, err)
	assert.Equal(t, []string{"milk"}, searcher.queries())
	assert.Contains(t, out, `Results for "milk":`)
	assert.NotContains(t, out, `Results for "mil":`)
}

func TestSearchCmd_InteractiveEarlierAnswerDoesNotHideLast(t *testing.T) {
	searcher := &mockSearcher{}
	defer setupTestServices(searcher)()

	in, typing := io.Pipe()
	go func() {
		typing.Write([]byte("apples\n"))
		time.Sleep(150 * time.Millisecond)
		typing.Write([]byte("milk\n"))
		typing.Close()
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(in)
	rootCmd.SetArgs([]string{"search", "--interactive"})

	start := time.Now()
	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, []string{"apples", "milk"}, searcher.queries())
	assert.Contains(t, buf.String(), `Results for "apples":`)
	assert.Contains(t, buf.String(), `Results for "milk":`)
}

func TestSearchCmd_InteractiveClearedInputSearchesNothing(t *testing.T) {
	searcher := &mockSearcher{}
	defer setupTestServices(searcher)()

	_, err := execute(t, "milk\n\n", "search", "-i")

	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, searcher.queries())
}

func TestStoresCmd_ListsStores(t *testing.T) {
	defer setupTestServices(&mockSearcher{})()

	out, err := execute(t, "", "stores", "94103-1234")

	require.NoError(t, err)
	assert.Contains(t, out, "Stores near 94103:")
	assert.Contains(t, out, "[1] Fresh Market, 123 Main St (0.8 miles)")
}

func TestStoresCmd_RejectsShortZip(t *testing.T) {
	defer setupTestServices(&mockSearcher{})()

	_, err := execute(t, "", "stores", "941")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidZipCode))
}

func TestServeCmd_RunsServer(t *testing.T) {
	defer setupTestServices(&mockSearcher{})()

	called := false
	serveFunc = func() error {
		called = true
		return nil
	}

	_, err := execute(t, "", "serve")

	require.NoError(t, err)
	assert.True(t, called)
}

func TestServeCmd_NotConfigured(t *testing.T) {
	defer setupTestServices(&mockSearcher{})()

	_, err := execute(t, "", "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "server not configured")
}
