package types

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure modes.
var (
	ErrGatewayTimeout = errors.New("entry point did not render in time")
	ErrNoCategories   = errors.New("no categories resolved")
	ErrNoProducts     = errors.New("no products to scrape")
	ErrCartNotLoaded  = errors.New("cart page did not load")
)

// NavigationError wraps failures of a navigating action or bounded wait.
type NavigationError struct {
	URL      string
	Selector string
	Err      error
}

func (e *NavigationError) Error() string {
	if e.Selector != "" {
		return fmt.Sprintf("navigation error at %s (waiting for %q): %v", e.URL, e.Selector, e.Err)
	}
	return fmt.Sprintf("navigation error at %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// LookupError reports a configured target name that is absent from the
// resolved candidates. It is fatal to the run and carries the valid
// alternatives so the operator can correct the config.
type LookupError struct {
	Tier      string // "main", "second", "third"
	Name      string
	Available []string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s category %q not found (available: %s)",
		e.Tier, e.Name, strings.Join(e.Available, ", "))
}

// ExtractError wraps failures of a single product's extraction pass.
type ExtractError struct {
	Product string
	URL     string
	Err     error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract error for %s (%s): %v", e.Product, e.URL, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// StorageError wraps errors that occur during output writing.
type StorageError struct {
	Backend string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s): %v", e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
