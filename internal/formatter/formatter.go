package formatter

import "github.com/jsxplorer/jsxplorer/internal/jsx"

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(result *jsx.Result, opts jsx.Options) ([]byte, error)
}
