// Package logger provides component-scoped structured logging for the CLI.
package logger

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetReportTimestamp(false)

	if lvl := os.Getenv("PACKWRIGHT_LOG"); lvl != "" {
		if parsed, err := log.ParseLevel(strings.ToLower(lvl)); err == nil {
			log.SetLevel(parsed)
		}
	}
}

// ForComponent returns a logger tagged with the component name.
func ForComponent(name string) *log.Logger {
	return log.With("component", name)
}
