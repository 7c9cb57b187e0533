// Package scopeiq assembles slide-deck documents from a declarative
// content plan.
//
// The plan is an ordered sequence of SlideSpecs, each describing a
// layout, a title and a list of content blocks (bullet lists, tables,
// image rows, rasterized charts and box-and-connector diagrams).
// A Builder materializes the plan into a Presentation, which can then
// be serialized once, to PPTX (pkg/pptx) or PDF (pkg/render).
package scopeiq

import (
	"strings"

	"github.com/roscolil/scopeiq/internal/logging"
)

func SetLogLevel(level string) {
	var lvl logging.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = logging.LevelDebug
	case "info":
		lvl = logging.LevelInfo
	case "warning":
		lvl = logging.LevelWarning
	case "error":
		lvl = logging.LevelError
	default:
		lvl = logging.LevelNone
	}
	logging.SetLevel(lvl)
}
