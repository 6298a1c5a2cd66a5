package report

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/junyangz/newsbrief/internal/types"
)

// Renderer serializes a compiled report into one output format.
type Renderer interface {
	Format() string
	Render(report *types.Report) (string, error)
}

// NewRenderer returns the renderer for format, or ErrUnknownFormat.
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "json":
		return jsonRenderer{}, nil
	case "markdown":
		return markdownRenderer{}, nil
	case "text":
		return textRenderer{}, nil
	case "html":
		return htmlRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownFormat, format)
	}
}

// jsonRenderer emits the canonical lossless form. Key order is the struct
// field order plus Go's sorted map keys, so rendering is deterministic.
type jsonRenderer struct{}

func (jsonRenderer) Format() string { return "json" }

func (jsonRenderer) Render(report *types.Report) (string, error) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	return string(out), nil
}

// sortedSources returns the source-distribution keys in lexical order for
// deterministic text output.
func sortedSources(distribution map[string]int) []string {
	keys := make([]string, 0, len(distribution))
	for k := range distribution {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// orderedKinds returns the kinds present in the distribution, in the fixed
// kind order.
func orderedKinds(distribution map[types.FileKind]types.KindStat) []types.FileKind {
	var kinds []types.FileKind
	for _, kind := range types.KindOrder {
		if _, ok := distribution[kind]; ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}
