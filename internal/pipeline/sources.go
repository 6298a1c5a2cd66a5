package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/junyangz/newsbrief/internal/types"
)

// ParseAdHoc turns command-line source arguments into Source values. Each
// argument is either a bare URL or a JSON array of source objects; bare URLs
// get synthesized names source_1, source_2, ... by position.
func ParseAdHoc(args []string) ([]types.Source, error) {
	var sources []types.Source

	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}

		if strings.HasPrefix(arg, "[") {
			var parsed []types.Source
			if err := json.Unmarshal([]byte(arg), &parsed); err != nil {
				return nil, fmt.Errorf("parsing source list: %w", err)
			}
			sources = append(sources, parsed...)
			continue
		}

		sources = append(sources, types.Source{
			Name: fmt.Sprintf("source_%d", len(sources)+1),
			URL:  arg,
		})
	}

	return sources, nil
}
