package sink

import (
	"encoding/json"

	"github.com/insightdeck/insightdeck/pkg/deck"
	"github.com/insightdeck/insightdeck/pkg/errors"
)

// RenderJSON exports the document as pretty-printed JSON: every placed
// element with its final rectangle, font sizes, and truncation flags. This
// is the layout-result record external tools and tests consume, and it is
// byte-identical across runs with identical inputs.
func RenderJSON(doc *deck.Document) ([]byte, error) {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshaling deck document")
	}
	return append(out, '\n'), nil
}
