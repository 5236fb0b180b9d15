package validators

import (
	"fmt"
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var markupPolicy = bluemonday.StrictPolicy()

// PlainText rejects text that carries HTML markup. The text is never
// rewritten: entities and stray angle brackets that are not tags pass.
func PlainText(s string) error {
	if html.UnescapeString(markupPolicy.Sanitize(s)) != html.UnescapeString(s) {
		return fmt.Errorf("%w: %q", ErrMarkup, s)
	}
	return nil
}
