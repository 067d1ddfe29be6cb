package registry

import (
	"errors"
	"fmt"
	"net/url"
)

var errRelativeURL = errors.New("relative URL without a base")

// ValidateIndexURL checks that raw is an absolute URL before it is stored.
func ValidateIndexURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err == nil && !parsed.IsAbs() {
		err = errRelativeURL
	}
	if err != nil {
		return fmt.Errorf("invalid url `%s`: %w", raw, err)
	}
	return nil
}
