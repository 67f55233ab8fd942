package harness

import (
	"go.uber.org/zap"
)

// Resolver finds elements from a prioritized candidate set so scenarios
// survive ids being renamed between application revisions.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver creates a Resolver. A nil logger disables logging.
func NewResolver(logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{logger: logger}
}

// Resolve returns the element matched by the first candidate that hits.
// Later candidates are not evaluated once one matches. A lookup that fails
// for any reason counts as a miss. When nothing matches, the returned
// *ElementNotFoundError lists every candidate that was attempted.
func (r *Resolver) Resolve(page Page, c Candidates) (Element, error) {
	tried := c.Locators()
	for i, loc := range tried {
		el, err := loc.find(page)
		if err != nil || el == nil {
			r.logger.Debug("Candidate missed.", zap.Stringer("locator", loc), zap.Error(err))
			continue
		}
		if i > 0 {
			r.logger.Debug("Resolved via fallback candidate.",
				zap.Stringer("locator", loc), zap.Int("position", i))
		}
		return el, nil
	}
	return nil, &ElementNotFoundError{Tried: tried}
}
