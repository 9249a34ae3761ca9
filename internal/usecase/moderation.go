package usecase

import (
	"context"
	"fmt"

	"github.com/MexicoHamburger/Copoto/internal/adapters/moderation"
	"github.com/MexicoHamburger/Copoto/internal/domain"
	pkglog "github.com/MexicoHamburger/Copoto/pkg/log"
)

// checkModeration runs the classifier over each text before a content
// mutation persists anything. When the classifier is unreachable the
// fail-open policy decides: open treats the content as not flagged, closed
// rejects the mutation.
func checkModeration(ctx context.Context, classifier moderation.Classifier, failOpen bool, logger pkglog.Logger, texts ...string) error {
	if classifier == nil {
		return nil
	}
	for _, text := range texts {
		flagged, err := classifier.Classify(ctx, text)
		if err != nil {
			if failOpen {
				logger.Warn().Err(err).Msg("moderation classifier unreachable, failing open")
				continue
			}
			return fmt.Errorf("moderation classifier unreachable: %w", err)
		}
		if flagged {
			return domain.ErrModerationRejected
		}
	}
	return nil
}
