package router

import (
	"context"
	"net"

	"github.com/cockroachdb/errors"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/logger"
)

func shouldRetry(logger *logger.Logger, err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		logger.Debugw("retrying due to network timeout", "error", netErr)
		return true
	}

	// another pass holds the order, the next attempt will get it
	if ierr.IsLocked(err) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	if ierr.IsConfiguration(err) ||
		ierr.IsValidation(err) ||
		ierr.IsNotFound(err) ||
		ierr.IsPermissionDenied(err) {
		logger.Debugw("non-retryable handler error", "error", err)
		return false
	}

	return true
}
