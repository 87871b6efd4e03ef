package middleware

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/types"
	jsoniter "github.com/json-iterator/go"
)

const safeDetailsPrefix = "__json__:"

// ErrorHandler renders the last error a handler attached with c.Error. Hints become the
// message shown to callers, reportable details are passed through, the cause is logged.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := ierr.HTTPStatusFromErr(err)
		requestID := types.GetRequestID(c.Request.Context())

		if status >= http.StatusInternalServerError {
			log.Errorw("request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"request_id", requestID,
				"error", err,
			)
		} else {
			log.Debugw("request rejected",
				"path", c.FullPath(),
				"status", status,
				"error", err,
			)
		}

		c.JSON(status, ierr.ErrorResponse{
			Success: false,
			Error: ierr.ErrorDetail{
				Display:   displayMessage(err),
				Details:   safeDetails(err),
				RequestID: requestID,
			},
		})
	}
}

// GetAllHints is a post-order traversal, the first non-empty hint is the innermost one
func displayMessage(err error) string {
	for _, hint := range errors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	return "An unexpected error occurred"
}

func safeDetails(err error) map[string]any {
	details := make(map[string]any)

	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			raw, ok := strings.CutPrefix(payload, safeDetailsPrefix)
			if !ok {
				continue
			}
			var decoded map[string]any
			if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(raw, &decoded); err != nil {
				continue
			}
			for k, v := range decoded {
				details[k] = v
			}
		}
	}

	if len(details) == 0 {
		return nil
	}
	return details
}
