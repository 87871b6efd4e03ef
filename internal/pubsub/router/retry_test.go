package router

import (
	"context"
	"net"
	"testing"

	"github.com/cockroachdb/errors"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestShouldRetry(t *testing.T) {
	log := logger.NewNoopLogger()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"network timeout", errors.Wrap(timeoutErr{}, "publishing"), true},
		{"order locked", ierr.NewError("busy").Mark(ierr.ErrLocked), true},
		{"deadline", errors.Wrap(context.DeadlineExceeded, "recalculating"), true},
		{"database", ierr.NewError("connection reset").Mark(ierr.ErrDatabase), true},
		{"unknown", errors.New("boom"), true},
		{"configuration", ierr.NewError("bad unit").Mark(ierr.ErrConfiguration), false},
		{"validation", ierr.NewError("malformed").Mark(ierr.ErrValidation), false},
		{"not found", ierr.NewError("order gone").Mark(ierr.ErrNotFound), false},
		{"permission denied", ierr.NewError("nope").Mark(ierr.ErrPermissionDenied), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldRetry(log, tt.err))
		})
	}
}
