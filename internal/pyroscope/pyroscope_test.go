package pyroscope

import (
	"context"
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/harvestlane/backoffice/internal/config"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(profileTypes ...string) *Service {
	cfg := config.GetDefaultConfig()
	cfg.Pyroscope.ProfileTypes = profileTypes
	return NewPyroscopeService(cfg, logger.NewNoopLogger())
}

func TestProfileTypes(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  []pyroscope.ProfileType
	}{
		{
			name: "defaults",
			want: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileInuseSpace,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileGoroutines,
			},
		},
		{
			name:  "configured types keep their order",
			names: []string{"CPU", " mutex_duration", "block_count"},
			want:  []pyroscope.ProfileType{pyroscope.ProfileCPU, pyroscope.ProfileMutexDuration, pyroscope.ProfileBlockCount},
		},
		{
			name:  "unknown types are skipped",
			names: []string{"heap", "goroutines"},
			want:  []pyroscope.ProfileType{pyroscope.ProfileGoroutines},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newTestService(tt.names...).profileTypes())
		})
	}
}

func TestDisabledProfiler(t *testing.T) {
	svc := newTestService()
	require.False(t, svc.IsEnabled())

	require.NoError(t, svc.Start())
	assert.Nil(t, svc.profiler)
	require.NoError(t, svc.Stop())

	ran := false
	svc.TagWrapper(context.Background(), map[string]string{"operation": "recreate_all_fees"}, func(ctx context.Context) {
		ran = true
	})
	assert.True(t, ran)
}
