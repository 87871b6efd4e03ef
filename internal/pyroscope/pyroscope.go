package pyroscope

import (
	"context"
	"strings"

	"github.com/grafana/pyroscope-go"
	"github.com/harvestlane/backoffice/internal/config"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/types"
	"go.uber.org/fx"
)

type Service struct {
	cfg      *config.Configuration
	logger   *logger.Logger
	profiler *pyroscope.Profiler
}

// Module provides fx options for continuous profiling
func Module() fx.Option {
	return fx.Options(
		fx.Provide(NewPyroscopeService),
		fx.Invoke(RegisterHooks),
	)
}

func NewPyroscopeService(cfg *config.Configuration, logger *logger.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logger,
	}
}

// RegisterHooks starts the profiler with the application and flushes it on shutdown
func RegisterHooks(lc fx.Lifecycle, svc *Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return svc.Start()
		},
		OnStop: func(ctx context.Context) error {
			return svc.Stop()
		},
	})
}

func (s *Service) Start() error {
	if !s.IsEnabled() {
		s.logger.Info("pyroscope profiling is disabled")
		return nil
	}

	cfg := s.cfg.Pyroscope
	profileTypes := s.profileTypes()

	pyroscopeConfig := pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		ProfileTypes:    profileTypes,
		SampleRate:      cfg.SampleRate,
		DisableGCRuns:   cfg.DisableGCRuns,
		Tags:            map[string]string{"mode": string(s.cfg.Deployment.Mode)},
		Logger:          s,
	}
	if cfg.BasicAuthUser != "" {
		pyroscopeConfig.BasicAuthUser = cfg.BasicAuthUser
		pyroscopeConfig.BasicAuthPassword = cfg.BasicAuthPass
	}

	profiler, err := pyroscope.Start(pyroscopeConfig)
	if err != nil {
		s.logger.Errorw("failed to start pyroscope", "error", err)
		return err
	}
	s.profiler = profiler

	s.logger.Infow("pyroscope profiling started",
		"application_name", cfg.ApplicationName,
		"server_address", cfg.ServerAddress,
		"has_basic_auth", cfg.BasicAuthUser != "",
		"sample_rate", cfg.SampleRate,
		"profile_types", profileTypes,
	)
	return nil
}

func (s *Service) Stop() error {
	if s.profiler == nil {
		return nil
	}
	s.logger.Info("stopping pyroscope profiling")
	return s.profiler.Stop()
}

func (s *Service) IsEnabled() bool {
	return s.cfg.Pyroscope.Enabled
}

// TagWrapper runs fn with profiling labels attached, e.g. the operation of a fee pass
func (s *Service) TagWrapper(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	if !s.IsEnabled() {
		fn(ctx)
		return
	}

	pairs := make([]string, 0, len(labels)*2)
	for key, value := range labels {
		pairs = append(pairs, key, value)
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

var profileTypesByName = map[string]pyroscope.ProfileType{
	"cpu":            pyroscope.ProfileCPU,
	"inuse_objects":  pyroscope.ProfileInuseObjects,
	"alloc_objects":  pyroscope.ProfileAllocObjects,
	"inuse_space":    pyroscope.ProfileInuseSpace,
	"alloc_space":    pyroscope.ProfileAllocSpace,
	"goroutines":     pyroscope.ProfileGoroutines,
	"mutex_count":    pyroscope.ProfileMutexCount,
	"mutex_duration": pyroscope.ProfileMutexDuration,
	"block_count":    pyroscope.ProfileBlockCount,
	"block_duration": pyroscope.ProfileBlockDuration,
}

func (s *Service) profileTypes() []pyroscope.ProfileType {
	if len(s.cfg.Pyroscope.ProfileTypes) == 0 {
		return []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileGoroutines,
		}
	}

	var profileTypes []pyroscope.ProfileType
	for _, name := range s.cfg.Pyroscope.ProfileTypes {
		profileType, ok := profileTypesByName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			s.logger.Warnw("unknown pyroscope profile type", "type", name)
			continue
		}
		profileTypes = append(profileTypes, profileType)
	}
	return profileTypes
}

// Debugf, Infof and Errorf make the service the profiler's logger
func (s *Service) Debugf(format string, args ...interface{}) {
	if s.cfg.Logging.Level == types.LogLevelDebug {
		s.logger.Debugf("[pyroscope] "+format, args...)
	}
}

func (s *Service) Infof(format string, args ...interface{}) {
	s.logger.Infof("[pyroscope] "+format, args...)
}

func (s *Service) Errorf(format string, args ...interface{}) {
	s.logger.Errorf("[pyroscope] "+format, args...)
}
