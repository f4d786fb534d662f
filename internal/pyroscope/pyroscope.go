package pyroscope

import (
	"context"
	"sort"
	"strings"

	"github.com/grafana/pyroscope-go"
	"github.com/ledgerline/invoice-service/internal/config"
	"github.com/ledgerline/invoice-service/internal/logger"
	"github.com/ledgerline/invoice-service/internal/types"
	"go.uber.org/fx"
)

type Service struct {
	cfg      *config.Configuration
	logger   *logger.Logger
	profiler *pyroscope.Profiler
}

// Module provides fx options for Pyroscope
func Module() fx.Option {
	return fx.Options(
		fx.Provide(NewPyroscopeService),
		fx.Invoke(RegisterHooks),
	)
}

// RegisterHooks starts continuous profiling on start and stops the upload
// loop on stop
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

// NewPyroscopeService creates a new Pyroscope service
func NewPyroscopeService(cfg *config.Configuration, logger *logger.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logger,
	}
}

// IsEnabled returns whether Pyroscope profiling is enabled
func (s *Service) IsEnabled() bool {
	return s != nil && s.cfg.Pyroscope.Enabled
}

func (s *Service) Start() error {
	if !s.IsEnabled() {
		s.logger.Info("Pyroscope profiling is disabled")
		return nil
	}

	pc := s.cfg.Pyroscope
	profileTypes := s.getProfileTypes()

	s.logger.Infow("Starting Pyroscope",
		"server_address", pc.ServerAddress,
		"application_name", pc.ApplicationName,
		"has_basic_auth", pc.BasicAuthUser != "",
		"sample_rate", pc.SampleRate,
		"profile_types", pc.ProfileTypes,
	)

	pyroscopeConfig := pyroscope.Config{
		ApplicationName: pc.ApplicationName,
		ServerAddress:   pc.ServerAddress,
		ProfileTypes:    profileTypes,
		SampleRate:      pc.SampleRate,
		DisableGCRuns:   pc.DisableGCRuns,
		Logger:          s,
	}
	if pc.BasicAuthUser != "" {
		pyroscopeConfig.BasicAuthUser = pc.BasicAuthUser
		pyroscopeConfig.BasicAuthPassword = pc.BasicAuthPass
	}

	profiler, err := pyroscope.Start(pyroscopeConfig)
	if err != nil {
		s.logger.Errorw("Failed to initialize Pyroscope", "error", err)
		return err
	}
	s.profiler = profiler
	s.logger.Infow("Pyroscope profiling initialized successfully",
		"application_name", pc.ApplicationName,
	)
	return nil
}

// Stop flushes the last profiles, it is a no-op when profiling never started
func (s *Service) Stop() error {
	if s == nil || s.profiler == nil {
		return nil
	}
	s.logger.Info("Stopping Pyroscope profiling")
	err := s.profiler.Stop()
	s.profiler = nil
	return err
}

// Debugf, Infof and Errorf satisfy pyroscope.Logger. Debug output is only
// forwarded when the service runs at debug level since the upload loop is chatty.
func (s *Service) Debugf(format string, args ...interface{}) {
	if s.cfg.EffectiveLogLevel() == types.LogLevelDebug {
		s.logger.Debugf("[Pyroscope] "+format, args...)
	}
}

func (s *Service) Infof(format string, args ...interface{}) {
	s.logger.Infof("[Pyroscope] "+format, args...)
}

func (s *Service) Errorf(format string, args ...interface{}) {
	s.logger.Errorf("[Pyroscope] "+format, args...)
}

// getProfileTypes converts string profile types to pyroscope.ProfileType
func (s *Service) getProfileTypes() []pyroscope.ProfileType {
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
	for _, profileType := range s.cfg.Pyroscope.ProfileTypes {
		switch strings.ToLower(strings.TrimSpace(profileType)) {
		case "cpu":
			profileTypes = append(profileTypes, pyroscope.ProfileCPU)
		case "inuse_objects":
			profileTypes = append(profileTypes, pyroscope.ProfileInuseObjects)
		case "alloc_objects":
			profileTypes = append(profileTypes, pyroscope.ProfileAllocObjects)
		case "inuse_space":
			profileTypes = append(profileTypes, pyroscope.ProfileInuseSpace)
		case "alloc_space":
			profileTypes = append(profileTypes, pyroscope.ProfileAllocSpace)
		case "goroutines":
			profileTypes = append(profileTypes, pyroscope.ProfileGoroutines)
		case "mutex_count":
			profileTypes = append(profileTypes, pyroscope.ProfileMutexCount)
		case "mutex_duration":
			profileTypes = append(profileTypes, pyroscope.ProfileMutexDuration)
		case "block_count":
			profileTypes = append(profileTypes, pyroscope.ProfileBlockCount)
		case "block_duration":
			profileTypes = append(profileTypes, pyroscope.ProfileBlockDuration)
		default:
			s.logger.Warnw("Unknown profile type", "type", profileType)
		}
	}

	return profileTypes
}

// TagWrapper runs fn with profiling labels attached to its goroutine
func (s *Service) TagWrapper(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	if !s.IsEnabled() {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(LabelPairs(labels)...), fn)
}

// LabelPairs flattens labels into key, value pairs ordered by key
func LabelPairs(labels map[string]string) []string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(labels)*2)
	for _, k := range keys {
		pairs = append(pairs, k, labels[k])
	}
	return pairs
}
