package profiling

import (
	"fmt"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/taycraft/joinery-api/config"
	"github.com/taycraft/joinery-api/pkg/logger"
	"go.uber.org/zap"
)

var profileTypeMap = map[string][]pyroscope.ProfileType{
	"cpu":           {pyroscope.ProfileCPU},
	"alloc_space":   {pyroscope.ProfileAllocSpace},
	"alloc_objects": {pyroscope.ProfileAllocObjects},
	"goroutines":    {pyroscope.ProfileGoroutines},
	"mutex":         {pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration},
	"block":         {pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration},
}

// InitProfiler initializes continuous profiling for the backend.
func InitProfiler(cfg config.ProfilingConfig, serviceName, namespace, version, instanceID, environment string) (func(), error) {
	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled")
		return func() {}, nil
	}

	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("profiling endpoint is required when profiling is enabled")
	}
	if cfg.UploadIntervalSeconds <= 0 {
		cfg.UploadIntervalSeconds = 15
	}

	profileTypes, err := parseProfileTypes(cfg.SampleTypes)
	if err != nil {
		return nil, err
	}

	applicationName := cfg.AppName
	if applicationName == "" {
		applicationName = serviceName
	}

	tags := map[string]string{
		"service_namespace": namespace,
		"service_version":   version,
		"environment":       environment,
	}
	if instanceID != "" {
		tags["service_instance_id"] = instanceID
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: applicationName,
		ServerAddress:   cfg.Endpoint,
		UploadRate:      time.Duration(cfg.UploadIntervalSeconds) * time.Second,
		ProfileTypes:    profileTypes,
		Tags:            tags,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start profiler: %w", err)
	}

	logger.Info("Continuous profiling started",
		zap.String("application", applicationName),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("sample_types", cfg.SampleTypes),
	)

	return func() {
		if stopErr := profiler.Stop(); stopErr != nil {
			logger.Warn("Failed to stop profiler", zap.Error(stopErr))
		}
	}, nil
}

// parseProfileTypes maps the comma-separated sample type list to pyroscope
// profile types. Unknown names are an error so typos surface at startup.
func parseProfileTypes(sampleTypes string) ([]pyroscope.ProfileType, error) {
	var types []pyroscope.ProfileType
	for _, name := range strings.Split(sampleTypes, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		mapped, ok := profileTypeMap[name]
		if !ok {
			return nil, fmt.Errorf("unknown profile sample type: %s", name)
		}
		types = append(types, mapped...)
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("no profile sample types configured")
	}
	return types, nil
}
