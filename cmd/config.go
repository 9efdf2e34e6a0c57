package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"smalipatch.dev/pkg/smalipatch/internal/adapter"
	"smalipatch.dev/pkg/smalipatch/internal/domain"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "smalipatch"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	verboseFlagName  = "verbose"
	classDirFlagName = "class-dir"
	reportFlagName   = "report"
	strictFlagName   = "strict"
	diffFlagName     = "diff"
	markerFlagName   = "marker"
	parallelFlagName = "parallel"
	apiLevelFlagName = "api-level"

	classDirsConfigKey         = "classes.dirs"
	sanitizeMarkerConfigKey    = "sanitize.marker"
	sanitizeParallelConfigKey  = "sanitize.parallel"
	applyStrictConfigKey       = "apply.strict"
	applyDiffConfigKey         = "apply.diff"
	reportOutputConfigKey      = "report.output"
	toolchainJavaConfigKey     = "toolchain.java"
	toolchainBaksmaliConfigKey = "toolchain.baksmali"
	toolchainSmaliConfigKey    = "toolchain.smali"
	toolchainAPILevelConfigKey = "toolchain.api_level"
	toolchainTimeoutConfigKey  = "toolchain.timeout"

	defaultSanitizeParallel = 1
	defaultToolchainJava    = "java"
	defaultToolchainTimeout = time.Minute * 5

	envPrefix = "SMALIPATCH"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".smalipatch.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(classDirsConfigKey, domain.ClassRootNames)
	viper.SetDefault(sanitizeMarkerConfigKey, domain.DefaultSanitizeMarker)
	viper.SetDefault(sanitizeParallelConfigKey, defaultSanitizeParallel)
	viper.SetDefault(applyStrictConfigKey, false)
	viper.SetDefault(applyDiffConfigKey, false)
	viper.SetDefault(reportOutputConfigKey, "")
	viper.SetDefault(toolchainJavaConfigKey, defaultToolchainJava)
	viper.SetDefault(toolchainBaksmaliConfigKey, "")
	viper.SetDefault(toolchainSmaliConfigKey, "")
	viper.SetDefault(toolchainAPILevelConfigKey, 0)
	viper.SetDefault(toolchainTimeoutConfigKey, int64(defaultToolchainTimeout.Seconds()))

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return
		}

		slog.Warn("Failed to read config", "file", viper.ConfigFileUsed(), "error", err)
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	// Create a JSON handler that writes to the file
	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	// Create a new logger with the file handler and set it as the global logger
	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

// toolchainConfig reads the toolchain settings at call time so flags parsed
// after init still apply.
func toolchainConfig() adapter.ToolchainConfig {
	return adapter.ToolchainConfig{
		Java:     viper.GetString(toolchainJavaConfigKey),
		Baksmali: viper.GetString(toolchainBaksmaliConfigKey),
		Smali:    viper.GetString(toolchainSmaliConfigKey),
		APILevel: viper.GetInt(toolchainAPILevelConfigKey),
		Timeout:  time.Duration(viper.GetInt64(toolchainTimeoutConfigKey)) * time.Second,
	}
}

func sanitizeOptions() domain.SanitizeOptions {
	return domain.SanitizeOptions{
		Marker:   viper.GetString(sanitizeMarkerConfigKey),
		Parallel: viper.GetInt(sanitizeParallelConfigKey),
	}
}
