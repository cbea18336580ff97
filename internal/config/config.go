package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// MemoryConfig holds in-memory/JSON telemetry backend settings.
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// TelemetryConfig holds session-recording backend settings.
type TelemetryConfig struct {
	Type   string       `json:"type" mapstructure:"type"`
	Memory MemoryConfig `json:"memory" mapstructure:"memory"`
}

// ChoreographyConfig holds the camera choreography tuning parameters.
type ChoreographyConfig struct {
	OverviewMultiplier float64
	OverviewZoomMin    float64
	OverviewZoomMax    float64
	VenueZoomMin       float64
	VenueZoomMax       float64

	RotateSpeed   float64
	WheelCooldown time.Duration

	ZoomQuietPeriod        time.Duration
	ZoomCorrectionDuration time.Duration

	ApproachPitchDeg  float64
	ApproachBaseRange float64
	ApproachMaxRange  float64

	FlightMinDuration time.Duration
	FlightMaxDuration time.Duration
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./stagecamlogs")

	viper.SetDefault("choreography.overviewMultiplier", 2.6)
	viper.SetDefault("choreography.overviewZoomMin", 2_000_000.0)
	viper.SetDefault("choreography.overviewZoomMax", 30_000_000.0)
	viper.SetDefault("choreography.venueZoomMin", 500.0)
	viper.SetDefault("choreography.venueZoomMax", 1000.0)
	viper.SetDefault("choreography.rotateSpeed", 0.035)
	viper.SetDefault("choreography.wheelCooldown", "1200ms")
	viper.SetDefault("choreography.zoomQuietPeriod", "150ms")
	viper.SetDefault("choreography.zoomCorrectionDuration", "300ms")
	viper.SetDefault("choreography.approachPitchDeg", -35.0)
	viper.SetDefault("choreography.approachBaseRange", 650.0)
	viper.SetDefault("choreography.approachMaxRange", 950.0)
	viper.SetDefault("choreography.flightMinDuration", "450ms")
	viper.SetDefault("choreography.flightMaxDuration", "1150ms")

	viper.SetDefault("telemetry.type", "memory")
	viper.SetDefault("telemetry.memory.outputDir", "./sessions")
	viper.SetDefault("telemetry.memory.compressOutput", true)

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "stagecam")
	viper.SetDefault("db.sqliteFilePath", "./stagecam_session.db")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "stagecam-metrics")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("api.serverUrl", "http://localhost:5000")
	viper.SetDefault("api.apiKey", "")

	viper.SetConfigName("stagecam.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetTelemetryConfig returns the telemetry backend settings.
func GetTelemetryConfig() TelemetryConfig {
	var cfg TelemetryConfig
	cfg.Type = viper.GetString("telemetry.type")
	cfg.Memory.OutputDir = viper.GetString("telemetry.memory.outputDir")
	cfg.Memory.CompressOutput = viper.GetBool("telemetry.memory.compressOutput")
	return cfg
}

// GetChoreographyConfig returns the camera choreography tuning.
func GetChoreographyConfig() ChoreographyConfig {
	return ChoreographyConfig{
		OverviewMultiplier: viper.GetFloat64("choreography.overviewMultiplier"),
		OverviewZoomMin:    viper.GetFloat64("choreography.overviewZoomMin"),
		OverviewZoomMax:    viper.GetFloat64("choreography.overviewZoomMax"),
		VenueZoomMin:       viper.GetFloat64("choreography.venueZoomMin"),
		VenueZoomMax:       viper.GetFloat64("choreography.venueZoomMax"),

		RotateSpeed:   viper.GetFloat64("choreography.rotateSpeed"),
		WheelCooldown: viper.GetDuration("choreography.wheelCooldown"),

		ZoomQuietPeriod:        viper.GetDuration("choreography.zoomQuietPeriod"),
		ZoomCorrectionDuration: viper.GetDuration("choreography.zoomCorrectionDuration"),

		ApproachPitchDeg:  viper.GetFloat64("choreography.approachPitchDeg"),
		ApproachBaseRange: viper.GetFloat64("choreography.approachBaseRange"),
		ApproachMaxRange:  viper.GetFloat64("choreography.approachMaxRange"),

		FlightMinDuration: viper.GetDuration("choreography.flightMinDuration"),
		FlightMaxDuration: viper.GetDuration("choreography.flightMaxDuration"),
	}
}
