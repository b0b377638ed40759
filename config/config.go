package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/glasswing-io/sysdash/model"
)

// Config holds all user-configurable settings. It is loaded once at
// startup and read-only for the rest of the run.
type Config struct {
	RefreshRate      time.Duration
	MaxHistoryPoints int
	Thresholds       model.Thresholds
	Display          DisplayConfig
	Colors           ColorConfig
	Filters          FilterConfig
}

// DisplayConfig controls which panels are shown and graph geometry.
type DisplayConfig struct {
	ShowGPU     bool
	ShowNetwork bool
	GraphHeight int
	GraphLength int
}

// ColorConfig names the colors used per severity tier.
type ColorConfig struct {
	Normal   string
	Warning  string
	Critical string
}

// FilterConfig controls which mounts are dropped from the disk table.
type FilterConfig struct {
	ExcludeVirtualFilesystems bool
	ExcludeLoopDevices        bool
	ExcludeSnapMounts         bool
}

// knownColors is the palette accepted in the colors section. Anything
// else falls back to the default for that tier.
var knownColors = map[string]bool{
	"black": true, "red": true, "green": true, "yellow": true,
	"blue": true, "magenta": true, "cyan": true, "white": true,
	"gray": true, "orange": true,
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		RefreshRate:      time.Second,
		MaxHistoryPoints: 100,
		Thresholds:       model.Thresholds{Warning: 70, Critical: 80},
		Display: DisplayConfig{
			ShowGPU:     true,
			ShowNetwork: false,
			GraphHeight: 8,
			GraphLength: 100,
		},
		Colors: ColorConfig{
			Normal:   "green",
			Warning:  "yellow",
			Critical: "red",
		},
		Filters: FilterConfig{
			ExcludeVirtualFilesystems: true,
			ExcludeLoopDevices:        true,
			ExcludeSnapMounts:         true,
		},
	}
}

// Path returns the default config location, honoring XDG_CONFIG_HOME.
// Returns empty string if the home directory cannot be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "sysdash", "config.yaml")
}

// Load reads the config file at path (or the default location when path
// is empty) and returns the effective configuration. A missing file is
// not an error. Unknown keys are ignored, missing keys fall back to
// defaults, and invalid values fall back to defaults with a logged
// warning — configuration problems never abort startup.
func Load(path string, log *slog.Logger) *Config {
	cfg := Default()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		p := Path()
		if p == "" {
			return cfg
		}
		v.SetConfigFile(p)
		path = p
	}
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			log.Warn("config unreadable, using defaults", "path", path, "err", err)
		}
		return cfg
	}

	if r := v.GetFloat64("refresh_rate"); r > 0 {
		cfg.RefreshRate = time.Duration(r * float64(time.Second))
	} else {
		log.Warn("invalid refresh_rate, using default", "value", v.Get("refresh_rate"), "default", "1s")
	}

	if n := v.GetInt("max_history_points"); n > 0 {
		cfg.MaxHistoryPoints = n
	} else {
		log.Warn("invalid max_history_points, using default", "value", v.Get("max_history_points"), "default", 100)
	}

	warn := v.GetFloat64("temperature_thresholds.warning")
	crit := v.GetFloat64("temperature_thresholds.critical")
	if warn > 0 && crit > 0 {
		if warn >= crit {
			// Not rejected: the classifier's ordering must hold, so the
			// pair is swapped and the user is told.
			log.Warn("temperature_thresholds.warning >= critical, swapping", "warning", warn, "critical", crit)
			warn, crit = crit, warn
		}
		cfg.Thresholds = model.Thresholds{Warning: warn, Critical: crit}
	} else {
		log.Warn("invalid temperature_thresholds, using defaults", "warning", warn, "critical", crit)
	}

	cfg.Display.ShowGPU = v.GetBool("display.show_gpu")
	cfg.Display.ShowNetwork = v.GetBool("display.show_network")
	if h := v.GetInt("display.graph_height"); h > 0 {
		cfg.Display.GraphHeight = h
	} else {
		log.Warn("invalid display.graph_height, using default", "value", v.Get("display.graph_height"))
	}
	if l := v.GetInt("display.graph_length"); l > 0 {
		cfg.Display.GraphLength = l
	} else {
		log.Warn("invalid display.graph_length, using default", "value", v.Get("display.graph_length"))
	}

	cfg.Colors.Normal = colorOr(v.GetString("colors.normal"), cfg.Colors.Normal, log)
	cfg.Colors.Warning = colorOr(v.GetString("colors.warning"), cfg.Colors.Warning, log)
	cfg.Colors.Critical = colorOr(v.GetString("colors.critical"), cfg.Colors.Critical, log)

	cfg.Filters.ExcludeVirtualFilesystems = v.GetBool("filters.exclude_virtual_filesystems")
	cfg.Filters.ExcludeLoopDevices = v.GetBool("filters.exclude_loop_devices")
	cfg.Filters.ExcludeSnapMounts = v.GetBool("filters.exclude_snap_mounts")

	return cfg
}

func colorOr(name, fallback string, log *slog.Logger) string {
	if knownColors[name] {
		return name
	}
	log.Warn("unknown color name, using default", "value", name, "default", fallback)
	return fallback
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("refresh_rate", d.RefreshRate.Seconds())
	v.SetDefault("max_history_points", d.MaxHistoryPoints)
	v.SetDefault("temperature_thresholds.warning", d.Thresholds.Warning)
	v.SetDefault("temperature_thresholds.critical", d.Thresholds.Critical)
	v.SetDefault("display.show_gpu", d.Display.ShowGPU)
	v.SetDefault("display.show_network", d.Display.ShowNetwork)
	v.SetDefault("display.graph_height", d.Display.GraphHeight)
	v.SetDefault("display.graph_length", d.Display.GraphLength)
	v.SetDefault("colors.normal", d.Colors.Normal)
	v.SetDefault("colors.warning", d.Colors.Warning)
	v.SetDefault("colors.critical", d.Colors.Critical)
	v.SetDefault("filters.exclude_virtual_filesystems", d.Filters.ExcludeVirtualFilesystems)
	v.SetDefault("filters.exclude_loop_devices", d.Filters.ExcludeLoopDevices)
	v.SetDefault("filters.exclude_snap_mounts", d.Filters.ExcludeSnapMounts)
}
