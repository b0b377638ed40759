package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/glasswing-io/sysdash/config"
)

// fileConfig mirrors the config file layout for the generated default.
type fileConfig struct {
	RefreshRate      float64 `yaml:"refresh_rate"`
	MaxHistoryPoints int     `yaml:"max_history_points"`
	Thresholds       struct {
		Warning  float64 `yaml:"warning"`
		Critical float64 `yaml:"critical"`
	} `yaml:"temperature_thresholds"`
	Display struct {
		ShowGPU     bool `yaml:"show_gpu"`
		ShowNetwork bool `yaml:"show_network"`
		GraphHeight int  `yaml:"graph_height"`
		GraphLength int  `yaml:"graph_length"`
	} `yaml:"display"`
	Colors struct {
		Normal   string `yaml:"normal"`
		Warning  string `yaml:"warning"`
		Critical string `yaml:"critical"`
	} `yaml:"colors"`
	Filters struct {
		ExcludeVirtualFilesystems bool `yaml:"exclude_virtual_filesystems"`
		ExcludeLoopDevices        bool `yaml:"exclude_loop_devices"`
		ExcludeSnapMounts         bool `yaml:"exclude_snap_mounts"`
	} `yaml:"filters"`
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long:  "Write the built-in defaults to ~/.config/sysdash/config.yaml as a starting point for customization.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path()
			if path == "" {
				return fmt.Errorf("cannot determine config directory")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := writeDefault(path); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func writeDefault(path string) error {
	d := config.Default()

	var fc fileConfig
	fc.RefreshRate = d.RefreshRate.Seconds()
	fc.MaxHistoryPoints = d.MaxHistoryPoints
	fc.Thresholds.Warning = d.Thresholds.Warning
	fc.Thresholds.Critical = d.Thresholds.Critical
	fc.Display.ShowGPU = d.Display.ShowGPU
	fc.Display.ShowNetwork = d.Display.ShowNetwork
	fc.Display.GraphHeight = d.Display.GraphHeight
	fc.Display.GraphLength = d.Display.GraphLength
	fc.Colors.Normal = d.Colors.Normal
	fc.Colors.Warning = d.Colors.Warning
	fc.Colors.Critical = d.Colors.Critical
	fc.Filters.ExcludeVirtualFilesystems = d.Filters.ExcludeVirtualFilesystems
	fc.Filters.ExcludeLoopDevices = d.Filters.ExcludeLoopDevices
	fc.Filters.ExcludeSnapMounts = d.Filters.ExcludeSnapMounts

	data, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
