package main

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kpfaulkner/avif-go/options"
)

var (
	configFile string
	debug      bool
	cpuProfile string

	cfg      Config
	profiler interface{ Stop() }
)

var rootCmd = &cobra.Command{
	Use:   "aviftool",
	Short: "Inspect and convert AVIF images",

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = LoadConfig(configFile); err != nil {
			return err
		}
		if cmd.Flags().Changed("debug") {
			cfg.Debug = debug
		}
		if cfg.Debug {
			log.SetLevel(log.DebugLevel)
		}
		if cpuProfile != "" {
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath(cpuProfile), profile.Quiet)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&cpuProfile, "cpuprofile", "", "write a CPU profile into this directory")
}

func decoderOptions() *options.AVIFOptions {
	return &options.AVIFOptions{
		Debug:         cfg.Debug,
		MaxGoroutines: cfg.Workers,
		MaxPixels:     cfg.MaxPixels,
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
