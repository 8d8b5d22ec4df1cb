package main

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kpfaulkner/avif-go/codec"
	"github.com/kpfaulkner/avif-go/core"
	"github.com/kpfaulkner/avif-go/imageformats"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input.avif] [output]",
	Short: "Decode the first frame and write it as png, tif, hdr, pfm or pfm.zst",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().Int("workers", 0, "goroutines used to normalise pixels (0 uses the config)")
	rootCmd.AddCommand(convertCmd)
}

// outputName appends the configured format when name has no extension we
// can write.
func outputName(name string, format string) string {
	if _, err := imageformats.FormatFromFilename(name); err == nil || format == "" {
		return name
	}
	return name + "." + format
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := outputName(args[1], cfg.Format)

	opts := decoderOptions()
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		opts.MaxGoroutines = workers
	}

	decoder := core.NewAVIFDecoder(codec.NewDecoder(), nil, opts)
	start := time.Now()
	img, err := decoder.LoadImage(input)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", input, err)
	}
	defer decoder.Release(img)
	log.Debugf("decoding took %d ms", time.Since(start).Milliseconds())

	startEncoding := time.Now()
	if err := imageformats.WriteFile(img, output); err != nil {
		return err
	}
	log.Debugf("encoding took %d ms", time.Since(startEncoding).Milliseconds())

	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%dx%d, %s)\n", input, output, img.Width, img.Height, img.Profile)
	return nil
}
