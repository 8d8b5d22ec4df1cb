package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kpfaulkner/avif-go/codec"
	"github.com/kpfaulkner/avif-go/color"
	"github.com/kpfaulkner/avif-go/container"
	"github.com/kpfaulkner/avif-go/core"
	"github.com/kpfaulkner/avif-go/metadata"
	"github.com/kpfaulkner/avif-go/util"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Show dimensions, depth and colour information",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]
	decoder := core.NewAVIFDecoder(codec.NewDecoder(), nil, decoderOptions())

	header, err := decoder.ReadHeader(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	profile, err := decoder.ReadColorProfile(path)
	if err != nil {
		return fmt.Errorf("reading colour profile of %s: %w", path, err)
	}

	printIdentity(cmd.OutOrStdout(), path, header, profile)
	return nil
}

func printIdentity(w io.Writer, path string, header *container.Container, profile *color.Profile) {
	fmt.Fprintf(w, "File:        %s\n", path)
	fmt.Fprintf(w, "Brand:       %s %v\n", header.MajorBrand, header.CompatibleBrands)
	fmt.Fprintf(w, "Dimensions:  %d x %d\n", header.Width, header.Height)
	fmt.Fprintf(w, "Bit depth:   %d\n", header.Depth)
	if header.AV1C != nil {
		fmt.Fprintf(w, "Chroma:      %s\n", header.AV1C.PixelFormat())
	}
	fmt.Fprintf(w, "Frames:      %d\n", header.ImageCount)
	if header.Rotation != 0 || header.Mirror != container.MirrorNone {
		fmt.Fprintf(w, "Transform:   rotation %d, mirror %d\n", header.Rotation, header.Mirror)
	}
	if header.CLLI != nil {
		fmt.Fprintf(w, "Light level: MaxCLL %d, MaxPALL %d\n", header.CLLI.MaxCLL, header.CLLI.MaxPALL)
	}

	if profile.HasICCProfile() {
		fmt.Fprintf(w, "ICC profile: %d bytes\n", len(profile.ICC))
		if h, err := color.ParseICCHeader(profile.ICC); err != nil {
			fmt.Fprintf(w, "  invalid: %v\n", err)
		} else {
			fmt.Fprintf(w, "  Version:     %s\n", h.VersionString())
			fmt.Fprintf(w, "  Class:       %s\n", h.Class)
			fmt.Fprintf(w, "  Color space: %s\n", h.ColorSpace)
			fmt.Fprintf(w, "  PCS:         %s\n", h.PCS)
		}
	} else {
		fmt.Fprintf(w, "Colour:      %s\n", profile.Type)
		fmt.Fprintf(w, "  CICP:        %d/%d/%d (%s)\n", profile.Primaries, profile.Transfer, profile.Matrix, profile)
		fmt.Fprintf(w, "  Range:       %s\n", util.IfThenElse(profile.FullRange, "full", "limited"))
		if cp, ok := profile.Primaries.Chromaticities(); ok {
			fmt.Fprintf(w, "  Primaries:   R%s G%s B%s W%s\n", cp.Red, cp.Green, cp.Blue, cp.White)
		}
	}

	if len(header.Exif) > 0 {
		x, err := metadata.DecodeExif(header.Exif)
		if err != nil {
			fmt.Fprintf(w, "Exif:        present but invalid: %v\n", err)
			return
		}
		s := metadata.Summarise(x)
		fmt.Fprintf(w, "Camera:      %s %s\n", s.Make, s.Model)
		if !s.DateTime.IsZero() {
			fmt.Fprintf(w, "Taken:       %s\n", s.DateTime.Format("2006-01-02 15:04:05"))
		}
	}
}
