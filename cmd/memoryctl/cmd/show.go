package cmd

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/cbodonnell/memoryline/pkg/assets"
	"github.com/cbodonnell/memoryline/pkg/memory"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [image]",
	Short: "Render an image value as ANSI art",
	Long: `Show looks an image value up under <assets>/images and draws it in the terminal
with half-block characters, which is a quick way to check a catalog's artwork.`,
	Example: `  memoryctl show apple.png
  memoryctl show --assets ./assets --width 24 banana.png`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("assets")
		width, _ := cmd.Flags().GetInt("width")
		if width <= 0 {
			width = min(terminalWidth(), 40)
		}

		path, err := assets.NewResolver(dir).ImagePath(memory.Value(args[0]))
		if err != nil {
			return err
		}
		img, err := assets.DecodeImage(path, 0, 0)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), imageToANSI(img, width))
		return nil
	},
}

func init() {
	showCmd.Flags().String("assets", "assets", "Directory holding images/ and sounds/")
	showCmd.Flags().Int("width", 0, "Width in characters (default terminal width, at most 40)")
}

// imageToANSI draws img width characters wide. Each character covers two
// pixel rows: the upper half is the foreground of ▀, the lower half its background.
func imageToANSI(img image.Image, width int) string {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 || width <= 0 {
		return ""
	}
	// terminal cells are about twice as tall as wide, which the half blocks cancel out
	height := max(bounds.Dy()*width/bounds.Dx(), 2)
	height += height % 2
	resized := resize.Resize(uint(width), uint(height), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			upper, _ := colorful.MakeColor(colorAt(resized, x, y))
			lower, _ := colorful.MakeColor(colorAt(resized, x, y+1))
			ur, ug, ub := upper.RGB255()
			lr, lg, lb := lower.RGB255()
			fmt.Fprintf(&buffer, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", ur, ug, ub, lr, lg, lb)
		}
		buffer.WriteString("\x1b[0m\n")
	}
	return buffer.String()
}

// colorAt returns the color at a coordinate relative to the image origin,
// opaque black outside the image or for fully transparent pixels.
func colorAt(img image.Image, x, y int) color.Color {
	bounds := img.Bounds()
	p := image.Pt(bounds.Min.X+x, bounds.Min.Y+y)
	if !p.In(bounds) {
		return color.Black
	}
	c := img.At(p.X, p.Y)
	if _, _, _, a := c.RGBA(); a == 0 {
		return color.Black
	}
	return c
}
