package convert

import (
	"context"
	"fmt"
	"image"
	imgcolor "image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"hslc/color"
	"hslc/colorspace"
	"hslc/common"
	"hslc/config"
	"hslc/state"
)

// WheelOptions describes color wheel sampling.
type WheelOptions struct {
	Steps         int
	Saturation    float64
	Lightness     float64
	LabelTemplate string
	SwatchSize    int
	// when not empty swatch strip image is written here
	Out string
	// check inverse conversion of every sample
	Verify bool
}

func (o WheelOptions) validate() error {
	if o.Steps < 2 {
		return fmt.Errorf("number of steps must be at least 2, got %d", o.Steps)
	}
	if o.Saturation < 0 || o.Saturation > 1 {
		return fmt.Errorf("saturation must be in [0,1], got %v", o.Saturation)
	}
	if o.Lightness < 0 || o.Lightness > 1 {
		return fmt.Errorf("lightness must be in [0,1], got %v", o.Lightness)
	}
	if o.SwatchSize < 1 {
		return fmt.Errorf("swatch size must be positive, got %d", o.SwatchSize)
	}
	return nil
}

// Wheel prints hue samples of the color wheel at fixed saturation and lightness.
func Wheel(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("wheel")

	opts := WheelOptions{
		Steps:         env.Cfg.Wheel.Steps,
		Saturation:    env.Cfg.Wheel.Saturation,
		Lightness:     env.Cfg.Wheel.Lightness,
		LabelTemplate: env.Cfg.Wheel.LabelTemplate,
		SwatchSize:    env.Cfg.Wheel.SwatchSize,
		Out:           cmd.String("out"),
		Verify:        cmd.Bool("verify"),
	}
	if cmd.IsSet("steps") {
		opts.Steps = cmd.Int("steps")
	}
	if cmd.IsSet("saturation") {
		opts.Saturation = cmd.Float("saturation")
	}
	if cmd.IsSet("lightness") {
		opts.Lightness = cmd.Float("lightness")
	}
	if cmd.NArg() > 0 {
		log.Warn("Malformed command line, unexpected arguments", zap.Strings("ignoring", cmd.Args().Slice()))
	}

	log.Debug("Wheel starting", zap.Int("steps", opts.Steps), zap.Float64("saturation", opts.Saturation), zap.Float64("lightness", opts.Lightness))
	defer func(start time.Time) {
		log.Debug("Wheel completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	if err := RenderWheel(ctx, env, opts, os.Stdout, config.EnableColorOutput(os.Stdout)); err != nil {
		return err
	}

	if len(opts.Out) > 0 && env.Rpt != nil {
		if err := env.Rpt.StoreCopy("wheel/"+filepath.Base(opts.Out), opts.Out); err != nil {
			log.Warn("Unable to store swatch in debug report", zap.String("file", opts.Out), zap.Error(err))
		}
	}
	return nil
}

// RenderWheel writes one labeled line per sample to out, with 24-bit
// background swatch when colored.
func RenderWheel(ctx context.Context, env *state.LocalEnv, opts WheelOptions, out io.Writer, colored bool) error {
	if err := opts.validate(); err != nil {
		return err
	}

	log := env.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("wheel")

	tmpl, err := parseTemplate(config.LabelTemplateFieldName, opts.LabelTemplate)
	if err != nil {
		return err
	}

	hsl := make([]colorspace.Triple, opts.Steps)
	for i := range hsl {
		hsl[i] = colorspace.Triple{float64(i) / float64(opts.Steps-1), opts.Saturation, opts.Lightness}
	}
	rgb := colorspace.ToRGBBatch(hsl)

	for i := range hsl {
		if err := ctx.Err(); err != nil {
			return err
		}
		c := color.New(common.SpaceHsl, hsl[i][0], hsl[i][1], hsl[i][2])
		label, err := expandTemplate(tmpl, LabelValues{
			Index: i,
			Hue:   hsl[i][0] * 360,
			HSL:   env.Formatter.AsHSL(c),
			RGB:   env.Formatter.AsRGB(c),
		})
		if err != nil {
			return err
		}
		if colored {
			r, g, b := to8bit(rgb[i])
			fmt.Fprintf(out, "%s \033[48;2;%d;%d;%dm%s\033[0m\n", label, r, g, b, strings.Repeat(" ", 8))
		} else {
			fmt.Fprintln(out, label)
		}
	}

	if opts.Verify {
		if err := verifyWheel(ctx, env.Converter, hsl, rgb, log); err != nil {
			return err
		}
	}

	if len(opts.Out) > 0 {
		if err := saveSwatches(opts.Out, rgb, opts.SwatchSize); err != nil {
			return fmt.Errorf("unable to save swatches: %w", err)
		}
		log.Info("Swatches saved", zap.String("file", opts.Out), zap.Int("count", len(rgb)))
	}
	return nil
}

// verifyWheel converts samples back to HSL and logs the largest deviation.
func verifyWheel(ctx context.Context, conv *colorspace.Converter, hsl, rgb []colorspace.Triple, log *zap.Logger) error {
	back, err := conv.ToHSLBatch(ctx, rgb)
	if err != nil {
		return fmt.Errorf("unable to verify wheel: %w", err)
	}

	var worst float64
	for i := range hsl {
		d := math.Abs(back[i][0] - hsl[i][0])
		d = math.Min(d, 1-d)
		if hsl[i][1] == 0 || hsl[i][2] == 0 || hsl[i][2] == 1 {
			// hue is meaningless for achromatic colors
			d = 0
		}
		for j := 1; j < 3; j++ {
			d = math.Max(d, math.Abs(back[i][j]-hsl[i][j]))
		}
		worst = math.Max(worst, d)
	}
	if worst > math.Sqrt(conv.Tolerance()) {
		log.Warn("Inverse conversion deviates from wheel samples", zap.Float64("max deviation", worst))
		return nil
	}
	log.Info("Inverse conversion verified", zap.Int("samples", len(hsl)), zap.Float64("max deviation", worst))
	return nil
}

func saveSwatches(fname string, rgb []colorspace.Triple, size int) error {
	dst := imaging.New(size*len(rgb), size, imgcolor.NRGBA{})
	for i, c := range rgb {
		r, g, b := to8bit(c)
		dst = imaging.Paste(dst, imaging.New(size, size, imgcolor.NRGBA{R: r, G: g, B: b, A: 255}), image.Pt(i*size, 0))
	}
	return imaging.Save(dst, fname, imaging.PNGCompressionLevel(png.BestCompression))
}

func to8bit(c colorspace.Triple) (r, g, b uint8) {
	conv := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return conv(c[0]), conv(c[1]), conv(c[2])
}
