package cli

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/leeforge/rucaptcha/captcha"
	"github.com/leeforge/rucaptcha/json"
	"github.com/leeforge/rucaptcha/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type generateOptions struct {
	length     int
	complexity int
	width      int
	height     int
	line       bool
	noise      bool
	circle     bool
	format     string

	count    int
	parallel int
	out      string
	asJSON   bool
}

// record is one JSON line emitted by `generate --json`.
type record struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Format      string `json:"format"`
	ContentType string `json:"contentType"`
	Image       string `json:"image"`
	File        string `json:"file,omitempty"`
}

func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate captcha images",
		Long: `Generate one or more captcha images.

Flags override the configuration file. Without --json each image is written
to --out (default: the working directory) and its path and answer are
printed. With --json one record per image is printed to stdout.`,
		Example: `  rucaptcha generate --length 6 --format webp --out ./captchas
  rucaptcha generate --count 10 --noise --complexity 8 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyGenerateFlags(cmd, &opts)
			return c.runGenerate(cmd, opts)
		},
	}

	d := captcha.DefaultConfig()
	img := d.Image
	cmd.Flags().IntVarP(&opts.length, "length", "l", img.Length, "number of characters")
	cmd.Flags().IntVar(&opts.complexity, "complexity", img.Complexity, "noise intensity, clamped to [1,10]")
	cmd.Flags().IntVar(&opts.width, "width", img.Width, "canvas width in pixels (min 25)")
	cmd.Flags().IntVar(&opts.height, "height", img.Height, "canvas height in pixels (min 15)")
	cmd.Flags().BoolVar(&opts.line, "line", img.Line, "draw interference curves (only with --circle)")
	cmd.Flags().BoolVar(&opts.noise, "noise", img.Noise, "add gaussian noise")
	cmd.Flags().BoolVar(&opts.circle, "circle", img.Circle, "draw interference shapes")
	cmd.Flags().StringVarP(&opts.format, "format", "f", img.Format, "output format: png, jpeg, webp")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 1, "number of captchas to generate")
	cmd.Flags().IntVarP(&opts.parallel, "parallel", "p", d.Parallel, "maximum concurrent builds")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory for image files")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print JSON records instead of file paths")

	return cmd
}

// applyGenerateFlags fills unset flags from configuration so explicit flags win.
func (c *CLI) applyGenerateFlags(cmd *cobra.Command, opts *generateOptions) {
	img := c.app.Captcha.Image
	flags := cmd.Flags()

	if !flags.Changed("length") {
		opts.length = img.Length
	}
	if !flags.Changed("complexity") {
		opts.complexity = img.Complexity
	}
	if !flags.Changed("width") {
		opts.width = img.Width
	}
	if !flags.Changed("height") {
		opts.height = img.Height
	}
	if !flags.Changed("line") {
		opts.line = img.Line
	}
	if !flags.Changed("noise") {
		opts.noise = img.Noise
	}
	if !flags.Changed("circle") {
		opts.circle = img.Circle
	}
	if !flags.Changed("format") {
		opts.format = img.Format
	}
	if !flags.Changed("parallel") {
		opts.parallel = c.app.Captcha.Parallel
	}
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts generateOptions) error {
	fonts, err := captcha.LoadFonts(c.logger, c.app.Captcha.Fonts...)
	if err != nil {
		return err
	}

	b := captcha.NewBuilder().
		Length(opts.length).
		Complexity(opts.complexity).
		Size(opts.width, opts.height).
		Line(opts.line).
		Noise(opts.noise).
		Circle(opts.circle).
		Format(opts.format).
		Fonts(fonts).
		Logger(c.logger)

	start := time.Now()
	results, err := captcha.GenerateBatch(cmd.Context(), b, opts.count, opts.parallel)
	if err != nil {
		return err
	}
	c.logger.Debug("batch generated",
		zap.Int("count", len(results)),
		zap.Int("parallel", opts.parallel),
		zap.Duration("took", time.Since(start)),
	)

	dir := opts.out
	if dir == "" && !opts.asJSON {
		dir = "."
	}

	enc := json.NewEncoder(c.out)
	for i, res := range results {
		var file string
		if dir != "" {
			file = filepath.Join(dir, fmt.Sprintf("captcha-%03d%s", i+1, res.Format.Extension()))
			if err := utils.WriteFile(file, res.Image); err != nil {
				return err
			}
		}

		if !opts.asJSON {
			fmt.Fprintf(c.out, "%s\t%s\n", file, res.Text)
			continue
		}

		rec := &record{
			ID:          uuid.NewString(),
			Text:        res.Text,
			Format:      res.Format.String(),
			ContentType: res.Format.ContentType(),
			Image:       base64.StdEncoding.EncodeToString(res.Image),
			File:        file,
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}

	return nil
}
