package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/statcard/pkg/card"
	apperr "github.com/matzehuels/statcard/pkg/errors"
	"github.com/matzehuels/statcard/pkg/pipeline"
)

// cardFlags maps render flags to the query keys card.ParseQuery reads, so
// the command line and the HTTP API accept the same parameters.
var cardFlags = []struct {
	flag, short, key, usage string
}{
	{"type", "t", "type", "card type: stats, languages, streak, activity, contribution, quote, banner, custom"},
	{"user", "u", "username", "GitHub username"},
	{"theme", "", "theme", "theme preset (see 'statcard themes')"},
	{"bg", "", "bg", "background color override"},
	{"primary", "", "primary", "primary color override"},
	{"secondary", "", "secondary", "secondary color override"},
	{"text", "", "text", "text color override"},
	{"border", "", "border", "border color override"},
	{"width", "", "width", "card width"},
	{"height", "", "height", "card height"},
	{"radius", "", "radius", "border radius"},
	{"padding", "", "padding", "padding on every side"},
	{"show-border", "", "showBorder", "draw the card border (true|false)"},
	{"animate", "", "animate", "enable entrance animation (true|false)"},
	{"animation", "", "animation", "animation: fadeIn, wave, scaleIn, glow, blink, typing, slideInLeft, slideInRight, slideInUp, bounce, none"},
	{"speed", "", "speed", "animation speed: slow, normal, fast"},
	{"gradient", "", "gradient", "enable background gradient (true|false)"},
	{"gradient-type", "", "gradientType", "gradient type: linear, radial"},
	{"gradient-angle", "", "gradientAngle", "linear gradient angle in degrees"},
	{"gradient-start", "", "gradientStart", "gradient start color"},
	{"gradient-end", "", "gradientEnd", "gradient end color"},
	{"custom-text", "", "customText", "text of the custom card"},
	{"banner-name", "", "bannerName", "banner title"},
	{"banner-description", "", "bannerDescription", "banner subtitle"},
	{"wave", "", "waveStyle", "banner wave style: wave, pulse, flow, glitch"},
	{"quote", "", "quote", "quote text for the quote card"},
	{"author", "", "author", "quote author"},
	{"demo", "", "demo", "fill missing calendar and activity data with a seeded sample (true|false)"},
}

// renderOpts holds the non-card flags of the render command.
type renderOpts struct {
	output   string // output path, "-" for stdout
	format   string // svg or dataurl
	dataFile string // JSON card.Data payload
	offline  bool
	refresh  bool
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts
	values := make(map[string]*string, len(cardFlags))

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a card to SVG",
		Example: `  statcard render -u octocat -t stats --theme dracula -o stats.svg
  statcard render -t quote --quote "Ship it." --author me -o -
  statcard render -t languages --data languages.json --offline`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paramsFromFlags(cmd.Flags(), values, opts.dataFile)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), p, opts)
		},
	}

	for _, f := range cardFlags {
		values[f.flag] = cmd.Flags().StringP(f.flag, f.short, "", f.usage)
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, - for stdout (default <type>.svg)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.FormatSVG, "output format: svg, dataurl")
	cmd.Flags().StringVar(&opts.dataFile, "data", "", "JSON file with card data (skips fetching)")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "never contact GitHub or the quote provider")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached data and cards")

	return cmd
}

// paramsFromFlags builds card parameters from the flags the user set, plus
// an optional data file.
func paramsFromFlags(fs *pflag.FlagSet, values map[string]*string, dataFile string) (card.Params, error) {
	q := url.Values{}
	for _, f := range cardFlags {
		if fs.Changed(f.flag) {
			q.Set(f.key, *values[f.flag])
		}
	}
	p := card.ParseQuery(q)

	if dataFile != "" {
		raw, err := os.ReadFile(dataFile)
		if err != nil {
			return p, fmt.Errorf("read data file: %w", err)
		}
		quote := p.Data.Quote
		if err := json.Unmarshal(raw, &p.Data); err != nil {
			return p, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "parse data file %s", dataFile)
		}
		if quote != nil {
			p.Data.Quote = quote
		}
	}
	return p, nil
}

func (c *CLI) runRender(ctx context.Context, p card.Params, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	svc, err := newServices(ctx, cfg, logger, opts.offline)
	if err != nil {
		return err
	}
	defer svc.Close()

	req := pipeline.Request{Params: p, Format: opts.format, Refresh: opts.refresh, Offline: opts.offline}
	if err := req.Validate(); err != nil {
		return err
	}

	prog := newProgress(logger)
	var res *pipeline.Result
	execute := func() (err error) {
		res, err = svc.runner.Execute(ctx, req)
		return err
	}
	if p.Username != "" && !opts.offline && card.ParseKind(string(p.Type)).NeedsProfile() {
		err = newSpinner(ctx, "Fetching "+p.Username+"...").run(execute)
	} else {
		err = execute()
	}
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := c.out.Write(append(res.SVG, '\n'))
		return err
	}
	path := opts.output
	if path == "" {
		path = defaultOutput(res.Kind, req.Format)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, res.SVG, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	prog.done(fmt.Sprintf("Rendered %s card", res.Kind))
	printFile(path)
	printResult(res)
	return nil
}

func defaultOutput(kind card.Kind, format string) string {
	if format == pipeline.FormatDataURL {
		return string(kind) + ".txt"
	}
	return string(kind) + ".svg"
}
