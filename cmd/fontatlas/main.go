/*
Command fontatlas renders the printable ASCII characters of a font into a
packed texture atlas and writes it to a binary file.

Usage:

	fontatlas [flags] font_path font_size bin_width bin_height output_path [show_bin_preview] [show_glyph_debug]

Numeric arguments must consist of decimal digits only. The optional
arguments enable the texture preview and the glyph metrics table if they
are TRUE.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/fontatlas/backend/atlasfile"
	"github.com/npillmayer/fontatlas/backend/preview"
	"github.com/npillmayer/fontatlas/core"
	"github.com/npillmayer/fontatlas/core/locate/resources"
	"github.com/npillmayer/fontatlas/core/parameters"
	"github.com/npillmayer/fontatlas/engine/atlas"
	"github.com/npillmayer/fontatlas/engine/atlas/binpack"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// tracer traces with key 'fontatlas.atlas'
func tracer() tracing.Trace {
	return tracing.Select("fontatlas.atlas")
}

var traceKeys = []string{
	"fontatlas.fonts",
	"fontatlas.resources",
	"fontatlas.atlas",
	"fontatlas.binpack",
	"fontatlas.export",
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = "Error"
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	os.Exit(run(os.Args[1:], os.Stdout))
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// errUsage flags command-line errors, for which usage is printed.
var errUsage = errors.New("usage")

// run executes the command and returns the process exit status.
func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("fontatlas", flag.ContinueOnError)
	fs.SetOutput(out)
	tlevel := fs.String("trace", "Error", "Trace level [Debug|Info|Error]")
	rasterizer := fs.String("rasterizer", "opentype", "Glyph rasterizer [opentype|truetype]")
	packer := fs.String("packer", "maxrects", "Rectangle packer [maxrects|shelf]")
	heuristic := fs.String("heuristic", "bssf", "MaxRects heuristic [bssf|blsf|baf|bl|cp]")
	norotate := fs.Bool("norotate", false, "Do not place glyphs rotated")
	layout := fs.String("layout", "legacy", "Atlas file layout [legacy|versioned]")
	strict := fs.Bool("strict", false, "Fail for characters missing from the font")
	pngpath := fs.String("png", "", "Write a preview image to this path")
	fs.Usage = func() {
		fmt.Fprintln(out, "Usage: fontatlas [flags] font_path font_size bin_width bin_height output_path [show_bin_preview] [show_glyph_debug]")
		fs.PrintDefaults()
		fmt.Fprintf(out, "Packaged fonts: %s\n", strings.Join(resources.PackagedFonts(), ", "))
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return core.EINVALID
	}
	setTraceLevel(*tlevel)
	conf, err := positional(fs.Args())
	if err != nil {
		pterm.Error.Println(core.UserMessage(err))
		fs.Usage()
		return core.ExitCode(err)
	}
	conf[parameters.KeyRasterizer] = *rasterizer
	conf[parameters.KeyPacker] = *packer
	conf[parameters.KeyHeuristic] = *heuristic
	conf[parameters.KeyRotate] = fmt.Sprintf("%v", !*norotate)
	conf[parameters.KeyLayout] = *layout
	conf[parameters.KeyStrict] = fmt.Sprintf("%v", *strict)
	conf[parameters.KeyPNG] = *pngpath
	params, err := parameters.FromConfig(conf)
	if err != nil {
		pterm.Error.Println(core.UserMessage(err))
		fs.Usage()
		return core.ExitCode(err)
	}
	if err = generate(params, out); err != nil {
		tracer().Errorf("%v", err)
		pterm.Error.Println(core.UserMessage(err))
		return core.ExitCode(err)
	}
	return 0
}

var positionalNames = []string{"font_path", "font_size", "bin_width", "bin_height", "output_path"}

// positional maps the positional arguments to configuration keys.
func positional(args []string) (testconfig.Conf, error) {
	if len(args) < len(positionalNames) {
		return nil, core.WrapError(errUsage, core.EINVALID, "Not enough arguments")
	}
	if len(args) > len(positionalNames)+2 {
		return nil, core.WrapError(errUsage, core.EINVALID, "Too many arguments")
	}
	for i := 1; i <= 3; i++ {
		if !parameters.IsNumber(args[i]) {
			return nil, core.WrapError(errUsage, core.EINVALID, "%s is not a valid number", positionalNames[i])
		}
	}
	enabled := func(i int) string {
		return fmt.Sprintf("%v", len(args) > i && args[i] == "TRUE")
	}
	return testconfig.Conf{
		parameters.KeyFont:       args[0],
		parameters.KeyFontSize:   args[1],
		parameters.KeyWidth:      args[2],
		parameters.KeyHeight:     args[3],
		parameters.KeyOutput:     args[4],
		parameters.KeyPreview:    enabled(5),
		parameters.KeyGlyphDebug: enabled(6),
	}, nil
}

func setTraceLevel(level string) {
	l := tracing.LevelError
	switch strings.ToLower(level) {
	case "debug":
		l = tracing.LevelDebug
	case "info":
		l = tracing.LevelInfo
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
}

// generate runs the pipeline. The atlas file is written only if all glyphs
// could be rasterized and packed.
func generate(params parameters.AtlasParameters, out io.Writer) error {
	tc, err := resources.ResolveTypeCase(params.FontName, params.PixelSize, params.Rasterizer)
	if err != nil {
		return err
	}
	f := tc.ScalableFontParent()
	tracer().Infof("using font %s from %s", f.Fontname, f.Filepath)
	src := atlas.NewFaceSource(tc)
	src.Strict = params.StrictGlyphs
	packer, err := binpack.New(params.Packer, params.Width, params.Height,
		params.Heuristic, params.AllowRotation)
	if err != nil {
		return err
	}
	a, err := atlas.Generate(src, atlas.Options{
		Width:  params.Width,
		Height: params.Height,
		Packer: packer,
	})
	if err != nil {
		return err
	}
	if params.ShowGlyphData {
		if err = preview.PrintGlyphs(a.Glyphs); err != nil {
			return core.WrapError(err, core.EIO, "could not print glyph data")
		}
	}
	if err = atlasfile.WriteFile(params.Output, a, params.Layout); err != nil {
		return err
	}
	pterm.Success.Printfln("%d characters packed into %d×%d (%.1f%% occupied), written to %s",
		a.Stats.Packed, a.Width, a.Height, 100*a.Stats.Occupancy, params.Output)
	if params.ShowPreview {
		if err = preview.Terminal(out, a, terminalWidth()); err != nil {
			return err
		}
	}
	if params.PreviewPNG != "" {
		scale := max(1, 512/max(a.Width, a.Height))
		if err = preview.WritePNG(params.PreviewPNG, a, scale); err != nil {
			return err
		}
		pterm.Info.Printfln("preview image written to %s", params.PreviewPNG)
	}
	return nil
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
