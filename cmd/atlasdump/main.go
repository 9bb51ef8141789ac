// Command atlasdump rasterizes a font into a glyph atlas and writes the
// atlas, and optionally a rendered line of text, as PNG files.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/gogpu/glyphatlas"
	"github.com/gogpu/glyphatlas/fontload"
	"github.com/gogpu/glyphatlas/raster"
	"github.com/gogpu/glyphatlas/surface"
)

type options struct {
	fontPath string
	families string
	size     float64
	backend  string
	surface  string
	atlas    int
	text     string
	output   string
	preview  string
	verbose  bool
}

func main() {
	var opts options
	flag.StringVar(&opts.fontPath, "font", "", "font file (default: Go Mono)")
	flag.StringVar(&opts.families, "family", "", "comma-separated family names to look up in system font directories")
	flag.Float64Var(&opts.size, "size", fontload.DefaultFontSize, "font size in pixels")
	flag.StringVar(&opts.backend, "raster", raster.DefaultBackend, "rasterizer backend ("+strings.Join(raster.Backends(), ", ")+")")
	flag.StringVar(&opts.surface, "surface", "", "texture surface ("+strings.Join(surface.List(), ", ")+"; default: best available)")
	flag.IntVar(&opts.atlas, "atlas", 512, "atlas width and height")
	flag.StringVar(&opts.text, "text", "", "also render this line of text")
	flag.StringVar(&opts.output, "output", "atlas.png", "atlas output file")
	flag.StringVar(&opts.preview, "preview", "preview.png", "text preview output file")
	flag.BoolVar(&opts.verbose, "v", false, "log cache activity")
	flag.Parse()

	if opts.verbose {
		glyphatlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	stats, err := run(opts)
	if err != nil {
		log.Fatalf("atlasdump: %v", err)
	}
	log.Printf("Atlas saved to %s: %d glyphs, %.1f%% used, %d uploads\n",
		opts.output, stats.glyphs, stats.utilization*100, stats.uploads)
}

type result struct {
	glyphs      int
	utilization float64
	uploads     uint64
}

func run(opts options) (result, error) {
	variants, err := loadVariants(opts)
	if err != nil {
		return result{}, err
	}
	ras, err := raster.New(opts.backend)
	if err != nil {
		return result{}, err
	}
	mem, err := openSurface(opts.surface)
	if err != nil {
		return result{}, err
	}

	cache, err := glyphatlas.New(variants, float32(opts.size), ras, mem,
		glyphatlas.WithAtlasSize(opts.atlas, opts.atlas),
		glyphatlas.WithPrecache(),
	)
	if err != nil {
		return result{}, err
	}
	defer cache.Close()

	var line []glyphatlas.PositionedGlyph
	var width float32
	if opts.text != "" {
		line, width = cache.PositionString(nil, opts.text, 0, 0, glyphatlas.StyleRegular)
	}
	if err := cache.Flush(); err != nil {
		return result{}, err
	}

	atlas, ok := mem.Image(cache.Texture())
	if !ok {
		return result{}, fmt.Errorf("atlas texture %d missing", cache.Texture())
	}
	if err := savePNG(opts.output, atlasToGray(atlas)); err != nil {
		return result{}, err
	}

	if opts.text != "" {
		img := renderLine(atlas, line, int(width+0.5), int(cache.LineHeight()+0.5))
		if err := savePNG(opts.preview, img); err != nil {
			return result{}, err
		}
	}

	st := cache.Stats()
	return result{
		glyphs:      cache.Len(),
		utilization: cache.Utilization(),
		uploads:     st.Uploads,
	}, nil
}

// openSurface picks a surface from the registry. The atlas is read back for
// the PNG output, so only surfaces with CPU-side storage are accepted.
func openSurface(name string) (*surface.Memory, error) {
	var (
		s   glyphatlas.Surface
		err error
	)
	if name == "" {
		s, err = surface.New(surface.Options{})
	} else {
		s, err = surface.NewByName(name, surface.Options{})
	}
	if err != nil {
		return nil, err
	}
	mem, ok := s.(*surface.Memory)
	if !ok {
		return nil, fmt.Errorf("surface %T cannot be read back", s)
	}
	return mem, nil
}

func loadVariants(opts options) (*glyphatlas.FontVariants, error) {
	switch {
	case opts.fontPath != "":
		// #nosec G304 -- font path is provided by the user
		data, err := os.ReadFile(opts.fontPath)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		return glyphatlas.NewFontVariants(data), nil
	case opts.families != "":
		cfg := fontload.DefaultConfig()
		cfg.Families = strings.Split(opts.families, ",")
		for i := range cfg.Families {
			cfg.Families[i] = strings.TrimSpace(cfg.Families[i])
		}
		cfg.Size = float32(opts.size)
		return fontload.Load(cfg)
	default:
		return glyphatlas.NewFontVariants(gomono.TTF), nil
	}
}

// atlasToGray maps coverage to white-on-black for viewing.
func atlasToGray(atlas image.Image) *image.Gray {
	b := atlas.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := atlas.At(x, y).RGBA()
			out.SetGray(x, y, color.Gray{Y: uint8(a >> 8)})
		}
	}
	return out
}

// renderLine composites positioned glyphs the way the quad shader does:
// atlas coverage masks a solid foreground color.
func renderLine(atlas image.Image, glyphs []glyphatlas.PositionedGlyph, w, h int) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.RGBA{0x1e, 0x1e, 0x2e, 0xff}), image.Point{}, draw.Src)
	fg := image.NewUniform(color.RGBA{0xcd, 0xd6, 0xf4, 0xff})

	ab := atlas.Bounds()
	for _, g := range glyphs {
		src := image.Point{
			X: int(g.UVMin[0]*float32(ab.Dx()) + 0.5),
			Y: int(g.UVMin[1]*float32(ab.Dy()) + 0.5),
		}
		x, y := int(g.X+0.5), int(g.Y+0.5)
		r := image.Rect(x, y, x+int(g.Width), y+int(g.Height))
		draw.DrawMask(dst, r, fg, image.Point{}, atlas, src, draw.Over)
	}
	return dst
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path) // #nosec G304 -- output path is provided by the user
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
