// Package fontload discovers terminal fonts on disk and loads them into
// glyphatlas.FontVariants.
//
// Fonts are matched by the family and subfamily names stored in their
// sfnt name tables, not by file name:
//
//	cfg := fontload.DefaultConfig()
//	variants, err := fontload.Load(cfg)
//	if err != nil {
//	    return err
//	}
//	cache, err := glyphatlas.New(variants, cfg.Size, raster.NewXImage(), surf)
//
// Load tries each configured family in order, then a built-in list of
// common monospace families, then any monospace font found, then any font
// at all. Bold, italic and bold-italic faces are taken from the family the
// regular face came from; styles that family lacks are left empty so the
// cache falls back to the regular face.
package fontload
