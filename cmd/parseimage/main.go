// Command parseimage converts a color-coded map image into a region lookup
// file. Each fixed-size cell of the image is matched against the colors in
// one or more region INI files, and the result is written as
// <worldspace>.map.txt next to an echo of the merged region config,
// <worldspace>.region.txt.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wbrown/regionmap"
	"github.com/wbrown/regionmap/config"
	"github.com/wbrown/regionmap/cvimage"
	"github.com/wbrown/regionmap/imageutil"
	"github.com/wbrown/regionmap/mapfile"
	"github.com/wbrown/regionmap/preview"
)

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type options struct {
	file         string
	dim          string
	threshold    string
	inis         stringList
	out          string
	worldspace   string
	backend      string
	logFile      string
	verbose      bool
	previewPath  string
	previewScale float64
	geojsonPath  string
	svgPath      string
	ansi         bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("parseimage", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.file, "f", "", "Path to the map image (shorthand)")
	fs.StringVar(&o.file, "file", "",
		"Path to the map image; .png, .jpg and .bmp are tried when it doesn't exist")
	fs.StringVar(&o.dim, "d", "", "Partition size (shorthand)")
	fs.StringVar(&o.dim, "dim", "",
		"Partition size in pixels as <X>:<Y> or <X>,<Y> (required)")
	fs.StringVar(&o.threshold, "t", "0", "Pixel threshold (shorthand)")
	fs.StringVar(&o.threshold, "threshold", "0",
		"Minimum percentage (0 - 100) of a cell's pixels a region needs")
	fs.Var(&o.inis, "i", "Region INI or JSON file (shorthand, repeatable)")
	fs.Var(&o.inis, "ini", "Region INI or JSON file (repeatable); "+
		"regions.ini beside the executable is read first when present")
	fs.StringVar(&o.out, "o", ".", "Output directory (shorthand)")
	fs.StringVar(&o.out, "out", ".", "Output directory")
	fs.StringVar(&o.worldspace, "w", "worldspace", "Worldspace name (shorthand)")
	fs.StringVar(&o.worldspace, "worldspace", "worldspace",
		"Worldspace name used for output file names")
	fs.StringVar(&o.backend, "backend", "go", "Image backend: go or opencv")
	fs.StringVar(&o.logFile, "log", "", "Redirect diagnostics to this file")
	fs.BoolVar(&o.verbose, "v", false, "Log every partition")
	fs.StringVar(&o.previewPath, "preview", "", "Write a PNG preview to this path")
	fs.Float64Var(&o.previewScale, "preview-scale", 1, "Scale factor of the PNG preview")
	fs.StringVar(&o.geojsonPath, "geojson", "", "Write region outlines as GeoJSON to this path")
	fs.StringVar(&o.svgPath, "svg", "", "Write region outlines as SVG to this path")
	fs.BoolVar(&o.ansi, "ansi", false, "Print the classified grid to the terminal")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

// parseDim parses "<X>:<Y>" or "<X>,<Y>" into a positive cell size.
func parseDim(s string) (image.Point, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ':' || r == ',' })
	if len(parts) != 2 {
		return image.Point{}, fmt.Errorf("invalid partition size '%s', expected <X>:<Y>", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid partition width '%s'", parts[0])
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid partition height '%s'", parts[1])
	}
	if x <= 0 || y <= 0 {
		return image.Point{}, fmt.Errorf("partition size [ %d x %d ] must be positive", x, y)
	}
	return image.Pt(x, y), nil
}

// parseThreshold parses a whole percentage into a fraction.
func parseThreshold(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid threshold value '%s' contains invalid characters (only digits are allowed)", s)
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil || v > 100 {
		return 0, fmt.Errorf("threshold '%s' is out of range (0 - 100)", s)
	}
	return float64(v) / 100, nil
}

// loadRegions merges regions.ini beside the executable, when present, with
// every file given on the command line.
func loadRegions(files []string) (*config.Loader, *regionmap.ColorMap, error) {
	loader := config.NewLoader()
	if exe, err := os.Executable(); err == nil {
		local := filepath.Join(filepath.Dir(exe), "regions.ini")
		if _, err := os.Stat(local); err == nil {
			log.Printf("Reading region config '%s'", local)
			if err := loader.AddFile(local); err != nil {
				return nil, nil, err
			}
		}
	}
	for _, f := range files {
		log.Printf("Reading region config '%s'", f)
		if err := loader.AddFile(f); err != nil {
			return nil, nil, err
		}
	}
	if loader.Empty() {
		return nil, nil, errors.New("failed to retrieve any valid data from the provided INI config files")
	}

	regions, err := loader.Regions()
	if err != nil {
		return nil, nil, err
	}
	colors, err := regionmap.NewColorMap(regions)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Successfully validated the region config (%d regions).", colors.Len())
	return loader, colors, nil
}

// source is a loaded map image: the raster to scan and, for previews, the
// pixels as a Go image.
type source struct {
	raster regionmap.Raster
	image  func() (*imageutil.RGBAImage, error)
	close  func() error
}

func loadSource(path, backend string) (*source, error) {
	switch backend {
	case "go":
		img, err := imageutil.LoadImage(path)
		if err != nil {
			return nil, err
		}
		return &source{
			raster: regionmap.NewImageRaster(img),
			image:  func() (*imageutil.RGBAImage, error) { return img, nil },
			close:  func() error { return nil },
		}, nil
	case "opencv":
		mat, err := cvimage.Load(path)
		if err != nil {
			return nil, err
		}
		return &source{
			raster: mat,
			image: func() (*imageutil.RGBAImage, error) {
				img, err := mat.Image()
				if err != nil {
					return nil, err
				}
				return imageutil.RGBAImageFromImage(img), nil
			},
			close: mat.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown image backend '%s' (options are go, opencv)", backend)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if o.logFile != "" {
		f, err := os.Create(o.logFile)
		if err != nil {
			return err
		}
		defer f.Close()
		fmt.Fprintf(stdout, "Redirected diagnostics to logfile: %s\n", o.logFile)
		log.SetOutput(f)
		defer log.SetOutput(stderr)
	}

	loader, colors, err := loadRegions(o.inis)
	if err != nil {
		return err
	}

	if o.file == "" {
		return errors.New("nothing to do (no filepath was specified with -f/-file)")
	}
	path, err := imageutil.ResolveImagePath(o.file)
	if err != nil {
		return fmt.Errorf("failed to resolve filepath: %w", err)
	}
	if o.dim == "" {
		return errors.New("no partition size was specified with -d/-dim")
	}
	dim, err := parseDim(o.dim)
	if err != nil {
		return err
	}
	threshold, err := parseThreshold(o.threshold)
	if err != nil {
		return err
	}
	log.Printf("Pixel Threshold:  %g / 1.0  ( %g%% )", threshold, threshold*100)

	if info, err := os.Stat(o.out); err != nil || !info.IsDir() {
		return fmt.Errorf("invalid directory name: '%s'", o.out)
	}

	src, err := loadSource(path, o.backend)
	if err != nil {
		return fmt.Errorf("failed to load image file '%s': %w", path, err)
	}
	defer src.close()
	log.Printf("Successfully loaded image file '%s'", path)
	log.Printf("Partition size:  [ %d x %d ]", dim.X, dim.Y)

	parser := regionmap.NewParser(colors,
		regionmap.WithCellSize(dim.X, dim.Y),
		regionmap.WithThreshold(threshold),
		regionmap.WithVerbose(o.verbose))
	res, err := parser.Scan(src.raster)
	if err != nil {
		return err
	}
	log.Printf("Finished processing image partitions after %v", res.Elapsed)
	fmt.Fprintf(stdout, "%d / %d partitions had valid color map data.\n",
		len(res.Holds), res.Processed)

	for _, s := range regionmap.Summarize(res) {
		log.Printf("%-24s cells=%-5d grid=%5.1f%% coverage=%5.1f%% ±%4.1f area=%g",
			s.Region.EditorID, s.Cells, s.GridFraction*100,
			s.MeanCoverage*100, s.StdDevCoverage*100, s.OutlineArea)
	}

	regionPath := mapfile.RegionPath(o.out, o.worldspace)
	if err := loader.SaveTo(regionPath); err != nil {
		return fmt.Errorf("failed to write region data to '%s': %w", regionPath, err)
	}
	fmt.Fprintf(stdout, "Successfully saved region data to '%s'\n", regionPath)

	mapPath := mapfile.MapPath(o.out, o.worldspace)
	if err := mapfile.SaveText(mapPath, res); err != nil {
		return fmt.Errorf("failed to write map data: %w", err)
	}
	fmt.Fprintf(stdout, "Successfully saved the lookup matrix to '%s'\n", mapPath)

	if o.geojsonPath != "" {
		if err := mapfile.SaveGeoJSON(o.geojsonPath, res); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "GeoJSON output written to %s\n", o.geojsonPath)
	}
	if o.svgPath != "" {
		if err := mapfile.SaveSVG(o.svgPath, res, mapfile.SVGOptions{Labels: true}); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "SVG output written to %s\n", o.svgPath)
	}
	if o.previewPath != "" {
		img, err := src.image()
		if err != nil {
			return err
		}
		opts := preview.DefaultOptions(dim.X, dim.Y)
		opts.Scale = o.previewScale
		if err := preview.Save(o.previewPath, img, res, opts); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "PNG preview written to %s\n", o.previewPath)
	}
	if o.ansi {
		fmt.Fprint(stdout, preview.ANSI(res, preview.ANSIOptions{Legend: true}))
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
