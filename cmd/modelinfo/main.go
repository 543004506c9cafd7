// modelinfo inspects model files and renders previews without a window.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/Faultbox/modelview/internal/asset"
	"github.com/Faultbox/modelview/internal/logger"
	"github.com/Faultbox/modelview/internal/preview"
)

// Import warnings such as skipped textures go to stderr.
const logLevel = "warn"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := initLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "render":
		cmdRender(args)
	case "thumbs":
		cmdThumbs(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func initLogging() error {
	return logger.Init(logLevel, "")
}

func printUsage() {
	fmt.Printf(`modelinfo - inspect and preview 3D models

Usage:
  modelinfo <command> [options]

Commands:
  info <model>                       Show meshes, vertex counts and textures
  render [-size N] <model> <out.png> Render a preview image
  thumbs [-size N] <dir> <outdir>    Render previews for every model in dir

Supported formats: %s
`, strings.Join(asset.Formats(), " "))
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: modelinfo info <model>")
		os.Exit(1)
	}

	m, err := asset.Load(args[0], asset.Options{MaxTextures: asset.MaxTextures})
	if err != nil {
		fail("%v", err)
	}
	printInfo(os.Stdout, m)
}

func printInfo(w io.Writer, m *asset.Model) {
	lo, hi := m.Bounds()
	fmt.Fprintf(w, "Model:    %s\n", m.Path)
	fmt.Fprintf(w, "Meshes:   %d\n", len(m.Meshes))
	fmt.Fprintf(w, "Vertices: %d\n", m.VertexCount())
	fmt.Fprintf(w, "Bounds:   (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		lo.X(), lo.Y(), lo.Z(), hi.X(), hi.Y(), hi.Z())
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Meshes:")
	for _, mesh := range m.Meshes {
		fmt.Fprintf(w, "  %-24s %8d vertices\n", mesh.Name, len(mesh.Vertices))
	}

	if len(m.Textures) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Textures:")
		for _, t := range m.Textures {
			b := t.Image.Bounds()
			fmt.Fprintf(w, "  %-40s %dx%d\n", t.Path, b.Dx(), b.Dy())
		}
	}
}

func renderFlags(name string, args []string) (*flag.FlagSet, preview.Options) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	size := fs.Int("size", 256, "Output width and height in pixels")
	ss := fs.Int("ss", 2, "Supersampling factor")
	fs.Parse(args)

	opts := preview.DefaultOptions()
	opts.Width, opts.Height, opts.Supersample = *size, *size, *ss
	return fs, opts
}

func cmdRender(args []string) {
	fs, opts := renderFlags("render", args)
	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: modelinfo render [-size N] <model> <out.png>")
		os.Exit(1)
	}

	if err := renderFile(fs.Arg(0), fs.Arg(1), opts); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Rendered %s -> %s\n", fs.Arg(0), fs.Arg(1))
}

func renderFile(src, dst string, opts preview.Options) error {
	m, err := asset.Load(src, asset.Options{SkipTextures: true})
	if err != nil {
		return err
	}
	img, err := preview.Render(m, opts)
	if err != nil {
		return fmt.Errorf("render %s: %w", src, err)
	}
	return preview.Save(dst, img)
}

func cmdThumbs(args []string) {
	fs, opts := renderFlags("thumbs", args)
	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: modelinfo thumbs [-size N] <dir> <outdir>")
		os.Exit(1)
	}
	dir, outDir := fs.Arg(0), fs.Arg(1)

	models, err := findModels(dir)
	if err != nil {
		fail("%v", err)
	}
	if len(models) == 0 {
		fmt.Println("No models found")
		return
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fail("%v", err)
	}

	bar := progressbar.Default(int64(len(models)), "rendering")
	var failed []string
	for _, path := range models {
		dst := filepath.Join(outDir, thumbName(dir, path))
		if err := renderFile(path, dst, opts); err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", path, err))
		}
		bar.Add(1)
	}

	fmt.Printf("\nRendered %d of %d models into %s\n", len(models)-len(failed), len(models), outDir)
	for _, f := range failed {
		fmt.Fprintf(os.Stderr, "  failed %s\n", f)
	}
}

// findModels returns every supported model under dir, sorted.
func findModels(dir string) ([]string, error) {
	var models []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && asset.Supported(path) {
			models = append(models, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(models)
	return models, nil
}

// thumbName flattens a model path relative to root into a PNG file name,
// so models with the same base name in different folders do not collide.
func thumbName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", "_") + ".png"
}
