// Package picker runs the native open-file dialog off the render thread and
// hands the chosen path back to the main loop.
package picker

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/logger"
)

// EmptyLabel is shown when nothing has been picked yet.
const EmptyLabel = "Empty"

// ShowFunc displays a file dialog and blocks until the user answers.
// It returns dialog.ErrCancelled when the user backs out.
type ShowFunc func(title, startDir string, extensions []string) (string, error)

type result struct {
	path string
	err  error
}

// Picker is a file chooser bound to a fixed set of extensions.
// Open and Poll must be called from the same goroutine.
type Picker struct {
	title      string
	filterName string
	extensions []string
	startDir   string
	show       ShowFunc

	results  chan result
	pending  bool
	selected string
}

// New creates a picker accepting files with the given extensions (".obj").
func New(title, filterName string, extensions []string, startDir string) *Picker {
	exts := make([]string, 0, len(extensions))
	for _, e := range extensions {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	return &Picker{
		title:      title,
		filterName: filterName,
		extensions: exts,
		startDir:   startDir,
		results:    make(chan result, 1),
	}
}

// WithShowFunc replaces the native dialog, mainly for tests.
func (p *Picker) WithShowFunc(fn ShowFunc) *Picker {
	p.show = fn
	return p
}

// Open starts the dialog unless one is already showing.
func (p *Picker) Open() bool {
	if p.pending {
		return false
	}
	p.pending = true

	show := p.show
	if show == nil {
		show = p.native
	}
	title, dir, exts := p.title, p.startDir, p.extensions

	go func() {
		path, err := show(title, dir, exts)
		p.results <- result{path: path, err: err}
	}()
	return true
}

// Poll returns a newly picked path, if the dialog has closed with one.
// Cancelling clears the selection; dialog errors and rejected files
// leave it in place.
func (p *Picker) Poll() (string, bool) {
	select {
	case r := <-p.results:
		p.pending = false
		switch {
		case errors.Is(r.err, dialog.ErrCancelled):
			logger.Debug("file dialog cancelled")
			p.selected = ""
			return "", false
		case r.err != nil:
			logger.Warn("file dialog failed", zap.Error(r.err))
			return "", false
		case r.path == "":
			return "", false
		case !p.Accepts(r.path):
			logger.Warn("picked file has an unsupported extension",
				zap.String("path", r.path), zap.Strings("accepted", p.extensions))
			return "", false
		}
		p.selected = r.path
		if dir := filepath.Dir(r.path); dir != "" {
			p.startDir = dir
		}
		return r.path, true
	default:
		return "", false
	}
}

// Pending reports whether a dialog is open.
func (p *Picker) Pending() bool { return p.pending }

// Selected returns the last accepted path.
func (p *Picker) Selected() string { return p.selected }

// Label returns the selected path for display, or EmptyLabel.
func (p *Picker) Label() string {
	if p.selected == "" {
		return EmptyLabel
	}
	return p.selected
}

// Accepts reports whether path matches the picker's filter.
func (p *Picker) Accepts(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range p.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// native shows the platform dialog through sqweek/dialog.
func (p *Picker) native(title, startDir string, extensions []string) (string, error) {
	bare := make([]string, len(extensions))
	for i, e := range extensions {
		bare[i] = strings.TrimPrefix(e, ".")
	}

	b := dialog.File().Title(title).Filter(p.filterName, bare...)
	if startDir != "" {
		if abs, err := filepath.Abs(startDir); err == nil {
			b = b.SetStartDir(abs)
		}
	}
	return b.Load()
}
