// Package templates builds the labeled glyph library the classifier matches
// against.
//
// A corpus is a flat directory of reference bitmaps, one glyph per file,
// named <PREFIX><label>.<ext> where PREFIX is LC_ (lowercase letter), UC_
// (uppercase letter) or D_ (digit). Every reference bitmap goes through the
// same binarize, crop and normalize path as live input so the two are
// directly comparable.
package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ironsheep/glyph-ocr/internal/imaging"
	"github.com/ironsheep/glyph-ocr/internal/logging"
)

// Class is the character class encoded in a template file name.
type Class string

const (
	Lowercase Class = "lowercase"
	Uppercase Class = "uppercase"
	Digit     Class = "digit"
)

// prefixes maps file name prefixes to their class, checked in order.
var prefixes = []struct {
	prefix string
	class  Class
}{
	{"LC_", Lowercase},
	{"UC_", Uppercase},
	{"D_", Digit},
}

// ParseName extracts the label and class from a template file name. ok is
// false when the name does not follow the corpus convention or the
// extension is not a decodable image format.
func ParseName(name string) (label string, class Class, ok bool) {
	if !imaging.IsSupportedExtension(name) {
		return "", "", false
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	for _, p := range prefixes {
		if strings.HasPrefix(stem, p.prefix) {
			label = strings.TrimPrefix(stem, p.prefix)
			if label == "" {
				return "", "", false
			}
			return label, p.class, true
		}
	}
	return "", "", false
}

// Entry is one labeled, normalized reference glyph.
type Entry struct {
	Label  string        `json:"label"`
	Class  Class         `json:"class"`
	Source string        `json:"source,omitempty"`
	Mask   *imaging.Mask `json:"-"`
}

// Library is an immutable set of template entries with unique labels.
//
// Once built a Library is never modified, so it may be shared by any number
// of concurrent recognitions.
type Library struct {
	size    int
	entries []Entry
	index   map[string]int
	skipped int
}

// NewLibrary assembles a library from already normalized entries. Every
// mask must be size x size. A repeated label replaces the earlier entry in
// place.
func NewLibrary(size int, entries ...Entry) (*Library, error) {
	lib := &Library{
		size:  size,
		index: make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.Mask == nil || e.Mask.Width() != size || e.Mask.Height() != size {
			return nil, fmt.Errorf("template %q: mask must be %dx%d", e.Label, size, size)
		}
		lib.add(e)
	}
	return lib, nil
}

func (l *Library) add(e Entry) {
	if i, dup := l.index[e.Label]; dup {
		logging.Warn("Duplicate template label replaced",
			"label", e.Label,
			"previous", l.entries[i].Source,
			"source", e.Source)
		l.entries[i] = e
		return
	}
	l.index[e.Label] = len(l.entries)
	l.entries = append(l.entries, e)
}

// CanvasSize returns the side of every template mask.
func (l *Library) CanvasSize() int { return l.size }

// Len returns the number of entries.
func (l *Library) Len() int { return len(l.entries) }

// Skipped returns how many matching files could not be decoded at build time.
func (l *Library) Skipped() int { return l.skipped }

// Entries returns the entries in library order. The slice is a copy; the
// masks are shared and must not be modified.
func (l *Library) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Lookup returns the entry for label.
func (l *Library) Lookup(label string) (Entry, bool) {
	i, ok := l.index[label]
	if !ok {
		return Entry{}, false
	}
	return l.entries[i], true
}

// Labels returns the labels in library order.
func (l *Library) Labels() []string {
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Label
	}
	return out
}

// Options controls how reference bitmaps are turned into entries.
type Options struct {
	Binarizer  imaging.Binarizer
	Normalizer imaging.Normalizer
}

// DefaultOptions returns the template binarization threshold (150) with the
// default dilation kernel and canvas size.
func DefaultOptions() Options {
	return Options{
		Binarizer: imaging.Binarizer{
			Threshold:  imaging.DefaultTemplateThreshold,
			KernelSize: imaging.DefaultKernelSize,
		},
		Normalizer: imaging.NewNormalizer(),
	}
}

// Build loads every conforming reference bitmap in dir.
//
// A missing directory is not an error: an empty library is returned and a
// warning is logged, and recognition will then reject every glyph. Files
// that do not follow the naming convention are ignored silently. Files that
// follow it but cannot be decoded are skipped with a warning. Entries are
// kept in lexical file name order; when two files carry the same label the
// later one wins.
func Build(dir string, opts Options) (*Library, error) {
	if err := opts.Binarizer.Validate(); err != nil {
		return nil, fmt.Errorf("template binarizer: %w", err)
	}
	if err := opts.Normalizer.Validate(); err != nil {
		return nil, fmt.Errorf("template normalizer: %w", err)
	}

	lib := &Library{
		size:  opts.Normalizer.Size,
		index: make(map[string]int),
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Warn("Template folder not found", "path", dir)
			return lib, nil
		}
		return nil, fmt.Errorf("failed to read template folder: %w", err)
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		if !f.IsDir() {
			names = append(names, f.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		label, class, ok := ParseName(name)
		if !ok {
			continue
		}

		path := filepath.Join(dir, name)
		mask, err := opts.Binarizer.BinarizeFile(path)
		if err != nil {
			lib.skipped++
			logging.Warn("Skipping unreadable template", "path", path, "error", err)
			continue
		}

		lib.add(Entry{
			Label:  label,
			Class:  class,
			Source: path,
			Mask:   opts.Normalizer.Normalize(mask),
		})
	}

	logging.Info("Loaded templates",
		"path", dir,
		"count", lib.Len(),
		"skipped", lib.skipped)

	return lib, nil
}

// Summary is the serializable description of a library.
type Summary struct {
	CanvasSize int            `json:"canvas_size"`
	Count      int            `json:"count"`
	Skipped    int            `json:"skipped"`
	Templates  []EntrySummary `json:"templates"`
}

// EntrySummary describes one entry without its mask.
type EntrySummary struct {
	Label  string `json:"label"`
	Class  Class  `json:"class"`
	Source string `json:"source,omitempty"`
}

// Summarize lists the library contents in library order.
func (l *Library) Summarize() *Summary {
	s := &Summary{
		CanvasSize: l.size,
		Count:      len(l.entries),
		Skipped:    l.skipped,
		Templates:  make([]EntrySummary, len(l.entries)),
	}
	for i, e := range l.entries {
		s.Templates[i] = EntrySummary{Label: e.Label, Class: e.Class, Source: e.Source}
	}
	return s
}
