package importer

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rnaimport/pkg/dialect"
	"github.com/matzehuels/rnaimport/pkg/document"
	"github.com/matzehuels/rnaimport/pkg/errors"
	"github.com/matzehuels/rnaimport/pkg/model"
)

// Options configures one import.
type Options struct {
	// Resolver links geometric marks for the legacy grouped and unannotated
	// dialects. Nil means [NopResolver].
	Resolver Resolver
	// DuplicatePolicy applies to every base-pair insertion.
	DuplicatePolicy model.DuplicatePolicy
	// Measurer, when set, measures text elements that lack
	// data-measured-width/-height before a geometric walk.
	Measurer document.Measurer
	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.Resolver == nil {
		o.Resolver = NopResolver{}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// Import sniffs the dialect of text and parses it.
func Import(text string, opts Options) (*model.Document, error) {
	return ImportDialect(text, dialect.Sniff(text), opts)
}

// ImportReader reads a whole document from r and parses it.
func ImportReader(r io.Reader, opts Options) (*model.Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, errors.MaxDocumentSize+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read document")
	}
	return Import(string(data), opts)
}

// ImportDialect parses text as dialect d, skipping detection. Any error
// aborts the whole import; no partial document is returned.
func ImportDialect(text string, d dialect.Dialect, opts Options) (*model.Document, error) {
	opts.setDefaults()
	if err := errors.ValidateDocument(text); err != nil {
		return nil, err
	}

	root, err := document.ParseString(text)
	if err != nil {
		return nil, err
	}
	styles, err := document.NewStyleSheet(root)
	if err != nil {
		return nil, err
	}

	doc := model.NewDocument("")
	c := NewCache(doc, styles, opts.DuplicatePolicy, opts.Logger)
	if d.Geometric() {
		if opts.Measurer != nil {
			document.Annotate(root, styles, opts.Measurer)
		}
		doc.Name = documentTitle(root)
		beginGeometric(c, doc.Name)
	}

	opts.Logger.Debug("walking document", "dialect", d)
	if err := Walk(root, StrategyFor(d), c); err != nil {
		return nil, err
	}

	if d.Geometric() {
		opts.Logger.Debug("resolving marks",
			"pairs", len(c.marks.PairMarks),
			"label_lines", len(c.marks.LabelLines),
			"labels", len(c.marks.Labels))
		in := &ResolverInput{Document: doc, Complexes: []ComplexMarks{*c.marks}, Policy: opts.DuplicatePolicy}
		resolved, err := opts.Resolver.Resolve(in)
		if err != nil {
			return nil, err
		}
		if resolved == nil {
			return nil, errors.New(errors.ErrCodeInternal, "resolver returned no document")
		}
		doc = resolved
	}

	if err := doc.CheckSymmetry(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "base-pair store")
	}
	return doc, nil
}

func documentTitle(root *document.Element) string {
	titles := root.Find(func(e *document.Element) bool { return e.Tag == "title" })
	if len(titles) == 0 {
		return ""
	}
	return strings.TrimSpace(titles[0].TextContent())
}
