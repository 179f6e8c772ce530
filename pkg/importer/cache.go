package importer

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rnaimport/pkg/document"
	"github.com/matzehuels/rnaimport/pkg/model"
)

// Cache is the mutable state of one import. It is created per call and never
// shared.
type Cache struct {
	Doc    *model.Document
	Styles *document.StyleSheet
	Policy model.DuplicatePolicy
	Logger *log.Logger

	// open complexes, innermost last
	complexes []*model.Complex
	molecule  *model.Molecule

	// annotated
	labelsRelative bool
	invertY        bool
	pendingPairs   map[string][]pendingPair
	pendingLabels  map[string][]pendingLabel
	labelOrder     []string

	// geometric
	group   string
	counter int
	marks   *ComplexMarks
	offsets map[string]map[int]model.Point // molecule -> formatted index
}

// NewCache creates the state for one import of doc. A nil logger discards
// output.
func NewCache(doc *model.Document, styles *document.StyleSheet, policy model.DuplicatePolicy, logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Cache{
		Doc:           doc,
		Styles:        styles,
		Policy:        policy,
		Logger:        logger,
		pendingPairs:  make(map[string][]pendingPair),
		pendingLabels: make(map[string][]pendingLabel),
		offsets:       make(map[string]map[int]model.Point),
	}
}

// Complex returns the innermost open complex.
func (c *Cache) Complex() *model.Complex {
	if len(c.complexes) == 0 {
		return nil
	}
	return c.complexes[len(c.complexes)-1]
}

// Molecule returns the molecule currently being filled.
func (c *Cache) Molecule() *model.Molecule { return c.molecule }

// Group returns the most recent vocabulary group id.
func (c *Cache) Group() string { return c.group }

func (c *Cache) openComplex(x *model.Complex) {
	c.complexes = append(c.complexes, x)
	c.molecule = nil
}

func (c *Cache) closeComplex() {
	c.complexes = c.complexes[:len(c.complexes)-1]
	c.molecule = nil
}

type target struct {
	complex  string
	molecule string
	index    int // formatted
}

type pendingPair struct {
	a, b  target
	attrs model.PairAttributes
}

type pendingLabel struct {
	at      target
	line    *model.LabelLine
	content *model.LabelContent
}

func (c *Cache) queueLabel(l pendingLabel) {
	name := l.at.complex
	if _, ok := c.pendingLabels[name]; !ok {
		c.labelOrder = append(c.labelOrder, name)
	}
	c.pendingLabels[name] = append(c.pendingLabels[name], l)
}
