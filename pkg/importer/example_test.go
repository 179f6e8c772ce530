package importer_test

import (
	"fmt"

	"github.com/matzehuels/rnaimport/pkg/importer"
)

func ExampleImport() {
	text := `<svg>
  <g data-rna-type="complex" data-name="hairpin">
    <path data-rna-type="base-pair" data-molecule-1="M" data-index-1="1" data-molecule-2="M" data-index-2="4" data-pair-type="cWW"/>
    <g data-rna-type="molecule" data-name="M" data-first-index="1">
      <text data-rna-type="nucleotide" data-index="1" transform="translate(0,0)">G</text>
      <text data-rna-type="nucleotide" data-index="2" transform="translate(10,0)">A</text>
      <text data-rna-type="nucleotide" data-index="3" transform="translate(20,0)">A</text>
      <text data-rna-type="nucleotide" data-index="4" transform="translate(30,0)">C</text>
    </g>
  </g>
</svg>`
	doc, err := importer.Import(text, importer.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}
	c := doc.Complexes[0]
	m, _ := c.Molecule("M")
	fmt.Println(c.Name, m.Sequence())
	for _, bp := range c.BasePairs() {
		fmt.Println(bp.A, bp.B, bp.Type)
	}
	// Output:
	// hairpin GAAC
	// M[0] M[3] cWW
}
