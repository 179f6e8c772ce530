package affine_test

import (
	"fmt"

	"github.com/matzehuels/rnaimport/pkg/affine"
)

func ExampleParseList() {
	m, err := affine.ParseList("translate(10, 20) scale(2)")
	if err != nil {
		panic(err)
	}
	p := affine.Apply(m, affine.Point{X: 1, Y: 1})
	fmt.Println(m)
	fmt.Println(p.X, p.Y)
	// Output:
	// [2 0 0 2 10 20]
	// 12 22
}

func ExampleParse_arity() {
	_, err := affine.Parse("scale(1,2,3)")
	fmt.Println(err != nil)
	// Output:
	// true
}
