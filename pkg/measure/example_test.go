package measure_test

import (
	"fmt"

	"github.com/sibaiper/tidy-tree/pkg/measure"
	"github.com/sibaiper/tidy-tree/pkg/tree"
)

func ExampleMeasurer_Apply() {
	tr := tree.New()
	root, _ := tr.AddRoot("hub", 0, 0)
	tr.AddChild(root, "a long label", 0, 0)

	m, err := measure.New("", "")
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := m.Apply(tr); err != nil {
		fmt.Println(err)
		return
	}

	tr.Walk(func(id tree.NodeID) bool {
		n := tr.Node(id)
		fmt.Printf("%s %gx%g\n", n.Label, n.W, n.H)
		return true
	})
	// Output:
	// hub 64x36
	// a long label 144x36
}
