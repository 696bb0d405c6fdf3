package tree_test

import (
	"fmt"

	"github.com/matzehuels/careatlas/pkg/dataset"
	"github.com/matzehuels/careatlas/pkg/tree"
)

func ExampleToDOT() {
	s := 0.8
	ds := &dataset.Dataset{
		Rows: []dataset.Row{
			{
				MeasureID: "m-001", MeasureName: "Referral wait time",
				Level1: "Access", Level2: "Appointments", Level3: "Waiting lists",
				Level1Sort: 1, Level2Sort: 1, Level3Sort: 1,
				Phase: dataset.PhaseDemand, Strength: &s,
			},
			{
				Level1: "Access", Level2: "Appointments", Level3: "Missed appointments",
				Level1Sort: 1, Level2Sort: 1, Level3Sort: 2,
				Phase: dataset.PhaseSupply,
			},
		},
	}

	fmt.Print(tree.ToDOT(ds, tree.Options{Counts: true}))
	// Output:
	// digraph taxonomy {
	//   rankdir=LR;
	//   bgcolor="transparent";
	//   node [shape=box, style="rounded,filled", fillcolor=white, fontsize=12, margin="0.2,0.1"];
	//   ranksep=1.0;
	//   nodesep=0.15;
	//
	//   "/Access" [label="Access (1)"];
	//   "/Access/Appointments" [label="Appointments (1)"];
	//   "/Access/Appointments/Missed appointments" [label="Missed appointments (0)", fillcolor=mistyrose];
	//   "/Access/Appointments/Waiting lists" [label="Waiting lists (1)"];
	//
	//   "/Access" -> "/Access/Appointments";
	//   "/Access/Appointments" -> "/Access/Appointments/Missed appointments";
	//   "/Access/Appointments" -> "/Access/Appointments/Waiting lists";
	// }
}
