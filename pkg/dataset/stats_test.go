package dataset

import (
	"strings"
	"testing"
)

// sixDimensions mirrors the production taxonomy's six top-level dimensions,
// with Funders carrying no mapped measures.
func sixDimensions(t *testing.T) *Dataset {
	t.Helper()
	ds, err := ReadCSV(strings.NewReader(testCSV(
		"m1,A,Users,U2,U3,6,60,600,demand,0.9,0.9,0.9,org,src",
		"m2,B,Users,U2,U3,6,60,600,demand,0.4,0.4,0.4,org,src",
		"m3,C,Unpaid Carers,C2,C3,5,50,500,supply,0.6,0.6,0.6,org,src",
		"m4,D,Workforce,W2,W3,4,40,400,operate,0.7,0.7,0.7,org,src",
		"m5,E,Services,S2,S3,3,30,300,outcome,1.0,1.0,1.0,org,src",
		"m6,F,Providers,P2,P3,2,20,200,operate,0.3,0.3,0.3,org,src",
		",,Funders,F2,F3,1,10,100,outcome,,0,0,,",
	)))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	return ds
}

func TestComputeLevelCounts(t *testing.T) {
	s := Compute(sixDimensions(t))

	if s.Rows != 7 {
		t.Errorf("Rows = %d, want 7", s.Rows)
	}
	if s.Measures != 6 {
		t.Errorf("Measures = %d, want 6", s.Measures)
	}

	// One rendered row per distinct node, the outer join preserved.
	if s.Levels[0].Nodes != 6 {
		t.Errorf("level 1 nodes = %d, want 6", s.Levels[0].Nodes)
	}
	if s.Levels[0].Gaps != 1 {
		t.Errorf("level 1 gaps = %d, want 1", s.Levels[0].Gaps)
	}
	if s.Levels[2].Nodes != 7 {
		t.Errorf("level 3 nodes = %d, want 7", s.Levels[2].Nodes)
	}
}

func TestComputeCoverageOrdering(t *testing.T) {
	s := Compute(sixDimensions(t))

	cov := s.Coverage(1)
	if len(cov) != 6 {
		t.Fatalf("len(Coverage(1)) = %d, want 6", len(cov))
	}

	// Descending by sort key: Users (6) topmost, Funders (1) last.
	if cov[0].Name != "Users" {
		t.Errorf("first node = %q, want Users", cov[0].Name)
	}
	if cov[0].Measures != 2 {
		t.Errorf("Users measures = %d, want 2", cov[0].Measures)
	}
	if last := cov[len(cov)-1]; last.Name != "Funders" || last.Measures != 0 {
		t.Errorf("last node = %q (%d measures), want Funders with 0", last.Name, last.Measures)
	}

	for i := 1; i < len(cov); i++ {
		if cov[i].SortKey > cov[i-1].SortKey {
			t.Errorf("coverage not descending at %d: %v > %v", i, cov[i].SortKey, cov[i-1].SortKey)
		}
	}
}

func TestComputePhaseAndStrength(t *testing.T) {
	s := Compute(sixDimensions(t))

	// demand, supply, operate, outcome
	want := [4]int{2, 1, 2, 1}
	if s.PhaseCounts != want {
		t.Errorf("PhaseCounts = %v, want %v", s.PhaseCounts, want)
	}

	// 1.0 lands in the top bucket, not out of range.
	if s.StrengthBuckets[9] != 2 { // 0.9 and 1.0
		t.Errorf("top strength bucket = %d, want 2", s.StrengthBuckets[9])
	}

	var total int
	for _, n := range s.StrengthBuckets {
		total += n
	}
	if total != 6 {
		t.Errorf("histogram total = %d, want 6", total)
	}
}

func TestCoverageOutOfRange(t *testing.T) {
	s := Compute(sixDimensions(t))
	if s.Coverage(0) != nil || s.Coverage(4) != nil {
		t.Error("Coverage outside 1..3 should be nil")
	}
}
