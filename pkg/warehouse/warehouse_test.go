package warehouse

import "testing"

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func testDoc() *Document {
	return &Document{
		Warehouse: Floor{
			Pallets: []Pallet{
				{ID: 1, Location: "loading_dock", Contents: nil},
				{ID: 2, Location: "aisle_1", Contents: strp("widgets")},
				{ID: 3, Location: "aisle_2", Contents: strp("gears")},
			},
		},
		Robot: Robot{State: "home", Carrying: nil},
	}
}

func TestFindPalletByContents(t *testing.T) {
	doc := testDoc()

	p := doc.FindPalletByContents("widgets")
	if p == nil || p.ID != 2 {
		t.Fatalf("FindPalletByContents(widgets): got %v, want pallet 2", p)
	}

	if p := doc.FindPalletByContents("bolts"); p != nil {
		t.Errorf("FindPalletByContents(bolts): got pallet %d, want nil", p.ID)
	}

	// An empty pallet must never match an item search.
	if p := doc.FindPalletByContents(""); p != nil {
		t.Errorf("FindPalletByContents(empty): got pallet %d, want nil", p.ID)
	}
}

func TestFindPalletByLocation(t *testing.T) {
	doc := testDoc()

	p := doc.FindPalletByLocation("aisle_2", NoExclude)
	if p == nil || p.ID != 3 {
		t.Fatalf("FindPalletByLocation(aisle_2): got %v, want pallet 3", p)
	}

	if p := doc.FindPalletByLocation("dock_b", NoExclude); p != nil {
		t.Errorf("FindPalletByLocation(dock_b): got pallet %d, want nil", p.ID)
	}

	// Excluding the carried pallet ignores its stale location record.
	if p := doc.FindPalletByLocation("aisle_2", 3); p != nil {
		t.Errorf("FindPalletByLocation(aisle_2, exclude 3): got pallet %d, want nil", p.ID)
	}
}

func TestFindPalletByID(t *testing.T) {
	doc := testDoc()

	if p := doc.FindPalletByID(1); p == nil || p.Location != "loading_dock" {
		t.Errorf("FindPalletByID(1): got %v, want pallet at loading_dock", p)
	}
	if p := doc.FindPalletByID(99); p != nil {
		t.Errorf("FindPalletByID(99): got %v, want nil", p)
	}
}

func TestCarriedPallet(t *testing.T) {
	doc := testDoc()

	if p := doc.CarriedPallet(); p != nil {
		t.Errorf("CarriedPallet with empty claws: got %v, want nil", p)
	}

	doc.Robot.Carrying = intp(2)
	if p := doc.CarriedPallet(); p == nil || p.ID != 2 {
		t.Errorf("CarriedPallet: got %v, want pallet 2", p)
	}
}

func TestLookupsReturnReferences(t *testing.T) {
	doc := testDoc()

	// Transitions mutate through the returned pointer; the lookup must
	// not hand back a copy.
	p := doc.FindPalletByID(1)
	p.Location = "dock_a"

	if doc.Warehouse.Pallets[0].Location != "dock_a" {
		t.Error("lookup returned a copy, not a reference into the document")
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := testDoc()
	doc.Robot.Carrying = intp(2)

	clone := doc.Clone()
	if !doc.Equal(clone) {
		t.Fatal("clone differs from original")
	}

	clone.Warehouse.Pallets[1].Location = "dock_a"
	*clone.Warehouse.Pallets[1].Contents = "bolts"
	*clone.Robot.Carrying = 3

	if doc.Warehouse.Pallets[1].Location != "aisle_1" {
		t.Error("mutating clone location changed original")
	}
	if *doc.Warehouse.Pallets[1].Contents != "widgets" {
		t.Error("mutating clone contents changed original")
	}
	if *doc.Robot.Carrying != 2 {
		t.Error("mutating clone carrying changed original")
	}
}

func TestEqual(t *testing.T) {
	a := testDoc()
	b := testDoc()
	if !a.Equal(b) {
		t.Error("identical documents reported unequal")
	}

	b.Robot.State = "dock_a"
	if a.Equal(b) {
		t.Error("documents with different robot state reported equal")
	}

	c := testDoc()
	c.Warehouse.Pallets[0].Contents = strp("crates")
	if a.Equal(c) {
		t.Error("documents with different contents reported equal")
	}
}

func TestDefaultDocument(t *testing.T) {
	doc := DefaultDocument()

	if doc.Robot.Carrying != nil {
		t.Errorf("default robot carrying: got %v, want nil", *doc.Robot.Carrying)
	}
	if doc.Robot.State != "home" {
		t.Errorf("default robot state: got %q, want home", doc.Robot.State)
	}

	// The default floor has an empty pallet waiting at the loading dock.
	p := doc.FindPalletByLocation("loading_dock", NoExclude)
	if p == nil {
		t.Fatal("default snapshot has no pallet at loading_dock")
	}
	if p.Contents != nil {
		t.Errorf("loading_dock pallet contents: got %q, want nil", *p.Contents)
	}

	seen := make(map[int]bool)
	for _, p := range doc.Warehouse.Pallets {
		if seen[p.ID] {
			t.Errorf("duplicate pallet id %d in default snapshot", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestDefaultDocumentIsFreshCopy(t *testing.T) {
	a := DefaultDocument()
	a.Robot.State = "dock_a"
	a.Warehouse.Pallets[0].Contents = strp("crates")

	b := DefaultDocument()
	if b.Robot.State != "home" || b.Warehouse.Pallets[0].Contents != nil {
		t.Error("DefaultDocument shares state between calls")
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	doc := testDoc()
	doc.Robot.Carrying = intp(3)

	data, err := EncodeDocument(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !doc.Equal(got) {
		t.Error("round-tripped document differs from original")
	}
}

func TestParseDocumentRejectsGarbage(t *testing.T) {
	if _, err := ParseDocument([]byte("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
