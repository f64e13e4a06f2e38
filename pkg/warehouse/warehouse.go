// Package warehouse defines the persisted warehouse state model: the
// pallets on the floor, the robot, and the lookup helpers every command
// transition is built on.
//
// A Document is loaded at the start of a command, mutated in memory by
// exactly one transition, and handed back for persistence. The lookup
// helpers return pointers into the document so transitions can update
// fields in place.
package warehouse

// Pallet is a physical unit of storage. Contents is nil for an empty
// pallet. Location always holds the slot the pallet last rested at; while
// the robot carries a pallet the field is a historical marker, not a live
// occupancy claim.
type Pallet struct {
	ID       int     `json:"id"`
	Location string  `json:"location"`
	Contents *string `json:"contents"`
}

// Robot is the single warehouse robot. State is its current location
// token. Carrying is nil, or the id of the pallet it holds.
type Robot struct {
	State    string `json:"state"`
	Carrying *int   `json:"carrying"`
}

// Floor holds the pallet inventory in stable order.
type Floor struct {
	Pallets []Pallet `json:"pallets"`
}

// Document is the entire persisted warehouse state.
type Document struct {
	Warehouse Floor `json:"warehouse"`
	Robot     Robot `json:"robot"`
}

// FindPalletByContents returns the first pallet whose contents equal item,
// or nil if no pallet contains it.
func (d *Document) FindPalletByContents(item string) *Pallet {
	for i := range d.Warehouse.Pallets {
		p := &d.Warehouse.Pallets[i]
		if p.Contents != nil && *p.Contents == item {
			return p
		}
	}
	return nil
}

// FindPalletByLocation returns the first pallet resting at the given
// location token, or nil. Pass the id of the carried pallet as exclude to
// ignore it when checking a drop destination; pass NoExclude otherwise.
func (d *Document) FindPalletByLocation(location string, exclude int) *Pallet {
	for i := range d.Warehouse.Pallets {
		p := &d.Warehouse.Pallets[i]
		if p.Location == location && p.ID != exclude {
			return p
		}
	}
	return nil
}

// NoExclude is passed to FindPalletByLocation when no pallet id should be
// excluded from the search.
const NoExclude = -1

// FindPalletByID returns the pallet with the given id, or nil.
func (d *Document) FindPalletByID(id int) *Pallet {
	for i := range d.Warehouse.Pallets {
		if d.Warehouse.Pallets[i].ID == id {
			return &d.Warehouse.Pallets[i]
		}
	}
	return nil
}

// CarriedPallet returns the pallet the robot is carrying, or nil.
func (d *Document) CarriedPallet() *Pallet {
	if d.Robot.Carrying == nil {
		return nil
	}
	return d.FindPalletByID(*d.Robot.Carrying)
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{Robot: d.Robot}
	if d.Robot.Carrying != nil {
		id := *d.Robot.Carrying
		out.Robot.Carrying = &id
	}
	out.Warehouse.Pallets = make([]Pallet, len(d.Warehouse.Pallets))
	for i, p := range d.Warehouse.Pallets {
		out.Warehouse.Pallets[i] = p
		if p.Contents != nil {
			c := *p.Contents
			out.Warehouse.Pallets[i].Contents = &c
		}
	}
	return out
}

// Equal reports whether two documents describe the same warehouse state.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.Robot.State != other.Robot.State {
		return false
	}
	if !intPtrEqual(d.Robot.Carrying, other.Robot.Carrying) {
		return false
	}
	if len(d.Warehouse.Pallets) != len(other.Warehouse.Pallets) {
		return false
	}
	for i, p := range d.Warehouse.Pallets {
		q := other.Warehouse.Pallets[i]
		if p.ID != q.ID || p.Location != q.Location || !strPtrEqual(p.Contents, q.Contents) {
			return false
		}
	}
	return true
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
