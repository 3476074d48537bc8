package domain

// Item is a single entry shown in a selection list
type Item struct {
	Label       string
	Description string
}

// String returns the item label
func (i Item) String() string {
	return i.Label
}
