package models

// Source tells how a coordinate reached the service.
type Source string

const (
	// SourceClick is a point picked on the map.
	SourceClick Source = "click"
	// SourceManual is a point typed into the coordinate form.
	SourceManual Source = "manual"
	// SourceAddress is a point resolved from a free-text address.
	SourceAddress Source = "address"
)

// Valid reports whether s is one of the known sources.
func (s Source) Valid() bool {
	switch s {
	case SourceClick, SourceManual, SourceAddress:
		return true
	default:
		return false
	}
}
