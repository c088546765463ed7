package entity

// Product is a catalog entry.
type Product struct {
	ID          int64
	Name        string
	Description *string
	Price       float64
	Category    string
	Stock       int
	IsActive    bool
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}

	clone := *p
	if p.Description != nil {
		description := *p.Description
		clone.Description = &description
	}

	return &clone
}
