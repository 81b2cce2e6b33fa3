package schedule

// Offering is one entry of the closed service allowlist. The duration is fixed
// per service; a client-supplied duration that disagrees is rejected, never
// silently corrected.
type Offering struct {
	Name          string `json:"name"`
	DurationHours int    `json:"duration_hours"`
	PriceLabel    string `json:"price_label"`
}

// Catalog is the fixed service->duration allowlist of the studio.
type Catalog struct {
	ordered []Offering
	byName  map[string]Offering
}

func NewCatalog() Catalog {
	ordered := []Offering{
		{Name: "Exterior Wash", DurationHours: 1, PriceLabel: "from $49"},
		{Name: "Interior Detail", DurationHours: 2, PriceLabel: "from $129"},
		{Name: "Full Detail", DurationHours: 4, PriceLabel: "from $249"},
		{Name: "Paint Correction", DurationHours: 6, PriceLabel: "from $449"},
	}

	byName := make(map[string]Offering, len(ordered))
	for _, offering := range ordered {
		byName[offering.Name] = offering
	}

	return Catalog{
		ordered: ordered,
		byName:  byName,
	}
}

// DurationFor returns the fixed duration for a service name, and whether the
// service is part of the allowlist at all.
func (c Catalog) DurationFor(name string) (int, bool) {
	offering, ok := c.byName[name]

	return offering.DurationHours, ok
}

// Offerings returns the allowlist in display order.
func (c Catalog) Offerings() []Offering {
	return c.ordered
}
