package score

// ComponentReport is one line of the explainability view. Percentage is
// earned over the nominal weight, not the availability-adjusted denominator,
// so the uncapped impact component can read above 100%.
type ComponentReport struct {
	Name       string  `json:"name"`
	Earned     float64 `json:"earned"`
	Max        float64 `json:"max"`
	Percentage float64 `json:"percentage"`
}

// Report is the human-auditable rendering of a Breakdown.
type Report struct {
	Components []ComponentReport `json:"components"`
	Overall    int               `json:"overall"`
	Grade      string            `json:"grade"`
}

// Report renders the breakdown in fixed component order.
func (b Breakdown) Report() Report {
	rep := Report{
		Components: make([]ComponentReport, 0, len(ComponentOrder)),
		Overall:    b.Overall,
		Grade:      b.Grade,
	}
	for _, name := range ComponentOrder {
		c, ok := b.Components[name]
		if !ok {
			continue
		}
		pct := 0.0
		if c.Max > 0 {
			pct = c.Earned / c.Max * 100
		}
		rep.Components = append(rep.Components, ComponentReport{
			Name:       name,
			Earned:     c.Earned,
			Max:        c.Max,
			Percentage: pct,
		})
	}
	return rep
}
