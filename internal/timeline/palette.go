package timeline

import (
	"fmt"
	"trucklogix-service/internal/domain"
)

// Palette assigns a display color to each duty status.
type Palette struct {
	Driving          string `yaml:"driving" json:"driving"`
	OnDutyNotDriving string `yaml:"on_duty_not_driving" json:"on_duty_not_driving"`
	SleeperBerth     string `yaml:"sleeper_berth" json:"sleeper_berth"`
	OffDuty          string `yaml:"off_duty" json:"off_duty"`
}

func DefaultPalette() Palette {
	return Palette{
		Driving:          "#2563eb",
		OnDutyNotDriving: "#f59e0b",
		SleeperBerth:     "#64748b",
		OffDuty:          "#9ca3af",
	}
}

// Color returns the palette entry for status. It panics on a status outside
// the declared set.
func (p Palette) Color(status domain.DutyStatus) string {
	switch status {
	case domain.Driving:
		return p.Driving
	case domain.OnDutyNotDriving:
		return p.OnDutyNotDriving
	case domain.SleeperBerth:
		return p.SleeperBerth
	case domain.OffDuty:
		return p.OffDuty
	}
	panic(fmt.Sprintf("timeline: no color for %v", status))
}

// WithDefaults fills empty entries from DefaultPalette.
func (p Palette) WithDefaults() Palette {
	d := DefaultPalette()
	if p.Driving == "" {
		p.Driving = d.Driving
	}
	if p.OnDutyNotDriving == "" {
		p.OnDutyNotDriving = d.OnDutyNotDriving
	}
	if p.SleeperBerth == "" {
		p.SleeperBerth = d.SleeperBerth
	}
	if p.OffDuty == "" {
		p.OffDuty = d.OffDuty
	}
	return p
}

// LegendEntry is one swatch of the timeline legend.
type LegendEntry struct {
	Status domain.DutyStatus `json:"status"`
	Color  string            `json:"color"`
}

// legendOrder is the order swatches appear under the bar.
var legendOrder = []domain.DutyStatus{
	domain.Driving,
	domain.OnDutyNotDriving,
	domain.SleeperBerth,
	domain.OffDuty,
}

func (p Palette) Legend() []LegendEntry {
	out := make([]LegendEntry, 0, len(legendOrder))
	for _, s := range legendOrder {
		out = append(out, LegendEntry{Status: s, Color: p.Color(s)})
	}
	return out
}

// HourTicks are the reference labels drawn under the bar. They are evenly
// spaced every three hours and do not depend on the segments.
func HourTicks() []string {
	return []string{"12 AM", "3 AM", "6 AM", "9 AM", "12 PM", "3 PM", "6 PM", "9 PM"}
}
