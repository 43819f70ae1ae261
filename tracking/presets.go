package tracking

// Preset is a canned status/location pair offered to riders as a quick fill.
type Preset struct {
	Status   string `json:"status"`
	Location string `json:"location"`
}

var presets = []Preset{
	{Status: "Picked Up", Location: "Warehouse"},
	{Status: "In Transit", Location: "En route"},
	{Status: "Nearby", Location: "Near destination"},
	{Status: "Delivered", Location: "Customer location"},
}

// Presets returns the quick-fill buttons in display order.
func Presets() []Preset {
	return append([]Preset(nil), presets...)
}

// PresetFor looks a preset up by its status label.
func PresetFor(status string) (Preset, bool) {
	for _, p := range presets {
		if p.Status == status {
			return p, true
		}
	}
	return Preset{}, false
}
