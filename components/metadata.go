package components

// FieldDescriptor describes a component field for UI display.
type FieldDescriptor struct {
	ID         string  // Unique identifier
	Label      string  // Display name
	Format     string  // Printf format (e.g., "%.2f")
	Min        float32 // Minimum value (for bars)
	Max        float32 // Maximum value (for bars)
	IsCentered bool    // True for centered bar display
	IsBar      bool    // True to render as progress bar
	Group      string  // Logical grouping
}

// GalaxyFieldDescriptors returns metadata for Galaxy, Transform and Motion
// fields. Diameter bars fill up at the collapse size.
func GalaxyFieldDescriptors(collapseSize float32) []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "diameter", Label: "Size", Format: "%.2f", Min: 0, Max: collapseSize, IsBar: true, Group: "body"},
		{ID: "target", Label: "Target", Format: "%.2f", Group: "body"},
		{ID: "scale", Label: "Scale", Format: "%.2f", Group: "body"},
		{ID: "speed", Label: "Speed", Format: "%.3f", Group: "motion"},
		{ID: "angle", Label: "Angle", Format: "%.0f", Min: -180, Max: 180, IsCentered: true, Group: "motion"},
		{ID: "spin", Label: "Spin", Format: "%.1f", Group: "motion"},
	}
}

// GalaxyFieldGroups returns the display order of the descriptor groups.
func GalaxyFieldGroups() []string {
	return []string{"body", "motion"}
}
