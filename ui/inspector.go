package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lambda/components"
)

// InspectorData holds the values shown for the galaxy under the pointer.
type InspectorData struct {
	Name     string
	Diameter float64
	Target   float64
	Scale    float64
	Speed    float64
	Angle    float64
	Spin     float64
	Spawning bool
	Tint     rl.Color
}

// value looks up a field by descriptor ID.
func (d InspectorData) value(id string) float32 {
	switch id {
	case "diameter":
		return float32(d.Diameter)
	case "target":
		return float32(d.Target)
	case "scale":
		return float32(d.Scale)
	case "speed":
		return float32(d.Speed)
	case "angle":
		return float32(d.Angle)
	case "spin":
		return float32(d.Spin)
	}
	return 0
}

// Inspector renders the galaxy inspection panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sections []SectionDescriptor
}

// NewInspector creates an inspector whose size bar fills at collapseSize.
func NewInspector(x, y, width int32, collapseSize float64) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sections: galaxySections(float32(collapseSize)),
	}
}

// galaxySections turns component metadata into panel sections.
func galaxySections(collapseSize float32) []SectionDescriptor {
	fields := components.GalaxyFieldDescriptors(collapseSize)

	var sections []SectionDescriptor
	for _, group := range components.GalaxyFieldGroups() {
		sd := SectionDescriptor{ID: group, Title: group}
		for _, f := range fields {
			if f.Group != group {
				continue
			}
			sd.Fields = append(sd.Fields, toWidget(f))
		}
		sections = append(sections, sd)
	}
	return sections
}

func toWidget(f components.FieldDescriptor) FieldDescriptor {
	id := f.ID
	fd := FieldDescriptor{
		ID:     id,
		Label:  f.Label,
		Format: f.Format,
		Range:  FieldRange{Min: f.Min, Max: f.Max},
		Getter: func(data any) float32 { return data.(InspectorData).value(id) },
	}
	switch {
	case f.IsCentered:
		fd.Widget = WidgetCenteredBar
	case f.IsBar:
		fd.Widget = WidgetBar
	default:
		fd.Widget = WidgetText
	}
	return fd
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel for the given data.
func (ins *Inspector) Draw(data InspectorData) {
	r := ins.renderer
	padding := r.Theme.Padding
	contentWidth := ins.width - padding*2

	rows := int32(2)
	for _, sd := range ins.sections {
		rows += int32(len(sd.Fields)) + 1
	}
	r.DrawPanel(ins.x, ins.y, ins.width, rows*(r.Theme.LineHeight+2)+padding*2)

	y := ins.y + padding
	rl.DrawText(data.Name, ins.x+padding, y, r.Theme.HeaderFontSize, data.Tint)
	if data.Spawning {
		rl.DrawText("spawning", ins.x+ins.width-padding-60, y, r.Theme.FontSize, r.Theme.LabelColor)
	}
	y += r.Theme.LineHeight + 4

	for _, sd := range ins.sections {
		y = r.DrawSection(ins.x+padding, y, sd, data, contentWidth)
	}
}
