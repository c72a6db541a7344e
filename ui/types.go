// Package ui provides a descriptor-driven UI for the window frontend.
// Panels are built from field metadata so the layout follows the components.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Progress bar over Range
	WidgetCenteredBar                   // Bar centered at zero
	WidgetColorSwatch                   // Color preview square
	WidgetSection                       // Section header
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID          string               // Unique identifier for the field
	Label       string               // Display label
	Widget      WidgetType           // How to render
	Format      string               // Printf format for text (e.g., "%.2f")
	Range       FieldRange           // Value range for bars
	Getter      func(any) float32    // Value extractor (for numeric fields)
	TextGetter  func(any) string     // Value extractor (for text fields)
	ColorGetter func(any) rl.Color   // Color extractor (for color swatches)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID     string
	Title  string
	Fields []FieldDescriptor
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillHot      rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color
	TitleColor      rl.Color
	StoryColor      rl.Color
	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	FontSize        int32
	HeaderFontSize  int32
	TitleFontSize   int32
	StoryFontSize   int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:         rl.Color{R: 10, G: 12, B: 24, A: 220},
		PanelBorder:     rl.Color{R: 60, G: 70, B: 110, A: 255},
		SectionHeader:   rl.Color{R: 180, G: 160, B: 255, A: 255},
		LabelColor:      rl.LightGray,
		ValueColor:      rl.RayWhite,
		BarBg:           rl.Color{R: 30, G: 30, B: 45, A: 255},
		BarFill:         rl.Color{R: 110, G: 140, B: 230, A: 255},
		BarFillHot:      rl.Color{R: 240, G: 120, B: 140, A: 255},
		BarFillNegative: rl.Color{R: 200, G: 100, B: 160, A: 255},
		BarFillPositive: rl.Color{R: 100, G: 160, B: 220, A: 255},
		TitleColor:      rl.RayWhite,
		StoryColor:      rl.Color{R: 210, G: 210, B: 235, A: 255},
		Padding:         10,
		LineHeight:      16,
		LabelWidth:      60,
		BarHeight:       12,
		FontSize:        12,
		HeaderFontSize:  14,
		TitleFontSize:   48,
		StoryFontSize:   22,
	}
}
