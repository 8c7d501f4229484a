package builds

import (
	"github.com/KirkDiggler/simui-api/internal/entities"
	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/exporters"
	"github.com/KirkDiggler/simui-api/internal/inputs"
)

// BuildView is a saved build together with the state of its settings tab
type BuildView struct {
	Build   *entities.Build
	Inputs  []inputs.State
	Presets []PresetState
	Exports []exporters.MenuItem
}

// PresetState describes a preset and whether it applies to the build now
type PresetState struct {
	Name    string
	Tooltip string
	Enabled bool
}

// CreateBuildInput defines the request for creating a build
type CreateBuildInput struct {
	Spec sim.Spec
	Name string
	// Race overrides the spec default race
	Race sim.Race
	// Presets are applied in order
	Presets []string
}

// CreateBuildOutput defines the response for creating a build
type CreateBuildOutput struct {
	View *BuildView
}

// GetBuildInput defines the request for getting a build
type GetBuildInput struct {
	BuildID string
}

// GetBuildOutput defines the response for getting a build
type GetBuildOutput struct {
	View *BuildView
}

// DeleteBuildInput defines the request for deleting a build
type DeleteBuildInput struct {
	BuildID string
}

// DeleteBuildOutput defines the response for deleting a build
type DeleteBuildOutput struct{}

// UpdateFieldInput defines the request for editing one field
type UpdateFieldInput struct {
	BuildID string
	Record  string
	Field   string
	// Value in any decoded shape: bool, number, or a list of numbers for sets
	Value any
}

// UpdateFieldOutput defines the response for editing one field
type UpdateFieldOutput struct {
	View *BuildView
}

// ApplyPresetInput defines the request for applying a preset
type ApplyPresetInput struct {
	BuildID string
	Preset  string
}

// ApplyPresetOutput defines the response for applying a preset
type ApplyPresetOutput struct {
	View *BuildView
}

// SetEPWeightsInput defines the request for storing computed stat weights
type SetEPWeightsInput struct {
	BuildID string
	// Weights nil clears the stored weights
	Weights *sim.Stats
}

// SetEPWeightsOutput defines the response for storing stat weights
type SetEPWeightsOutput struct {
	View *BuildView
}

// ExportInput defines the request for exporting a build
type ExportInput struct {
	BuildID string
	Format  exporters.Format
}

// ExportOutput defines the response for exporting a build
type ExportOutput struct {
	Title string
	Data  string
	// FileName is set when the export can be downloaded
	FileName string
}

// ImportLinkInput defines the request for importing a sharable link
type ImportLinkInput struct {
	Link string
}

// ImportLinkOutput defines the response for importing a sharable link
type ImportLinkOutput struct {
	View *BuildView
}

// DescribeGearInput defines the request for describing a build's gear
type DescribeGearInput struct {
	BuildID string
}

// GearDescription describes one equipped item
type GearDescription struct {
	Slot      int
	ItemID    int32
	EnchantID int32
	// Enchant is the enchant description, or a fallback label when the
	// description table is unavailable. Empty without an enchant.
	Enchant string
	Gems    []int32
}

// DescribeGearOutput defines the response for describing gear
type DescribeGearOutput struct {
	Items []GearDescription
}
