package specs

import (
	"embed"
	"maps"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/events"
	"github.com/KirkDiggler/simui-api/internal/player"
)

//go:embed presets/*.yaml
var presetFiles embed.FS

// Preset is a named partial build. Only the parts it sets are applied.
type Preset struct {
	Name          string             `yaml:"name"`
	Tooltip       string             `yaml:"tooltip"`
	TalentsString string             `yaml:"talents_string"`
	Talents       map[string]any     `yaml:"talents"`
	Rotation      map[string]any     `yaml:"rotation"`
	Options       map[string]any     `yaml:"options"`
	Gear          *sim.EquipmentSpec `yaml:"gear"`

	// EnableWhenTalent names a bool talent the preset requires
	EnableWhenTalent string `yaml:"enable_when_talent"`
}

type presetFile struct {
	Presets []*Preset `yaml:"presets"`
}

func loadPresets(name string) ([]*Preset, error) {
	data, err := presetFiles.ReadFile("presets/" + name + ".yaml")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read presets %s", name)
	}

	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInternal, "failed to parse presets %s", name)
	}
	return file.Presets, nil
}

// Record returns the values the preset sets on one record kind
func (p *Preset) Record(kind player.RecordKind) map[string]any {
	switch kind {
	case player.RecordRotation:
		return p.Rotation
	case player.RecordOptions:
		return p.Options
	case player.RecordTalents:
		return p.Talents
	default:
		return nil
	}
}

// Enabled reports whether the preset can be applied to the build
func (p *Preset) Enabled(pl *player.Player) bool {
	return p.EnableWhenTalent == "" || pl.Talents().Bool(p.EnableWhenTalent)
}

// Apply writes the preset as one change. Nothing changes when any value is
// rejected.
func (p *Preset) Apply(eventID events.EventID, pl *player.Player) error {
	if !p.Enabled(pl) {
		return errors.FailedPreconditionf("preset %s requires talent %s", p.Name, p.EnableWhenTalent)
	}

	snap := pl.Snapshot()
	maps.Copy(snap.Rotation, p.Rotation)
	maps.Copy(snap.Options, p.Options)
	maps.Copy(snap.Talents, p.Talents)
	if p.TalentsString != "" {
		snap.TalentsString = p.TalentsString
	}
	if p.Gear != nil {
		snap.Gear = p.Gear.Clone()
	}

	if err := pl.ApplySnapshot(eventID, snap); err != nil {
		return errors.Wrapf(err, "failed to apply preset %s", p.Name)
	}
	return nil
}
