// Package builds implements the builds orchestrator: every user edit of a
// saved build goes through the same field inputs the settings tab renders.
package builds

//go:generate mockgen -destination=mock/mock_service.go -package=buildsmock github.com/KirkDiggler/simui-api/internal/orchestrators/builds Service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/KirkDiggler/simui-api/internal/clients/reference"
	"github.com/KirkDiggler/simui-api/internal/entities"
	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/events"
	"github.com/KirkDiggler/simui-api/internal/exporters"
	"github.com/KirkDiggler/simui-api/internal/inputs"
	"github.com/KirkDiggler/simui-api/internal/player"
	buildrepo "github.com/KirkDiggler/simui-api/internal/repositories/builds"
	"github.com/KirkDiggler/simui-api/internal/settings"
	"github.com/KirkDiggler/simui-api/internal/specs"
)

// DefaultLinkBaseURL is the page sharable links open
const DefaultLinkBaseURL = "https://wowsims.github.io/wotlk/"

// maxEditAttempts bounds how often an edit is replayed after losing a race
// with another write to the same build
const maxEditAttempts = 5

// Service defines the interface for build operations
type Service interface {
	CreateBuild(ctx context.Context, input *CreateBuildInput) (*CreateBuildOutput, error)
	GetBuild(ctx context.Context, input *GetBuildInput) (*GetBuildOutput, error)
	DeleteBuild(ctx context.Context, input *DeleteBuildInput) (*DeleteBuildOutput, error)

	UpdateField(ctx context.Context, input *UpdateFieldInput) (*UpdateFieldOutput, error)
	ApplyPreset(ctx context.Context, input *ApplyPresetInput) (*ApplyPresetOutput, error)
	SetEPWeights(ctx context.Context, input *SetEPWeightsInput) (*SetEPWeightsOutput, error)

	Export(ctx context.Context, input *ExportInput) (*ExportOutput, error)
	ImportLink(ctx context.Context, input *ImportLinkInput) (*ImportLinkOutput, error)
	DescribeGear(ctx context.Context, input *DescribeGearInput) (*DescribeGearOutput, error)
}

// Config holds the dependencies for the builds orchestrator
type Config struct {
	BuildRepo buildrepo.Repository
	Registry  *specs.Registry
	Catalog   reference.Catalog
	// LinkBaseURL is the page sharable links point at (optional)
	LinkBaseURL string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	vb := errors.NewValidationBuilder()
	if c.BuildRepo == nil {
		vb.RequiredField("BuildRepo")
	}
	if c.Registry == nil {
		vb.RequiredField("Registry")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.LinkBaseURL == "" {
		c.LinkBaseURL = DefaultLinkBaseURL
	}
	return vb.Build()
}

type orchestrator struct {
	buildRepo   buildrepo.Repository
	registry    *specs.Registry
	catalog     reference.Catalog
	linkBaseURL string
}

// NewOrchestrator creates a new builds orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		buildRepo:   cfg.BuildRepo,
		registry:    cfg.Registry,
		catalog:     cfg.Catalog,
		linkBaseURL: cfg.LinkBaseURL,
	}, nil
}

// loaded is a stored build brought back to life
type loaded struct {
	build  *entities.Build
	def    *specs.Definition
	player *player.Player
}

func (o *orchestrator) load(ctx context.Context, buildID string) (*loaded, error) {
	if buildID == "" {
		return nil, errors.InvalidArgument("build ID is required")
	}

	out, err := o.buildRepo.Get(ctx, buildrepo.GetInput{ID: buildID})
	if err != nil {
		return nil, err
	}
	build := out.Build
	if build.Snapshot == nil {
		return nil, errors.DataLossf("build %s has no snapshot", buildID)
	}

	def, err := o.registry.Get(build.Snapshot.Spec)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s", buildID)
	}
	// stored snapshots come back as plain JSON values and may predate newer fields
	if err := build.Snapshot.Normalize(def.Schemas); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "stored build %s is invalid", buildID)
	}
	pl, err := player.FromSnapshot(build.Snapshot, def.Schemas)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "stored build %s is invalid", buildID)
	}

	return &loaded{build: build, def: def, player: pl}, nil
}

func (o *orchestrator) save(ctx context.Context, l *loaded) (*BuildView, error) {
	out, err := o.buildRepo.Update(ctx, buildrepo.UpdateInput{
		ID:       l.build.ID,
		Revision: l.build.Revision,
		Snapshot: l.player.Snapshot(),
	})
	if err != nil {
		return nil, err
	}
	l.build = out.Build
	return o.view(l), nil
}

// edit loads a build, applies change and saves it. When another write lands
// in between, the edit is replayed on the fresh build.
func (o *orchestrator) edit(ctx context.Context, buildID string, change func(*loaded) error) (*BuildView, error) {
	var err error
	for attempt := 1; attempt <= maxEditAttempts; attempt++ {
		var l *loaded
		l, err = o.load(ctx, buildID)
		if err != nil {
			return nil, err
		}
		if err = change(l); err != nil {
			return nil, err
		}

		var view *BuildView
		view, err = o.save(ctx, l)
		if err == nil {
			return view, nil
		}
		if !errors.IsAborted(err) {
			return nil, err
		}
		slog.Debug("build changed during edit, retrying",
			"build_id", buildID,
			"attempt", attempt)
	}
	return nil, errors.Wrapf(err, "gave up editing build %s after %d attempts", buildID, maxEditAttempts)
}

func (o *orchestrator) view(l *loaded) *BuildView {
	presets := make([]PresetState, 0, len(l.def.Presets))
	for _, p := range l.def.Presets {
		presets = append(presets, PresetState{
			Name:    p.Name,
			Tooltip: p.Tooltip,
			Enabled: p.Enabled(l.player),
		})
	}

	return &BuildView{
		Build:   l.build,
		Inputs:  inputs.Describe(l.player, l.def.Inputs...),
		Presets: presets,
		Exports: exporters.Menu(),
	}
}

func (o *orchestrator) CreateBuild(ctx context.Context, input *CreateBuildInput) (*CreateBuildOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	def, err := o.registry.Get(input.Spec)
	if err != nil {
		return nil, err
	}
	pl, err := def.NewPlayer(input.Name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create player")
	}

	eventID := events.NextEventID()
	if input.Race != "" {
		if err := pl.SetRace(eventID, input.Race); err != nil {
			return nil, err
		}
	}
	for _, name := range input.Presets {
		if err := def.ApplyPreset(eventID, pl, name); err != nil {
			return nil, err
		}
	}

	out, err := o.buildRepo.Create(ctx, buildrepo.CreateInput{Snapshot: pl.Snapshot()})
	if err != nil {
		return nil, err
	}

	slog.Info("build created",
		"build_id", out.Build.ID,
		"spec", input.Spec,
		"presets", len(input.Presets))

	return &CreateBuildOutput{
		View: o.view(&loaded{build: out.Build, def: def, player: pl}),
	}, nil
}

func (o *orchestrator) GetBuild(ctx context.Context, input *GetBuildInput) (*GetBuildOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	l, err := o.load(ctx, input.BuildID)
	if err != nil {
		return nil, err
	}
	return &GetBuildOutput{View: o.view(l)}, nil
}

func (o *orchestrator) DeleteBuild(ctx context.Context, input *DeleteBuildInput) (*DeleteBuildOutput, error) {
	if input == nil || input.BuildID == "" {
		return nil, errors.InvalidArgument("build ID is required")
	}

	if _, err := o.buildRepo.Delete(ctx, buildrepo.DeleteInput{ID: input.BuildID}); err != nil {
		return nil, err
	}
	return &DeleteBuildOutput{}, nil
}

func (o *orchestrator) UpdateField(ctx context.Context, input *UpdateFieldInput) (*UpdateFieldOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	kind, err := player.ParseRecordKind(input.Record)
	if err != nil {
		return nil, err
	}
	if input.Field == "" {
		return nil, errors.InvalidArgument("field is required")
	}

	view, err := o.edit(ctx, input.BuildID, func(l *loaded) error {
		in, ok := l.def.Input(kind, input.Field)
		switch {
		case ok:
			return o.setThroughControl(ctx, l.player, in, input.Value)
		case kind == player.RecordTalents:
			// talents are edited in the talent calculator, not through an input
			return o.setTalent(l.player, input.Field, input.Value)
		default:
			return errors.NotFoundf("no input for %s.%s", kind, input.Field)
		}
	})
	if err != nil {
		return nil, err
	}
	return &UpdateFieldOutput{View: view}, nil
}

func (o *orchestrator) setThroughControl(ctx context.Context, pl *player.Player, in inputs.Input, value any) error {
	scope := events.NewScope(ctx)
	defer scope.Close()

	ctl, err := inputs.Mount(scope, pl, in, func(inputs.State) {})
	if err != nil {
		return err
	}
	return ctl.Set(value)
}

func (o *orchestrator) setTalent(pl *player.Player, field string, raw any) error {
	spec, ok := pl.Schemas().Talents.Field(field)
	if !ok {
		return errors.NotFoundf("unknown talent %s", field)
	}
	value, err := settings.Coerce(spec.Kind, raw)
	if err != nil {
		return errors.InvalidValue(field, raw)
	}
	return pl.SetField(events.NextEventID(), player.RecordTalents, field, value)
}

func (o *orchestrator) ApplyPreset(ctx context.Context, input *ApplyPresetInput) (*ApplyPresetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Preset == "" {
		return nil, errors.InvalidArgument("preset is required")
	}

	view, err := o.edit(ctx, input.BuildID, func(l *loaded) error {
		return l.def.ApplyPreset(events.NextEventID(), l.player, input.Preset)
	})
	if err != nil {
		return nil, err
	}
	return &ApplyPresetOutput{View: view}, nil
}

func (o *orchestrator) SetEPWeights(ctx context.Context, input *SetEPWeightsInput) (*SetEPWeightsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if err := validateWeights(input.Weights); err != nil {
		return nil, err
	}

	view, err := o.edit(ctx, input.BuildID, func(l *loaded) error {
		l.player.SetEPWeights(events.NextEventID(), input.Weights)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SetEPWeightsOutput{View: view}, nil
}

func (o *orchestrator) Export(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	exporter, err := exporters.ForFormat(input.Format, o.linkBaseURL)
	if err != nil {
		return nil, err
	}

	l, err := o.load(ctx, input.BuildID)
	if err != nil {
		return nil, err
	}
	data, err := exporter.Data(l.player.Snapshot())
	if err != nil {
		return nil, err
	}

	out := &ExportOutput{
		Title: exporter.Title(),
		Data:  data,
	}
	if exporter.Downloadable() {
		out.FileName = exporters.DownloadFileName
	}
	return out, nil
}

func (o *orchestrator) ImportLink(ctx context.Context, input *ImportLinkInput) (*ImportLinkOutput, error) {
	if input == nil || input.Link == "" {
		return nil, errors.InvalidArgument("link is required")
	}

	snap, err := exporters.DecodeLink(input.Link, o.registry.Schemas)
	if err != nil {
		return nil, err
	}
	def, err := o.registry.Get(snap.Spec)
	if err != nil {
		return nil, err
	}
	if snap.Class != def.Class {
		return nil, errors.InvalidArgumentf("linked %s build has class %s, expected %s",
			snap.Spec, snap.Class, def.Class).
			WithMeta("spec", string(snap.Spec)).
			WithMeta("class", string(snap.Class))
	}
	pl, err := player.FromSnapshot(snap, def.Schemas)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load linked build")
	}

	out, err := o.buildRepo.Create(ctx, buildrepo.CreateInput{Snapshot: pl.Snapshot()})
	if err != nil {
		return nil, err
	}

	slog.Info("build imported", "build_id", out.Build.ID, "spec", snap.Spec)

	return &ImportLinkOutput{
		View: o.view(&loaded{build: out.Build, def: def, player: pl}),
	}, nil
}

func (o *orchestrator) DescribeGear(ctx context.Context, input *DescribeGearInput) (*DescribeGearOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	l, err := o.load(ctx, input.BuildID)
	if err != nil {
		return nil, err
	}

	gear := l.player.Gear()
	items := make([]GearDescription, 0, len(gear.Items))
	for slot, item := range gear.Items {
		desc := GearDescription{
			Slot:      slot,
			ItemID:    item.ID,
			EnchantID: item.Enchant,
			Gems:      item.Gems,
		}
		if item.Enchant != 0 {
			desc.Enchant = o.catalog.EnchantDescription(ctx, sim.Enchant{
				EffectID: item.Enchant,
				Name:     fmt.Sprintf("Enchant %d", item.Enchant),
			})
		}
		items = append(items, desc)
	}
	return &DescribeGearOutput{Items: items}, nil
}

// validateWeights rejects weights that cannot be stored
func validateWeights(weights *sim.Stats) error {
	if weights == nil {
		return nil
	}
	for stat, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return errors.InvalidValue(sim.Stat(stat).String(), w)
		}
	}
	return nil
}
