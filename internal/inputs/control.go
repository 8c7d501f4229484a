package inputs

import (
	"log/slog"

	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/events"
	"github.com/KirkDiggler/simui-api/internal/player"
	"github.com/KirkDiggler/simui-api/internal/settings"
)

// OptionState is an option as rendered for the current build
type OptionState struct {
	Value    int32
	Name     string
	Text     string
	Color    string
	ActionID *sim.ActionID
	Selected bool
}

// State is everything a renderer needs to draw one input
type State struct {
	Record       player.RecordKind
	FieldName    string
	Kind         settings.Kind
	Label        string
	LabelTooltip string
	ActionID     *sim.ActionID

	Value   any
	Enabled bool
	Visible bool

	// Enum and multi-select only; hidden options are left out
	Options    []OptionState
	NumColumns int

	// Number only
	Min *float64
	Max *float64
}

// Describe evaluates the input against the player's current state
func (d *Descriptor[T]) Describe(p *player.Player) State {
	s := State{
		Record:       d.cfg.Record,
		FieldName:    d.cfg.FieldName,
		Kind:         d.kind,
		Label:        d.cfg.Label,
		LabelTooltip: d.cfg.LabelTooltip,
		ActionID:     d.cfg.ActionID,
		Enabled:      d.Enabled(p),
		Visible:      d.Visible(p),
		NumColumns:   d.numColumns,
	}
	if d.bounds != nil {
		s.Min, s.Max = d.bounds.Min, d.bounds.Max
	}

	value, err := d.Read(p)
	if err != nil {
		slog.Error("failed to read input value",
			"field", d.cfg.FieldName,
			"record", d.cfg.Record,
			"error", err)
		return s
	}
	s.Value = value

	if len(d.options) == 0 {
		return s
	}
	for _, o := range d.VisibleOptions(p) {
		s.Options = append(s.Options, OptionState{
			Value:    o.Value,
			Name:     o.Name,
			Text:     o.Text,
			Color:    o.Color,
			ActionID: o.ActionID,
			Selected: selected(value, o.Value),
		})
	}
	return s
}

func selected(value any, option int32) bool {
	switch v := value.(type) {
	case int32:
		return v == option
	case settings.Set:
		return v.Has(option)
	default:
		return false
	}
}

// Describe evaluates several inputs at once
func Describe(p *player.Player, inputs ...Input) []State {
	states := make([]State, 0, len(inputs))
	for _, in := range inputs {
		states = append(states, in.Describe(p))
	}
	return states
}

// RenderFunc draws an input state
type RenderFunc func(State)

// Control is a mounted input: it renders once on mount and again after every
// change of the owning player, until its scope closes.
type Control struct {
	input  Input
	player *player.Player
	scope  *events.Scope
	render RenderFunc
}

// Mount attaches input to p inside scope. The control stops re-rendering
// when the scope closes.
func Mount(scope *events.Scope, p *player.Player, input Input, render RenderFunc) (*Control, error) {
	vb := errors.NewValidationBuilder()
	if scope == nil {
		vb.RequiredField("scope")
	}
	if p == nil {
		vb.RequiredField("player")
	}
	if input == nil {
		vb.RequiredField("input")
	}
	if render == nil {
		vb.RequiredField("render")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}
	if scope.Closed() {
		return nil, errors.FailedPreconditionf("cannot mount %s on a closed scope", input.FieldName())
	}

	c := &Control{
		input:  input,
		player: p,
		scope:  scope,
		render: render,
	}
	scope.Add(p.Change().On(func(_ events.EventID, changed *player.Player) {
		if c.scope.Closed() {
			return
		}
		c.render(c.input.Describe(changed))
	}))
	c.render(c.State())
	return c, nil
}

// Input returns the mounted input
func (c *Control) Input() Input { return c.input }

// State evaluates the control now
func (c *Control) State() State {
	return c.input.Describe(c.player)
}

// Set applies a user edit. Disabled controls and unmounted controls reject
// edits.
func (c *Control) Set(raw any) error {
	if c.scope.Closed() {
		return errors.FailedPreconditionf("control %s is unmounted", c.input.FieldName())
	}
	if !c.input.Enabled(c.player) {
		return errors.FailedPreconditionf("control %s is disabled", c.input.FieldName())
	}

	eventID := events.NextEventID()
	if err := c.input.WriteAny(eventID, c.player, raw); err != nil {
		return err
	}
	slog.Debug("input changed",
		"event_id", eventID,
		"record", c.input.Record(),
		"field", c.input.FieldName())
	return nil
}
