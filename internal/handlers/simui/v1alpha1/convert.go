package v1alpha1

import (
	"encoding/json"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/inputs"
	"github.com/KirkDiggler/simui-api/internal/orchestrators/builds"
	"github.com/KirkDiggler/simui-api/internal/player"
)

func stringField(req *structpb.Struct, name string) string {
	return req.GetFields()[name].GetStringValue()
}

func requiredString(req *structpb.Struct, name string) (string, error) {
	v := stringField(req, name)
	if v == "" {
		return "", errors.InvalidArgumentf("%s is required", name)
	}
	return v, nil
}

func stringList(req *structpb.Struct, name string) ([]string, error) {
	list := req.GetFields()[name].GetListValue()
	if list == nil {
		return nil, nil
	}
	out := make([]string, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		s, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, errors.InvalidArgumentf("%s must be a list of strings", name)
		}
		out = append(out, s.StringValue)
	}
	return out, nil
}

// statsFromStruct reads weights keyed by stat key, e.g. {"STAT_AGILITY": 1.4}
func statsFromStruct(s *structpb.Struct) (*sim.Stats, error) {
	if s == nil {
		return nil, nil
	}
	var out sim.Stats
	for key, v := range s.GetFields() {
		stat, ok := sim.ParseStat(key)
		if !ok {
			return nil, errors.InvalidArgumentf("unknown stat %q", key)
		}
		n, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return nil, errors.InvalidArgumentf("weight of %s must be a number", key)
		}
		if math.IsNaN(n.NumberValue) || math.IsInf(n.NumberValue, 0) {
			return nil, errors.InvalidValue(key, n.NumberValue)
		}
		out[stat] = n.NumberValue
	}
	return &out, nil
}

type optionDTO struct {
	Value    int32         `json:"value"`
	Name     string        `json:"name,omitempty"`
	Text     string        `json:"text,omitempty"`
	Color    string        `json:"color,omitempty"`
	ActionID *sim.ActionID `json:"action_id,omitempty"`
	Selected bool          `json:"selected"`
}

type inputDTO struct {
	Record       player.RecordKind `json:"record"`
	Field        string            `json:"field"`
	Kind         string            `json:"kind"`
	Label        string            `json:"label,omitempty"`
	LabelTooltip string            `json:"label_tooltip,omitempty"`
	ActionID     *sim.ActionID     `json:"action_id,omitempty"`
	Value        any               `json:"value"`
	Enabled      bool              `json:"enabled"`
	Visible      bool              `json:"visible"`
	Options      []optionDTO       `json:"options,omitempty"`
	NumColumns   int               `json:"num_columns,omitempty"`
	Min          *float64          `json:"min,omitempty"`
	Max          *float64          `json:"max,omitempty"`
}

type presetDTO struct {
	Name    string `json:"name"`
	Tooltip string `json:"tooltip,omitempty"`
	Enabled bool   `json:"enabled"`
}

type exportDTO struct {
	Label         string `json:"label"`
	Format        string `json:"format"`
	ShowInRaidSim bool   `json:"show_in_raid_sim"`
}

type buildDTO struct {
	ID        string           `json:"id"`
	Revision  int64            `json:"revision"`
	Snapshot  *player.Snapshot `json:"snapshot"`
	CreatedAt string           `json:"created_at,omitempty"`
	UpdatedAt string           `json:"updated_at,omitempty"`
}

type viewDTO struct {
	Build   buildDTO    `json:"build"`
	Inputs  []inputDTO  `json:"inputs"`
	Presets []presetDTO `json:"presets"`
	Exports []exportDTO `json:"exports"`
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func inputToDTO(st inputs.State) inputDTO {
	dto := inputDTO{
		Record:       st.Record,
		Field:        st.FieldName,
		Kind:         st.Kind.String(),
		Label:        st.Label,
		LabelTooltip: st.LabelTooltip,
		ActionID:     st.ActionID,
		Value:        st.Value,
		Enabled:      st.Enabled,
		Visible:      st.Visible,
		NumColumns:   st.NumColumns,
		Min:          st.Min,
		Max:          st.Max,
	}
	for _, o := range st.Options {
		dto.Options = append(dto.Options, optionDTO(o))
	}
	return dto
}

func viewToDTO(view *builds.BuildView) viewDTO {
	dto := viewDTO{
		Inputs:  make([]inputDTO, 0, len(view.Inputs)),
		Presets: make([]presetDTO, 0, len(view.Presets)),
		Exports: make([]exportDTO, 0, len(view.Exports)),
	}
	if b := view.Build; b != nil {
		dto.Build = buildDTO{
			ID:        b.ID,
			Revision:  b.Revision,
			Snapshot:  b.Snapshot,
			CreatedAt: timestamp(b.CreatedAt),
			UpdatedAt: timestamp(b.UpdatedAt),
		}
	}
	for _, st := range view.Inputs {
		dto.Inputs = append(dto.Inputs, inputToDTO(st))
	}
	for _, p := range view.Presets {
		dto.Presets = append(dto.Presets, presetDTO(p))
	}
	for _, e := range view.Exports {
		dto.Exports = append(dto.Exports, exportDTO{
			Label:         e.Label,
			Format:        string(e.Format),
			ShowInRaidSim: e.ShowInRaidSim,
		})
	}
	return dto
}

// toStruct converts a response DTO through its JSON form
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal response")
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal response")
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build response")
	}
	return out, nil
}

func viewResponse(view *builds.BuildView) (*structpb.Struct, error) {
	return toStruct(struct {
		View viewDTO `json:"view"`
	}{View: viewToDTO(view)})
}
