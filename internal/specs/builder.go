package specs

import (
	"github.com/KirkDiggler/simui-api/internal/inputs"
	"github.com/KirkDiggler/simui-api/internal/player"
	"github.com/KirkDiggler/simui-api/internal/settings"
)

// inputList collects inputs and keeps the first construction error
type inputList struct {
	inputs []inputs.Input
	err    error
}

func (l *inputList) add(in inputs.Input, err error) {
	if l.err != nil {
		return
	}
	if err != nil {
		l.err = err
		return
	}
	l.inputs = append(l.inputs, in)
}

func buildSchemas(name string, rotation, options, talents []settings.FieldSpec) (player.Schemas, error) {
	r, err := settings.NewSchema(name+".rotation", rotation...)
	if err != nil {
		return player.Schemas{}, err
	}
	o, err := settings.NewSchema(name+".options", options...)
	if err != nil {
		return player.Schemas{}, err
	}
	t, err := settings.NewSchema(name+".talents", talents...)
	if err != nil {
		return player.Schemas{}, err
	}
	return player.Schemas{Rotation: r, Options: o, Talents: t}, nil
}

func boolField(name string, def bool) settings.FieldSpec {
	return settings.FieldSpec{Name: name, Kind: settings.KindBool, Default: def}
}

func enumField(name string, def int32) settings.FieldSpec {
	return settings.FieldSpec{Name: name, Kind: settings.KindEnum, Default: def}
}

func numberField(name string, def float64) settings.FieldSpec {
	return settings.FieldSpec{Name: name, Kind: settings.KindNumber, Default: def}
}

func setField(name string, def ...int32) settings.FieldSpec {
	return settings.FieldSpec{Name: name, Kind: settings.KindSet, Default: settings.NewSet(def...)}
}

func rotation(field, label, tooltip string) inputs.Config {
	return inputs.Config{Record: player.RecordRotation, FieldName: field, Label: label, LabelTooltip: tooltip}
}

func options(field, label, tooltip string) inputs.Config {
	return inputs.Config{Record: player.RecordOptions, FieldName: field, Label: label, LabelTooltip: tooltip}
}

func talentBool(name string) inputs.Predicate {
	return func(p *player.Player) bool { return p.Talents().Bool(name) }
}

func rotationBool(name string) inputs.Predicate {
	return func(p *player.Player) bool { return p.Rotation().Bool(name) }
}

func rotationEnumIs(name string, value int32) inputs.Predicate {
	return func(p *player.Player) bool { return p.Rotation().Enum(name) == value }
}

func not(pred inputs.Predicate) inputs.Predicate {
	return func(p *player.Player) bool { return !pred(p) }
}

func anyOf(preds ...inputs.Predicate) inputs.Predicate {
	return func(p *player.Player) bool {
		for _, pred := range preds {
			if pred(p) {
				return true
			}
		}
		return false
	}
}

func named(values ...string) []inputs.Option {
	out := make([]inputs.Option, len(values))
	for i, v := range values {
		out[i] = inputs.Option{Value: int32(i), Name: v}
	}
	return out
}
