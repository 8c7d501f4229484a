package specs

import (
	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/inputs"
	"github.com/KirkDiggler/simui-api/internal/settings"
)

// Warrior shouts
const (
	ShoutNone int32 = iota
	ShoutBattle
	ShoutCommanding
)

// Warrior sunder armor options
const (
	SunderArmorNone int32 = iota
	SunderArmorHelpStack
	SunderArmorMaintain
)

// Warrior stance options
const (
	StanceDefault int32 = iota
	StanceBattle
	StanceBerserker
)

// Warrior builds the DPS warrior definition
func Warrior() (*Definition, error) {
	schemas, err := buildSchemas("warrior",
		[]settings.FieldSpec{
			boolField("use_rend", false),
			boolField("use_ms", true),
			boolField("use_cleave", false),
			boolField("prioritize_ww", true),
			enumField("sunder_armor", SunderArmorNone),
			numberField("ms_rage_threshold", 35),
			numberField("hs_rage_threshold", 30),
			numberField("rend_rage_threshold_below", 70),
			numberField("slam_rage_threshold", 25),
			numberField("rend_cd_threshold", 0),
			boolField("use_hs_during_execute", true),
			boolField("use_bt_during_execute", true),
			boolField("use_ww_during_execute", true),
			boolField("use_slam_over_execute", true),
			boolField("spam_execute", true),
			enumField("stance_option", StanceDefault),
		},
		[]settings.FieldSpec{
			numberField("starting_rage", 0),
			boolField("use_recklessness", true),
			enumField("shout", ShoutCommanding),
		},
		[]settings.FieldSpec{
			boolField("mortal_strike", false),
			boolField("bloodthirst", false),
			setField("glyphs"),
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build warrior schemas")
	}

	arms := talentBool("mortal_strike")
	fury := talentBool("bloodthirst")
	rage := inputs.AtLeast(0, inputs.PolicyClamp)

	var l inputList
	l.add(inputs.NewEnum(options("shout", "Shout", ""), []inputs.Option{
		{Value: ShoutNone, Color: "grey"},
		{Value: ShoutBattle, ActionID: sim.SpellAction(47436)},
		{Value: ShoutCommanding, ActionID: sim.SpellAction(47440)},
	}))
	l.add(inputs.NewNumber(options("starting_rage", "Starting Rage", "Initial rage at the start of each iteration."),
		inputs.Range(0, 100, inputs.PolicyReject)))
	l.add(inputs.NewBoolean(options("use_recklessness", "Use Recklessness", "")))

	l.add(inputs.NewEnum(rotation("stance_option", "Stance", ""), named("Default", "Battle Stance", "Berserker Stance")))
	l.add(inputs.NewEnum(rotation("sunder_armor", "Sunder Armor", ""), named("Never", "Help Stack", "Maintain Debuff")))

	useMS := rotation("use_ms", "Use Mortal Strike", "")
	useMS.ShowWhen = arms
	l.add(inputs.NewBoolean(useMS))

	msThreshold := rotation("ms_rage_threshold", "Mortal Strike rage threshold", "")
	msThreshold.ShowWhen = arms
	msThreshold.EnableWhen = rotationBool("use_ms")
	l.add(inputs.NewNumber(msThreshold, rage))

	slamThreshold := rotation("slam_rage_threshold", "Slam rage threshold", "")
	slamThreshold.ShowWhen = arms
	l.add(inputs.NewNumber(slamThreshold, rage))

	useRend := rotation("use_rend", "Use Rend", "")
	l.add(inputs.NewBoolean(useRend))

	rendThreshold := rotation("rend_rage_threshold_below", "Rend rage threshold below", "Rend will only be used when rage is below this value")
	rendThreshold.EnableWhen = rotationBool("use_rend")
	l.add(inputs.NewNumber(rendThreshold, rage))

	rendCD := rotation("rend_cd_threshold", "Rend refresh time", "Refresh Rend when the remaining duration is less than this value, in seconds")
	rendCD.EnableWhen = rotationBool("use_rend")
	l.add(inputs.NewNumber(rendCD, rage))

	prioritizeWW := rotation("prioritize_ww", "Prioritize Whirlwind", "Prioritize Whirlwind over Bloodthirst")
	prioritizeWW.ShowWhen = fury
	l.add(inputs.NewBoolean(prioritizeWW))

	l.add(inputs.NewBoolean(rotation("use_cleave", "Use Cleave", "Use Cleave instead of Heroic Strike")))
	l.add(inputs.NewNumber(rotation("hs_rage_threshold", "Heroic Strike rage threshold", ""), rage))

	l.add(inputs.NewBoolean(rotation("spam_execute", "Spam Execute", "")))
	l.add(inputs.NewBoolean(rotation("use_hs_during_execute", "Heroic Strike during Execute phase", "")))

	btExecute := rotation("use_bt_during_execute", "Bloodthirst during Execute phase", "")
	btExecute.ShowWhen = fury
	l.add(inputs.NewBoolean(btExecute))

	wwExecute := rotation("use_ww_during_execute", "Whirlwind during Execute phase", "")
	wwExecute.ShowWhen = fury
	l.add(inputs.NewBoolean(wwExecute))

	slamExecute := rotation("use_slam_over_execute", "Slam over Execute when Bloodsurge procs", "")
	slamExecute.ShowWhen = fury
	l.add(inputs.NewBoolean(slamExecute))

	if l.err != nil {
		return nil, errors.Wrap(l.err, "failed to build warrior inputs")
	}

	presets, err := loadPresets("warrior")
	if err != nil {
		return nil, err
	}

	return &Definition{
		Spec:        sim.SpecWarrior,
		Class:       sim.ClassWarrior,
		DefaultRace: sim.RaceOrc,
		Schemas:     schemas,
		Inputs:      l.inputs,
		Presets:     presets,
	}, nil
}
