package specs

import (
	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/inputs"
	"github.com/KirkDiggler/simui-api/internal/player"
	"github.com/KirkDiggler/simui-api/internal/settings"
)

// Enhancement shaman rotation types
const (
	EnhancementRotationPriority int32 = iota
	EnhancementRotationCustom
)

// Enhancement shaman custom rotation spells
const (
	CustomLightningBolt int32 = iota + 1
	CustomLightningBoltWeave
	CustomStormstrikeDebuffMissing
	CustomStormstrike
	CustomFlameShock
	CustomEarthShock
	CustomFireNova
	CustomLavaLash
	CustomLightningShield
	CustomLavaBurst
	CustomFrostShock
)

// Shaman imbues
const (
	ImbueNone int32 = iota
	ImbueWindfury
	ImbueFlametongue
	ImbueFlametongueDownrank
	ImbueFrostbrand
)

// Shaman shields
const (
	ShieldNone int32 = iota
	ShieldWater
	ShieldLightning
)

func imbueOptions() []inputs.Option {
	return []inputs.Option{
		{Value: ImbueNone, Color: "grey"},
		{Value: ImbueWindfury, ActionID: sim.SpellAction(58804)},
		{Value: ImbueFlametongue, ActionID: sim.SpellAction(58790), Text: "R10"},
		{Value: ImbueFlametongueDownrank, ActionID: sim.SpellAction(58789), Text: "R9"},
		{Value: ImbueFrostbrand, ActionID: sim.SpellAction(58796)},
	}
}

// EnhancementShaman builds the enhancement shaman definition
func EnhancementShaman() (*Definition, error) {
	schemas, err := buildSchemas("enhancement_shaman",
		[]settings.FieldSpec{
			enumField("rotation_type", EnhancementRotationPriority),
			setField("custom_rotation"),
			enumField("primary_shock", 1),
			boolField("weave_flame_shock", true),
			numberField("flame_shock_clip_ticks", 1),
			boolField("lightningbolt_weave", true),
			enumField("maelstromweapon_min_stack", 3),
			numberField("weave_reaction_time", 300),
			boolField("lavaburst_weave", false),
			numberField("firenova_mana_threshold", 3000),
			numberField("shamanistic_rage_mana_threshold", 25),
		},
		[]settings.FieldSpec{
			boolField("bloodlust", true),
			enumField("shield", ShieldLightning),
			enumField("imbue_mh", ImbueWindfury),
			enumField("imbue_oh", ImbueFlametongue),
			enumField("sync_type", 0),
		},
		[]settings.FieldSpec{
			numberField("maelstrom_weapon", 0),
			boolField("shamanistic_rage", false),
			boolField("feral_spirit", false),
			setField("glyphs"),
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build enhancement shaman schemas")
	}

	custom := rotationEnumIs("rotation_type", EnhancementRotationCustom)
	weaving := anyOf(rotationBool("lightningbolt_weave"), custom)

	var l inputList
	bloodlust := options("bloodlust", "", "")
	bloodlust.ActionID = sim.SpellAction(2825)
	l.add(inputs.NewBoolean(bloodlust))
	l.add(inputs.NewEnum(options("shield", "", ""), []inputs.Option{
		{Value: ShieldNone, Color: "grey"},
		{Value: ShieldWater, ActionID: sim.SpellAction(57960)},
		{Value: ShieldLightning, ActionID: sim.SpellAction(49281)},
	}))
	l.add(inputs.NewEnum(options("imbue_mh", "", ""), imbueOptions()))
	l.add(inputs.NewEnum(options("imbue_oh", "", ""), imbueOptions()))
	l.add(inputs.NewEnum(options("sync_type", "Sync/Stagger Setting",
		"Perfect Sync makes your weapons always attack at the same time. Delayed Offhand also delays offhand attacks slightly while staying within the flurry ICD window."),
		named("None", "Perfect Sync", "Delayed Offhand")))

	l.add(inputs.NewEnum(rotation("rotation_type", "Type",
		"Standard: priority rotation. Custom: highest spell that is ready will be cast."),
		named("Standard", "Custom")))

	customRotation := rotation("custom_rotation", "", "")
	customRotation.ShowWhen = custom
	l.add(inputs.NewMultiSelect(customRotation, []inputs.Option{
		{Value: CustomLightningBolt, ActionID: sim.SpellAction(49238)},
		{Value: CustomLightningBoltWeave, ActionID: sim.SpellAction(49238), Text: "Weave"},
		{Value: CustomStormstrikeDebuffMissing, ActionID: sim.SpellAction(17364), Text: "Debuff"},
		{Value: CustomStormstrike, ActionID: sim.SpellAction(17364)},
		{Value: CustomFlameShock, ActionID: sim.SpellAction(49233)},
		{Value: CustomEarthShock, ActionID: sim.SpellAction(49231)},
		{Value: CustomFireNova, ActionID: sim.SpellAction(61657)},
		{Value: CustomLavaLash, ActionID: sim.SpellAction(60103)},
		{Value: CustomLightningShield, ActionID: sim.SpellAction(49281)},
		{Value: CustomLavaBurst, ActionID: sim.SpellAction(60043), Text: "Weave"},
		{Value: CustomFrostShock, ActionID: sim.SpellAction(49236)},
	}, 2))

	primaryShock := rotation("primary_shock", "Primary Shock", "")
	primaryShock.ShowWhen = not(custom)
	l.add(inputs.NewEnum(primaryShock, named("None", "Earth Shock", "Frost Shock")))

	weaveFlameShock := rotation("weave_flame_shock", "Weave Flame Shock",
		"Use Flame Shock whenever the target does not already have the DoT.")
	weaveFlameShock.ShowWhen = not(custom)
	l.add(inputs.NewBoolean(weaveFlameShock))

	clipTicks := rotation("flame_shock_clip_ticks", "Refresh Flame Shock at ticks remaining",
		"Set to 0 to require the debuff be missing. A tick is 3s, affected by spell haste")
	clipTicks.EnableWhen = rotationBool("weave_flame_shock")
	clipTicks.ShowWhen = rotationBool("weave_flame_shock")
	l.add(inputs.NewNumber(clipTicks, inputs.AtLeast(0, inputs.PolicyClamp)))

	lbWeave := rotation("lightningbolt_weave", "Enable Weaving Lightning Bolt",
		"Will provide a DPS increase, but is harder to execute")
	lbWeave.EnableWhen = func(p *player.Player) bool { return p.Talents().Number("maelstrom_weapon") > 0 }
	lbWeave.ShowWhen = not(custom)
	l.add(inputs.NewBoolean(lbWeave))

	minStack := rotation("maelstromweapon_min_stack", "Minimum Maelstrom Stacks to Weave",
		"3 stacks is the most realistic, lower is possible but much harder to do in practice")
	minStack.EnableWhen = weaving
	l.add(inputs.NewEnum(minStack, []inputs.Option{
		{Value: 1, Name: "1"},
		{Value: 2, Name: "2"},
		{Value: 3, Name: "3"},
		{Value: 4, Name: "4"},
	}))

	reaction := rotation("weave_reaction_time", "Weaving Reaction Time",
		"The reaction time to gaining maelstrom stacks after an auto attack in milliseconds")
	reaction.EnableWhen = weaving
	l.add(inputs.NewNumber(reaction, inputs.AtLeast(0, inputs.PolicyClamp)))

	lvbWeave := rotation("lavaburst_weave", "Enable Weaving Lava Burst",
		"Not particularily useful for dual wield, mostly a 2h option")
	lvbWeave.EnableWhen = rotationBool("lightningbolt_weave")
	lvbWeave.ShowWhen = not(custom)
	l.add(inputs.NewBoolean(lvbWeave))

	l.add(inputs.NewNumber(rotation("firenova_mana_threshold", "Minimum mana to cast Fire Nova",
		"Fire Nova will not be cast when mana is below this value"), inputs.AtLeast(0, inputs.PolicyClamp)))

	srMana := rotation("shamanistic_rage_mana_threshold", "Mana % to use Shamanistic Rage", "")
	srMana.EnableWhen = talentBool("shamanistic_rage")
	l.add(inputs.NewNumber(srMana, inputs.Range(0, 100, inputs.PolicyReject)))

	if l.err != nil {
		return nil, errors.Wrap(l.err, "failed to build enhancement shaman inputs")
	}

	presets, err := loadPresets("enhancement_shaman")
	if err != nil {
		return nil, err
	}

	return &Definition{
		Spec:        sim.SpecEnhancementShaman,
		Class:       sim.ClassShaman,
		DefaultRace: sim.RaceOrc,
		Schemas:     schemas,
		Inputs:      l.inputs,
		Presets:     presets,
	}, nil
}
