package specs

import (
	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/inputs"
	"github.com/KirkDiggler/simui-api/internal/settings"
)

// Balance druid rotation types
const (
	BalanceRotationAdaptive int32 = iota
	BalanceRotationManual
)

// InnervateNoTarget leaves innervate unused
const InnervateNoTarget int32 = -1

// BalanceDruid builds the balance druid definition
func BalanceDruid() (*Definition, error) {
	schemas, err := buildSchemas("balance_druid",
		[]settings.FieldSpec{
			enumField("type", BalanceRotationAdaptive),
			boolField("use_battle_res", false),
			boolField("use_is", true),
			boolField("use_mf", false),
			numberField("is_inside_eclipse_threshold", 14),
			numberField("mf_inside_eclipse_threshold", 0),
			boolField("use_smart_cooldowns", true),
			numberField("mcd_inside_lunar_threshold", 15),
			numberField("mcd_inside_solar_threshold", 15),
			boolField("keep_is_up", true),
		},
		[]settings.FieldSpec{
			enumField("innervate_target", InnervateNoTarget),
		},
		[]settings.FieldSpec{
			boolField("starfall", false),
			boolField("force_of_nature", false),
			setField("glyphs"),
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build balance druid schemas")
	}

	manual := rotationEnumIs("type", BalanceRotationManual)
	eclipseTicks := inputs.Range(0, 15, inputs.PolicyClamp)

	var l inputList
	l.add(inputs.NewEnum(options("innervate_target", "Innervate Target", ""), []inputs.Option{
		{Value: InnervateNoTarget, Name: "None"},
		{Value: 0, Name: "Self"},
	}))
	l.add(inputs.NewEnum(rotation("type", "Type",
		"Adaptive picks spells from the current eclipse. Manual follows the settings below."),
		named("Adaptive", "Manual")))

	useIS := rotation("use_is", "Use Insect Swarm", "")
	useIS.ShowWhen = manual
	l.add(inputs.NewBoolean(useIS))

	keepIS := rotation("keep_is_up", "Keep Insect Swarm up", "")
	keepIS.ShowWhen = manual
	keepIS.EnableWhen = rotationBool("use_is")
	l.add(inputs.NewBoolean(keepIS))

	isEclipse := rotation("is_inside_eclipse_threshold", "Insect Swarm inside eclipse threshold",
		"Refresh Insect Swarm inside an eclipse only when more than this many seconds of eclipse remain")
	isEclipse.ShowWhen = manual
	isEclipse.EnableWhen = rotationBool("use_is")
	l.add(inputs.NewNumber(isEclipse, eclipseTicks))

	useMF := rotation("use_mf", "Use Moonfire", "")
	useMF.ShowWhen = manual
	l.add(inputs.NewBoolean(useMF))

	mfEclipse := rotation("mf_inside_eclipse_threshold", "Moonfire inside eclipse threshold", "")
	mfEclipse.ShowWhen = manual
	mfEclipse.EnableWhen = rotationBool("use_mf")
	l.add(inputs.NewNumber(mfEclipse, eclipseTicks))

	smart := rotation("use_smart_cooldowns", "Smart cooldowns",
		"Hold major cooldowns for an eclipse")
	l.add(inputs.NewBoolean(smart))

	lunar := rotation("mcd_inside_lunar_threshold", "Cooldowns inside lunar threshold", "")
	lunar.EnableWhen = rotationBool("use_smart_cooldowns")
	l.add(inputs.NewNumber(lunar, eclipseTicks))

	solar := rotation("mcd_inside_solar_threshold", "Cooldowns inside solar threshold", "")
	solar.EnableWhen = rotationBool("use_smart_cooldowns")
	l.add(inputs.NewNumber(solar, eclipseTicks))

	l.add(inputs.NewBoolean(rotation("use_battle_res", "Use Rebirth", "Spend a global cooldown on Rebirth during the fight")))

	if l.err != nil {
		return nil, errors.Wrap(l.err, "failed to build balance druid inputs")
	}

	presets, err := loadPresets("balance_druid")
	if err != nil {
		return nil, err
	}

	return &Definition{
		Spec:        sim.SpecBalanceDruid,
		Class:       sim.ClassDruid,
		DefaultRace: sim.RaceTauren,
		Schemas:     schemas,
		Inputs:      l.inputs,
		Presets:     presets,
	}, nil
}
