package inputs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/events"
	"github.com/KirkDiggler/simui-api/internal/inputs"
	"github.com/KirkDiggler/simui-api/internal/player"
	"github.com/KirkDiggler/simui-api/internal/settings"
)

type InputsTestSuite struct {
	suite.Suite
	schemas player.Schemas
	player  *player.Player

	bloodlust *inputs.Descriptor[bool]
	totems    *inputs.Descriptor[int32]
	glyphs    *inputs.Descriptor[settings.Set]
	delay     *inputs.Descriptor[float64]
	percent   *inputs.Descriptor[float64]
}

func TestInputsSuite(t *testing.T) {
	suite.Run(t, new(InputsTestSuite))
}

func (s *InputsTestSuite) SetupTest() {
	rotation, err := settings.NewSchema("rotation",
		settings.FieldSpec{Name: "totems", Kind: settings.KindEnum, Default: int32(1)},
		settings.FieldSpec{Name: "weave", Kind: settings.KindBool},
		settings.FieldSpec{Name: "weave_percent", Kind: settings.KindNumber, Default: float64(50)},
	)
	s.Require().NoError(err)
	options, err := settings.NewSchema("options",
		settings.FieldSpec{Name: "bloodlust", Kind: settings.KindBool, Default: true},
		settings.FieldSpec{Name: "delay", Kind: settings.KindNumber},
	)
	s.Require().NoError(err)
	talents, err := settings.NewSchema("talents",
		settings.FieldSpec{Name: "dual_wield", Kind: settings.KindBool},
		settings.FieldSpec{Name: "glyphs", Kind: settings.KindSet},
	)
	s.Require().NoError(err)
	s.schemas = player.Schemas{Rotation: rotation, Options: options, Talents: talents}

	s.player, err = player.New(&player.Config{
		Spec:    sim.SpecEnhancementShaman,
		Class:   sim.ClassShaman,
		Schemas: s.schemas,
	})
	s.Require().NoError(err)

	s.bloodlust, err = inputs.NewBoolean(inputs.Config{
		Record:    player.RecordOptions,
		FieldName: "bloodlust",
		ActionID:  sim.SpellAction(2825),
	})
	s.Require().NoError(err)

	s.totems, err = inputs.NewEnum(inputs.Config{
		Record:    player.RecordRotation,
		FieldName: "totems",
		Label:     "Totems",
	}, []inputs.Option{
		{Value: 1, Name: "Fire"},
		{Value: 2, Name: "Air"},
		{Value: 3, Name: "Windfury", ShowWhen: dualWield},
	})
	s.Require().NoError(err)

	s.glyphs, err = inputs.NewMultiSelect(inputs.Config{
		Record:    player.RecordTalents,
		FieldName: "glyphs",
	}, []inputs.Option{
		{Value: 1, Name: "Feral Spirit"},
		{Value: 2, Name: "Stormstrike"},
		{Value: 3, Name: "Lava Lash"},
	}, 0)
	s.Require().NoError(err)

	s.delay, err = inputs.NewNumber(inputs.Config{
		Record:    player.RecordOptions,
		FieldName: "delay",
	}, inputs.AtLeast(0, inputs.PolicyClamp))
	s.Require().NoError(err)

	s.percent, err = inputs.NewNumber(inputs.Config{
		Record:     player.RecordRotation,
		FieldName:  "weave_percent",
		EnableWhen: func(p *player.Player) bool { return p.Rotation().Bool("weave") },
	}, inputs.Range(0, 100, inputs.PolicyReject))
	s.Require().NoError(err)
}

func dualWield(p *player.Player) bool {
	return p.Talents().Bool("dual_wield")
}

func (s *InputsTestSuite) TestReadWriteRoundTrip() {
	id := events.NextEventID()

	s.Require().NoError(s.bloodlust.Write(id, s.player, false))
	s.Require().NoError(s.totems.Write(id, s.player, 2))
	s.Require().NoError(s.glyphs.Write(id, s.player, settings.NewSet(3, 1)))
	s.Require().NoError(s.delay.Write(id, s.player, 1.5))

	b, err := s.bloodlust.Read(s.player)
	s.NoError(err)
	s.False(b)
	e, err := s.totems.Read(s.player)
	s.NoError(err)
	s.Equal(int32(2), e)
	set, err := s.glyphs.Read(s.player)
	s.NoError(err)
	s.Equal(settings.NewSet(1, 3), set)
	n, err := s.delay.Read(s.player)
	s.NoError(err)
	s.Equal(1.5, n)
}

func (s *InputsTestSuite) TestEnumRejectsValueOutsideOptions() {
	change := 0
	s.player.Change().On(func(events.EventID, *player.Player) { change++ })

	err := s.totems.Write(events.NextEventID(), s.player, 9)

	s.True(errors.IsInvalidValue(err))
	s.Equal("totems", errors.GetMeta(err)[errors.MetaField])
	s.Equal(int32(1), s.player.Rotation().Enum("totems"))
	s.Equal(0, change)
}

func (s *InputsTestSuite) TestEnumHiddenOptionIsStillLegal() {
	s.Len(s.totems.VisibleOptions(s.player), 2)

	err := s.totems.Write(events.NextEventID(), s.player, 3)

	s.NoError(err)
}

func (s *InputsTestSuite) TestMultiSelectRejectsUnknownMember() {
	err := s.glyphs.Write(events.NextEventID(), s.player, settings.NewSet(1, 7))

	s.True(errors.IsInvalidValue(err))
	s.Empty(s.player.Talents().Set("glyphs"))
}

func (s *InputsTestSuite) TestToggleTwiceRestores() {
	s.Require().NoError(s.glyphs.Write(events.NextEventID(), s.player, settings.NewSet(2)))

	s.Require().NoError(inputs.Toggle(events.NextEventID(), s.player, s.glyphs, 3))
	s.Equal(settings.NewSet(2, 3), s.player.Talents().Set("glyphs"))

	s.Require().NoError(inputs.Toggle(events.NextEventID(), s.player, s.glyphs, 3))
	s.Equal(settings.NewSet(2), s.player.Talents().Set("glyphs"))
}

func (s *InputsTestSuite) TestNumberClamps() {
	s.Require().NoError(s.delay.Write(events.NextEventID(), s.player, -4))

	s.Equal(0.0, s.player.Options().Number("delay"))
}

func (s *InputsTestSuite) TestNumberRejectsOutOfRange() {
	err := s.percent.Write(events.NextEventID(), s.player, 150)

	s.True(errors.IsOutOfRange(err))
	s.Equal(50.0, s.player.Rotation().Number("weave_percent"))
}

func (s *InputsTestSuite) TestWriteAnyCoercesDecodedValues() {
	id := events.NextEventID()

	s.NoError(s.totems.WriteAny(id, s.player, float64(2)))
	s.NoError(s.glyphs.WriteAny(id, s.player, []any{float64(2), float64(1)}))
	s.True(errors.IsInvalidValue(s.bloodlust.WriteAny(id, s.player, "yes")))
	s.True(errors.IsInvalidValue(s.totems.WriteAny(id, s.player, 1.5)))

	s.Equal(int32(2), s.player.Rotation().Enum("totems"))
	s.Equal(settings.NewSet(1, 2), s.player.Talents().Set("glyphs"))
}

func (s *InputsTestSuite) TestPredicatesFollowState() {
	s.False(s.percent.Enabled(s.player))
	s.True(s.percent.Visible(s.player))

	s.Require().NoError(s.player.SetField(events.NextEventID(), player.RecordRotation, "weave", true))

	s.True(s.percent.Enabled(s.player))
}

func (s *InputsTestSuite) TestPredicatesAreRepeatable() {
	calls := 0
	in, err := inputs.NewBoolean(inputs.Config{
		Record:    player.RecordRotation,
		FieldName: "weave",
		ShowWhen: func(p *player.Player) bool {
			calls++
			return p.Talents().Bool("dual_wield")
		},
	})
	s.Require().NoError(err)

	first := in.Visible(s.player)
	second := in.Visible(s.player)

	s.Equal(first, second)
	s.Equal(2, calls)
}

func (s *InputsTestSuite) TestDescribeListsVisibleOptions() {
	state := s.totems.Describe(s.player)

	s.Equal("Totems", state.Label)
	s.Equal(int32(1), state.Value)
	s.Require().Len(state.Options, 2)
	s.True(state.Options[0].Selected)
	s.False(state.Options[1].Selected)

	s.Require().NoError(s.player.SetField(events.NextEventID(), player.RecordTalents, "dual_wield", true))
	s.Len(s.totems.Describe(s.player).Options, 3)
}

func (s *InputsTestSuite) TestMultiSelectDefaultsToOneColumn() {
	s.Equal(1, s.glyphs.NumColumns())
}

func (s *InputsTestSuite) TestConstructorsValidate() {
	_, err := inputs.NewEnum(inputs.Config{Record: player.RecordRotation, FieldName: "totems"}, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = inputs.NewEnum(inputs.Config{Record: player.RecordRotation, FieldName: "totems"},
		[]inputs.Option{{Value: 1}, {Value: 1}})
	s.True(errors.IsInvalidArgument(err))

	_, err = inputs.NewBoolean(inputs.Config{Record: "gear", FieldName: "x"})
	s.True(errors.IsInvalidArgument(err))

	_, err = inputs.NewNumber(inputs.Config{Record: player.RecordOptions, FieldName: "delay"},
		inputs.Range(10, 1, inputs.PolicyClamp))
	s.True(errors.IsInvalidArgument(err))
}

func (s *InputsTestSuite) TestValidateAgainstSchemas() {
	s.NoError(inputs.Validate(s.schemas, s.bloodlust, s.totems, s.glyphs, s.delay, s.percent))

	wrongKind, err := inputs.NewNumber(inputs.Config{Record: player.RecordRotation, FieldName: "weave"}, nil)
	s.Require().NoError(err)
	missing, err := inputs.NewBoolean(inputs.Config{Record: player.RecordOptions, FieldName: "heroism"})
	s.Require().NoError(err)

	err = inputs.Validate(s.schemas, wrongKind, missing)
	s.True(errors.IsInvalidArgument(err))
}

func (s *InputsTestSuite) TestControlRendersOnMountAndChange() {
	scope := events.NewScope(context.Background())
	var renders []inputs.State

	control, err := inputs.Mount(scope, s.player, s.totems, func(state inputs.State) {
		renders = append(renders, state)
	})
	s.Require().NoError(err)
	s.Require().Len(renders, 1)

	s.Require().NoError(control.Set(float64(2)))

	s.Require().Len(renders, 2)
	s.Equal(int32(2), renders[1].Value)
}

func (s *InputsTestSuite) TestControlStopsAfterScopeClose() {
	scope := events.NewScope(context.Background())
	renders := 0
	control, err := inputs.Mount(scope, s.player, s.bloodlust, func(inputs.State) { renders++ })
	s.Require().NoError(err)

	scope.Close()
	s.Require().NoError(s.bloodlust.Write(events.NextEventID(), s.player, false))

	s.Equal(1, renders)
	s.True(errors.IsFailedPrecondition(control.Set(true)))
}

func (s *InputsTestSuite) TestControlRejectsEditWhenDisabled() {
	scope := events.NewScope(context.Background())
	defer scope.Close()
	control, err := inputs.Mount(scope, s.player, s.percent, func(inputs.State) {})
	s.Require().NoError(err)

	err = control.Set(float64(10))

	s.True(errors.IsFailedPrecondition(err))
	s.Equal(50.0, s.player.Rotation().Number("weave_percent"))
}

func (s *InputsTestSuite) TestControlRendersOncePerBatch() {
	scope := events.NewScope(context.Background())
	defer scope.Close()
	renders := 0
	_, err := inputs.Mount(scope, s.player, s.totems, func(inputs.State) { renders++ })
	s.Require().NoError(err)

	s.player.Batch(func() {
		s.Require().NoError(s.totems.Write(events.NextEventID(), s.player, 2))
		s.Require().NoError(s.player.SetField(events.NextEventID(), player.RecordTalents, "dual_wield", true))
	})

	s.Equal(2, renders)
}

func (s *InputsTestSuite) TestMountOnClosedScope() {
	scope := events.NewScope(context.Background())
	scope.Close()

	_, err := inputs.Mount(scope, s.player, s.totems, func(inputs.State) {})

	s.True(errors.IsFailedPrecondition(err))
}
