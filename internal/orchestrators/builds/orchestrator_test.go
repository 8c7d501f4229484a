package builds_test

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	referencemock "github.com/KirkDiggler/simui-api/internal/clients/reference/mock"
	"github.com/KirkDiggler/simui-api/internal/entities"
	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/exporters"
	"github.com/KirkDiggler/simui-api/internal/inputs"
	"github.com/KirkDiggler/simui-api/internal/orchestrators/builds"
	"github.com/KirkDiggler/simui-api/internal/player"
	buildrepo "github.com/KirkDiggler/simui-api/internal/repositories/builds"
	buildsmock "github.com/KirkDiggler/simui-api/internal/repositories/builds/mock"
	"github.com/KirkDiggler/simui-api/internal/specs"
	"github.com/KirkDiggler/simui-api/internal/testutils"
)

const testBuildID = "build_test123"

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockRepo     *buildsmock.MockRepository
	mockCatalog  *referencemock.MockCatalog
	registry     *specs.Registry
	orchestrator builds.Service
	ctx          context.Context
	now          time.Time
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = buildsmock.NewMockRepository(s.ctrl)
	s.mockCatalog = referencemock.NewMockCatalog(s.ctrl)
	s.ctx = context.Background()
	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	var err error
	s.registry, err = specs.Builtin()
	s.Require().NoError(err)

	s.orchestrator, err = builds.NewOrchestrator(&builds.Config{
		BuildRepo: s.mockRepo,
		Registry:  s.registry,
		Catalog:   s.mockCatalog,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// stored returns the build the way the repository hands it back: decoded
// from JSON
func (s *OrchestratorTestSuite) stored(snap *player.Snapshot) *entities.Build {
	return &entities.Build{
		ID:        testBuildID,
		Snapshot:  testutils.StoredSnapshot(s.T(), snap),
		CreatedAt: s.now,
		UpdatedAt: s.now,
	}
}

func (s *OrchestratorTestSuite) newSnapshot(spec sim.Spec, presets ...string) *player.Snapshot {
	def, err := s.registry.Get(spec)
	s.Require().NoError(err)
	pl, err := def.NewPlayer("Test")
	s.Require().NoError(err)
	for _, name := range presets {
		s.Require().NoError(def.ApplyPreset(1, pl, name))
	}
	return pl.Snapshot()
}

func (s *OrchestratorTestSuite) expectGet(snap *player.Snapshot) {
	s.mockRepo.EXPECT().
		Get(s.ctx, buildrepo.GetInput{ID: testBuildID}).
		Return(&buildrepo.GetOutput{Build: s.stored(snap)}, nil)
}

// expectUpdate captures the saved snapshot
func (s *OrchestratorTestSuite) expectUpdate() **player.Snapshot {
	var saved *player.Snapshot
	s.mockRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input buildrepo.UpdateInput) (*buildrepo.UpdateOutput, error) {
			s.Equal(testBuildID, input.ID)
			saved = input.Snapshot
			return &buildrepo.UpdateOutput{Build: &entities.Build{
				ID:        input.ID,
				Snapshot:  input.Snapshot,
				CreatedAt: s.now,
				UpdatedAt: s.now.Add(time.Minute),
			}}, nil
		})
	return &saved
}

func (s *OrchestratorTestSuite) findInput(view *builds.BuildView, record player.RecordKind, field string) inputs.State {
	for _, st := range view.Inputs {
		if st.Record == record && st.FieldName == field {
			return st
		}
	}
	s.Failf("input not found", "%s.%s", record, field)
	return inputs.State{}
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidatesConfig() {
	_, err := builds.NewOrchestrator(&builds.Config{})
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "BuildRepo")

	_, err = builds.NewOrchestrator(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestCreateBuildAppliesPresets() {
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input buildrepo.CreateInput) (*buildrepo.CreateOutput, error) {
			s.Equal(sim.SpecWarrior, input.Snapshot.Spec)
			s.Equal(sim.RaceHuman, input.Snapshot.Race)
			s.Equal(true, input.Snapshot.Talents["bloodthirst"])
			s.NotEmpty(input.Snapshot.Gear.Items)
			return &buildrepo.CreateOutput{Build: &entities.Build{ID: testBuildID, Snapshot: input.Snapshot}}, nil
		})

	out, err := s.orchestrator.CreateBuild(s.ctx, &builds.CreateBuildInput{
		Spec:    sim.SpecWarrior,
		Name:    "Garrosh",
		Race:    sim.RaceHuman,
		Presets: []string{"Fury", "P1 Fury Preset"},
	})
	s.Require().NoError(err)
	s.Equal(testBuildID, out.View.Build.ID)
	s.Len(out.View.Exports, 4)

	// fury talents hide the arms-only inputs
	s.False(s.findInput(out.View, player.RecordRotation, "use_ms").Visible)
	s.True(s.findInput(out.View, player.RecordRotation, "prioritize_ww").Visible)
}

func (s *OrchestratorTestSuite) TestCreateBuildPresetOrderMatters() {
	_, err := s.orchestrator.CreateBuild(s.ctx, &builds.CreateBuildInput{
		Spec:    sim.SpecWarrior,
		Presets: []string{"P1 Fury Preset"},
	})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestCreateBuildUnknownSpec() {
	_, err := s.orchestrator.CreateBuild(s.ctx, &builds.CreateBuildInput{Spec: sim.SpecRetributionPaladin})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestGetBuildReportsPresetState() {
	s.expectGet(s.newSnapshot(sim.SpecWarrior, "Arms"))

	out, err := s.orchestrator.GetBuild(s.ctx, &builds.GetBuildInput{BuildID: testBuildID})
	s.Require().NoError(err)

	enabled := map[string]bool{}
	for _, p := range out.View.Presets {
		enabled[p.Name] = p.Enabled
	}
	s.True(enabled["P1 Arms Preset"])
	s.False(enabled["P1 Fury Preset"])
}

func (s *OrchestratorTestSuite) TestGetBuildNotFound() {
	s.mockRepo.EXPECT().
		Get(s.ctx, buildrepo.GetInput{ID: testBuildID}).
		Return(nil, errors.NotFound("build not found"))

	_, err := s.orchestrator.GetBuild(s.ctx, &builds.GetBuildInput{BuildID: testBuildID})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestGetBuildRejectsCorruptSnapshot() {
	snap := s.newSnapshot(sim.SpecWarrior)
	snap.Rotation["retired_field"] = true
	s.expectGet(snap)

	_, err := s.orchestrator.GetBuild(s.ctx, &builds.GetBuildInput{BuildID: testBuildID})
	s.True(errors.IsDataLoss(err))
}

func (s *OrchestratorTestSuite) TestUpdateFieldWritesThroughInput() {
	s.expectGet(s.newSnapshot(sim.SpecEnhancementShaman))
	saved := s.expectUpdate()

	out, err := s.orchestrator.UpdateField(s.ctx, &builds.UpdateFieldInput{
		BuildID: testBuildID,
		Record:  "rotation",
		Field:   "rotation_type",
		Value:   float64(specs.EnhancementRotationCustom),
	})
	s.Require().NoError(err)
	s.Equal(specs.EnhancementRotationCustom, (*saved).Rotation["rotation_type"])

	// the custom rotation list shows up once the custom type is picked
	s.True(s.findInput(out.View, player.RecordRotation, "custom_rotation").Visible)
	s.False(s.findInput(out.View, player.RecordRotation, "primary_shock").Visible)
}

func (s *OrchestratorTestSuite) TestUpdateFieldInvalidValueIsNotSaved() {
	s.expectGet(s.newSnapshot(sim.SpecEnhancementShaman))

	_, err := s.orchestrator.UpdateField(s.ctx, &builds.UpdateFieldInput{
		BuildID: testBuildID,
		Record:  "options",
		Field:   "imbue_mh",
		Value:   float64(42),
	})
	s.True(errors.IsInvalidValue(err))
}

func (s *OrchestratorTestSuite) TestUpdateFieldOutOfRange() {
	s.expectGet(s.newSnapshot(sim.SpecWarrior))

	_, err := s.orchestrator.UpdateField(s.ctx, &builds.UpdateFieldInput{
		BuildID: testBuildID,
		Record:  "options",
		Field:   "starting_rage",
		Value:   float64(120),
	})
	s.True(errors.IsOutOfRange(err))
}

func (s *OrchestratorTestSuite) TestUpdateFieldDisabledInput() {
	// balance druid starts with smart cooldowns on; turn them off first
	snap := s.newSnapshot(sim.SpecBalanceDruid)
	snap.Rotation["use_smart_cooldowns"] = false
	s.expectGet(snap)

	_, err := s.orchestrator.UpdateField(s.ctx, &builds.UpdateFieldInput{
		BuildID: testBuildID,
		Record:  "rotation",
		Field:   "mcd_inside_lunar_threshold",
		Value:   float64(10),
	})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestUpdateFieldTalentWithoutInput() {
	s.expectGet(s.newSnapshot(sim.SpecBalanceDruid))
	saved := s.expectUpdate()

	_, err := s.orchestrator.UpdateField(s.ctx, &builds.UpdateFieldInput{
		BuildID: testBuildID,
		Record:  "talents",
		Field:   "starfall",
		Value:   true,
	})
	s.Require().NoError(err)
	s.Equal(true, (*saved).Talents["starfall"])
}

func (s *OrchestratorTestSuite) TestUpdateFieldUnknownField() {
	s.expectGet(s.newSnapshot(sim.SpecWarrior))

	_, err := s.orchestrator.UpdateField(s.ctx, &builds.UpdateFieldInput{
		BuildID: testBuildID,
		Record:  "rotation",
		Field:   "use_bladestorm",
		Value:   true,
	})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestUpdateFieldUnknownRecord() {
	_, err := s.orchestrator.UpdateField(s.ctx, &builds.UpdateFieldInput{
		BuildID: testBuildID,
		Record:  "glyphs",
		Field:   "major",
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestApplyPreset() {
	s.expectGet(s.newSnapshot(sim.SpecBalanceDruid))
	saved := s.expectUpdate()

	out, err := s.orchestrator.ApplyPreset(s.ctx, &builds.ApplyPresetInput{
		BuildID: testBuildID,
		Preset:  "P1 Preset",
	})
	s.Require().NoError(err)
	s.Len((*saved).Gear.Items, 17)
	s.Equal(s.now.Add(time.Minute), out.View.Build.UpdatedAt)
}

func (s *OrchestratorTestSuite) TestApplyPresetNotFound() {
	s.expectGet(s.newSnapshot(sim.SpecBalanceDruid))

	_, err := s.orchestrator.ApplyPreset(s.ctx, &builds.ApplyPresetInput{
		BuildID: testBuildID,
		Preset:  "Phase 9",
	})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestSetEPWeights() {
	s.expectGet(s.newSnapshot(sim.SpecWarrior))
	saved := s.expectUpdate()

	weights := sim.Stats{}.With(sim.StatStrength, 2.2)
	_, err := s.orchestrator.SetEPWeights(s.ctx, &builds.SetEPWeightsInput{
		BuildID: testBuildID,
		Weights: &weights,
	})
	s.Require().NoError(err)
	s.Require().NotNil((*saved).EPWeights)
	s.Equal(weights, *(*saved).EPWeights)
}

func (s *OrchestratorTestSuite) TestExportPawn() {
	snap := s.newSnapshot(sim.SpecWarrior)
	weights := sim.Stats{}.With(sim.StatStrength, 2.2)
	snap.EPWeights = &weights
	s.expectGet(snap)

	out, err := s.orchestrator.Export(s.ctx, &builds.ExportInput{
		BuildID: testBuildID,
		Format:  exporters.FormatPawnEP,
	})
	s.Require().NoError(err)
	s.Equal("Pawn EP Export", out.Title)
	s.Contains(out.Data, "Class=Warrior,")
	s.Contains(out.Data, "=2.200")
	s.Equal(exporters.DownloadFileName, out.FileName)
}

func (s *OrchestratorTestSuite) TestExportJSONIsDownloadable() {
	s.expectGet(s.newSnapshot(sim.SpecWarrior))

	out, err := s.orchestrator.Export(s.ctx, &builds.ExportInput{
		BuildID: testBuildID,
		Format:  exporters.FormatJSON,
	})
	s.Require().NoError(err)
	s.Equal(exporters.DownloadFileName, out.FileName)
	s.True(strings.HasPrefix(out.Data, "{\n  "))
}

func (s *OrchestratorTestSuite) TestExportWithoutWeights() {
	s.expectGet(s.newSnapshot(sim.SpecWarrior))

	_, err := s.orchestrator.Export(s.ctx, &builds.ExportInput{
		BuildID: testBuildID,
		Format:  exporters.FormatEightyUpgradesEP,
	})
	s.True(errors.IsDataUnavailable(err))
}

func (s *OrchestratorTestSuite) TestExportUnknownFormat() {
	_, err := s.orchestrator.Export(s.ctx, &builds.ExportInput{
		BuildID: testBuildID,
		Format:  exporters.Format("csv"),
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestExportLinkThenImport() {
	snap := s.newSnapshot(sim.SpecEnhancementShaman, "Standard", "Custom Rotation")
	s.expectGet(snap)

	exported, err := s.orchestrator.Export(s.ctx, &builds.ExportInput{
		BuildID: testBuildID,
		Format:  exporters.FormatLink,
	})
	s.Require().NoError(err)
	s.True(strings.HasPrefix(exported.Data, builds.DefaultLinkBaseURL+"#"))

	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input buildrepo.CreateInput) (*buildrepo.CreateOutput, error) {
			s.Equal(snap, input.Snapshot)
			return &buildrepo.CreateOutput{Build: &entities.Build{ID: "build_imported", Snapshot: input.Snapshot}}, nil
		})

	imported, err := s.orchestrator.ImportLink(s.ctx, &builds.ImportLinkInput{Link: exported.Data})
	s.Require().NoError(err)
	s.Equal("build_imported", imported.View.Build.ID)
}

func (s *OrchestratorTestSuite) TestImportLinkRejectsGarbage() {
	_, err := s.orchestrator.ImportLink(s.ctx, &builds.ImportLinkInput{Link: "https://example.com/#nope"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestDescribeGear() {
	s.expectGet(s.newSnapshot(sim.SpecBalanceDruid, "P1 Preset"))
	s.mockCatalog.EXPECT().
		EnchantDescription(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, enchant sim.Enchant) string {
			if enchant.EffectID == 44877 {
				return "+30 Spell Power and +10 Critical Strike Rating"
			}
			return enchant.Name
		}).
		AnyTimes()

	out, err := s.orchestrator.DescribeGear(s.ctx, &builds.DescribeGearInput{BuildID: testBuildID})
	s.Require().NoError(err)
	s.Require().Len(out.Items, 17)

	s.Equal(int32(40467), out.Items[0].ItemID)
	s.Equal("+30 Spell Power and +10 Critical Strike Rating", out.Items[0].Enchant)
	s.Equal("Enchant 63765", out.Items[3].Enchant)
	// no enchant on the trinket slot
	s.Empty(out.Items[12].Enchant)
}

func (s *OrchestratorTestSuite) TestDeleteBuild() {
	s.mockRepo.EXPECT().
		Delete(s.ctx, buildrepo.DeleteInput{ID: testBuildID}).
		Return(&buildrepo.DeleteOutput{}, nil)

	_, err := s.orchestrator.DeleteBuild(s.ctx, &builds.DeleteBuildInput{BuildID: testBuildID})
	s.NoError(err)

	_, err = s.orchestrator.DeleteBuild(s.ctx, &builds.DeleteBuildInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestUpdateFieldReplaysAfterConcurrentWrite() {
	first := s.stored(s.newSnapshot(sim.SpecEnhancementShaman))

	// another request saved its own edit in between
	otherSnap := s.newSnapshot(sim.SpecEnhancementShaman)
	otherSnap.Rotation["weave_reaction_time"] = float64(77)
	second := s.stored(otherSnap)
	second.Revision = 1

	var revisions []int64
	var saved *player.Snapshot
	gomock.InOrder(
		s.mockRepo.EXPECT().
			Get(s.ctx, buildrepo.GetInput{ID: testBuildID}).
			Return(&buildrepo.GetOutput{Build: first}, nil),
		s.mockRepo.EXPECT().
			Update(s.ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, input buildrepo.UpdateInput) (*buildrepo.UpdateOutput, error) {
				revisions = append(revisions, input.Revision)
				return nil, errors.Abortedf("build %s changed during update", input.ID)
			}),
		s.mockRepo.EXPECT().
			Get(s.ctx, buildrepo.GetInput{ID: testBuildID}).
			Return(&buildrepo.GetOutput{Build: second}, nil),
		s.mockRepo.EXPECT().
			Update(s.ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, input buildrepo.UpdateInput) (*buildrepo.UpdateOutput, error) {
				revisions = append(revisions, input.Revision)
				saved = input.Snapshot
				return &buildrepo.UpdateOutput{Build: &entities.Build{
					ID:       input.ID,
					Revision: input.Revision + 1,
					Snapshot: input.Snapshot,
				}}, nil
			}),
	)

	out, err := s.orchestrator.UpdateField(s.ctx, &builds.UpdateFieldInput{
		BuildID: testBuildID,
		Record:  "rotation",
		Field:   "firenova_mana_threshold",
		Value:   float64(1234),
	})
	s.Require().NoError(err)
	s.Equal([]int64{0, 1}, revisions)
	s.Equal(int64(2), out.View.Build.Revision)
	s.Equal(float64(1234), saved.Rotation["firenova_mana_threshold"])
	s.Equal(float64(77), saved.Rotation["weave_reaction_time"])
}

func (s *OrchestratorTestSuite) TestUpdateFieldGivesUpOnRepeatedConflicts() {
	snap := s.newSnapshot(sim.SpecWarrior)
	s.mockRepo.EXPECT().
		Get(s.ctx, buildrepo.GetInput{ID: testBuildID}).
		DoAndReturn(func(context.Context, buildrepo.GetInput) (*buildrepo.GetOutput, error) {
			return &buildrepo.GetOutput{Build: s.stored(snap)}, nil
		}).
		Times(5)
	s.mockRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		Return(nil, errors.Aborted("build changed during update")).
		Times(5)

	_, err := s.orchestrator.UpdateField(s.ctx, &builds.UpdateFieldInput{
		BuildID: testBuildID,
		Record:  "options",
		Field:   "starting_rage",
		Value:   float64(40),
	})
	s.True(errors.IsAborted(err))
}

func (s *OrchestratorTestSuite) TestSetEPWeightsRejectsNonFinite() {
	testCases := []struct {
		name  string
		value float64
	}{
		{name: "NaN", value: math.NaN()},
		{name: "+Inf", value: math.Inf(1)},
		{name: "-Inf", value: math.Inf(-1)},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			weights := sim.Stats{}.With(sim.StatAgility, tc.value)
			_, err := s.orchestrator.SetEPWeights(s.ctx, &builds.SetEPWeightsInput{
				BuildID: testBuildID,
				Weights: &weights,
			})
			s.True(errors.IsInvalidValue(err))
			s.Equal("STAT_AGILITY", errors.GetMeta(err)[errors.MetaField])
		})
	}
}

func (s *OrchestratorTestSuite) TestImportLinkRejectsClassOfAnotherSpec() {
	snap := s.newSnapshot(sim.SpecWarrior)
	snap.Class = sim.ClassDruid
	link, err := exporters.EncodeLink(builds.DefaultLinkBaseURL, snap)
	s.Require().NoError(err)

	_, err = s.orchestrator.ImportLink(s.ctx, &builds.ImportLinkInput{Link: link})
	s.True(errors.IsInvalidArgument(err))
	s.Equal(string(sim.ClassDruid), errors.GetMeta(err)["class"])
}
