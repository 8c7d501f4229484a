package exporters_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/events"
	"github.com/KirkDiggler/simui-api/internal/exporters"
	exportersmock "github.com/KirkDiggler/simui-api/internal/exporters/mock"
	"github.com/KirkDiggler/simui-api/internal/player"
	"github.com/KirkDiggler/simui-api/internal/settings"
)

const testBaseURL = "https://wowsims.github.io/wotlk/enhancement_shaman/"

type ExportersTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	clipboard  *exportersmock.MockClipboard
	prompter   *exportersmock.MockPrompter
	downloader *exportersmock.MockDownloader

	schemas player.Schemas
	player  *player.Player
}

func TestExportersSuite(t *testing.T) {
	suite.Run(t, new(ExportersTestSuite))
}

func (s *ExportersTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.clipboard = exportersmock.NewMockClipboard(s.ctrl)
	s.prompter = exportersmock.NewMockPrompter(s.ctrl)
	s.downloader = exportersmock.NewMockDownloader(s.ctrl)

	rotation, err := settings.NewSchema("rotation",
		settings.FieldSpec{Name: "totems", Kind: settings.KindEnum, Default: int32(1)},
		settings.FieldSpec{Name: "custom", Kind: settings.KindSet},
	)
	s.Require().NoError(err)
	options, err := settings.NewSchema("options",
		settings.FieldSpec{Name: "bloodlust", Kind: settings.KindBool, Default: true},
		settings.FieldSpec{Name: "delay", Kind: settings.KindNumber},
	)
	s.Require().NoError(err)
	talents, err := settings.NewSchema("talents",
		settings.FieldSpec{Name: "dual_wield", Kind: settings.KindBool},
	)
	s.Require().NoError(err)
	s.schemas = player.Schemas{Rotation: rotation, Options: options, Talents: talents}

	s.player, err = player.New(&player.Config{
		Name:    "Thrall",
		Spec:    sim.SpecEnhancementShaman,
		Class:   sim.ClassShaman,
		Race:    sim.RaceOrc,
		Schemas: s.schemas,
	})
	s.Require().NoError(err)
}

func (s *ExportersTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ExportersTestSuite) lookup(spec sim.Spec) (player.Schemas, error) {
	if spec != sim.SpecEnhancementShaman {
		return player.Schemas{}, errors.NotFoundf("spec %s not found", spec)
	}
	return s.schemas, nil
}

func (s *ExportersTestSuite) setWeights(weights sim.Stats) {
	s.player.SetEPWeights(events.NextEventID(), &weights)
}

func (s *ExportersTestSuite) dialogConfig() *exporters.DialogConfig {
	return &exporters.DialogConfig{
		Clipboard:  s.clipboard,
		Prompter:   s.prompter,
		Downloader: s.downloader,
	}
}

func (s *ExportersTestSuite) TestLinkRoundTrip() {
	id := events.NextEventID()
	s.Require().NoError(s.player.SetField(id, player.RecordRotation, "totems", int32(3)))
	s.Require().NoError(s.player.SetField(id, player.RecordRotation, "custom", settings.NewSet(4, 2)))
	s.Require().NoError(s.player.SetField(id, player.RecordOptions, "delay", 0.25))
	s.player.SetTalentsString(id, "053030152-30205023105021333031131031051")
	s.player.SetGear(id, sim.EquipmentSpec{Items: []sim.ItemSpec{
		{ID: 40543, Enchant: 3817, Gems: []int32{41398, 40014}},
		{ID: 44661},
	}})
	s.setWeights(sim.Stats{}.With(sim.StatAgility, 1.85).With(sim.StatAttackPower, 1))
	snap := s.player.Snapshot()

	link, err := exporters.Link(testBaseURL).Data(snap)
	s.Require().NoError(err)
	s.True(strings.HasPrefix(link, testBaseURL+"#"))

	decoded, err := exporters.DecodeLink(link, s.lookup)
	s.Require().NoError(err)
	s.Equal(snap, decoded)
}

func (s *ExportersTestSuite) TestLinkIsDeterministic() {
	snap := s.player.Snapshot()

	first, err := exporters.EncodeLink(testBaseURL, snap)
	s.Require().NoError(err)
	second, err := exporters.EncodeLink(testBaseURL, snap)
	s.Require().NoError(err)

	s.Equal(first, second)
}

func (s *ExportersTestSuite) TestDecodeLinkAcceptsFragment() {
	link, err := exporters.EncodeLink(testBaseURL, s.player.Snapshot())
	s.Require().NoError(err)
	_, fragment, _ := strings.Cut(link, "#")

	decoded, err := exporters.DecodeLink(fragment, s.lookup)

	s.Require().NoError(err)
	s.Equal("Thrall", decoded.Name)
}

func (s *ExportersTestSuite) TestDecodeLinkRejectsGarbage() {
	_, err := exporters.DecodeLink(testBaseURL+"#not-a-build", s.lookup)

	s.True(errors.IsInvalidArgument(err))
}

func (s *ExportersTestSuite) TestDecodeLinkUnknownSpec() {
	snap := s.player.Snapshot()
	snap.Spec = sim.SpecWarrior
	link, err := exporters.EncodeLink(testBaseURL, snap)
	s.Require().NoError(err)

	_, err = exporters.DecodeLink(link, s.lookup)

	s.True(errors.IsNotFound(err))
}

func (s *ExportersTestSuite) TestJSONIsIndentedSnapshot() {
	data, err := exporters.JSON().Data(s.player.Snapshot())
	s.Require().NoError(err)

	s.Contains(data, "\n  \"name\": \"Thrall\"")
	var decoded player.Snapshot
	s.Require().NoError(json.Unmarshal([]byte(data), &decoded))
	s.Equal(sim.SpecEnhancementShaman, decoded.Spec)
}

func (s *ExportersTestSuite) TestEightyUpgradesEP() {
	s.setWeights(sim.Stats{}.
		With(sim.StatAgility, 2.5).
		With(sim.StatSpellPower, 0.4567).
		With(sim.StatEnergy, 3).
		With(sim.StatRage, 3))

	data, err := exporters.EightyUpgradesEP().Data(s.player.Snapshot())

	s.Require().NoError(err)
	s.Equal("https://eightyupgrades.com/ep/import?name=WoWSims%20Weights&agility=2.500&spellDamage=0.457", data)
}

func (s *ExportersTestSuite) TestEightyUpgradesEPAllZero() {
	s.setWeights(sim.Stats{})

	data, err := exporters.EightyUpgradesEP().Data(s.player.Snapshot())

	s.Require().NoError(err)
	s.Equal("https://eightyupgrades.com/ep/import?name=WoWSims%20Weights", data)
}

func (s *ExportersTestSuite) TestPawnEP() {
	s.setWeights(sim.Stats{}.With(sim.StatAttackPower, 1).With(sim.StatMeleeHit, 2.5))

	data, err := exporters.PawnEP().Data(s.player.Snapshot())

	s.Require().NoError(err)
	s.Equal(`( Pawn: v1: "WoWSims Weights": Class=Shaman,Ap=1.000,HitRating=2.500 )`, data)
}

func (s *ExportersTestSuite) TestPawnEPAllZero() {
	s.setWeights(sim.Stats{})

	data, err := exporters.PawnEP().Data(s.player.Snapshot())

	s.Require().NoError(err)
	s.Equal(`( Pawn: v1: "WoWSims Weights": Class=Shaman, )`, data)
}

func (s *ExportersTestSuite) TestEPWithoutWeights() {
	for _, exporter := range []exporters.Exporter{exporters.EightyUpgradesEP(), exporters.PawnEP()} {
		_, err := exporter.Data(s.player.Snapshot())

		s.True(errors.IsDataUnavailable(err), exporter.Title())
	}
}

func (s *ExportersTestSuite) TestNilSnapshot() {
	_, err := exporters.JSON().Data(nil)

	s.True(errors.IsDataUnavailable(err))
}

func (s *ExportersTestSuite) TestExportDoesNotChangeBuild() {
	s.setWeights(sim.Stats{}.With(sim.StatAgility, 1))
	before := s.player.Snapshot()

	for _, item := range exporters.Menu() {
		exporter, err := exporters.ForFormat(item.Format, testBaseURL)
		s.Require().NoError(err)
		_, err = exporter.Data(s.player.Snapshot())
		s.Require().NoError(err)
	}

	s.Equal(before, s.player.Snapshot())
}

func (s *ExportersTestSuite) TestMenu() {
	labels := func(items []exporters.MenuItem) []string {
		var out []string
		for _, item := range items {
			out = append(out, item.Label)
		}
		return out
	}

	s.Equal([]string{"Link", "Json", "80U EP", "Pawn EP"}, labels(exporters.MenuFor(false)))
	s.Equal([]string{"Json"}, labels(exporters.MenuFor(true)))
}

func (s *ExportersTestSuite) TestForFormatUnknown() {
	_, err := exporters.ForFormat("csv", testBaseURL)

	s.True(errors.IsInvalidArgument(err))
}

func (s *ExportersTestSuite) TestDialogCopyUsesClipboard() {
	ctx := context.Background()
	dialog, err := exporters.Open(exporters.JSON(), s.player.Snapshot(), s.dialogConfig())
	s.Require().NoError(err)

	s.clipboard.EXPECT().WriteText(ctx, dialog.Text()).Return(nil)

	s.NoError(dialog.Copy(ctx))
}

func (s *ExportersTestSuite) TestDialogCopyFallsBackToPrompt() {
	ctx := context.Background()
	cfg := s.dialogConfig()
	cfg.Clipboard = nil
	dialog, err := exporters.Open(exporters.Link(testBaseURL), s.player.Snapshot(), cfg)
	s.Require().NoError(err)

	s.prompter.EXPECT().Prompt(ctx, dialog.Text()).Return(nil)

	s.NoError(dialog.Copy(ctx))
}

func (s *ExportersTestSuite) TestDialogDownload() {
	ctx := context.Background()
	dialog, err := exporters.Open(exporters.JSON(), s.player.Snapshot(), s.dialogConfig())
	s.Require().NoError(err)
	s.Equal("JSON Export", dialog.Title())

	s.downloader.EXPECT().Download(ctx, "wowsims.json", dialog.Text()).Return(nil)

	s.NoError(dialog.Download(ctx))
}

func (s *ExportersTestSuite) TestLinkDialogHasNoDownload() {
	dialog, err := exporters.Open(exporters.Link(testBaseURL), s.player.Snapshot(), s.dialogConfig())
	s.Require().NoError(err)

	s.False(dialog.CanDownload())
	s.True(errors.IsFailedPrecondition(dialog.Download(context.Background())))
}

func (s *ExportersTestSuite) TestDialogOpenFailsWithoutWeights() {
	_, err := exporters.Open(exporters.PawnEP(), s.player.Snapshot(), s.dialogConfig())

	s.True(errors.IsDataUnavailable(err))
}
