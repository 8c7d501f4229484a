// Package exporters turns a build snapshot into the text formats users share:
// a link that restores the build, a JSON dump, and EP weight strings for
// eightyupgrades.com and the Pawn addon.
package exporters

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/player"
)

// Format tags one exporter variant
type Format string

// Formats
const (
	FormatLink             Format = "link"
	FormatJSON             Format = "json"
	FormatEightyUpgradesEP Format = "80u_ep"
	FormatPawnEP           Format = "pawn_ep"
)

// DownloadFileName is the file name offered by downloadable exporters
const DownloadFileName = "wowsims.json"

const (
	eightyUpgradesImportURL = "https://eightyupgrades.com/ep/import"
	weightsName             = "WoWSims Weights"
)

// Exporter is one export variant. The zero value is not usable; use the
// constructors.
type Exporter struct {
	format       Format
	title        string
	downloadable bool
	baseURL      string
}

// Link exports a shareable link under baseURL. Links are not downloadable.
func Link(baseURL string) Exporter {
	return Exporter{format: FormatLink, title: "Sharable Link", baseURL: baseURL}
}

// JSON exports the indented snapshot
func JSON() Exporter {
	return Exporter{format: FormatJSON, title: "JSON Export", downloadable: true}
}

// EightyUpgradesEP exports EP weights as an eightyupgrades.com import URL
func EightyUpgradesEP() Exporter {
	return Exporter{format: FormatEightyUpgradesEP, title: "80Upgrades EP Export", downloadable: true}
}

// PawnEP exports EP weights as a Pawn scale string
func PawnEP() Exporter {
	return Exporter{format: FormatPawnEP, title: "Pawn EP Export", downloadable: true}
}

// ForFormat resolves a format tag. baseURL is only used by links.
func ForFormat(format Format, baseURL string) (Exporter, error) {
	switch format {
	case FormatLink:
		return Link(baseURL), nil
	case FormatJSON:
		return JSON(), nil
	case FormatEightyUpgradesEP:
		return EightyUpgradesEP(), nil
	case FormatPawnEP:
		return PawnEP(), nil
	default:
		return Exporter{}, errors.InvalidArgumentf("unknown export format %q", format)
	}
}

// Format returns the variant tag
func (e Exporter) Format() Format { return e.format }

// Title returns the dialog title
func (e Exporter) Title() string { return e.title }

// Downloadable reports whether the dialog offers a download
func (e Exporter) Downloadable() bool { return e.downloadable }

// Data renders the snapshot. It does not change the build.
func (e Exporter) Data(snap *player.Snapshot) (string, error) {
	if snap == nil {
		return "", errors.DataUnavailable("build")
	}

	switch e.format {
	case FormatLink:
		return EncodeLink(e.baseURL, snap)
	case FormatJSON:
		return jsonDump(snap)
	case FormatEightyUpgradesEP:
		return eightyUpgradesEP(snap)
	case FormatPawnEP:
		return pawnEP(snap)
	default:
		return "", errors.InvalidArgumentf("unknown export format %q", e.format)
	}
}

func jsonDump(snap *player.Snapshot) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to encode build")
	}
	return string(data), nil
}

// weightedStats lists the non-zero weights in stat order. Energy and rage
// have no meaning for the target tools.
func weightedStats(snap *player.Snapshot) ([]sim.Stat, error) {
	if snap.EPWeights == nil {
		return nil, errors.DataUnavailable("EP weights")
	}

	var out []sim.Stat
	for _, stat := range sim.AllStats() {
		if stat == sim.StatEnergy || stat == sim.StatRage {
			continue
		}
		if snap.EPWeights.Get(stat) != 0 {
			out = append(out, stat)
		}
	}
	return out, nil
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', 3, 64)
}

func eightyUpgradesEP(snap *player.Snapshot) (string, error) {
	stats, err := weightedStats(snap)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(eightyUpgradesImportURL)
	b.WriteString("?name=")
	b.WriteString(url.PathEscape(weightsName))
	for _, stat := range stats {
		b.WriteString("&")
		b.WriteString(stat.EightyUpgradesName())
		b.WriteString("=")
		b.WriteString(formatWeight(snap.EPWeights.Get(stat)))
	}
	return b.String(), nil
}

func pawnEP(snap *player.Snapshot) (string, error) {
	stats, err := weightedStats(snap)
	if err != nil {
		return "", err
	}

	pairs := make([]string, 0, len(stats))
	for _, stat := range stats {
		pairs = append(pairs, stat.PawnName()+"="+formatWeight(snap.EPWeights.Get(stat)))
	}
	return `( Pawn: v1: "` + weightsName + `": Class=` + snap.Class.DisplayName() + "," +
		strings.Join(pairs, ",") + " )", nil
}

// MenuItem is one entry of the export menu
type MenuItem struct {
	Label         string
	Format        Format
	ShowInRaidSim bool
}

// Menu lists the export entries in display order
func Menu() []MenuItem {
	return []MenuItem{
		{Label: "Link", Format: FormatLink},
		{Label: "Json", Format: FormatJSON, ShowInRaidSim: true},
		{Label: "80U EP", Format: FormatEightyUpgradesEP},
		{Label: "Pawn EP", Format: FormatPawnEP},
	}
}

// MenuFor filters the menu for the individual or the raid sim
func MenuFor(raidSim bool) []MenuItem {
	var out []MenuItem
	for _, item := range Menu() {
		if !raidSim || item.ShowInRaidSim {
			out = append(out, item)
		}
	}
	return out
}
