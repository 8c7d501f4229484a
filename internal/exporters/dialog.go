package exporters

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/player"
)

//go:generate mockgen -destination=mock/mock_dialog.go -package=exportersmock github.com/KirkDiggler/simui-api/internal/exporters Clipboard,Prompter,Downloader

// Clipboard writes text to the system clipboard
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Prompter shows text in a blocking prompt the user can copy from
type Prompter interface {
	Prompt(ctx context.Context, text string) error
}

// Downloader saves text as a file
type Downloader interface {
	Download(ctx context.Context, fileName, data string) error
}

// DialogConfig wires a dialog to its host. Clipboard may be nil when the
// host has none; copies then fall back to the prompter.
type DialogConfig struct {
	Clipboard  Clipboard
	Prompter   Prompter
	Downloader Downloader
}

// Validate ensures the required hooks are present
func (c *DialogConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	vb := errors.NewValidationBuilder()
	if c.Prompter == nil {
		vb.RequiredField("Prompter")
	}
	if c.Downloader == nil {
		vb.RequiredField("Downloader")
	}
	return vb.Build()
}

// Dialog shows one export: a title, the read-only text and copy/download
// actions. The text is computed once when the dialog opens.
type Dialog struct {
	exporter   Exporter
	text       string
	clipboard  Clipboard
	prompter   Prompter
	downloader Downloader
}

// Open renders snap with exporter
func Open(exporter Exporter, snap *player.Snapshot, cfg *DialogConfig) (*Dialog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid dialog config")
	}

	text, err := exporter.Data(snap)
	if err != nil {
		return nil, err
	}

	return &Dialog{
		exporter:   exporter,
		text:       text,
		clipboard:  cfg.Clipboard,
		prompter:   cfg.Prompter,
		downloader: cfg.Downloader,
	}, nil
}

// Title returns the exporter title
func (d *Dialog) Title() string { return d.exporter.Title() }

// Text returns the exported text
func (d *Dialog) Text() string { return d.text }

// CanDownload reports whether the download action is offered
func (d *Dialog) CanDownload() bool { return d.exporter.Downloadable() }

// Copy puts the text on the clipboard, or in a prompt when there is no
// clipboard
func (d *Dialog) Copy(ctx context.Context) error {
	if d.clipboard == nil {
		slog.Debug("clipboard unavailable, prompting", "format", d.exporter.Format())
		return d.prompter.Prompt(ctx, d.text)
	}
	if err := d.clipboard.WriteText(ctx, d.text); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to copy export")
	}
	return nil
}

// Download saves the text as DownloadFileName
func (d *Dialog) Download(ctx context.Context) error {
	if !d.CanDownload() {
		return errors.FailedPreconditionf("%s cannot be downloaded", d.exporter.Title())
	}
	if err := d.downloader.Download(ctx, DownloadFileName, d.text); err != nil {
		return errors.Wrap(err, "failed to download export")
	}
	return nil
}
