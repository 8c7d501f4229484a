package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/simui-api/internal/exporters"
	"github.com/KirkDiggler/simui-api/internal/handlers/simui/v1alpha1"
	"github.com/KirkDiggler/simui-api/internal/orchestrators/builds"
	"github.com/KirkDiggler/simui-api/internal/player"
)

var (
	exportDir      string
	exportLocal    bool
	exportLinkBase string
)

var exportCmd = &cobra.Command{
	Use:   "export [build-id] [format]",
	Short: "Export a build as link, json, 80u_ep or pawn_ep",
	Long: `Export a build. The server renders the export unless --local is set, in
which case the build is fetched and rendered here. Downloadable formats are
written to --dir when it is set. Examples:

  export build_1 link
  export build_1 pawn_ep --dir .
  export build_1 json --local`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "directory to download exports into")
	exportCmd.Flags().BoolVar(&exportLocal, "local", false, "render the export locally")
	exportCmd.Flags().StringVar(&exportLinkBase, "link-base-url", builds.DefaultLinkBaseURL, "page local links point at")
}

func runExport(cmd *cobra.Command, args []string) error {
	buildID, format := args[0], exporters.Format(args[1])
	exporter, err := exporters.ForFormat(format, exportLinkBase)
	if err != nil {
		return err
	}

	host := &terminalHost{out: cmd.OutOrStdout(), dir: exportDir}

	if !exportLocal {
		resp, err := call(v1alpha1.MethodExport, map[string]any{
			"build_id": buildID,
			"format":   string(format),
		})
		if err != nil {
			return err
		}
		data := resp.GetFields()["data"].GetStringValue()
		if exportDir != "" && exporter.Downloadable() {
			return host.Download(cmd.Context(), exporters.DownloadFileName, data)
		}
		return host.Prompt(cmd.Context(), data)
	}

	resp, err := call(v1alpha1.MethodGetBuild, map[string]any{"build_id": buildID})
	if err != nil {
		return err
	}
	snap, err := snapshotFromView(resp)
	if err != nil {
		return err
	}

	dialog, err := exporters.Open(exporter, snap, &exporters.DialogConfig{
		Prompter:   host,
		Downloader: host,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", dialog.Title())
	if exportDir != "" && dialog.CanDownload() {
		return dialog.Download(cmd.Context())
	}
	return dialog.Copy(cmd.Context())
}

// snapshotFromView pulls view.build.snapshot out of a GetBuild response
func snapshotFromView(resp *structpb.Struct) (*player.Snapshot, error) {
	raw := resp.GetFields()["view"].GetStructValue().GetFields()["build"].GetStructValue().GetFields()["snapshot"].GetStructValue()
	if raw == nil {
		return nil, fmt.Errorf("response has no build snapshot")
	}
	data, err := protojson.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snap player.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// terminalHost shows exports on the terminal and saves downloads to a
// directory
type terminalHost struct {
	out io.Writer
	dir string
}

// Prompt prints the text
func (h *terminalHost) Prompt(_ context.Context, text string) error {
	_, err := fmt.Fprintln(h.out, text)
	return err
}

// Download writes the text to dir/fileName
func (h *terminalHost) Download(_ context.Context, fileName, data string) error {
	path := filepath.Join(h.dir, fileName)
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	_, err := fmt.Fprintf(h.out, "Saved %s\n", path)
	return err
}
