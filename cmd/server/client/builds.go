package client

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/simui-api/internal/handlers/simui/v1alpha1"
)

var (
	buildName    string
	buildRace    string
	buildPresets []string
)

var createBuildCmd = &cobra.Command{
	Use:   "create-build [spec]",
	Short: "Create a build for a spec",
	Long: `Create a build and apply presets in order. Examples:

  create-build SPEC_WARRIOR --race RACE_ORC --preset Fury --preset "P1 Fury Preset"
  create-build SPEC_BALANCE_DRUID --name "raid boomkin"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		presets := make([]any, 0, len(buildPresets))
		for _, p := range buildPresets {
			presets = append(presets, p)
		}
		resp, err := call(v1alpha1.MethodCreateBuild, map[string]any{
			"spec":    args[0],
			"name":    buildName,
			"race":    buildRace,
			"presets": presets,
		})
		if err != nil {
			return err
		}
		return printStruct(cmd, resp)
	},
}

var getBuildCmd = &cobra.Command{
	Use:   "get-build [build-id]",
	Short: "Show a build and its inputs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := call(v1alpha1.MethodGetBuild, map[string]any{"build_id": args[0]})
		if err != nil {
			return err
		}
		return printStruct(cmd, resp)
	},
}

var deleteBuildCmd = &cobra.Command{
	Use:   "delete-build [build-id]",
	Short: "Delete a build",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := call(v1alpha1.MethodDeleteBuild, map[string]any{"build_id": args[0]}); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return err
	},
}

var updateFieldCmd = &cobra.Command{
	Use:   "update-field [build-id] [record] [field] [value]",
	Short: "Set one rotation, option or talent field",
	Long: `Set a field through its input. The value is read as JSON when it parses,
otherwise as a string. Examples:

  update-field build_1 rotation starting_rage 40
  update-field build_1 rotation use_rend true
  update-field build_1 talents starfall true
  update-field build_1 options innervate_target -1`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := call(v1alpha1.MethodUpdateField, map[string]any{
			"build_id": args[0],
			"record":   args[1],
			"field":    args[2],
			"value":    parseValue(args[3]),
		})
		if err != nil {
			return err
		}
		return printStruct(cmd, resp)
	},
}

var applyPresetCmd = &cobra.Command{
	Use:   "apply-preset [build-id] [preset]",
	Short: "Apply a named talent, rotation or gear preset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := call(v1alpha1.MethodApplyPreset, map[string]any{
			"build_id": args[0],
			"preset":   args[1],
		})
		if err != nil {
			return err
		}
		return printStruct(cmd, resp)
	},
}

var setWeightsCmd = &cobra.Command{
	Use:   "set-weights [build-id] [STAT=weight...]",
	Short: "Store EP weights on a build",
	Long: `Store EP weights. Without weights the stored ones are cleared. Example:

  set-weights build_1 STAT_AGILITY=1.4 STAT_ATTACK_POWER=1`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := map[string]any{"build_id": args[0]}
		if len(args) > 1 {
			weights, err := parseWeights(args[1:])
			if err != nil {
				return err
			}
			fields["weights"] = weights
		}
		resp, err := call(v1alpha1.MethodSetEPWeights, fields)
		if err != nil {
			return err
		}
		return printStruct(cmd, resp)
	},
}

var importLinkCmd = &cobra.Command{
	Use:   "import-link [link]",
	Short: "Save the build encoded in a sharable link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := call(v1alpha1.MethodImportLink, map[string]any{"link": args[0]})
		if err != nil {
			return err
		}
		return printStruct(cmd, resp)
	},
}

var describeGearCmd = &cobra.Command{
	Use:   "describe-gear [build-id]",
	Short: "List equipped items with enchant descriptions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := call(v1alpha1.MethodDescribeGear, map[string]any{"build_id": args[0]})
		if err != nil {
			return err
		}
		return printStruct(cmd, resp)
	},
}

func init() {
	createBuildCmd.Flags().StringVar(&buildName, "name", "", "build name")
	createBuildCmd.Flags().StringVar(&buildRace, "race", "", "race, e.g. RACE_ORC (defaults per spec)")
	createBuildCmd.Flags().StringArrayVar(&buildPresets, "preset", nil, "preset to apply, repeatable")
}

// parseValue reads a JSON literal, falling back to the raw string
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

func parseWeights(args []string) (map[string]any, error) {
	weights := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("weight %q must be STAT=value", arg)
		}
		w, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("weight %q is not a number: %w", arg, err)
		}
		weights[strings.ToUpper(key)] = w
	}
	return weights, nil
}
