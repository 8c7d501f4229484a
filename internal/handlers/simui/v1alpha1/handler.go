// Package v1alpha1 handles the build service grpc interface
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/exporters"
	"github.com/KirkDiggler/simui-api/internal/orchestrators/builds"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	BuildService builds.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil || c.BuildService == nil {
		return errors.InvalidArgument("build service is required")
	}
	return nil
}

// Handler implements the build gRPC service
type Handler struct {
	buildService builds.Service
}

var _ BuildServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		buildService: cfg.BuildService,
	}, nil
}

// CreateBuild creates a build for a spec, optionally applying presets
func (h *Handler) CreateBuild(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	spec, err := requiredString(req, "spec")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	presets, err := stringList(req, "presets")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.buildService.CreateBuild(ctx, &builds.CreateBuildInput{
		Spec:    sim.Spec(spec),
		Name:    stringField(req, "name"),
		Race:    sim.Race(stringField(req, "race")),
		Presets: presets,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return h.respond(viewResponse(out.View))
}

// GetBuild returns a saved build and the state of its inputs
func (h *Handler) GetBuild(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	buildID, err := requiredString(req, "build_id")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.buildService.GetBuild(ctx, &builds.GetBuildInput{BuildID: buildID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return h.respond(viewResponse(out.View))
}

// DeleteBuild removes a saved build
func (h *Handler) DeleteBuild(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	buildID, err := requiredString(req, "build_id")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	if _, err := h.buildService.DeleteBuild(ctx, &builds.DeleteBuildInput{BuildID: buildID}); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &structpb.Struct{}, nil
}

// UpdateField edits one field of a build
func (h *Handler) UpdateField(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	buildID, err := requiredString(req, "build_id")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	value, ok := req.GetFields()["value"]
	if !ok {
		return nil, errors.ToGRPCError(errors.InvalidArgument("value is required"))
	}

	out, err := h.buildService.UpdateField(ctx, &builds.UpdateFieldInput{
		BuildID: buildID,
		Record:  stringField(req, "record"),
		Field:   stringField(req, "field"),
		Value:   value.AsInterface(),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return h.respond(viewResponse(out.View))
}

// ApplyPreset applies a named preset to a build
func (h *Handler) ApplyPreset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	buildID, err := requiredString(req, "build_id")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	preset, err := requiredString(req, "preset")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.buildService.ApplyPreset(ctx, &builds.ApplyPresetInput{
		BuildID: buildID,
		Preset:  preset,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return h.respond(viewResponse(out.View))
}

// SetEPWeights stores computed stat weights. Omitting weights clears them.
func (h *Handler) SetEPWeights(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	buildID, err := requiredString(req, "build_id")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	weights, err := statsFromStruct(req.GetFields()["weights"].GetStructValue())
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.buildService.SetEPWeights(ctx, &builds.SetEPWeightsInput{
		BuildID: buildID,
		Weights: weights,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return h.respond(viewResponse(out.View))
}

// Export renders a build in one of the export formats
func (h *Handler) Export(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	buildID, err := requiredString(req, "build_id")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	format, err := requiredString(req, "format")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.buildService.Export(ctx, &builds.ExportInput{
		BuildID: buildID,
		Format:  exporters.Format(format),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	fields := map[string]any{
		"title": out.Title,
		"data":  out.Data,
	}
	if out.FileName != "" {
		fields["file_name"] = out.FileName
	}
	return h.respond(structpb.NewStruct(fields))
}

// ImportLink saves the build encoded in a sharable link
func (h *Handler) ImportLink(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	link, err := requiredString(req, "link")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.buildService.ImportLink(ctx, &builds.ImportLinkInput{Link: link})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return h.respond(viewResponse(out.View))
}

// DescribeGear lists the equipped items with enchant descriptions
func (h *Handler) DescribeGear(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	buildID, err := requiredString(req, "build_id")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.buildService.DescribeGear(ctx, &builds.DescribeGearInput{BuildID: buildID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	type itemDTO struct {
		Slot      int     `json:"slot"`
		ItemID    int32   `json:"item_id"`
		EnchantID int32   `json:"enchant_id,omitempty"`
		Enchant   string  `json:"enchant,omitempty"`
		Gems      []int32 `json:"gems,omitempty"`
	}
	items := make([]itemDTO, 0, len(out.Items))
	for _, item := range out.Items {
		items = append(items, itemDTO(item))
	}
	return h.respond(toStruct(struct {
		Items []itemDTO `json:"items"`
	}{Items: items}))
}

func (h *Handler) respond(resp *structpb.Struct, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}
