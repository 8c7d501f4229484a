// Package client provides commands that call the build service
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/simui-api/internal/handlers/simui/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call the build service",
	Long:  `Client commands make real gRPC requests against a running build service.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(createBuildCmd)
	ClientCmd.AddCommand(getBuildCmd)
	ClientCmd.AddCommand(deleteBuildCmd)
	ClientCmd.AddCommand(updateFieldCmd)
	ClientCmd.AddCommand(applyPresetCmd)
	ClientCmd.AddCommand(setWeightsCmd)
	ClientCmd.AddCommand(exportCmd)
	ClientCmd.AddCommand(importLinkCmd)
	ClientCmd.AddCommand(describeGearCmd)
}

// createBuildClient dials the server
func createBuildClient() (*v1alpha1.BuildServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}
	return v1alpha1.NewBuildServiceClient(conn), cleanup, nil
}

// call runs one request with the configured timeout
func call(method string, fields map[string]any) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	client, cleanup, err := createBuildClient()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Call(ctx, method, req)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", method, err)
	}
	return resp, nil
}

func printStruct(cmd *cobra.Command, resp *structpb.Struct) error {
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
