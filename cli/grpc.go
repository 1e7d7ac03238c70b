package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/binhbb2204/Business-Directory-Group13/cli/config"
	dirgrpc "github.com/binhbb2204/Business-Directory-Group13/internal/grpc"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var (
	grpcTarget    string
	grpcCategory  string
	grpcMaxRating float64
	grpcLat       float64
	grpcLng       float64
	grpcError     string
)

var grpcCmd = &cobra.Command{
	Use:   "grpc",
	Short: "Interact with the gRPC service",
	Long:  `Commands to call the directory.v1.Directory gRPC service directly.`,
}

var grpcFilterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter businesses via gRPC",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, client, err := getGrpcClient()
		if err != nil {
			return err
		}
		defer conn.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		req := &dirgrpc.FilterRequest{Category: grpcCategory}
		if cmd.Flags().Changed("max-rating") {
			req.MaxRating = &grpcMaxRating
		}
		r, err := client.Filter(ctx, req)
		if err != nil {
			return fmt.Errorf("could not filter: %w", err)
		}

		renderTable(cmd.OutOrStdout(), r.Businesses, tableWidth())
		return nil
	},
}

var grpcOptionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Show filter options via gRPC",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, client, err := getGrpcClient()
		if err != nil {
			return err
		}
		defer conn.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		opts, err := client.Options(ctx, &dirgrpc.OptionsRequest{})
		if err != nil {
			return fmt.Errorf("could not get options: %w", err)
		}
		renderOptions(cmd.OutOrStdout(), opts)
		return nil
	},
}

var grpcLocateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Resolve a map centre via gRPC",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, client, err := getGrpcClient()
		if err != nil {
			return err
		}
		defer conn.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		req := &dirgrpc.LocateRequest{Error: grpcError}
		if cmd.Flags().Changed("lat") {
			req.Lat = &grpcLat
		}
		if cmd.Flags().Changed("lng") {
			req.Lng = &grpcLng
		}
		r, err := client.Locate(ctx, req)
		if err != nil {
			return fmt.Errorf("could not locate: %w", err)
		}
		fmt.Printf("Centre: %.4f, %.4f (fallback=%t)\n", r.Coordinate.Lat, r.Coordinate.Lng, r.Fallback)
		return nil
	},
}

func init() {
	grpcCmd.PersistentFlags().StringVar(&grpcTarget, "target", "", "gRPC server address (default from config)")

	grpcFilterCmd.Flags().StringVarP(&grpcCategory, "category", "c", "all", "Category filter")
	grpcFilterCmd.Flags().Float64VarP(&grpcMaxRating, "max-rating", "r", models.DefaultMaxRating, "Maximum rating (inclusive)")

	grpcLocateCmd.Flags().Float64Var(&grpcLat, "lat", 0, "Reported latitude")
	grpcLocateCmd.Flags().Float64Var(&grpcLng, "lng", 0, "Reported longitude")
	grpcLocateCmd.Flags().StringVar(&grpcError, "error", "", "Reported error code")

	grpcCmd.AddCommand(grpcFilterCmd)
	grpcCmd.AddCommand(grpcOptionsCmd)
	grpcCmd.AddCommand(grpcLocateCmd)
}

func getGrpcClient() (*grpc.ClientConn, *dirgrpc.Client, error) {
	target := grpcTarget
	if target == "" {
		target = config.LoadOrDefault().GRPCTarget()
	}
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("did not connect: %w", err)
	}
	return conn, dirgrpc.NewClient(conn), nil
}
