package cli

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/binhbb2204/Business-Directory-Group13/cli/config"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/fixture"
	"github.com/spf13/cobra"
)

var systemCmd = &cobra.Command{
	Use:   "system",
	Short: "System information",
	Long:  `Display system information and diagnostics.`,
}

var systemInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show system info",
	Long:  `Display detailed system information including OS, architecture, and server status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("System Information:")
		fmt.Println("-------------------")
		fmt.Printf("OS: %s\n", runtime.GOOS)
		fmt.Printf("Architecture: %s\n", runtime.GOARCH)
		fmt.Printf("Go Version: %s\n", runtime.Version())
		fmt.Printf("CPUs: %d\n", runtime.NumCPU())
		fmt.Printf("Embedded businesses: %d\n", len(fixture.MustBusinesses()))

		path, _ := config.GetConfigPath()
		cfg, err := config.Load()
		if err != nil {
			fmt.Println("\nConfiguration: Not initialized (run: bizdir init)")
		} else {
			fmt.Println("\nConfiguration:")
			fmt.Printf("  Config Path: %s\n", path)
			fmt.Printf("  Server: %s\n", cfg.ServerURL())
			fmt.Printf("  gRPC: %s\n", cfg.GRPCTarget())
		}

		fmt.Println("\nServer Connectivity:")
		client := http.Client{Timeout: 2 * time.Second}
		base := serverURL()
		for _, endpoint := range []string{"/healthz", "/readyz"} {
			resp, err := client.Get(base + endpoint)
			if err != nil {
				fmt.Printf("  %s: ✗ Unreachable (%s)\n", endpoint, err.Error())
				continue
			}
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				fmt.Printf("  %s: ✓ OK (HTTP %d)\n", endpoint, resp.StatusCode)
			} else {
				fmt.Printf("  %s: ⚠ Issues (HTTP %d)\n", endpoint, resp.StatusCode)
			}
		}

		return nil
	},
}

func init() {
	systemCmd.AddCommand(systemInfoCmd)
}
