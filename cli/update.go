package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Manage updates",
	Long:  `Compare the bizdir CLI with the directory server it talks to.`,
}

var updateCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check for updates",
	Long:  `Check whether the server runs a different version than this CLI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		base := serverURL()
		fmt.Printf("Checking %s for updates...\n", base)

		server, err := fetchServerVersion(base)
		if err != nil {
			printError(fmt.Sprintf("Failed to check for updates: %v", err))
			return nil
		}

		if versionDiffers(server, rootCmd.Version) {
			printSuccess(fmt.Sprintf("Server runs %s, this CLI is %s. Update bizdir to match.", server, rootCmd.Version))
		} else {
			printSuccess("You are using the latest version.")
		}
		return nil
	},
}

type versionResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
}

func fetchServerVersion(base string) (string, error) {
	var v versionResponse
	if err := getJSON(base+"/version", &v); err != nil {
		return "", err
	}
	if v.Version == "" {
		return "", fmt.Errorf("server did not report a version")
	}
	return v.Version, nil
}

// versionDiffers compares versions ignoring a leading "v".
func versionDiffers(server, current string) bool {
	return strings.TrimPrefix(server, "v") != strings.TrimPrefix(current, "v")
}

func init() {
	updateCmd.AddCommand(updateCheckCmd)
}
