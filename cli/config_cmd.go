package cli

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/binhbb2204/Business-Directory-Group13/cli/config"
	"github.com/binhbb2204/Business-Directory-Group13/internal/directory"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create ~/.bizdir/config.yaml with default settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			printError("Failed to initialize configuration")
			return err
		}
		path, _ := config.GetConfigPath()
		printSuccess(fmt.Sprintf("Configuration written to %s", path))
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and modify bizdir CLI configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			printError("Configuration not initialized")
			fmt.Println("Run: bizdir init")
			return err
		}

		fmt.Println("Current Configuration:")
		fmt.Println("----------------------")
		printConfig(cmd.OutOrStdout(), cfg)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long:  `Set a configuration value. Key should be in format 'section.key' (e.g., filters.max_rating).`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value := args[1]

		cfg, err := config.Load()
		if err != nil {
			printError("Configuration not initialized")
			return err
		}

		if err := applyConfigValue(cfg, key, value); err != nil {
			return err
		}

		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		printSuccess(fmt.Sprintf("Updated %s to %s", key, value))
		return nil
	},
}

func printConfig(w io.Writer, cfg *config.Config) {
	v := reflect.ValueOf(*cfg)
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		typeField := t.Field(i)

		section := typeField.Tag.Get("yaml")
		if section == "" {
			section = typeField.Name
		}
		fmt.Fprintf(w, "[%s]\n", section)
		if field.Kind() == reflect.Struct {
			for j := 0; j < field.NumField(); j++ {
				subField := field.Field(j)
				tag := field.Type().Field(j).Tag.Get("yaml")
				if tag == "" {
					tag = field.Type().Field(j).Name
				}
				fmt.Fprintf(w, "  %s: %v\n", tag, subField.Interface())
			}
		}
		fmt.Fprintln(w)
	}
}

// applyConfigValue validates value and stores it under key ("section.key").
func applyConfigValue(cfg *config.Config, key, value string) error {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return fmt.Errorf("invalid key format. Use 'section.key'")
	}

	section := strings.ToLower(parts[0])
	k := strings.ToLower(parts[1])

	switch section + "." + k {
	case "server.host":
		cfg.Server.Host = value
	case "server.http_port":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for http_port")
		}
		cfg.Server.HTTPPort = v
	case "server.grpc_port":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for grpc_port")
		}
		cfg.Server.GRPCPort = v
	case "filters.category":
		c, err := models.ParseCategory(value)
		if err != nil {
			return err
		}
		cfg.Filters.Category = string(c)
	case "filters.max_rating":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number for max_rating")
		}
		if _, err := directory.ParseMaxRating(v); err != nil {
			return err
		}
		cfg.Filters.MaxRating = v
	case "display.width":
		v, err := strconv.Atoi(value)
		if err != nil || v < 0 {
			return fmt.Errorf("invalid width")
		}
		cfg.Display.Width = v
	case "logging.level":
		cfg.Logging.Level = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
