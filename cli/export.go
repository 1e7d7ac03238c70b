package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	exportFormat  string
	exportOutput  string
	exportOffline bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export filtered businesses",
	Long:  `Export the businesses matching the filters to JSON, CSV or YAML.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		category, maxRating := filterFlags(cmd)

		resp, err := loadList(exportOffline, category, maxRating)
		if err != nil {
			return fmt.Errorf("failed to fetch businesses: %w", err)
		}

		outputData, err := encodeBusinesses(resp.Businesses, exportFormat)
		if err != nil {
			return err
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, outputData, 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			printSuccess(fmt.Sprintf("%d businesses exported to %s", len(resp.Businesses), exportOutput))
			return nil
		}
		fmt.Print(string(outputData))
		return nil
	},
}

func encodeBusinesses(businesses []models.Business, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(businesses, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		return yaml.Marshal(struct {
			Businesses []models.Business `yaml:"businesses"`
		}{businesses})
	case "csv":
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		w.Write([]string{"id", "name", "type", "rating", "review_count", "address", "lat", "lng"})
		for _, b := range businesses {
			w.Write([]string{
				b.ID,
				b.Name,
				string(b.Type),
				strconv.FormatFloat(b.Rating, 'f', -1, 64),
				strconv.Itoa(b.ReviewCount),
				b.Address,
				strconv.FormatFloat(b.Lat, 'f', -1, 64),
				strconv.FormatFloat(b.Lng, 'f', -1, 64),
			})
		}
		w.Flush()
		return buf.Bytes(), w.Error()
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format (json, csv, yaml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	exportCmd.Flags().StringVarP(&listCategory, "category", "c", "all", "Category filter")
	exportCmd.Flags().Float64VarP(&listMaxRating, "max-rating", "r", models.DefaultMaxRating, "Maximum rating (inclusive)")
	exportCmd.Flags().BoolVar(&exportOffline, "offline", false, "Use the embedded data set instead of the server")
}
