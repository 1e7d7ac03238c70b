package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/binhbb2204/Business-Directory-Group13/cli/config"
	"github.com/binhbb2204/Business-Directory-Group13/internal/directory"
	"github.com/binhbb2204/Business-Directory-Group13/internal/location"
	"github.com/binhbb2204/Business-Directory-Group13/internal/mapview"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/fixture"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultTableWidth = 100

var (
	listCategory  string
	listMaxRating float64
	listOffline   bool

	locateLat   float64
	locateLng   float64
	locateError string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List businesses",
	Long:  `List businesses matching a category and a maximum rating (inclusive).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		category, maxRating := filterFlags(cmd)

		resp, err := loadList(listOffline, category, maxRating)
		if err != nil {
			printError(fmt.Sprintf("List failed: %v", err))
			if !listOffline {
				fmt.Println("Check server status: bizdir system info, or use --offline")
			}
			return err
		}

		fmt.Printf("Category: %s  Max rating: %s  (%d results)\n\n",
			resp.Filters.Category.Label(), mapview.FormatRating(resp.Filters.MaxRating), resp.Count)
		renderTable(cmd.OutOrStdout(), resp.Businesses, tableWidth())
		return nil
	},
}

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Show filter options",
	Long:  `Show the category and rating choices with per-category counts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts *directory.Options
		if listOffline {
			o := directory.Summarize(fixture.MustBusinesses())
			opts = &o
		} else {
			var err error
			if opts, err = fetchOptions(serverURL()); err != nil {
				printError(fmt.Sprintf("Failed to load filters: %v", err))
				return err
			}
		}
		renderOptions(cmd.OutOrStdout(), opts)
		return nil
	},
}

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Resolve the map centre",
	Long: `Resolve a map centre from a reported position. Without --lat/--lng the
fallback centre is used, as it is for any reported --error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var l location.Locator
		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") || locateError != "" {
			r := location.Report{Error: locateError}
			if cmd.Flags().Changed("lat") {
				r.Lat = &locateLat
			}
			if cmd.Flags().Changed("lng") {
				r.Lng = &locateLng
			}
			l = r
		}

		resp := location.Resolve(context.Background(), l).Response()
		fmt.Printf("Centre: %.4f, %.4f\n", resp.Coordinate.Lat, resp.Coordinate.Lng)
		if resp.Fallback {
			fmt.Printf("Fallback: yes (%s)\n", resp.Reason)
		}
		return nil
	},
}

// filterFlags returns the flag values, falling back to the configured
// defaults for flags the user did not pass.
func filterFlags(cmd *cobra.Command) (string, *float64) {
	cfg := config.LoadOrDefault()

	category := cfg.Filters.Category
	if cmd.Flags().Changed("category") {
		category = listCategory
	}

	maxRating := cfg.Filters.MaxRating
	if cmd.Flags().Changed("max-rating") {
		maxRating = listMaxRating
	}
	return category, &maxRating
}

func tableWidth() int {
	if w := config.LoadOrDefault().Display.Width; w > 0 {
		return w
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultTableWidth
}

// renderTable prints businesses in columns, shrinking the address column to
// fit width.
func renderTable(w io.Writer, businesses []models.Business, width int) {
	if len(businesses) == 0 {
		fmt.Fprintln(w, "No businesses match these filters.")
		return
	}

	const (
		nameW    = 24
		catW     = 14
		ratingW  = 6
		reviewsW = 7
		gaps     = 4 * 2
	)
	addrW := width - nameW - catW - ratingW - reviewsW - gaps
	if addrW < 10 {
		addrW = 10
	}

	fmt.Fprintf(w, "%-*s  %-*s  %*s  %*s  %s\n", nameW, "NAME", catW, "CATEGORY", ratingW, "RATING", reviewsW, "REVIEWS", "ADDRESS")
	for _, b := range businesses {
		fmt.Fprintf(w, "%-*s  %-*s  %*s  %*d  %s\n",
			nameW, truncate(b.Name, nameW),
			catW, b.Type.Label(),
			ratingW, mapview.FormatRating(b.Rating),
			reviewsW, b.ReviewCount,
			truncate(b.Address, addrW))
	}
}

func renderOptions(w io.Writer, opts *directory.Options) {
	fmt.Fprintln(w, "Categories:")
	for _, c := range opts.Categories {
		fmt.Fprintf(w, "  %-14s %-16s %d\n", c.Value, c.Label, opts.Counts[string(c.Value)])
	}

	steps := make([]string, len(opts.RatingSteps))
	for i, s := range opts.RatingSteps {
		steps[i] = mapview.FormatRating(s)
	}
	fmt.Fprintf(w, "\nMax rating steps: %s\n", strings.Join(steps, ", "))
	fmt.Fprintf(w, "Defaults: category=%s max_rating=%s\n", opts.Default.Category, mapview.FormatRating(opts.Default.MaxRating))

	if opts.Ratings.Count > 0 {
		fmt.Fprintf(w, "Ratings: min %s, max %s, average %.2f over %d businesses\n",
			mapview.FormatRating(opts.Ratings.Min), mapview.FormatRating(opts.Ratings.Max), opts.Ratings.Average, opts.Ratings.Count)
	}

	var unknown []string
	for k := range opts.Counts {
		if k != string(models.CategoryAll) && !models.Category(k).Valid() {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		fmt.Fprintf(w, "Uncategorized types: %s\n", strings.Join(unknown, ", "))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "all", "Category filter (all, restaurant, cafe, retail, service, entertainment)")
	listCmd.Flags().Float64VarP(&listMaxRating, "max-rating", "r", models.DefaultMaxRating, "Show businesses rated at or below this value")
	listCmd.Flags().BoolVar(&listOffline, "offline", false, "Use the embedded data set instead of the server")

	filtersCmd.Flags().BoolVar(&listOffline, "offline", false, "Use the embedded data set instead of the server")

	locateCmd.Flags().Float64Var(&locateLat, "lat", 0, "Reported latitude")
	locateCmd.Flags().Float64Var(&locateLng, "lng", 0, "Reported longitude")
	locateCmd.Flags().StringVar(&locateError, "error", "", "Reported error (permission_denied, position_unavailable, timeout, unsupported)")
}
