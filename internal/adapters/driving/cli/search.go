package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/closet-cli/internal/core/domain"
)

// maxConcurrentLookups bounds parallel requests from one search command.
const maxConcurrentLookups = 4

var searchOutput string

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Look up tags, items and brands",
	Long: `Looks each query up against the catalogue's search bar endpoint.

Several queries are looked up concurrently and printed in the order given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", outputTable, "output format: table, json or yaml")
	rootCmd.AddCommand(searchCmd)
}

// queryResult pairs a query with its lookup result.
type queryResult struct {
	Query  string              `json:"query" yaml:"query"`
	Result domain.SearchResult `json:"result" yaml:"result"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validateOutput(searchOutput); err != nil {
		return err
	}
	if err := requireLookup(); err != nil {
		return err
	}

	results := make([]queryResult, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxConcurrentLookups)
	for i, q := range args {
		g.Go(func() error {
			res, err := lookupService.Lookup(ctx, q)
			if err != nil {
				return fmt.Errorf("search %q: %w", q, err)
			}
			results[i] = queryResult{Query: q, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if done, err := writeStructured(cmd.OutOrStdout(), searchOutput, results); done {
		return err
	}
	outputSearchTable(cmd, results)
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []queryResult) {
	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("%s\n", r.Query)
		}
		if r.Result.IsEmpty() {
			cmd.Println("  No results")
			continue
		}
		printSection(cmd, "Tags", r.Result.Tags)
		printSection(cmd, "Items", r.Result.Items)
		printSection(cmd, "Brands", r.Result.Brands)
	}
}

func printSection(cmd *cobra.Command, heading string, entries []string) {
	if len(entries) == 0 {
		return
	}
	cmd.Printf("  %s\n", heading)
	for _, e := range entries {
		cmd.Printf("    %s\n", strings.TrimSpace(e))
	}
}
