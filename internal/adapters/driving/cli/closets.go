package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/closet-cli/internal/core/domain"
)

var (
	closetsOutput string
	addBrand      string
)

var closetsCmd = &cobra.Command{
	Use:   "closets",
	Short: "Manage your closets",
	RunE:  runClosetsList,
}

var closetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List closets and their items",
	Args:  cobra.NoArgs,
	RunE:  runClosetsList,
}

var closetsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty closet",
	Args:  cobra.ExactArgs(1),
	RunE:  runClosetsCreate,
}

var closetsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a closet",
	Args:  cobra.ExactArgs(1),
	RunE:  runClosetsDelete,
}

var closetsAddCmd = &cobra.Command{
	Use:   "add <closet> <item>",
	Short: "Add an item to a closet",
	Long: `Adds a catalogue item to a closet. Use --brand to record the brand the
item belongs to.`,
	Args: cobra.ExactArgs(2),
	RunE: runClosetsAdd,
}

func init() {
	closetsCmd.PersistentFlags().StringVarP(&closetsOutput, "output", "o", outputTable, "output format: table, json or yaml")
	closetsAddCmd.Flags().StringVar(&addBrand, "brand", "", "brand of the item")

	closetsCmd.AddCommand(closetsListCmd)
	closetsCmd.AddCommand(closetsCreateCmd)
	closetsCmd.AddCommand(closetsDeleteCmd)
	closetsCmd.AddCommand(closetsAddCmd)
	rootCmd.AddCommand(closetsCmd)
}

func runClosetsList(cmd *cobra.Command, _ []string) error {
	if err := validateOutput(closetsOutput); err != nil {
		return err
	}
	if err := requireClosets(); err != nil {
		return err
	}

	closets, err := closetService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list closets: %w", err)
	}
	if closets == nil {
		closets = []domain.Closet{}
	}

	if done, err := writeStructured(cmd.OutOrStdout(), closetsOutput, closets); done {
		return err
	}

	if len(closets) == 0 {
		cmd.Println("No closets.")
		return nil
	}
	for _, c := range closets {
		cmd.Printf("%s (%d)\n", c.Name, len(c.Items))
		for _, it := range c.Items {
			cmd.Printf("  - %s\n", domain.ItemRef(it).Label())
		}
	}
	return nil
}

func runClosetsCreate(cmd *cobra.Command, args []string) error {
	if err := requireClosets(); err != nil {
		return err
	}
	if err := closetService.Create(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("create closet: %w", err)
	}
	cmd.Printf("Created closet %s\n", args[0])
	return nil
}

func runClosetsDelete(cmd *cobra.Command, args []string) error {
	if err := requireClosets(); err != nil {
		return err
	}
	if err := closetService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete closet: %w", err)
	}
	cmd.Printf("Deleted closet %s\n", args[0])
	return nil
}

func runClosetsAdd(cmd *cobra.Command, args []string) error {
	if err := requireClosets(); err != nil {
		return err
	}
	item := domain.ItemRef{Item: args[1], Brand: addBrand}
	if err := closetService.AddItem(cmd.Context(), args[0], item); err != nil {
		return fmt.Errorf("add to closet: %w", err)
	}
	cmd.Printf("Added %s to %s\n", item.Label(), args[0])
	return nil
}
