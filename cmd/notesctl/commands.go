package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"notes-backend/application/commands"
	"notes-backend/application/queries"
	"notes-backend/infrastructure/di"
)

var (
	tokenEmail string
	tokenName  string

	listSearch   string
	listCategory string
	listFavorite string
	listArchived string
	listSort     string

	seedCount int
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireUser(); err != nil {
			return err
		}
		return withContainer(cmd.Context(), func(c *di.Container) error {
			token, err := c.JWTValidator.GenerateToken(userID, tokenEmail, tokenName)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireUser(); err != nil {
			return err
		}
		filter := queries.ParseFilterSpec(listSearch, listCategory, listFavorite, listArchived, listSort)
		return withContainer(cmd.Context(), func(c *di.Container) error {
			notes, err := c.QueryBus.Ask(cmd.Context(), queries.ListNotesQuery{UserID: userID, Filter: filter})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), notes)
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a user's note statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireUser(); err != nil {
			return err
		}
		return withContainer(cmd.Context(), func(c *di.Container) error {
			stats, err := c.QueryBus.Ask(cmd.Context(), queries.GetStatsQuery{UserID: userID})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stats)
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create sample notes for a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireUser(); err != nil {
			return err
		}
		return withContainer(cmd.Context(), func(c *di.Container) error {
			categories := []string{"Work", "Personal", "Ideas"}
			for i := 0; i < seedCount; i++ {
				_, err := c.CommandBus.Send(cmd.Context(), commands.CreateNoteCommand{
					UserID:   userID,
					Title:    fmt.Sprintf("Sample note %d", i+1),
					Content:  fmt.Sprintf("Seeded content for note %d", i+1),
					Category: categories[i%len(categories)],
					Tags:     []string{"seed"},
				})
				if err != nil {
					return fmt.Errorf("seed note %d: %w", i+1, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d notes for %s\n", seedCount, userID)
			return nil
		})
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Email claim")
	tokenCmd.Flags().StringVar(&tokenName, "name", "", "Name claim")

	listCmd.Flags().StringVar(&listSearch, "search", "", "Search title and content")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category")
	listCmd.Flags().StringVar(&listFavorite, "favorite", "", "Filter by favorite (true/false)")
	listCmd.Flags().StringVar(&listArchived, "archived", "", "Filter by archived (true/false)")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort key: newest, oldest, title, updated")

	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 5, "Number of notes to create")
}
