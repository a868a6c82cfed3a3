package admin

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	config "github.com/papershare/papershare/internal/config/server"
	"github.com/papershare/papershare/pkg/db/store"
)

func NewDBCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database administration utilities",
		Long:  "Administer the paper store: destructive schema reset and aggregate statistics.",
	}

	cmd.AddCommand(newDBResetCommand())
	cmd.AddCommand(newDBStatsCommand())

	return cmd
}

func newDBResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Drop and recreate the paper schema",
		Long: `Drop and recreate all tables of the paper store.

All users, papers, tags and likes are removed. The command is safe to
run against an empty or partially populated store.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Reset(cmd.Context()); err != nil {
				return fmt.Errorf("reset failed: %w", err)
			}

			fmt.Println("Paper store reset complete")
			return nil
		},
	}
}

func newDBStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print aggregate statistics of the paper store",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")

			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			if err := st.Migrate(ctx); err != nil {
				return fmt.Errorf("migrate failed: %w", err)
			}

			users, err := st.GetMostActiveUsers(ctx, count)
			if err != nil {
				return fmt.Errorf("most active users: %w", err)
			}
			fmt.Println("Most active users:")
			for i, user := range users {
				fmt.Printf("  %d. %s\n", i+1, user)
			}

			tags, err := st.GetMostPopularTags(ctx, count)
			if err != nil {
				return fmt.Errorf("most popular tags: %w", err)
			}
			fmt.Println("Most popular tags:")
			for _, tag := range tags {
				fmt.Printf("  %s (%d papers)\n", tag.Tagname, tag.PaperCount)
			}

			pairs, err := st.GetMostPopularTagPairs(ctx, count)
			if err != nil {
				return fmt.Errorf("most popular tag pairs: %w", err)
			}
			fmt.Println("Most popular tag pairs:")
			for _, pair := range pairs {
				fmt.Printf("  %s + %s (%d papers)\n", pair.First, pair.Second, pair.PaperCount)
			}

			return nil
		},
	}

	cmd.Flags().Int("count", store.DefaultCount, "maximum number of entries per listing")

	return cmd
}

func openStore() (*store.SQLiteStore, error) {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load server configuration: %w", err)
	}

	st, err := store.NewSQLiteStore(store.SQLiteConfig{
		Path: cfg.Metadata.SQLite.Path,
	})
	if err != nil {
		return nil, err
	}

	if err := st.Connect(context.Background()); err != nil {
		return nil, err
	}

	return st, nil
}
