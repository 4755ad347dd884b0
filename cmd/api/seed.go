package main

import (
	"github.com/spf13/cobra"

	"github.com/zizouhuweidi/trivia/internal/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load categories and questions into the database",
	Long: "Load categories and questions into the database. Categories that already " +
		"exist are kept; questions are only loaded into an empty question table.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := loadSeed(seedFile)
		if err != nil {
			return err
		}

		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		st, err := openStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(cmd.Context()); err != nil {
			return err
		}
		result, err := st.Seed(cmd.Context(), data.Categories, data.Questions)
		if err != nil {
			return err
		}

		cmd.Printf("seeded %d categories and %d questions\n", result.Categories, result.Questions)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML seed file (defaults to the bundled data set)")
	rootCmd.AddCommand(seedCmd)
}

func loadSeed(path string) (*seed.Data, error) {
	if path == "" {
		return seed.Default()
	}
	return seed.LoadFile(path)
}
