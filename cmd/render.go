package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var outputPath string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Hydrate the page once and write it out",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		st, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		src, err := newSource(cfg)
		if err != nil {
			return err
		}

		page, err := newHydrator(cfg, src, st, logger).Hydrate(ctx)
		if err != nil {
			return err
		}

		if outputPath == "" || outputPath == "-" {
			_, err = os.Stdout.Write(page)
			return err
		}
		if err := os.WriteFile(outputPath, page, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outputPath, err)
		}
		logger.Info("page written", "path", outputPath, "bytes", len(page))
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(renderCmd)
}
