package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen/internal/model"
)

var searchICPFile string

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one lead search from an ICP JSON file and print the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		if searchICPFile == "" {
			return eris.New("--icp is required (path to an ICP JSON file)")
		}

		data, err := os.ReadFile(searchICPFile)
		if err != nil {
			return eris.Wrapf(err, "read icp file %s", searchICPFile)
		}

		var icp model.ICP
		if err := json.Unmarshal(data, &icp); err != nil {
			return eris.Wrap(err, "parse icp file")
		}

		ctx := cmd.Context()
		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		start := time.Now()
		result, err := e.Pipeline.Run(ctx, icp)
		if err != nil {
			return err
		}

		if e.Store != nil {
			if err := e.Store.RecordRun(ctx, model.Run{
				ID:           uuid.New().String(),
				ICPName:      result.ICPName,
				TotalLeads:   result.TotalLeads,
				UsedFallback: result.UsedFallback,
				DurationMS:   time.Since(start).Milliseconds(),
				CreatedAt:    time.Now().UTC(),
			}); err != nil {
				zap.L().Warn("failed to record run", zap.Error(err))
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(result), "encode result")
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchICPFile, "icp", "", "path to ICP JSON file")
	rootCmd.AddCommand(searchCmd)
}
