package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var statusCharacter string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report the last-known status of a running agent",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := readStatusFile(statusCharacter)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusCharacter, "character", "", "character name (required)")
	_ = statusCmd.MarkFlagRequired("character")
}
