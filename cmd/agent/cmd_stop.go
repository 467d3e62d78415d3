package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stopCharacter string

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Signal a running agent to stop at the next iteration boundary",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requestStop(stopCharacter); err != nil {
			return err
		}
		fmt.Printf("stop requested for %q\n", stopCharacter)
		return nil
	},
}

func init() {
	stopCmd.Flags().StringVar(&stopCharacter, "character", "", "character name (required)")
	_ = stopCmd.MarkFlagRequired("character")
}
