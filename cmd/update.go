package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kunal/vetta/internal/release"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check whether a newer vetta release is available",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := release.NewChecker()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		result, err := checker.Check(ctx, version)
		if errors.Is(err, release.ErrDevBuild) {
			fmt.Println("Cannot check updates for a development build. Install a release build first.")
			return nil
		}
		if err != nil {
			return err
		}

		if !result.UpdateAvailable {
			fmt.Println("Already running the latest version.")
			return nil
		}
		fmt.Printf("Update available: %s -> %s\n", result.CurrentVersion, result.LatestVersion)
		fmt.Println("Download:", result.ReleaseURL)
		return nil
	},
}
