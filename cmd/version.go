package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/internetarchive/Vitrine/internal/pkg/utils"
	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show the version number.",
		RunE: func(cmd *cobra.Command, args []string) error {
			version := utils.GetVersion()

			fmt.Fprintln(cmd.OutOrStdout(), "Vitrine", version.Version)
			fmt.Fprintln(cmd.OutOrStdout(), "- go/version:", version.GoVersion)

			return nil
		},
	}

	versionCmd.AddCommand(&cobra.Command{
		Use:   "deps",
		Short: "Get dependencies.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if info, ok := debug.ReadBuildInfo(); ok {
				for _, dep := range info.Deps {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)", dep.Path, dep.Version, dep.Sum)
					if dep.Replace != nil {
						fmt.Fprintf(cmd.OutOrStdout(), " => %s %s (%s)", dep.Replace.Path, dep.Replace.Version, dep.Replace.Sum)
					}
					fmt.Fprint(cmd.OutOrStdout(), "\n")
				}
			}

			return nil
		},
	})

	return versionCmd
}
