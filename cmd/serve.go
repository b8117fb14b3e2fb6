package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/internetarchive/Vitrine/internal/pkg/assetserver"
	"github.com/internetarchive/Vitrine/internal/pkg/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve [DIR]",
		Short: "Serve a gallery directory and its images over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := assetserver.New(afero.NewOsFs(), root, config.Get().ImagesDir)
			return server.ListenAndServe(ctx, config.Get().ServeAddress)
		},
	}

	serveCmd.Flags().String("serve-address", "127.0.0.1:8000", "Address to listen on.")
	serveCmd.Flags().String("images-dir", "images_scraped", "Directory, relative to DIR, holding the gallery images.")

	return serveCmd
}
