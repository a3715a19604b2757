package main

import (
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/justestif/go-spotify-mood-recommender/internal/config"
	"github.com/justestif/go-spotify-mood-recommender/internal/web"
	webfs "github.com/justestif/go-spotify-mood-recommender/web"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the recommender over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, p, err := a.setup(cmd.Context())
			if err != nil {
				return err
			}
			defer logger.Sync()

			// Create sub-filesystems for templates and static files
			templates, err := fs.Sub(webfs.TemplatesFS, "templates")
			if err != nil {
				return fmt.Errorf("creating templates filesystem: %w", err)
			}

			static, err := fs.Sub(webfs.StaticFS, "static")
			if err != nil {
				return fmt.Errorf("creating static filesystem: %w", err)
			}

			server, err := web.NewServer(web.ServerConfig{
				Addr:        cfg.Addr,
				Pipeline:    p,
				TemplatesFS: templates,
				StaticFS:    static,
				Logger:      logger.Named("web"),
			})
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}

			return server.Run()
		},
	}

	cmd.Flags().String("addr", config.DefaultAddr, "address to listen on")
	return cmd
}
