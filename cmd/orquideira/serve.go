// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/pdiddy/orquideira/internal/account"
	"github.com/pdiddy/orquideira/internal/catalog"
	"github.com/pdiddy/orquideira/internal/search"
	"github.com/pdiddy/orquideira/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search, catalog, and account API over HTTP",
	Long: `Serve starts the JSON API on server.addr (default :8080). Sessions are
signed JWTs, so a secret must be configured in server.jwt_secret or
.secrets/jwt-secret. Prometheus metrics are exposed on /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			appCfg.Server.Addr = addr
		}

		store, err := catalog.Open(cmd.Context(), appCfg.Catalog)
		if err != nil {
			return err
		}
		defer store.Close()

		users, err := account.NewDirectory(bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		srv, err := server.New(appCfg.Server, server.Deps{
			Search:  search.NewSearcher(appCfg.Search),
			Catalog: store,
			Users:   users,
			Prefs:   account.NewPrefsStore(appCfg.Session.StateDir),
		})
		if err != nil {
			return err
		}
		return srv.Run(cmd.Context(), appCfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")

	rootCmd.AddCommand(serveCmd)
}
