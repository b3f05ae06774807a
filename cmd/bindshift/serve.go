// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bindshift/internal/logging"
	"github.com/pdiddy/bindshift/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the shift transform over HTTP",
	Long: `Serve starts an HTTP server. POST a PDF to /v1/shift with the query
parameters shift_cm, start, end and first_right to receive the shifted
document. GET /healthz reports liveness. The server stops on interrupt.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	rec, closeHistory := openHistory(cmd.Context(), cfg.History)
	defer closeHistory()

	ctx := cmd.Context()
	srv := server.New(cfg.Server, logging.FromContext(ctx), rec)
	return srv.ListenAndServe(ctx)
}
