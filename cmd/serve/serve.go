// Package serve runs the HTTP statement service
package serve

import (
	"banktocfo/cfopack/cmd/root"
	"banktocfo/cfopack/internal/server"

	"github.com/spf13/cobra"
)

var listenAddr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the statement upload HTTP service",
	Long: `Start the HTTP service: upload statements to POST /upload, poll
GET /status/{job_id} and fetch the workbook from GET /download/{job_id}.`,
	Run: serveFunc,
}

func init() {
	Cmd.Flags().StringVarP(&listenAddr, "addr", "a", "", "Listen address (overrides configuration)")
}

func serveFunc(cmd *cobra.Command, args []string) {
	addr := listenAddr
	if addr == "" {
		addr = root.Cfg.Server.ListenAddr
	}

	srv := server.New(
		root.NewRouter(),
		root.NewCategorizer(),
		root.Cfg.Server.UploadDir,
		root.Cfg.Server.OutputDir,
	)

	if err := srv.ListenAndServe(addr); err != nil {
		root.Log.Fatalf("HTTP server stopped: %v", err)
	}
}
