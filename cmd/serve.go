/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/chuawjk/ecda/internal/ioserver"
	"github.com/chuawjk/ecda/internal/iostore"
	"github.com/chuawjk/ecda/pkg/config"
)

// getServeCmd returns the serve command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getServeCmd() *cobra.Command {
	var port int

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve saved forecast runs as a JSON API",
		Long: `Start an HTTP server exposing saved forecast runs.

Endpoints:
  GET /api/runs                     all saved runs, newest first
  GET /api/runs/{id}                one run with all its matrices
  GET /api/runs/{id}/matrix/{kind}  one matrix in tabular form;
                                    kind is preschoolers, needed
                                    or gap

The server reads the same store 'ecda forecast' writes, so new runs
appear without a restart. Stop with Ctrl-C; in-flight requests get
five seconds to finish.

Examples:
  ecda serve
  ecda serve -p 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runServe(cmd, port)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	serveCmd.Flags().IntVarP(
		&port, "port", "p", 0,
		"TCP port to listen on",
	)

	return serveCmd
}

func runServe(cmd *cobra.Command, port int) error {
	ctx := context.Background()

	if cmd.Flags().Changed("port") {
		cfg.Update([]config.Option{config.OptServerPort(port)})
	}

	st := iostore.New(cfg)
	if err := st.Init(ctx); err != nil {
		return err
	}
	defer st.Close()

	srv := ioserver.New(cfg, st)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	gn.Info("Serving runs API on port <em>%d</em>, stop with Ctrl-C",
		cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		// The server failed before any signal arrived.
		return err
	case <-quit:
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return <-errCh
}
