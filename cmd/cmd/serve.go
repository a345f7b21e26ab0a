// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ostafen/fileinfo/internal/config"
	"github.com/ostafen/fileinfo/internal/env"
	httpserver "github.com/ostafen/fileinfo/internal/http"
	"github.com/ostafen/fileinfo/internal/logger"
	"github.com/ostafen/fileinfo/pkg/sysinfo"
)

const shutdownTimeout = 5 * time.Second

func DefineServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve file metadata over HTTP",
		Long: `The 'serve' command starts an HTTP server answering GET /v1/metadata?path=<file>
with the same description printed by the 'describe' command, as JSON.
Settings are read from the YAML file given with --config, then from FILEINFO_* environment variables, then from flags.
Environment variables may also be given in a dotenv file (--env-file, or ./.env when present).`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunServe,
	}

	cmd.Flags().StringP("config", "c", "", "path to a YAML configuration file")
	cmd.Flags().String("env-file", "", "path to a dotenv file (default ./.env, if present)")
	cmd.Flags().String("addr", "", "listen address (overrides the configuration)")
	cmd.Flags().String("root", "", "only serve files below this directory (overrides the configuration)")
	return cmd
}

func RunServe(cmd *cobra.Command, args []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	if root, _ := cmd.Flags().GetString("root"); root != "" {
		cfg.Root = root
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if level != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	log := logger.NewSlog(os.Stderr, level)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpserver.NewRouter(cfg, log),
	}

	if cfg.Root == "" {
		log.Warn("No root configured: every readable file on this host can be described", "addr", cfg.Addr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", "app", env.AppName, "version", env.Version, "platform", sysinfo.Stat().String(), "addr", cfg.Addr, "root", cfg.Root)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("Server failed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		return err
	}

	log.Info("Server exited")
	return nil
}
