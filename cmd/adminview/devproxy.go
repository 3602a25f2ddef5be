package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-adminview/pkg/devproxy"
)

func newDevProxyCmd(flags *rootFlags) *cobra.Command {
	var (
		addr     string
		upstream string
		bundle   string
	)

	cmd := &cobra.Command{
		Use:   "devproxy",
		Short: "Proxy a running admin host and inject the front-end dev bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := flags.logger(cmd, nil)
			if err != nil {
				return err
			}

			opts := devproxy.Options{Upstream: upstream, Logger: log}
			if bundle != "" {
				opts.Local = http.FileServer(http.Dir(bundle))
			}
			proxy, err := devproxy.New(opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{Addr: addr, Handler: proxy, ReadHeaderTimeout: 10 * time.Second}
			errCh := make(chan error, 1)
			go func() {
				log.Info("dev proxy listening", "addr", addr, "upstream", upstream)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":3000", "Listen address")
	cmd.Flags().StringVar(&upstream, "upstream", devproxy.DefaultUpstream, "Admin host to proxy")
	cmd.Flags().StringVar(&bundle, "bundle", "", "Directory serving the dev bundle paths")
	return cmd
}
