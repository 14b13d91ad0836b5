package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/busstop/internal/server"
	"github.com/matzehuels/busstop/pkg/integrations/tfl"
)

// defaultPort is the port the HTTP server listens on.
const defaultPort = 8080

func (c *CLI) serveCommand(board *boardFlags) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the boards over HTTP",
		Long: `Serve the boards over HTTP.

  GET /arrivals          boards as JSON (?format=text, ?line=, ?destination=)
  GET /stoppoint/{id}    raw TfL arrivals for one stop
  GET /healthz           liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner, client, err := c.newRunner(*board)
			if err != nil {
				return err
			}
			srv := server.New(runner, client, logger)

			addr := fmt.Sprintf("%s:%d", host, port)
			printServeBanner(newStatus(cmd.ErrOrStderr()), runner.ConfigPath(), displayHost(host, port))

			prog := newProgress(logger)
			if err := srv.ListenAndServe(ctx, addr); err != nil {
				return err
			}
			prog.done("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "interface to listen on (default: all)")
	cmd.Flags().IntVarP(&port, "port", "p", defaultPort, "port to listen on")
	return cmd
}

func displayHost(host string, port int) string {
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("%s:%d", host, port)
}

func printServeBanner(st *status, configPath, hostPort string) {
	base := "http://" + hostPort
	st.infof("Serving boards from %s", configPath)
	st.endpoint(base+"/arrivals", "boards as JSON, ?format=text, ?line=, ?destination=")
	st.endpoint(base+"/stoppoint/{id}", "raw TfL arrivals for one stop")
	st.endpoint(base+"/healthz", "liveness")
	if os.Getenv(tfl.AppKeyEnv) == "" {
		st.warnf("%s is not set; TfL rate-limits anonymous requests", tfl.AppKeyEnv)
	}
}
