package commands

import (
	"io"
	"net/http"

	"github.com/battlesnakeio/classic/api"
	"github.com/battlesnakeio/classic/controller"
	"github.com/battlesnakeio/classic/controller/filestore"
	"github.com/battlesnakeio/classic/controller/redisstore"
	"github.com/battlesnakeio/classic/controller/sqlstore"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	apiListen   = ":3005"
	backend     = "inmem"
	backendArgs = ""
	promEnable  = true
	promListen  = ":9000"
	debug       = false
)

func init() {
	serverCmd.Flags().StringVarP(&apiListen, "listen", "l", apiListen, "api address to listen on")
	serverCmd.Flags().StringVarP(&backend, "backend", "b", backend, "store backend, as one of: [inmem, file, redis, sql]")
	serverCmd.Flags().StringVarP(&backendArgs, "backend-args", "a", backendArgs, "options to pass to the backend being used")
	serverCmd.Flags().BoolVar(&promEnable, "prometheus", promEnable, "enable prometheus metrics")
	serverCmd.Flags().StringVar(&promListen, "prometheus-listen", promListen, "prometheus http endpoint")
	serverCmd.Flags().BoolVar(&debug, "debug", debug, "log every move")
	rootCmd.Flags().AddFlagSet(serverCmd.Flags())
}

var serverCmd = &cobra.Command{
	Use:    "server",
	Short:  "serves the snake api",
	PreRun: func(c *cobra.Command, args []string) { prometheus() },
	Run: func(c *cobra.Command, args []string) {
		if debug {
			log.SetLevel(log.DebugLevel)
		}

		var store controller.Store
		var err error
		switch backend {
		case "inmem":
			store = controller.InMemStore()
		case "file":
			store = filestore.NewFileStore(backendArgs)
		case "redis":
			store, err = redisstore.NewStore(backendArgs)
		case "sql":
			store, err = sqlstore.NewSQLStore(backendArgs)
		default:
			log.WithField("backend", backend).Fatal("invalid backend")
		}

		if err != nil {
			log.WithError(err).WithField("backend", backend).Fatal("unable to start up backend store")
		}

		if c, ok := store.(io.Closer); ok {
			defer func() {
				err = c.Close()
				if err != nil {
					log.WithError(err).Error("unable to close store")
				}
			}()
		}

		ctrl := controller.New(controller.InstrumentStore(store))
		server := api.New(apiListen, ctrl)
		if err := server.WaitForExit(); err != nil {
			log.WithError(err).
				WithField("listen", apiListen).
				Error("api server failed")
		}
	},
}

func prometheus() {
	if !promEnable {
		log.Info("prometheus exporter not enabled")
		return
	}

	log.WithField("addr", promListen).Info("starting prometheus exporter")
	go func() {
		r := http.NewServeMux()
		r.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(promListen, r); err != nil {
			log.WithError(err).Warn("prometheus failed to listen")
		}
	}()
}
