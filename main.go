package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Maxbrain0/blogger/config"
	"github.com/Maxbrain0/blogger/server"
	"github.com/Maxbrain0/blogger/store"
	"github.com/Maxbrain0/blogger/view"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var logLevels = map[string]log.Lvl{
	"debug": log.DEBUG,
	"info":  log.INFO,
	"warn":  log.WARN,
	"error": log.ERROR,
}

func main() {
	cmd, err := newRootCmd(config.New(), run)
	if err != nil {
		log.Fatal(err)
	}
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper, runFn func(*config.Config) error) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:          "blogger",
		Short:        "Blog posts JSON API and page server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return runFn(cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("db-driver", config.DriverMongo, "database driver (mongo or badger)")
	flags.String("db-host", "localhost", "database host")
	flags.Int("db-port", 28015, "database port")
	flags.String("db-name", "blogger", "database name")
	flags.String("db-path", "", "badger data directory, in-memory when empty")
	flags.String("public-dir", "public", "directory static assets are served from")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	err := bindFlags(v, cmd, map[string]string{
		"db.driver":  "db-driver",
		"db.host":    "db-host",
		"db.port":    "db-port",
		"db.name":    "db-name",
		"db.path":    "db-path",
		"public_dir": "public-dir",
		"log_level":  "log-level",
	})
	if err != nil {
		return nil, err
	}

	return cmd, nil
}

// bindFlags binds each config key to its flag; a flag name that does not
// exist is an error
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) error {
	for key, name := range keys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("bind flag --%s to %s: %w", name, key, err)
		}
	}
	return nil
}

func run(cfg *config.Config) error {
	log.SetLevel(logLevels[cfg.LogLevel])

	renderer, err := view.New()
	if err != nil {
		return err
	}

	// the store has to be reachable before anything listens
	log.Infof("Establishing connection to %s database %q...", cfg.DB.Driver, cfg.DB.Name)
	s, err := openStore(cfg.DB)
	if err != nil {
		log.Errorf("ERROR: %v", err)
		return err
	}
	log.Info("Successfully connected to the database!")

	e := server.New(server.Options{
		Store:     s,
		Renderer:  renderer,
		PublicDir: cfg.PublicDir,
	})
	e.Logger.SetLevel(logLevels[cfg.LogLevel])

	// bootstrap is not waited for; failures only get logged
	go store.Setup(context.Background(), s, e.Logger)

	// allows us to shut down server gracefully
	go func() {
		if err := e.Start(server.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down the echo server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Errorf("shut down echo server: %v", err)
	}

	log.Info("Closing the database...")
	if err := s.Close(ctx); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	log.Info("Successfully closed the database")
	return nil
}

func openStore(cfg config.DBConfig) (store.Store, error) {
	if cfg.Driver == config.DriverBadger {
		b, err := store.OpenBadger(cfg.Path, cfg.Name)
		if err != nil {
			return nil, err
		}
		return b, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()
	m, err := store.ConnectMongo(ctx, cfg.Host, cfg.Port, cfg.Name)
	if err != nil {
		return nil, err
	}
	return m, nil
}
