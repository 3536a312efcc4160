package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"blackjack-server/internal/config"
	"blackjack-server/internal/mux"
	"blackjack-server/internal/rng"
	"blackjack-server/pkg/db"
	"blackjack-server/pkg/history"
	"blackjack-server/pkg/room"
	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const shutdownTimeout = time.Second * 5

// Version is the server version
var Version = "v0.0.0-dev"

var port = flag.Int("port", 0, "the TCP port to listen on (overrides the configuration)")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()
	listenPort, err := resolvePort(cfg.Port)
	if err != nil {
		logrus.WithError(err).Fatal("invalid port")
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", listenPort))
	if err != nil {
		logrus.WithError(err).Fatal("could not listen")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rounds := history.NewMemory(history.DefaultMemoryLimit)
	recorder := history.Multi{rounds}
	if cfg.PGDSN != "" {
		recorder = append(recorder, setupDatabase(cfg))
	}

	logger := logrus.StandardLogger()
	pitBoss := room.NewPitBoss(logger, cfg.Seats)
	dealer := room.NewDealer(logger, pitBoss, recorder, room.Options{
		TurnTimeout: cfg.TurnTimeoutDuration(),
		RNG:         rng.ByName(cfg.Shuffler),
	})

	go func() {
		// wake a dealer blocked on a read
		<-ctx.Done()
		pitBoss.CloseAll()
	}()

	go func() {
		if err := pitBoss.Serve(ctx, ln); err != nil {
			logrus.WithError(err).Error("listener stopped")
		}
	}()

	var srv *http.Server
	if cfg.HTTP.Addr != "" {
		srv = startHTTP(cfg, mux.Table{PitBoss: pitBoss, Dealer: dealer, Rounds: rounds})
	}

	logrus.WithFields(logrus.Fields{
		"port":  listenPort,
		"seats": pitBoss.Capacity(),
	}).Info("blackjack server listening")

	if err := dealer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logrus.WithError(err).Error("dealer stopped")
	}

	pitBoss.CloseAll()
	_ = ln.Close()

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Warn("could not shut down HTTP server")
		}
	}

	logrus.WithField("rounds", dealer.RoundsPlayed()).Info("server shut down")
}

// resolvePort picks the -port flag, then a positional argument, then the configured port
func resolvePort(configured int) (int, error) {
	if *port > 0 {
		return *port, nil
	}

	if flag.NArg() > 0 {
		p, err := strconv.Atoi(flag.Arg(0))
		if err != nil {
			return 0, err
		}

		if p <= 0 || p > 65535 {
			return 0, fmt.Errorf("port out of range: %d", p)
		}

		return p, nil
	}

	return configured, nil
}

func setupDatabase(cfg config.Config) history.Recorder {
	dbh, err := db.Open(cfg.PGDSN)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to database")
	}

	if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	return history.NewPostgres(dbh)
}

func startHTTP(cfg config.Config, table mux.Table) *http.Server {
	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet},
	})

	srv := &http.Server{
		Addr:        cfg.HTTP.Addr,
		Handler:     loggingHandler(cfg, c.Handler(mux.NewMux(Version, table))),
		ReadTimeout: readTimeout,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("status API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("could not serve status API")
		}
	}()

	return srv
}

func loggingHandler(cfg config.Config, next http.Handler) http.Handler {
	if cfg.Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
