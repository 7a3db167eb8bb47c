package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpadapter "github.com/metal-pony/bucket-go/internal/adapters/http"
	"github.com/metal-pony/bucket-go/internal/hint"
	"github.com/metal-pony/bucket-go/internal/solver"
	"github.com/metal-pony/bucket-go/internal/storage"
	"github.com/metal-pony/bucket-go/internal/usecase"
	"github.com/metal-pony/bucket-go/internal/validator"
)

var (
	serveAddr string
	serveDB   string
)

func init() {
	commandServe.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	commandServe.Flags().StringVar(&serveDB, "db", "puzzles.db", "puzzle database path")
	mainCommand.AddCommand(commandServe)
}

var commandServe = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generator API over HTTP",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(); err != nil {
			logger.Fatal("serve failed", zap.Error(err))
		}
	},
}

func runServe() error {
	store, err := storage.NewBolt(serveDB)
	if err != nil {
		return err
	}
	defer store.Close()

	// The DLX solver is stateless, so concurrent requests can share it.
	uc := usecase.NewService(solver.NewDLXSolver(), validator.New(), hint.NewSingles(), store)
	h := httpadapter.New(uc, logger)

	srv := &http.Server{
		Addr:              serveAddr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", zap.String("addr", serveAddr), zap.String("db", serveDB))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
