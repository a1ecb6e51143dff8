package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "go-onboarding-wizard/internal/delivery/http/v1"
	"go-onboarding-wizard/internal/submission"
	"go-onboarding-wizard/internal/usecase"
	"go-onboarding-wizard/pkg/logger"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the onboarding HTTP API",
	Long:  "Hydrates the wizard from the last saved snapshot, starts the autosave interval and serves the onboarding API until interrupted.",
	RunE:  runServe,
}

var servePort string

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Listen port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	in, err := setup(ctx, os.Stdout)
	if err != nil {
		return err
	}
	defer in.close()
	cfg := in.cfg
	if servePort != "" {
		cfg.Port = servePort
	}
	logger.Log.Info("Starting onboarding wizard", "port", cfg.Port, "env", cfg.AppEnv)

	// 5. Setup Collaborators
	store, err := in.formStore()
	if err != nil {
		return err
	}
	blobs, err := in.blobStore(ctx)
	if err != nil {
		return err
	}
	submitter, err := submission.Build(cfg)
	if err != nil {
		return err
	}
	directory := in.directory()

	// 6. Setup UseCases
	schemaUC := usecase.NewSchemaUsecase(usecase.NewValidator(in.clock), directory, in.clock)
	autosaveUC := usecase.NewAutosaveUsecase(store, in.clock, usecase.AutosaveConfig{
		FormID:   cfg.FormID,
		Debounce: cfg.AutosaveDebounce,
		Interval: cfg.AutosaveInterval,
	})
	wizardUC := usecase.NewWizardUsecase(ctx, usecase.WizardDeps{
		Schema:    schemaUC,
		Autosave:  autosaveUC,
		Store:     store,
		Blobs:     blobs,
		Directory: directory,
		Submitter: submitter,
		Clock:     in.clock,
		Audit:     in.audit,
	}, usecase.WizardConfig{
		FormID:            cfg.FormID,
		CleanupGraceDelay: cfg.CleanupGraceDelay,
	})
	healthUC := usecase.NewHealthUsecase(store, in.pingers)

	autosaveUC.Start()
	defer autosaveUC.Stop()

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		WizardUC: wizardUC,
		HealthUC: healthUC,
		Config:   cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful Shutdown
	select {
	case err := <-serveErr:
		if err != nil {
			logger.Log.Error("Listen failed", "error", err)
			return err
		}
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	if warning := wizardUC.OnUnload(shutdownCtx); warning != "" {
		logger.Log.Info("Flushed unsaved changes on shutdown", "form_id", cfg.FormID)
	}
	if wizardUC.FlushCleanup(shutdownCtx) {
		logger.Log.Info("Removed submitted data on shutdown", "form_id", cfg.FormID)
	}

	logger.Log.Info("Server exiting")
	return nil
}
