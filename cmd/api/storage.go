package main

import (
	"encoding/json"
	"fmt"

	"go-onboarding-wizard/pkg/logger"

	"github.com/spf13/cobra"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Inspect and maintain saved form snapshots",
}

var storageUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Print the bytes and entries used by form snapshots",
	Args:  cobra.NoArgs,
	RunE:  runStorageUsage,
}

var storagePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete stale or corrupt form snapshots",
	Args:  cobra.NoArgs,
	RunE:  runStoragePurge,
}

var storageClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved snapshot of a form",
	Args:  cobra.NoArgs,
	RunE:  runStorageClear,
}

var storageFormID string

func init() {
	storageClearCmd.Flags().StringVar(&storageFormID, "form-id", "", "Form to clear (defaults to FORM_ID)")

	storageCmd.AddCommand(storageUsageCmd, storagePurgeCmd, storageClearCmd)
	rootCmd.AddCommand(storageCmd)
}

func runStorageUsage(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	in, err := setup(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer in.close()

	store, err := in.formStore()
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(store.Usage(ctx), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func runStoragePurge(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	in, err := setup(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer in.close()

	store, err := in.formStore()
	if err != nil {
		return err
	}
	removed, err := store.PurgeStale(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d stale snapshot(s)\n", removed)
	return nil
}

func runStorageClear(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	in, err := setup(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer in.close()

	formID := storageFormID
	if formID == "" {
		formID = in.cfg.FormID
	}
	store, err := in.formStore()
	if err != nil {
		return err
	}
	store.Remove(ctx, formID)
	logger.Log.Info("Snapshot cleared", "form_id", formID)
	fmt.Fprintf(cmd.OutOrStdout(), "Cleared snapshot for %s\n", formID)
	return nil
}
