package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
)

func newBackupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "backup [file]",
		Short: "Write the progress snapshot as JSON to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(_ context.Context, e *env) error {
				if len(args) == 0 {
					return writeSnapshot(cmd.OutOrStdout(), e.session.Progress())
				}

				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("create backup: %w", err)
				}
				if err := writeSnapshot(f, e.session.Progress()); err != nil {
					_ = f.Close()
					return err
				}
				return f.Close()
			})
		},
	}
}

func newRestoreCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace the progress with a snapshot written by backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open backup: %w", err)
			}
			defer func() { _ = f.Close() }()

			snap, err := readSnapshot(f)
			if err != nil {
				return err
			}

			return opts.run(cmd, func(ctx context.Context, e *env) error {
				if err := e.session.RestoreProgress(ctx, snap); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restored %d known card(s)\n", len(e.session.Progress().Known))
				return nil
			})
		},
	}
}

func writeSnapshot(w io.Writer, snap entities.ProgressSnapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

func readSnapshot(r io.Reader) (entities.ProgressSnapshot, error) {
	var snap entities.ProgressSnapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return snap, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
