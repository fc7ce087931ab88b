package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cradle/internal/accounts"
	"cradle/internal/config"
)

func newAccountsCommand(ctx *commandContext) *cobra.Command {
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account maintenance",
	}

	accountsCmd.AddCommand(newAccountsCreateCommand(ctx))
	accountsCmd.AddCommand(newAccountsDeactivateCommand(ctx))
	accountsCmd.AddCommand(newAccountsReactivateCommand(ctx))
	accountsCmd.AddCommand(newAccountsSweepCommand(ctx))

	return accountsCmd
}

func withAccountStore(ctx *commandContext, fn func(*config.Config, *accounts.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	store, err := accounts.Open(cfg.AccountsDBPath())
	if err != nil {
		return fmt.Errorf("open accounts store: %w", err)
	}
	defer store.Close()
	return fn(cfg, store)
}

func newAccountsCreateCommand(ctx *commandContext) *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "create <email>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAccountStore(ctx, func(_ *config.Config, store *accounts.Store) error {
				account, err := store.Create(cmd.Context(), strings.TrimSpace(args[0]), displayName)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created account %s (%s)\n", account.ID, account.Email)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&displayName, "name", "n", "", "Display name for the account")
	return cmd
}

func newAccountsDeactivateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <account-id>",
		Short: "Deactivate an account, starting the deletion grace period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAccountStore(ctx, func(cfg *config.Config, store *accounts.Store) error {
				if err := store.Deactivate(cmd.Context(), strings.TrimSpace(args[0]), time.Now().UTC()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(),
					"Account deactivated; data is removed after %d days unless reactivated.\n",
					cfg.Accounts.GraceDays)
				return nil
			})
		},
	}
}

func newAccountsReactivateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reactivate <account-id>",
		Short: "Reactivate a deactivated account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAccountStore(ctx, func(_ *config.Config, store *accounts.Store) error {
				if err := store.Reactivate(cmd.Context(), strings.TrimSpace(args[0])); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Account reactivated.")
				return nil
			})
		},
	}
}

func newAccountsSweepCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Remove accounts deactivated longer than the grace period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAccountStore(ctx, func(cfg *config.Config, store *accounts.Store) error {
				grace := time.Duration(cfg.Accounts.GraceDays) * 24 * time.Hour
				sweeper := accounts.NewSweeper(store, grace, time.Hour, nil)
				removed, err := sweeper.SweepOnce(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired accounts.\n", removed)
				return nil
			})
		},
	}
}
