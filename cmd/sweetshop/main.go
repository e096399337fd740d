// Package main provides the sweetshop CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/joss/sweetshop/internal/api"
	"github.com/joss/sweetshop/internal/cart"
	"github.com/joss/sweetshop/internal/catalog"
	"github.com/joss/sweetshop/internal/checkout"
	"github.com/joss/sweetshop/internal/config"
	"github.com/joss/sweetshop/internal/session"
	"github.com/joss/sweetshop/internal/state"
	"github.com/joss/sweetshop/internal/storage"
	"github.com/joss/sweetshop/internal/tui"
)

var version = "0.1.0"

// app holds the wired controllers shared by all commands. Built in
// PersistentPreRun so every subcommand sees the same session state.
type appContext struct {
	store    *state.Store
	kv       *storage.Store
	api      *api.Client
	sessions *session.Controller
	catalog  *catalog.Controller
	cart     *cart.Controller
	checkout *checkout.Flow
}

var app *appContext

func main() {
	rootCmd := &cobra.Command{
		Use:   "sweetshop",
		Short: "Sweet Shop - terminal storefront for the dessert shop",
		Long: `Sweet Shop: a terminal storefront client for the dessert shop backend.

Usage modes:
  sweetshop            Start the interactive storefront (requires a TTY)
  sweetshop <command>  Run a single storefront command (see below)

Use 'sweetshop status' to show session and backend status.
Use 'sweetshop help' for the full command list.`,
		Args: cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var err error
			app, err = buildApp()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.kv != nil {
				app.kv.Close()
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
				fmt.Fprintln(os.Stderr, "Use 'sweetshop help' for non-interactive commands")
				os.Exit(1)
			}
			if err := tui.Run(tui.Deps{
				Store:    app.store,
				Session:  app.sessions,
				Catalog:  app.catalog,
				Cart:     app.cart,
				Checkout: app.checkout,
			}); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: "account", Title: "Account:"},
		&cobra.Group{ID: "shop", Title: "Shopping:"},
	)

	for _, c := range []*cobra.Command{loginCmd(), registerCmd(), logoutCmd()} {
		c.GroupID = "account"
		rootCmd.AddCommand(c)
	}

	for _, c := range []*cobra.Command{productsCmd(), cartCmd(), checkoutCmd()} {
		c.GroupID = "shop"
		rootCmd.AddCommand(c)
	}

	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(statusCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildApp wires storage, the API client, and the controllers.
func buildApp() (*appContext, error) {
	cfg := config.Get()
	paths := config.GetPaths()

	if err := config.EnsureDir(paths.Data); err != nil {
		return nil, err
	}

	kv, err := storage.Open(paths.Data)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	clientID, err := kv.ClientID()
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("client id: %w", err)
	}

	client := api.New(cfg.APIBase, api.WithClientID(clientID))
	store := state.NewStore()
	sessions := session.New(store, client, kv)
	sessions.Restore()

	return &appContext{
		store:    store,
		kv:       kv,
		api:      client,
		sessions: sessions,
		catalog:  catalog.New(store, client),
		cart:     cart.New(store, client),
		checkout: checkout.New(store, client),
	}, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show sweetshop version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sweetshop version %s\n", version)
		},
	}
}
