package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/joss/sweetshop/internal/config"
	"github.com/joss/sweetshop/internal/render"
)

func productsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the product catalog",
		Run: func(cmd *cobra.Command, args []string) {
			if err := app.catalog.Load(context.Background()); err != nil {
				exitOnError(err)
			}
			render.Stdout().Products(app.store.Products())
		},
	}
}

func cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Cart commands",
		Long:  "Show and modify the server-held cart",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show cart contents",
		Run: func(cmd *cobra.Command, args []string) {
			if err := app.cart.Refresh(context.Background()); err != nil {
				exitOnError(err)
			}
			render.Stdout().Cart(app.store.Cart())
		},
	}

	var qty int
	addCmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Long: `Add a product to the cart.

Requires an active session; run 'sweetshop login' first.

Examples:
  sweetshop cart add 3
  sweetshop cart add 3 --qty 2`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out := render.Stdout()

			if err := app.cart.Add(context.Background(), args[0], qty); err != nil {
				exitOnError(err)
			}

			out.Success("Added to cart")
			out.Cart(app.store.Cart())
		},
	}
	addCmd.Flags().IntVarP(&qty, "qty", "q", 1, "Quantity to add")

	removeCmd := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a line from the local cart view",
		Long: `Remove a line from the locally cached cart.

The backend cart is untouched; the line reappears on the next
'sweetshop cart show'.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			app.cart.RemoveLocal(args[0])
			render.Stdout().Cart(app.store.Cart())
		},
	}

	cmd.AddCommand(showCmd, addCmd, removeCmd)
	return cmd
}

func checkoutCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart contents",
		Long: `Submit the current cart as an order.

The customer name defaults to the logged-in username; override it with
--name. The server total is authoritative and printed on success.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := render.Stdout()
			ctx := context.Background()

			if err := app.cart.Refresh(ctx); err != nil {
				exitOnError(err)
			}

			preview, err := app.checkout.Begin()
			if err != nil {
				exitOnError(err)
			}

			if name == "" {
				name = preview.Name
			}

			out.Header("Order")
			for _, l := range preview.Lines {
				out.Item("%s × %-2d %8s", render.Pad(render.Truncate(l.Name, 16), 16), l.Qty, render.Money(l.Total))
			}
			out.Line()
			out.Println("Total: %s", render.Money(preview.Total))
			out.Line()

			conf, err := app.checkout.Submit(ctx, name)
			if err != nil {
				exitOnError(err)
			}

			out.Confirmation(conf.Name, conf.Total)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Customer name for the order")
	return cmd
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session and backend status",
		Run: func(cmd *cobra.Command, args []string) {
			out := render.Stdout()
			cfg := config.Get()

			out.Header("Sweet Shop")
			out.Item("Backend:  %s", cfg.APIBase)
			out.Item("Data:     %s", app.kv.Path())

			if u := app.store.User(); u != nil {
				out.Item("Session:  %s", u.Username)
			} else {
				out.Item("Session:  not logged in")
			}

			if err := app.catalog.Load(context.Background()); err != nil {
				out.Line()
				out.Failure("Backend unreachable: %v", err)
				os.Exit(1)
			}

			out.Item("Catalog:  %d products", len(app.store.Products()))
			out.Line()
			out.Success("Backend reachable")
		},
	}
}
