package cli

import (
	"errors"
	"fmt"

	"github.com/abgdnv/inventory/internal/inventory/store"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Version is the tool version, set at build time with -ldflags.
var Version = "dev"

var errNothingToModify = errors.New("nothing to modify: set at least one of --name, --price, --stock")

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every product in the inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := a.catalog.List()
			if err != nil {
				return err
			}
			if printProducts(cmd.OutOrStdout(), products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "The inventory is empty.")
			}
			return nil
		},
	}
}

func newFindCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <code>",
		Short: "Show the product with the given code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := a.catalog.Find(args[0])
			if err != nil {
				a.logger.WarnContext(cmd.Context(), "Product not found", "code", args[0])
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), found)
			return nil
		},
	}
}

func newAddCommand(a *app) *cobra.Command {
	var (
		p     store.Product
		price string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", price, err)
			}
			p.Price = d
			if err := a.catalog.Add(p); err != nil {
				a.logger.ErrorContext(cmd.Context(), "Error adding product", "code", p.Code, "error", err)
				return err
			}
			a.logger.InfoContext(cmd.Context(), "Product added", "code", p.Code, "name", p.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Product %s added.\n", p.Code)
			return nil
		},
	}
	cmd.Flags().StringVar(&p.Code, "code", "", "product code (required)")
	cmd.Flags().StringVar(&p.Name, "name", "", "product name (required)")
	cmd.Flags().StringVar(&price, "price", "0", "unit price")
	cmd.Flags().IntVar(&p.Stock, "stock", 0, "units in stock")
	cmd.Flags().StringVar(&p.Supplier.Name, "supplier", "", "supplier name (required)")
	cmd.Flags().StringVar(&p.Supplier.Contact, "contact", "", "supplier contact")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("supplier")
	return cmd
}

func newModifyCommand(a *app) *cobra.Command {
	var (
		name  string
		price string
		stock int
	)
	cmd := &cobra.Command{
		Use:   "modify <code>",
		Short: "Change the name, price or stock of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var changes store.Changes
			if cmd.Flags().Changed("name") {
				changes.Name = &name
			}
			if cmd.Flags().Changed("price") {
				d, err := decimal.NewFromString(price)
				if err != nil {
					return fmt.Errorf("invalid price %q: %w", price, err)
				}
				changes.Price = &d
			}
			if cmd.Flags().Changed("stock") {
				changes.Stock = &stock
			}
			if changes.IsEmpty() {
				return errNothingToModify
			}

			updated, err := a.catalog.Modify(args[0], changes)
			if err != nil {
				a.logger.ErrorContext(cmd.Context(), "Error modifying product", "code", args[0], "error", err)
				return err
			}
			a.logger.InfoContext(cmd.Context(), "Product modified", "code", updated.Code)
			fmt.Fprintln(cmd.OutOrStdout(), updated)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new product name")
	cmd.Flags().StringVar(&price, "price", "", "new unit price")
	cmd.Flags().IntVar(&stock, "stock", 0, "new units in stock")
	return cmd
}

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <code>",
		Short: "Delete the product with the given code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.catalog.Delete(args[0]); err != nil {
				a.logger.ErrorContext(cmd.Context(), "Error deleting product", "code", args[0], "error", err)
				return err
			}
			a.logger.InfoContext(cmd.Context(), "Product deleted", "code", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Product %s deleted.\n", args[0])
			return nil
		},
	}
}

func newTotalCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Show the total value of the inventory (price x stock)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			total, err := a.catalog.TotalValue()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total inventory value: %s\n", formatMoney(total))
			return nil
		},
	}
}

func newSupplierCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "supplier <name>",
		Short: "Show the products of a supplier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := a.catalog.ByProvider(args[0])
			if err != nil {
				return err
			}
			if printProducts(cmd.OutOrStdout(), products) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No products from supplier %s.\n", args[0])
			}
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the inventory version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "inventory %s\n", Version)
		},
	}
}
