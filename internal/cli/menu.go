package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/abgdnv/inventory/internal/inventory/store"
	"github.com/shopspring/decimal"
)

const menuText = `
=== INVENTORY MANAGEMENT ===
1. Add product
2. Show inventory
3. Find product
4. Modify product
5. Delete product
6. Total value
7. Products by supplier
8. Save and exit`

// Menu is the interactive text menu over a catalog.
type Menu struct {
	catalog store.CatalogStore
	logger  *slog.Logger
	in      *bufio.Scanner
	out     io.Writer
}

// NewMenu creates a menu reading answers from in and writing to out.
// The catalog must already be loaded.
func NewMenu(catalog store.CatalogStore, logger *slog.Logger, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		catalog: catalog,
		logger:  logger.With("component", "menu"),
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run shows the menu until the user saves and exits or the input ends.
// At the end of input the catalog is saved, as with option 8.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return m.save(ctx)
		}
		fmt.Fprintln(m.out, menuText)
		option, ok := m.ask("Select an option: ")
		if !ok {
			return m.save(ctx)
		}

		switch option {
		case "1":
			m.add(ctx)
		case "2":
			m.list()
		case "3":
			m.find(ctx)
		case "4":
			m.modify(ctx)
		case "5":
			m.remove(ctx)
		case "6":
			m.total()
		case "7":
			m.bySupplier()
		case "8":
			if err := m.save(ctx); err != nil {
				fmt.Fprintln(m.out, describeError(err))
				continue
			}
			fmt.Fprintln(m.out, "Inventory saved. Bye!")
			return nil
		default:
			fmt.Fprintf(m.out, "Unknown option %q, choose a number from 1 to 8.\n", option)
		}
	}
}

// ask prints prompt and reads one trimmed line. It reports false when the input is exhausted.
func (m *Menu) ask(prompt string) (string, bool) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		fmt.Fprintln(m.out)
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) add(ctx context.Context) {
	code, ok := m.ask("Product code: ")
	if !ok {
		return
	}
	name, ok := m.ask("Product name: ")
	if !ok {
		return
	}
	price, ok := m.askPrice("Unit price: ")
	if !ok {
		return
	}
	stock, ok := m.askStock("Units in stock: ")
	if !ok {
		return
	}
	supplier, ok := m.ask("Supplier name: ")
	if !ok {
		return
	}
	contact, ok := m.ask("Supplier contact: ")
	if !ok {
		return
	}

	p := store.Product{
		Code:     code,
		Name:     name,
		Price:    price,
		Stock:    stock,
		Supplier: store.Supplier{Name: supplier, Contact: contact},
	}
	if err := m.catalog.Add(p); err != nil {
		m.logger.WarnContext(ctx, "Product not added", "code", code, "error", err)
		fmt.Fprintln(m.out, describeError(err))
		return
	}
	m.logger.InfoContext(ctx, "Product added", "code", code, "name", name)
	fmt.Fprintf(m.out, "Product %s added.\n", code)
}

func (m *Menu) list() {
	products, err := m.catalog.List()
	if err != nil {
		fmt.Fprintln(m.out, describeError(err))
		return
	}
	if printProducts(m.out, products) == 0 {
		fmt.Fprintln(m.out, "The inventory is empty.")
	}
}

func (m *Menu) find(ctx context.Context) {
	code, ok := m.ask("Code to find: ")
	if !ok {
		return
	}
	found, err := m.catalog.Find(code)
	if err != nil {
		m.logger.DebugContext(ctx, "Product not found", "code", code)
		fmt.Fprintln(m.out, describeError(err))
		return
	}
	fmt.Fprintln(m.out, found)
}

// modify asks for every field; an empty answer keeps the current value.
func (m *Menu) modify(ctx context.Context) {
	code, ok := m.ask("Code to modify: ")
	if !ok {
		return
	}
	current, err := m.catalog.Find(code)
	if err != nil {
		fmt.Fprintln(m.out, describeError(err))
		return
	}
	fmt.Fprintln(m.out, current)
	fmt.Fprintln(m.out, "Leave a field empty to keep its value.")

	var changes store.Changes
	name, ok := m.ask(fmt.Sprintf("New name [%s]: ", current.Name))
	if !ok {
		return
	}
	if name != "" {
		changes.Name = &name
	}
	price, set, ok := m.askOptionalPrice(fmt.Sprintf("New price [%s]: ", current.Price.String()))
	if !ok {
		return
	}
	if set {
		changes.Price = &price
	}
	stock, set, ok := m.askOptionalStock(fmt.Sprintf("New stock [%d]: ", current.Stock))
	if !ok {
		return
	}
	if set {
		changes.Stock = &stock
	}
	if changes.IsEmpty() {
		fmt.Fprintln(m.out, "Nothing changed.")
		return
	}

	updated, err := m.catalog.Modify(code, changes)
	if err != nil {
		m.logger.WarnContext(ctx, "Product not modified", "code", code, "error", err)
		fmt.Fprintln(m.out, describeError(err))
		return
	}
	m.logger.InfoContext(ctx, "Product modified", "code", code)
	fmt.Fprintln(m.out, updated)
}

func (m *Menu) remove(ctx context.Context) {
	code, ok := m.ask("Code to delete: ")
	if !ok {
		return
	}
	if err := m.catalog.Delete(code); err != nil {
		m.logger.WarnContext(ctx, "Product not deleted", "code", code, "error", err)
		fmt.Fprintln(m.out, describeError(err))
		return
	}
	m.logger.InfoContext(ctx, "Product deleted", "code", code)
	fmt.Fprintf(m.out, "Product %s deleted.\n", code)
}

func (m *Menu) total() {
	total, err := m.catalog.TotalValue()
	if err != nil {
		fmt.Fprintln(m.out, describeError(err))
		return
	}
	fmt.Fprintf(m.out, "Total inventory value: %s\n", formatMoney(total))
}

func (m *Menu) bySupplier() {
	supplier, ok := m.ask("Supplier name: ")
	if !ok {
		return
	}
	products, err := m.catalog.ByProvider(supplier)
	if err != nil {
		fmt.Fprintln(m.out, describeError(err))
		return
	}
	if printProducts(m.out, products) == 0 {
		fmt.Fprintf(m.out, "No products from supplier %s.\n", supplier)
	}
}

func (m *Menu) save(ctx context.Context) error {
	if err := m.catalog.Save(); err != nil {
		m.logger.ErrorContext(ctx, "Unable to save catalog", "error", err)
		return err
	}
	m.logger.InfoContext(ctx, "Catalog saved")
	return nil
}

// askPrice repeats the question until the answer is a number.
func (m *Menu) askPrice(prompt string) (decimal.Decimal, bool) {
	for {
		price, set, ok := m.askOptionalPrice(prompt)
		if !ok || set {
			return price, ok
		}
		fmt.Fprintln(m.out, "A price is required.")
	}
}

// askStock repeats the question until the answer is a whole number.
func (m *Menu) askStock(prompt string) (int, bool) {
	for {
		stock, set, ok := m.askOptionalStock(prompt)
		if !ok || set {
			return stock, ok
		}
		fmt.Fprintln(m.out, "A stock quantity is required.")
	}
}

func (m *Menu) askOptionalPrice(prompt string) (decimal.Decimal, bool, bool) {
	for {
		answer, ok := m.ask(prompt)
		if !ok || answer == "" {
			return decimal.Zero, false, ok
		}
		price, err := decimal.NewFromString(strings.ReplaceAll(answer, ",", "."))
		if err == nil {
			return price, true, true
		}
		fmt.Fprintf(m.out, "%q is not a valid price.\n", answer)
	}
}

func (m *Menu) askOptionalStock(prompt string) (int, bool, bool) {
	for {
		answer, ok := m.ask(prompt)
		if !ok || answer == "" {
			return 0, false, ok
		}
		stock, err := strconv.Atoi(answer)
		if err == nil {
			return stock, true, true
		}
		fmt.Fprintf(m.out, "%q is not a whole number.\n", answer)
	}
}
