// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package posui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/poskit/poskit/lib/api"
	"github.com/poskit/poskit/lib/permission"
	"github.com/poskit/poskit/lib/settings"
)

type checkoutMode int

const (
	checkoutBrowse checkoutMode = iota
	checkoutReceipt
)

// cartLine is one product in the sale with its quantity.
type cartLine struct {
	product  api.Product
	quantity int
}

// checkoutScreen is the sale screen: pick products into a cart,
// submit the invoice, and show the receipt preview.
type checkoutScreen struct {
	mode       checkoutMode
	catalog    []api.Product
	cursor     int
	cart       []cartLine
	submitting bool

	// receiptText is the rendered preview after a completed sale.
	receiptText string
}

func newCheckoutScreen() checkoutScreen {
	return checkoutScreen{}
}

func (screen *checkoutScreen) reset() {
	screen.mode = checkoutBrowse
	screen.cursor = 0
	screen.cart = nil
	screen.submitting = false
	screen.receiptText = ""
}

func (screen *checkoutScreen) editing() bool { return false }

func (screen *checkoutScreen) setCatalog(products []api.Product) {
	screen.catalog = products
	if screen.cursor >= len(products) {
		screen.cursor = 0
	}
}

func (screen *checkoutScreen) selected() (api.Product, bool) {
	if screen.cursor < 0 || screen.cursor >= len(screen.catalog) {
		return api.Product{}, false
	}
	return screen.catalog[screen.cursor], true
}

// adjust changes the selected product's cart quantity by delta,
// inserting or dropping the line at the zero boundary.
func (screen *checkoutScreen) adjust(delta int) {
	product, ok := screen.selected()
	if !ok {
		return
	}
	for index := range screen.cart {
		if screen.cart[index].product.ProductID == product.ProductID {
			screen.cart[index].quantity += delta
			if screen.cart[index].quantity <= 0 {
				screen.cart = append(screen.cart[:index], screen.cart[index+1:]...)
			}
			return
		}
	}
	if delta > 0 {
		screen.cart = append(screen.cart, cartLine{product: product, quantity: delta})
	}
}

// total is the sale total at current prices.
func (screen *checkoutScreen) total() float64 {
	var sum float64
	for _, line := range screen.cart {
		sum += line.product.Price * float64(line.quantity)
	}
	return sum
}

// buildInvoiceRequest snapshots the cart.
func (screen *checkoutScreen) buildInvoiceRequest(companyID int) api.SaveInvoiceRequest {
	items := make([]api.InvoiceItem, len(screen.cart))
	for index, line := range screen.cart {
		items[index] = api.InvoiceItem{
			ProductID: line.product.ProductID,
			Quantity:  line.quantity,
			Price:     line.product.Price,
		}
	}
	return api.SaveInvoiceRequest{CompanyID: companyID, Items: items, Total: screen.total()}
}

// completed renders the receipt preview for a saved invoice and
// clears the cart. The layout follows the operator's settings:
// "compact" drops the separators and per-line codes.
func (screen *checkoutScreen) completed(invoiceNo string, prefs settings.Settings) {
	width := prefs.ReceiptWidth
	compact := prefs.ReceiptTemplate == "compact"

	var builder strings.Builder
	center := func(text string) {
		pad := (width - len(text)) / 2
		if pad > 0 {
			builder.WriteString(strings.Repeat(" ", pad))
		}
		builder.WriteString(text)
		builder.WriteByte('\n')
	}
	rule := func() {
		if !compact {
			builder.WriteString(strings.Repeat("-", width))
			builder.WriteByte('\n')
		}
	}

	center("RECEIPT")
	center("invoice " + invoiceNo)
	rule()
	for _, line := range screen.cart {
		name := line.product.ProductName
		if !compact && line.product.ProductCode != "" {
			name = line.product.ProductCode + " " + name
		}
		amount := fmt.Sprintf("%d x %.2f", line.quantity, line.product.Price)
		gap := width - len(name) - len(amount)
		if gap < 1 {
			cut := len(name) + gap - 1
			if cut < 0 {
				cut = 0
			}
			name = name[:cut]
			gap = 1
		}
		builder.WriteString(name + strings.Repeat(" ", gap) + amount + "\n")
	}
	rule()
	totalText := fmt.Sprintf("TOTAL %.2f", screen.total())
	gap := width - len(totalText)
	if gap > 0 {
		builder.WriteString(strings.Repeat(" ", gap))
	}
	builder.WriteString(totalText + "\n")

	screen.receiptText = builder.String()
	screen.cart = nil
	screen.submitting = false
	screen.mode = checkoutReceipt
}

func (model Model) updateCheckout(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	screen := &model.checkout

	if screen.mode == checkoutReceipt {
		if message.Type == tea.KeyEnter || key.Matches(message, model.keys.Cancel) {
			screen.mode = checkoutBrowse
			screen.receiptText = ""
		}
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.Up):
		if screen.cursor > 0 {
			screen.cursor--
		}

	case key.Matches(message, model.keys.Down):
		if screen.cursor < len(screen.catalog)-1 {
			screen.cursor++
		}

	case message.Type == tea.KeyEnter:
		screen.adjust(1)

	case message.String() == "+":
		screen.adjust(1)

	case message.String() == "-":
		screen.adjust(-1)

	case key.Matches(message, model.keys.Delete):
		// Remove the whole line for the selected product.
		if product, ok := screen.selected(); ok {
			for index := range screen.cart {
				if screen.cart[index].product.ProductID == product.ProductID {
					screen.cart = append(screen.cart[:index], screen.cart[index+1:]...)
					break
				}
			}
		}

	case message.String() == "s":
		if screen.submitting || len(screen.cart) == 0 {
			return model, nil
		}
		if !model.can(ScreenCheckout, permission.FlagAdd) {
			return model, model.deny("submitting sales")
		}
		screen.submitting = true
		return model, model.saveInvoiceCmd(screen.buildInvoiceRequest(model.currentCompanyID()))
	}

	return model, nil
}
