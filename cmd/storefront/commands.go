package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"plugshop/internal/storefront"
)

func (c *cli) products(ctx context.Context) error {
	list, err := c.client.Products(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tVARIANT\tPRICE")
	for _, p := range list {
		for _, v := range p.Variants {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s€\n", p.ID, p.Name, v.Name, decimal.NewFromFloat(v.Price).StringFixed(2))
		}
	}
	return tw.Flush()
}

func (c *cli) add(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errUsage
	}
	qty := 1
	if len(args) == 3 {
		n, err := strconv.Atoi(args[2])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid quantity %q", args[2])
		}
		qty = n
	}

	p, err := c.client.Product(ctx, args[0])
	if err != nil {
		return err
	}
	v, ok := p.Variant(args[1])
	if !ok {
		return fmt.Errorf("product %s has no variant %q", p.ID, args[1])
	}

	c.session.Cart.AddItem(storefront.Item{
		ProductID:    p.ID,
		VariantName:  v.Name,
		ProductName:  p.Name,
		VariantLabel: v.Name,
		Quantity:     qty,
		UnitPrice:    decimal.NewFromFloat(v.Price),
		Image:        p.Thumbnail(),
	})
	return c.printCart()
}

func (c *cli) qty(args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[1])
	}
	c.session.Cart.UpdateQuantity(args[0], n)
	return c.printCart()
}

func (c *cli) remove(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	c.session.Cart.RemoveItem(args[0])
	return c.printCart()
}

func (c *cli) promo(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := c.session.Cart.ApplyPromo(ctx, args[0]); err != nil {
		if errors.Is(err, storefront.ErrInvalidPromo) {
			return fmt.Errorf("promo code %q is not valid for this cart", args[0])
		}
		return err
	}
	return c.printCart()
}

func (c *cli) printCart() error {
	cart := c.session.Cart
	if cart.IsEmpty() {
		fmt.Fprintln(c.out, "cart is empty")
		return nil
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tPRODUCT\tQTY\tTOTAL")
	for _, l := range cart.Lines() {
		fmt.Fprintf(tw, "%s\t%s (%s)\t%d\t%s€\n", l.ID, l.ProductName, l.VariantLabel, l.Quantity, l.Total().StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	printTotals(c, cart.Totals())
	return nil
}

func printTotals(c *cli, t storefront.Totals) {
	fmt.Fprintf(c.out, "\nsubtotal  %s€\n", t.Subtotal.StringFixed(2))
	if p := c.session.Cart.Promo(); p != nil {
		fmt.Fprintf(c.out, "promo     %s  -%s€\n", p.Code, t.Discount.StringFixed(2))
	}
	if t.ServiceFee.IsPositive() {
		fmt.Fprintf(c.out, "fee       %s€\n", t.ServiceFee.StringFixed(2))
	}
	fmt.Fprintf(c.out, "total     %s€\n", t.Total.StringFixed(2))
}

// fileClipboard stands in for the system clipboard.
type fileClipboard struct {
	path string
}

func (f fileClipboard) WriteText(_ context.Context, text string) error {
	return os.WriteFile(f.path, []byte(text), 0o600)
}

func (c *cli) checkout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	fs.SetOutput(c.out)
	var (
		service    = fs.String("service", "", "service id")
		slot       = fs.String("slot", "", "time slot value")
		payment    = fs.String("payment", "", "payment method id")
		first      = fs.String("first", "", "first name")
		last       = fs.String("last", "", "last name")
		phone      = fs.String("phone", "", "phone number")
		address    = fs.String("address", "", "delivery address")
		complement = fs.String("complement", "", "address complement")
		copyOrder  = fs.Bool("copy", false, "write the order text to clipboard.txt in the storefront dir")
	)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if err := c.session.Refresh(ctx); err != nil {
		fmt.Fprintln(c.out, "warning:", err)
	}
	w := c.session.ResetCheckout()

	w.Next()
	if w.Step() == storefront.StepCart {
		return errors.New("cart is empty")
	}

	if err := w.SelectService(*service); err != nil {
		return fmt.Errorf("%w: %q (available: %s)", err, *service, serviceIDs(c.session))
	}
	if err := w.SelectTimeSlot(*slot); err != nil {
		return fmt.Errorf("%w: %q", err, *slot)
	}
	w.Next()

	if err := w.SelectPayment(*payment); err != nil {
		return fmt.Errorf("%w: %q", err, *payment)
	}
	w.SetCustomer(storefront.CustomerInfo{
		FirstName:         *first,
		LastName:          *last,
		Phone:             *phone,
		Address:           *address,
		AddressComplement: *complement,
	})
	if !w.CanNext() {
		if w.NeedsAddress() {
			return errors.New("first name, last name, phone and address are required")
		}
		return errors.New("first name, last name and phone are required")
	}
	w.Next()

	fmt.Fprintln(c.out, w.OrderText())
	if link, err := w.OrderLink(); err == nil {
		fmt.Fprintln(c.out, link)
	}
	if *copyOrder {
		cb := fileClipboard{path: filepath.Join(c.dir, "clipboard.txt")}
		if err := w.CopyOrder(ctx, cb); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "order copied to", cb.path)
	}
	return nil
}

func serviceIDs(s *storefront.Session) string {
	ids := ""
	for _, svc := range s.Settings().EnabledServices() {
		if ids != "" {
			ids += ", "
		}
		ids += svc.ID
	}
	return ids
}

func (c *cli) theme(ctx context.Context) error {
	if err := c.session.Refresh(ctx); err != nil {
		fmt.Fprintln(c.out, "warning:", err)
	}
	th := c.session.Theme()

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "textPrimary\t%s\n", th.Colors.TextPrimary)
	fmt.Fprintf(tw, "textSecondary\t%s\n", th.Colors.TextSecondary)
	fmt.Fprintf(tw, "textHeading\t%s\n", th.Colors.TextHeading)
	fmt.Fprintf(tw, "backgroundColor\t%s\n", th.Colors.BackgroundColor)
	fmt.Fprintf(tw, "cardBackground\t%s\n", th.Colors.CardBackground)
	fmt.Fprintf(tw, "borderColor\t%s\n", th.Colors.BorderColor)
	fmt.Fprintf(tw, "buttonText\t%s\n", th.Colors.ButtonText)
	fmt.Fprintf(tw, "buttonBackground\t%s\n", th.Colors.ButtonBackground)
	fmt.Fprintf(tw, "linkColor\t%s\n", th.Colors.LinkColor)
	fmt.Fprintf(tw, "accentColor\t%s\n", th.Colors.AccentColor)
	if err := tw.Flush(); err != nil {
		return err
	}

	if th.Event == nil {
		fmt.Fprintln(c.out, "\nno active event")
		return nil
	}
	fmt.Fprintf(c.out, "\nactive event: %s (priority %d, until %s)\n",
		th.Event.Name, th.Event.Priority, th.Event.EndDate.Format("2006-01-02 15:04"))
	return nil
}
