// Command pos is the point-of-sale client: sign in, manage the catalog,
// ring up sales, print or share receipts, pull sales reports and manage
// the shop's subscription.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/Naveenv26/mobile-bill/internal/application/service"
	"github.com/Naveenv26/mobile-bill/internal/config"
	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
	"github.com/Naveenv26/mobile-bill/internal/domain/enum"
	"github.com/Naveenv26/mobile-bill/internal/infrastructure/api"
	"github.com/Naveenv26/mobile-bill/internal/infrastructure/localstore"
	"github.com/Naveenv26/mobile-bill/internal/infrastructure/session"
	"github.com/Naveenv26/mobile-bill/internal/presentation/checkout"
	"github.com/Naveenv26/mobile-bill/pkg/printer"
	"github.com/Naveenv26/mobile-bill/pkg/share"
)

type app struct {
	cfg *config.Config

	auth          *service.AuthService
	catalog       *service.CatalogService
	billing       *service.BillingService
	receipts      *service.ReceiptService
	shop          *service.ShopService
	subscriptions *service.SubscriptionService
	reports       *service.ReportService
	staff         *service.StaffService

	store *localstore.Store
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := buildApp(cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer cleanup()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}
}

func buildApp(cfg *config.Config) (*app, func(), error) {
	tokens, err := session.NewTokenStore(cfg.Storage.Path)
	if err != nil {
		return nil, nil, err
	}

	store, err := localstore.Open(cfg.Storage.Path)
	if err != nil {
		return nil, nil, err
	}

	// The expiry hook fires from inside the transport, after the auth
	// service exists. Bind it late.
	var authSvc *service.AuthService
	client, err := api.NewClient(&cfg.API, tokens, func() {
		if authSvc != nil {
			authSvc.OnSessionExpired()
		}
	})
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	device, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	authRepo := api.NewAuthRepository(client)
	productRepo := api.NewProductRepository(client)
	invoiceRepo := api.NewInvoiceRepository(client)
	shopRepo := api.NewShopRepository(client)
	staffRepo := api.NewStaffRepository(client)
	subRepo := api.NewSubscriptionRepository(client)

	subscriptions := service.NewSubscriptionService(subRepo)
	authSvc = service.NewAuthService(authRepo, tokens, store.Shop(), store.Products())

	a := &app{
		cfg:           cfg,
		auth:          authSvc,
		catalog:       service.NewCatalogService(productRepo, store.Products()),
		billing:       service.NewBillingService(invoiceRepo, store.Shop(), subscriptions),
		receipts:      service.NewReceiptService(invoiceRepo, store.Shop(), device, cfg.Printer.CharWidth, cfg.Storage.Path),
		shop:          service.NewShopService(shopRepo, store.Shop()),
		subscriptions: subscriptions,
		reports:       service.NewReportService(invoiceRepo, subscriptions),
		staff:         service.NewStaffService(staffRepo),
		store:         store,
	}

	cleanup := func() {
		device.Close()
		store.Close()
	}
	return a, cleanup, nil
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return a.auth.Logout(ctx)
	case "me":
		return a.cmdMe(ctx)
	case "products":
		return a.cmdProducts(ctx, args)
	case "sale":
		return a.cmdSale(ctx, args)
	case "receipt":
		return a.cmdReceipt(ctx, args)
	case "reports":
		return a.cmdReports(ctx, args)
	case "plans":
		return a.cmdPlans(ctx)
	case "subscribe":
		return a.cmdSubscribe(ctx, args)
	case "staff":
		return a.cmdStaff(ctx, args)
	case "settings":
		return a.cmdSettings(ctx, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: pos <command> [flags]

commands:
  login       sign in to the shop account
  logout      sign out and clear local state
  me          show the signed-in profile
  products    list or manage the catalog
  sale        ring up a sale and print the receipt
  receipt     regenerate or reprint an invoice
  reports     sales summary and spreadsheet export
  plans       list subscription plans
  subscribe   purchase a plan via the payment gateway
  staff       manage staff accounts
  settings    update shop profile and receipt settings`)
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("user", "", "account username")
	fs.Parse(args)

	if *username == "" {
		return fmt.Errorf("-user is required")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	user, err := a.auth.Login(ctx, *username, string(pw))
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s", user.Username)
	if user.Shop != nil {
		fmt.Printf(" (%s)", user.Shop.Name)
	}
	fmt.Println()
	return nil
}

func (a *app) cmdMe(ctx context.Context) error {
	user, err := a.auth.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("User:  %s\n", user.Username)
	if user.Shop != nil {
		fmt.Printf("Shop:  %s\n", user.Shop.Name)
		fmt.Printf("Paper: %s\n", enum.ParsePaperSize(user.Shop.Config.Invoice.PaperSize))
	}
	sub, err := a.subscriptions.Current(ctx)
	if err == nil && sub != nil {
		fmt.Printf("Plan:  %s (%d days remaining)\n", sub.PlanType, sub.DaysRemaining)
	}
	return nil
}

func (a *app) cmdProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	add := fs.String("add", "", "add a product as name:price:taxrate")
	remove := fs.Int64("rm", 0, "delete a product by id")
	fs.Parse(args)

	switch {
	case *add != "":
		parts := strings.SplitN(*add, ":", 3)
		if len(parts) != 3 {
			return fmt.Errorf("-add wants name:price:taxrate")
		}
		price, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return fmt.Errorf("invalid price %q", parts[1])
		}
		rate, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return fmt.Errorf("invalid tax rate %q", parts[2])
		}
		created, err := a.catalog.Create(ctx, &entity.Product{
			Name:    parts[0],
			Price:   entity.Decimal(price),
			TaxRate: entity.Decimal(rate),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added #%d %s\n", created.ID, created.Name)
		return nil

	case *remove != 0:
		if err := a.catalog.Delete(ctx, *remove); err != nil {
			return err
		}
		fmt.Printf("Deleted #%d\n", *remove)
		return nil

	default:
		products, err := a.catalog.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range products {
			fmt.Printf("#%-5d %-24s %8.2f  tax %.1f%%\n", p.ID, p.Name, p.Price.Float(), p.TaxRate.Float())
		}
		return nil
	}
}

// itemFlag collects repeated -item id or -item idxqty arguments.
type itemFlag []string

func (f *itemFlag) String() string     { return strings.Join(*f, ",") }
func (f *itemFlag) Set(s string) error { *f = append(*f, s); return nil }

func (a *app) cmdSale(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sale", flag.ExitOnError)
	var items itemFlag
	fs.Var(&items, "item", "product id, or id x qty (e.g. 12x3); repeatable")
	customer := fs.String("customer", "", "customer name (defaults to Walk-in)")
	mobile := fs.String("mobile", "", "customer mobile")
	doPrint := fs.Bool("print", false, "print on the thermal printer")
	doShare := fs.Bool("share", false, "share the PDF after the sale")
	fs.Parse(args)

	if len(items) == 0 {
		return fmt.Errorf("at least one -item is required")
	}

	products, err := a.catalog.List(ctx)
	if err != nil {
		return err
	}
	byID := make(map[int64]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, arg := range items {
		id, qty := int64(0), 1
		if i := strings.IndexByte(arg, 'x'); i > 0 {
			id, err = strconv.ParseInt(arg[:i], 10, 64)
			if err == nil {
				qty, err = strconv.Atoi(arg[i+1:])
			}
		} else {
			id, err = strconv.ParseInt(arg, 10, 64)
		}
		if err != nil || qty < 1 {
			return fmt.Errorf("invalid -item %q", arg)
		}
		product, ok := byID[id]
		if !ok {
			return fmt.Errorf("no product #%d", id)
		}
		a.billing.AddToCart(product)
		if qty > 1 {
			a.billing.UpdateQty(id, qty)
		}
	}

	totals := a.billing.Totals()
	fmt.Printf("Items: %d  Subtotal: %.2f  Tax: %.2f  Total: %.2f\n",
		totals.TotalItems, totals.Subtotal, totals.Tax, totals.Total)

	invoice, err := a.billing.Finalize(ctx, *customer, *mobile)
	if err != nil {
		return err
	}
	fmt.Printf("Invoice #%s created\n", invoice.Ref())

	path, err := a.receipts.GeneratePDF(ctx, invoice)
	if err != nil {
		return err
	}
	fmt.Printf("Receipt: %s\n", path)

	if *doPrint {
		if err := a.receipts.Print(invoice); err != nil {
			log.Printf("print failed: %v", err)
		}
	}
	if *doShare {
		if err := share.File(path, "Invoice #"+invoice.Ref()); err != nil {
			log.Printf("share failed: %v", err)
		}
	}

	a.billing.Reset()
	return nil
}

func (a *app) cmdReceipt(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("receipt", flag.ExitOnError)
	id := fs.Int64("id", 0, "invoice id")
	doPrint := fs.Bool("print", false, "reprint on the thermal printer")
	fs.Parse(args)

	if *id == 0 {
		return fmt.Errorf("-id is required")
	}
	if *doPrint {
		return a.receipts.PrintByID(ctx, *id)
	}

	path, err := a.receipts.GeneratePDFByID(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("Receipt: %s\n", path)
	return nil
}

func (a *app) cmdReports(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reports", flag.ExitOnError)
	from := fs.String("from", "", "start date (yyyy-mm-dd), default 7 days ago")
	to := fs.String("to", "", "end date (yyyy-mm-dd), default today")
	export := fs.String("export", "", "write an XLSX export to this path")
	fs.Parse(args)

	now := time.Now()
	fromT, toT := now.AddDate(0, 0, -7), now
	var err error
	if *from != "" {
		if fromT, err = time.Parse("2006-01-02", *from); err != nil {
			return fmt.Errorf("invalid -from: %w", err)
		}
	}
	if *to != "" {
		if toT, err = time.Parse("2006-01-02", *to); err != nil {
			return fmt.Errorf("invalid -to: %w", err)
		}
	}

	if *export != "" {
		if err := a.reports.ExportXLSX(ctx, fromT, toT, *export); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", *export)
		return nil
	}

	summary, err := a.reports.SalesSummary(ctx, fromT, toT)
	if err != nil {
		return err
	}
	for _, day := range summary.Days {
		fmt.Printf("%s  %3d invoices  tax %8.2f  %10.2f\n", day.Date, day.Invoices, day.Tax, day.Total)
	}
	fmt.Printf("Total: %d invoices, Rs. %.2f (tax Rs. %.2f)\n", summary.Invoices, summary.GrandTotal, summary.TaxTotal)
	return nil
}

func (a *app) cmdPlans(ctx context.Context) error {
	plans, err := a.subscriptions.Plans(ctx)
	if err != nil {
		return err
	}
	for _, p := range plans {
		fmt.Printf("#%-3d %-10s %-6s %8.2f  %d days\n",
			p.ID, p.Name, p.PlanType, p.Price.Float(), p.DurationDays)
	}
	return nil
}

func (a *app) cmdSubscribe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("subscribe", flag.ExitOnError)
	planID := fs.Int64("plan", 0, "plan id to purchase")
	fs.Parse(args)

	if *planID == 0 {
		return fmt.Errorf("-plan is required")
	}

	order, err := a.subscriptions.CreateOrder(ctx, *planID)
	if err != nil {
		return err
	}

	srv := checkout.New(a.cfg.Checkout, order, a.subscriptions.VerifyPayment)
	fmt.Printf("Open %s in your browser to complete the payment.\n", srv.URL())
	if err := share.Open(srv.URL()); err != nil {
		log.Printf("could not open browser automatically: %v", err)
	}

	sub, err := srv.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Subscribed: %s plan, %d days\n", sub.PlanType, sub.DaysRemaining)
	return nil
}

func (a *app) cmdStaff(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("staff", flag.ExitOnError)
	add := fs.String("add", "", "add a staff member as username:password")
	remove := fs.Int64("rm", 0, "remove a staff member by id")
	fs.Parse(args)

	switch {
	case *add != "":
		parts := strings.SplitN(*add, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("-add wants username:password")
		}
		member, err := a.staff.Create(ctx, &entity.StaffMember{Username: parts[0]}, parts[1])
		if err != nil {
			return err
		}
		fmt.Printf("Added staff #%d %s\n", member.ID, member.Username)
		return nil

	case *remove != 0:
		if err := a.staff.Delete(ctx, *remove); err != nil {
			return err
		}
		fmt.Printf("Removed staff #%d\n", *remove)
		return nil

	default:
		members, err := a.staff.List(ctx)
		if err != nil {
			return err
		}
		for _, m := range members {
			fmt.Printf("#%-5d %s\n", m.ID, m.Username)
		}
		return nil
	}
}

func (a *app) cmdSettings(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	paper := fs.String("paper", "", `receipt paper size ("A4" or "Thermal 80mm")`)
	upi := fs.String("upi", "", "UPI id for payment QR codes")
	prefix := fs.String("prefix", "", "invoice number prefix")
	terms := fs.String("terms", "", "terms and conditions text")
	name := fs.String("name", "", "shop display name")
	fs.Parse(args)

	if *name != "" {
		if _, err := a.shop.UpdateProfile(ctx, map[string]any{"name": *name}); err != nil {
			return err
		}
	}

	if *paper != "" || *upi != "" || *prefix != "" || *terms != "" {
		_, err := a.shop.UpdateConfig(ctx, func(c *entity.ShopConfig) {
			if *paper != "" {
				c.Invoice.PaperSize = enum.ParsePaperSize(*paper).String()
			}
			if *upi != "" {
				c.Invoice.UPIID = *upi
			}
			if *prefix != "" {
				c.Invoice.Prefix = *prefix
			}
			if *terms != "" {
				c.Invoice.Terms = *terms
			}
		})
		if err != nil {
			return err
		}
	}

	shop, err := a.shop.Current()
	if err != nil {
		return err
	}
	fmt.Printf("Shop:   %s\n", shop.Name)
	fmt.Printf("Paper:  %s\n", enum.ParsePaperSize(shop.Config.Invoice.PaperSize))
	fmt.Printf("Prefix: %s\n", shop.Config.Invoice.Prefix)
	fmt.Printf("UPI:    %s\n", shop.Config.Invoice.UPIID)
	return nil
}
