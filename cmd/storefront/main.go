// Command storefront is a terminal version of the Mini App: it browses the
// catalogue, keeps a cart on disk and builds the order message.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"plugshop/internal/catalogclient"
	"plugshop/internal/storefront"
	"plugshop/internal/tracing"
)

const usage = `usage: storefront <command> [args]

commands:
  products                       list the catalogue
  add <productId> <variant> [n]  add n (default 1) of a variant to the cart
  qty <lineId> <n>               set a line's quantity (0 removes it)
  remove <lineId>                remove a line
  clear                          empty the cart and drop the promo
  promo <code>                   apply a promo code
  unpromo                        drop the applied promo
  cart                           show the cart and its totals
  checkout [flags]               walk the checkout and print the order
  theme                          show the current colours and event theme

environment:
  API_URL         shop API base URL (default http://localhost:5000/api)
  STOREFRONT_DIR  where the cart is kept (default ~/.plugshop)
  JAEGER_ENDPOINT Jaeger collector URL; tracing is off when unset
`

type cli struct {
	out     io.Writer
	client  *catalogclient.Client
	session *storefront.Session
	dir     string
}

func newLogger() (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

func defaultDir() string {
	if d := os.Getenv("STOREFRONT_DIR"); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".plugshop"
	}
	return filepath.Join(home, ".plugshop")
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	logger, err := newLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:5000/api"
	}
	dir := defaultDir()

	shutdownTracing := func() {}
	if endpoint := os.Getenv("JAEGER_ENDPOINT"); endpoint != "" {
		tp, err := tracing.InitTracerProvider("plugshop-storefront", endpoint)
		if err != nil {
			logger.Fatal(err)
		}
		shutdownTracing = func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				logger.Warnw("failed to flush traces", "error", err)
			}
		}
	}

	store, err := storefront.NewFileStore(dir)
	if err != nil {
		logger.Fatal(err)
	}
	client := catalogclient.New(apiURL, catalogclient.WithLogger(logger))
	session := storefront.NewSession(client, store, logger)
	if err := session.Load(); err != nil {
		logger.Warnw("starting with an empty cart", "error", err)
	}

	c := &cli{out: os.Stdout, client: client, session: session, dir: dir}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	runErr := c.run(ctx, os.Args[1], os.Args[2:])
	if err := session.Close(); err != nil {
		logger.Errorw("failed to save cart", "error", err)
	}
	shutdownTracing()
	if runErr != nil {
		if errors.Is(runErr, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", runErr)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

func (c *cli) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "products":
		return c.products(ctx)
	case "add":
		return c.add(ctx, args)
	case "qty":
		return c.qty(args)
	case "remove":
		return c.remove(args)
	case "clear":
		c.session.Cart.Clear()
		fmt.Fprintln(c.out, "cart cleared")
		return nil
	case "promo":
		return c.promo(ctx, args)
	case "unpromo":
		c.session.Cart.RemovePromo()
		return c.printCart()
	case "cart":
		return c.printCart()
	case "checkout":
		return c.checkout(ctx, args)
	case "theme":
		return c.theme(ctx)
	}
	return errUsage
}
