package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"localmart/internal/address"
	"localmart/internal/admin"
	"localmart/internal/api"
	"localmart/internal/auth"
	"localmart/internal/booking"
	"localmart/internal/cart"
	"localmart/internal/catalog"
	"localmart/internal/config"
	"localmart/internal/food"
	"localmart/internal/logger"
	"localmart/internal/order"
	"localmart/internal/storage"
	"localmart/internal/user"
	"localmart/internal/validators"

	"go.uber.org/zap"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const genericFailure = "Something went wrong. Please try again."

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run loads the configuration, opens local storage and dispatches args.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return guard(stderr, func() int {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(stderr, "config:", err)
			return exitFailure
		}

		logger.Init(cfg.AppEnv, logger.WithLevel(cfg.LogLevel), logger.WithFile(cfg.LogFile))
		defer logger.Sync()

		ctx, _ := logger.EnsureRequestID(ctx)

		store, err := storage.Open(ctx, cfg)
		if err != nil {
			logger.L().Error("failed to open storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
			fmt.Fprintln(stderr, "storage:", err)
			return exitFailure
		}
		defer store.Close()

		a, err := newApp(cfg, store, stdin, stdout, stderr)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitFailure
		}
		return a.dispatch(ctx, args)
	})
}

// guard turns a panic in fn into the generic failure message.
func guard(stderr io.Writer, fn func() int) (code int) {
	defer func() {
		if r := recover(); r != nil {
			logger.L().Error("panic", zap.Any("recovered", r), zap.Stack("stack"))
			fmt.Fprintln(stderr, genericFailure)
			code = exitFailure
		}
	}()
	return fn()
}

// app holds every service a command may need.
type app struct {
	cfg    *config.Config
	client *api.Client

	auth      auth.Service
	users     user.Service
	addresses address.Service
	cart      *cart.Store
	catalog   catalog.Service
	orders    order.Service
	bookings  booking.Service
	booking   booking.Repository
	food      food.Service
	foodCart  *food.Cart

	adminRepo admin.Repository
	orderRepo order.Repository
	userRepo  user.Repository

	in     *bufio.Reader
	stdout io.Writer
	stderr io.Writer
}

func newApp(cfg *config.Config, store storage.Store, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	tokens := auth.NewTokens(store)

	client, err := api.NewFromConfig(cfg, tokens)
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}

	orderRepo := order.NewRepository(client)
	userRepo := user.NewRepository(client)
	bookingRepo := booking.NewRepository(client)
	foodCart := food.NewCart(store)

	return &app{
		cfg:       cfg,
		client:    client,
		auth:      auth.NewService(auth.NewRepository(client), tokens),
		users:     user.NewService(userRepo, tokens),
		addresses: address.NewService(address.NewRepository(client)),
		cart:      cart.NewStore(store),
		catalog:   catalog.NewService(catalog.NewRepository(client)),
		orders:    order.NewService(orderRepo),
		bookings:  booking.NewService(bookingRepo),
		booking:   bookingRepo,
		food:      food.NewService(food.NewRepository(client), foodCart),
		foodCart:  foodCart,
		adminRepo: admin.NewRepository(client),
		orderRepo: orderRepo,
		userRepo:  userRepo,
		in:        bufio.NewReader(stdin),
		stdout:    stdout,
		stderr:    stderr,
	}, nil
}

type command func(ctx context.Context, args []string) error

func (a *app) commands() map[string]command {
	return map[string]command{
		"login":    a.cmdLogin,
		"register": a.cmdRegister,
		"logout":   a.cmdLogout,
		"whoami":   a.cmdWhoami,
		"profile":  a.cmdProfile,
		"address":  a.cmdAddress,
		"cart":     a.cmdCart,
		"browse":   a.cmdBrowse,
		"checkout": a.cmdCheckout,
		"orders":   a.cmdOrders,
		"book":     a.cmdBook,
		"bookings": a.cmdBookings,
		"food":     a.cmdFood,
		"admin":    a.cmdAdmin,
	}
}

func (a *app) dispatch(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.usage()
		return exitUsage
	}

	cmd, ok := a.commands()[args[0]]
	if !ok {
		fmt.Fprintf(a.stderr, "unknown command %q\n", args[0])
		a.usage()
		return exitUsage
	}

	ctx = logger.WithFields(ctx, zap.String("command", args[0]))
	err := cmd(ctx, args[1:])

	st := a.client.Stats()
	logger.FromCtx(ctx).Debug("api calls",
		zap.Uint64("requests", st.Requests),
		zap.Uint64("failures", st.Failures),
		zap.Duration("mean_latency", st.MeanLatency),
	)

	if err != nil {
		return a.fail(ctx, err)
	}
	return exitOK
}

func (a *app) usage() {
	names := make([]string, 0, len(a.commands()))
	for name := range a.commands() {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(a.stderr, "usage: localmart <command> [flags]\n\ncommands: %s\n", strings.Join(names, ", "))
}

// errUsage marks a bad invocation; the flag package has already printed why.
var errUsage = errors.New("usage")

// fail prints err the way a shopper should see it.
func (a *app) fail(ctx context.Context, err error) int {
	if errors.Is(err, errUsage) {
		return exitUsage
	}

	logger.FromCtx(ctx).Debug("command failed", zap.Error(err))

	var fe validators.FieldErrors
	if errors.As(err, &fe) {
		printFieldErrors(a.stderr, fe)
		return exitFailure
	}
	fmt.Fprintln(a.stderr, message(err))
	return exitFailure
}

// message prefers the API's wording and falls back to the error text for
// local failures.
func message(err error) string {
	var apiErr *api.Error
	switch {
	case errors.As(err, &apiErr),
		errors.Is(err, api.ErrUnauthorized),
		errors.Is(err, api.ErrInvalidResponse),
		errors.Is(err, api.ErrNetwork):
		return api.Message(err)
	}
	return err.Error()
}

func printFieldErrors(w io.Writer, fe validators.FieldErrors) {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(w, "  %s: %s\n", f, fe[f])
	}
}

// confirmer asks on stdin unless yes is set.
func (a *app) confirmer(yes bool) admin.Confirmer {
	return admin.ConfirmFunc(func(_ context.Context, prompt string) bool {
		if yes {
			return true
		}
		fmt.Fprintf(a.stdout, "%s [y/N] ", prompt)
		line, _ := a.in.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	})
}
