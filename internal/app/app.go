// Package app wires the ordering core to a minimal console front end. The
// console glue stands in for the windowed presentation layer and owns no
// business logic of its own.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"repairdesk/internal/authcache"
	"repairdesk/internal/config"
	"repairdesk/internal/domain/accounts"
	"repairdesk/internal/domain/services"
	"repairdesk/internal/errmsg"
	"repairdesk/internal/logger"
	"repairdesk/internal/service"
	"repairdesk/internal/storage"
	"repairdesk/internal/storage/sqlitestore"
)

var hundred = decimal.NewFromInt(100)

type Application struct {
	log      *slog.Logger
	store    storage.Storage
	accounts *service.AccountService
	catalog  *service.CatalogService
	orders   *service.OrderService
	cache    *authcache.Cache

	in  *bufio.Scanner
	out io.Writer
}

func New() (*Application, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("config.NewConfig: %w", err)
	}

	logLevel, err := logger.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger.ParseLogLevel: %w", err)
	}

	logFormat, err := logger.ParseLogFormat(cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger.ParseLogFormat: %w", err)
	}

	logg := logger.NewLogger(
		logger.WithLevel(logLevel),
		logger.WithFormat(logFormat),
	)

	sqlstore, err := sqlitestore.NewStorage(cfg.AccountsDBPath, cfg.ServicesDBPath)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore.NewStorage: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sqlstore.Bootstrap(ctx); err != nil {
		sqlstore.Close() //nolint:errcheck

		return nil, fmt.Errorf("sqlstore.Bootstrap: %w", err)
	}

	store := storage.NewStorage(sqlstore)

	accountsSvc := service.NewAccountService(store, logg)
	catalogSvc := service.NewCatalogService(store, logg)
	ordersSvc := service.NewOrderService(accountsSvc, catalogSvc, logg)

	return &Application{
		log:      logg,
		store:    store,
		accounts: accountsSvc,
		catalog:  catalogSvc,
		orders:   ordersSvc,
		cache:    authcache.New(cfg.AuthCachePath, logg),
		in:       bufio.NewScanner(os.Stdin),
		out:      os.Stdout,
	}, nil
}

func (a *Application) Close() error {
	return a.store.Close()
}

func (a *Application) Run(ctx context.Context) error {
	if err := a.catalog.SeedDefaults(ctx, services.DefaultCatalog()); err != nil {
		return fmt.Errorf("catalog.SeedDefaults: %w", err)
	}

	acc := a.restoreSession(ctx)
	if acc == nil {
		var err error

		acc, err = a.authLoop(ctx)
		if err != nil || acc == nil {
			return err
		}
	}

	return a.sessionLoop(ctx, acc)
}

// restoreSession replays the cached credentials through the credential
// store. Any failure degrades to "no cached session".
func (a *Application) restoreSession(ctx context.Context) *accounts.Account {
	login, password, ok := a.cache.Load()
	if !ok {
		return nil
	}

	acc, err := a.accounts.Authenticate(ctx, login, password)
	if err != nil {
		a.log.Warn("cached session rejected", slog.String("login", login))

		return nil
	}

	fmt.Fprintf(a.out, "Welcome back, %s!\n", acc.Login())

	return acc
}

func (a *Application) authLoop(ctx context.Context) (*accounts.Account, error) {
	for ctx.Err() == nil {
		choice, ok := a.prompt("login (l), register (r) or quit (q): ")
		if !ok {
			return nil, nil
		}

		switch choice {
		case "q":
			return nil, nil

		case "l":
			login, password, ok := a.promptCredentials(false)
			if !ok {
				return nil, nil
			}

			acc, err := a.accounts.Authenticate(ctx, login, password)
			if err != nil {
				fmt.Fprintln(a.out, errmsg.UserMessage(err))

				continue
			}

			a.cache.Save(login, password) //nolint:errcheck // degraded mode, already logged
			fmt.Fprintf(a.out, "Welcome, %s!\n", acc.Login())

			return acc, nil

		case "r":
			login, password, ok := a.promptCredentials(true)
			if !ok {
				return nil, nil
			}

			if login == "" && password == "" {
				continue
			}

			acc, err := a.accounts.Register(ctx, login, password)
			if err != nil {
				fmt.Fprintln(a.out, errmsg.UserMessage(err))

				continue
			}

			a.cache.Save(login, password) //nolint:errcheck // degraded mode, already logged
			fmt.Fprintf(a.out, "Registered %s.\n", acc.Login())

			return acc, nil
		}
	}

	return nil, nil
}

// promptCredentials reads login and password. With confirm set it also
// re-asks the password and reports a mismatch by returning empty strings.
func (a *Application) promptCredentials(confirm bool) (string, string, bool) {
	login, ok := a.prompt("login: ")
	if !ok {
		return "", "", false
	}

	password, ok := a.prompt("password: ")
	if !ok {
		return "", "", false
	}

	if confirm {
		confirmation, ok := a.prompt("confirm password: ")
		if !ok {
			return "", "", false
		}

		if confirmation != password {
			fmt.Fprintln(a.out, "Passwords do not match.")

			return "", "", true
		}
	}

	return login, password, true
}

func (a *Application) sessionLoop(ctx context.Context, acc *accounts.Account) error {
	a.printAccount(acc)

	for ctx.Err() == nil {
		choice, ok := a.prompt("services (s), order (o), account (a), logout (x) or quit (q): ")
		if !ok {
			return nil
		}

		switch choice {
		case "q":
			return nil

		case "s":
			if err := a.printServices(ctx); err != nil {
				fmt.Fprintln(a.out, errmsg.UserMessage(err))
			}

		case "a":
			fresh, err := a.accounts.Get(ctx, acc.Login())
			if err != nil {
				fmt.Fprintln(a.out, errmsg.UserMessage(err))

				continue
			}

			acc = fresh
			a.printAccount(acc)

		case "o":
			updated, ok := a.placeOrder(ctx, acc)
			if !ok {
				return nil
			}

			if updated != nil {
				acc = updated
			}

		case "x":
			if err := a.cache.Clear(); err != nil {
				a.log.Error("clear auth cache", slog.Any("error", err))
			}

			fmt.Fprintln(a.out, "Logged out.")

			next, err := a.authLoop(ctx)
			if err != nil || next == nil {
				return err
			}

			acc = next
			a.printAccount(acc)
		}
	}

	return nil
}

func (a *Application) placeOrder(ctx context.Context, acc *accounts.Account) (*accounts.Account, bool) {
	svcs, err := a.printServicesList(ctx)
	if err != nil {
		fmt.Fprintln(a.out, errmsg.UserMessage(err))

		return nil, true
	}

	input, ok := a.prompt("service number: ")
	if !ok {
		return nil, false
	}

	number, err := strconv.Atoi(input)
	if err != nil || number < 1 || number > len(svcs) {
		fmt.Fprintln(a.out, "No such service number.")

		return nil, true
	}

	svc := svcs[number-1]

	cost, updated, err := a.orders.Place(ctx, acc.Login(), svc.ID())
	if err != nil {
		fmt.Fprintln(a.out, errmsg.UserMessage(err))

		return nil, true
	}

	fmt.Fprintf(a.out, "Ordered %q for %s.\n", svc.Description(), cost.String())
	a.printAccount(updated)

	return updated, true
}

func (a *Application) printServices(ctx context.Context) error {
	_, err := a.printServicesList(ctx)

	return err
}

func (a *Application) printServicesList(ctx context.Context) ([]*services.Service, error) {
	svcs, err := a.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	for i, svc := range svcs {
		fmt.Fprintf(a.out, "%2d. [%s] %s - %s\n", i+1, svc.Kind(), svc.Description(), svc.BaseCost().String())
	}

	return svcs, nil
}

func (a *Application) printAccount(acc *accounts.Account) {
	discount := acc.Tier().Discount().Mul(hundred).String()

	fmt.Fprintf(a.out, "%s: spent %s, %s tier (%s%% discount)\n",
		acc.Login(), acc.TotalSpent().String(), acc.Tier(), discount)
}

func (a *Application) prompt(label string) (string, bool) {
	fmt.Fprint(a.out, label)

	if !a.in.Scan() {
		return "", false
	}

	return strings.TrimSpace(a.in.Text()), true
}
