// Command catalogctl runs one-shot operator tasks against the catalog database.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"catalog/config"
	"catalog/internal/errors"
	logs "catalog/internal/infra/log"
	"catalog/internal/infra/password"
	"catalog/internal/infra/persistence/migrations"
	"catalog/internal/infra/persistence/postgres"
	"catalog/internal/usecase"
	"catalog/internal/usecase/impl"

	"gorm.io/gorm"
)

const usage = `Usage: catalogctl <command> [flags]

Commands:
  migrate      apply the embedded schema migrations (-down to roll back)
  make-admin   promote a user to a verified administrator (-login username or email)
  list-users   print every account
  password     generate a password or passphrase, or check one (-check)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(context.Background(), os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "catalogctl %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string, out io.Writer) error {
	switch command {
	case "password":
		return runPassword(args, out)
	case "migrate", "make-admin", "list-users":
	default:
		return errors.Errorf("unknown command %q\n\n%s", command, usage)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	logger, err := logs.NewWithWriter(cfg, os.Stderr)
	if err != nil {
		return err
	}
	db, err := postgres.Open(cfg, logger)
	if err != nil {
		return err
	}

	switch command {
	case "migrate":
		return runMigrate(db, args, logger)
	case "make-admin":
		return runMakeAdmin(ctx, db, args, logger, out)
	default:
		return runListUsers(ctx, db, logger, out)
	}
}

func runMigrate(db *gorm.DB, args []string, logger *slog.Logger) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	down := fs.Bool("down", false, "roll every migration back")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	direction := migrations.Up
	if *down {
		direction = migrations.Down
	}

	return migrations.Run(sqlDB, direction, logger)
}

func userService(db *gorm.DB, logger *slog.Logger) usecase.UserUsecase {
	return impl.NewUserService(impl.UserServiceParams{
		TxManager: postgres.NewTransactionManager(db),
		UserRepo:  postgres.NewUserRepository(db),
		Logger:    logger,
	})
}

func runMakeAdmin(ctx context.Context, db *gorm.DB, args []string, logger *slog.Logger, out io.Writer) error {
	fs := flag.NewFlagSet("make-admin", flag.ContinueOnError)
	login := fs.String("login", "", "username or email of the account to promote")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *login == "" {
		return errors.New("-login is required")
	}

	user, err := userService(db, logger).PromoteToAdmin(ctx, *login)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "User %s (%s) is now a verified admin\n", user.Username, user.Email)

	return nil
}

func runListUsers(ctx context.Context, db *gorm.DB, logger *slog.Logger, out io.Writer) error {
	const pageSize = 100

	users := userService(db, logger)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tACTIVE\tVERIFIED")

	for skip := 0; ; skip += pageSize {
		page, err := users.ListUsers(ctx, skip, pageSize)
		if err != nil {
			return err
		}
		for _, u := range page.Items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\t%t\n", u.ID, u.Username, u.Email, u.Role, u.IsActive, u.IsVerified)
		}
		if len(page.Items) < pageSize {
			break
		}
	}

	return w.Flush()
}

func runPassword(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("password", flag.ContinueOnError)
	length := fs.Int("length", 16, "password length")
	passphrase := fs.Bool("passphrase", false, "generate a passphrase instead")
	words := fs.Int("words", 4, "passphrase word count")
	simple := fs.Bool("simple", false, "letters and digits only, without the guaranteed character classes")
	noAmbiguous := fs.Bool("no-ambiguous", false, "avoid 0, O, 1, l and I")
	check := fs.String("check", "", "score this password instead of generating one")
	if err := fs.Parse(args); err != nil {
		return err
	}

	generator := password.NewGenerator()

	var (
		secret string
		err    error
	)
	switch {
	case *check != "":
		secret = *check
	case *passphrase:
		secret, err = generator.GeneratePassphrase(*words, "-")
	case *simple || *noAmbiguous:
		opts := password.DefaultOptions()
		opts.Length = *length
		opts.Special = !*simple
		opts.AvoidAmbiguous = *noAmbiguous
		secret, err = generator.Generate(opts)
	default:
		secret, err = generator.GenerateStrong(*length)
	}
	if err != nil {
		return err
	}

	strength := generator.CheckStrength(secret)
	if *check == "" {
		fmt.Fprintln(out, secret)
	}
	fmt.Fprintf(out, "Strength: %s (%d/%d)\n", strength.Strength, strength.Score, strength.MaxScore)
	for _, line := range strength.Feedback {
		fmt.Fprintf(out, "  - %s\n", line)
	}

	return nil
}
