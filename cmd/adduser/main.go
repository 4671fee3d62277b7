// Command adduser creates a local-credential user from the terminal,
// prompting for the password when it is not passed as a flag.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"fintrack/internal/auth"
	"fintrack/internal/log"
	"fintrack/internal/storage"

	"github.com/alecthomas/kong"
	"golang.org/x/term"
)

var cli struct {
	User     string `help:"Username." short:"u" required:""`
	Email    string `help:"Email address (optional)." short:"e"`
	Password string `help:"Password. Prompts when omitted." short:"p"`
	DB       string `help:"Path to the database file." default:"./data/fintrack.db" env:"SQLITE_DB_PATH"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("adduser"),
		kong.Description("Create a local user account."),
	)
	kctx.FatalIfErrorf(run())
}

func run() error {
	password := cli.Password
	if password == "" {
		fmt.Fprint(os.Stdout, "Password: ")
		var err error
		password, err = readPassword(os.Stdin)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		fmt.Fprintln(os.Stdout)
	}
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	store, err := storage.Open(cli.DB)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	logger := log.New(log.Config{
		Handler:   slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}),
		Component: log.ComponentApp,
	})
	authSvc := auth.NewService(store, logger, 0)

	user, err := authSvc.Register(context.Background(), cli.User, cli.Email, password)
	if err != nil {
		return err
	}

	fmt.Printf("User %s created with id %s\n", user.Username, user.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Pipes and tests feed the password on a line.
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
