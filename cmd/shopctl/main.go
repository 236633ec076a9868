// Comando shopctl é o front-end de linha de comando do GoCatalog.
//
//	shopctl [-api URL] [-session arquivo] [-v] <comando> [args]
//
// Comandos: login, register, logout, me, profile,
// categories list|get|create|update|delete,
// products list|get|create|update|delete|export.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"gocatalog/internal/pkg/logger"
	"gocatalog/pkg/client"
)

const usage = `uso: shopctl [-api URL] [-session arquivo] [-v] <comando> [args]

comandos:
  login -u USUARIO -p SENHA
  register -u USUARIO -e EMAIL -p SENHA [-first NOME] [-last SOBRENOME]
  logout
  me
  profile [-e EMAIL] [-first NOME] [-last SOBRENOME]
  categories list | get ID | create -name NOME | update ID -name NOME | delete ID
  products list [-category ID] [-search TEXTO] | get ID | delete ID
  products create|update [ID] -name N -brand M -price P -image URL -category ID
  products export [-category ID] [-search TEXTO] -out arquivo.xlsx
`

// errUsage indica argumentos inválidos; a mensagem de uso já foi impressa.
var errUsage = errors.New("argumentos inválidos")

type app struct {
	api    *client.Client
	out    io.Writer
	errOut io.Writer
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "gocatalog", "session.json")
}

func main() {
	apiURL := flag.String("api", envOr("GOCATALOG_API_URL", "http://localhost:8080"), "URL base da API")
	sessionPath := flag.String("session", defaultSessionPath(), "arquivo da sessão")
	verbose := flag.Bool("v", false, "log das requisições")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log := logger.New(logger.Options{Level: level, Pretty: true, Output: os.Stderr}).Zerolog()

	api, err := client.New(*apiURL,
		client.WithStore(client.NewFileStore(*sessionPath)),
		client.WithLogger(log),
		client.WithOnUnauthorized(func() {
			fmt.Fprintln(os.Stderr, "⚠️ Sessão expirada. Faça login novamente: shopctl login -u USUARIO -p SENHA")
		}),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{api: api, out: os.Stdout, errOut: os.Stderr}
	if err := a.run(ctx, flag.Args()); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "❌", err)
		}
		stop()
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (a *app) usage() error {
	fmt.Fprint(a.errOut, usage)
	return errUsage
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.usage()
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "register":
		return a.register(ctx, rest)
	case "logout":
		if err := a.api.Auth.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Sessão encerrada.")
		return nil
	case "me":
		return a.me(ctx)
	case "profile":
		return a.profile(ctx, rest)
	case "categories":
		return a.categories(ctx, rest)
	case "products":
		return a.products(ctx, rest)
	default:
		return a.usage()
	}
}
