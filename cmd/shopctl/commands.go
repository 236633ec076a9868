package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"gocatalog/internal/export"
	"gocatalog/pkg/client"
)

var errAdminOnly = errors.New("operação restrita a administradores")

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func (a *app) requireAdmin() error {
	if !a.api.Auth.IsLoggedIn() {
		return client.ErrUnauthorized
	}
	if !a.api.Auth.IsAdmin() {
		return errAdminOnly
	}
	return nil
}

// idArg lê o ID posicional e devolve os argumentos restantes.
func (a *app) idArg(args []string) (int64, []string, error) {
	if len(args) == 0 {
		return 0, nil, a.usage()
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, nil, fmt.Errorf("ID inválido: %q", args[0])
	}
	return id, args[1:], nil
}

func (a *app) printUser(u *client.User) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%d\n", u.ID)
	fmt.Fprintf(tw, "Usuário\t%s\n", u.Username)
	fmt.Fprintf(tw, "Email\t%s\n", u.Email)
	fmt.Fprintf(tw, "Nome\t%s %s\n", u.FirstName, u.LastName)
	fmt.Fprintf(tw, "Papel\t%s\n", u.Role)
	tw.Flush()
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := a.flags("login")
	var req client.LoginRequest
	fs.StringVar(&req.Username, "u", "", "usuário")
	fs.StringVar(&req.Password, "p", "", "senha")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	resp, err := a.api.Auth.Login(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✅ %s (%s)\n", resp.Message, resp.Role)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := a.flags("register")
	var req client.RegisterRequest
	fs.StringVar(&req.Username, "u", "", "usuário")
	fs.StringVar(&req.Email, "e", "", "email")
	fs.StringVar(&req.Password, "p", "", "senha")
	fs.StringVar(&req.FirstName, "first", "", "nome")
	fs.StringVar(&req.LastName, "last", "", "sobrenome")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	resp, err := a.api.Auth.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✅ %s\n", resp.Message)
	return nil
}

func (a *app) me(ctx context.Context) error {
	u, err := a.api.Auth.Me(ctx)
	if err != nil {
		return err
	}
	a.printUser(u)
	return nil
}

func (a *app) profile(ctx context.Context, args []string) error {
	fs := a.flags("profile")
	email := fs.String("e", "", "novo email")
	first := fs.String("first", "", "novo nome")
	last := fs.String("last", "", "novo sobrenome")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	// Só os flags informados entram na atualização.
	var req client.UpdateProfileRequest
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "e":
			req.Email = email
		case "first":
			req.FirstName = first
		case "last":
			req.LastName = last
		}
	})

	resp, err := a.api.Auth.UpdateProfile(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✅ %s\n", resp.Message)
	return nil
}

func (a *app) categories(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.usage()
	}

	switch args[0] {
	case "list":
		cats, err := a.api.Categories.List(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNOME")
		for _, c := range cats {
			fmt.Fprintf(tw, "%d\t%s\n", c.ID, c.Name)
		}
		return tw.Flush()

	case "get":
		id, _, err := a.idArg(args[1:])
		if err != nil {
			return err
		}
		c, err := a.api.Categories.Get(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%d\t%s\n", c.ID, c.Name)
		return nil

	case "create", "update":
		if err := a.requireAdmin(); err != nil {
			return err
		}
		var id int64
		rest := args[1:]
		if args[0] == "update" {
			var err error
			if id, rest, err = a.idArg(rest); err != nil {
				return err
			}
		}
		fs := a.flags("categories " + args[0])
		name := fs.String("name", "", "nome da categoria")
		if err := fs.Parse(rest); err != nil {
			return errUsage
		}

		var (
			c   client.Category
			err error
		)
		if id == 0 {
			c, err = a.api.Categories.Create(ctx, client.Category{Name: *name})
		} else {
			c, err = a.api.Categories.Update(ctx, id, client.Category{Name: *name})
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "✅ Categoria %d salva: %s\n", c.ID, c.Name)
		return nil

	case "delete":
		if err := a.requireAdmin(); err != nil {
			return err
		}
		id, _, err := a.idArg(args[1:])
		if err != nil {
			return err
		}
		if err := a.api.Categories.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "✅ Categoria %d excluída.\n", id)
		return nil
	}
	return a.usage()
}

func (a *app) filterFlags(name string, args []string) (client.ProductFilter, string, error) {
	fs := a.flags(name)
	var filter client.ProductFilter
	fs.Int64Var(&filter.CategoryID, "category", 0, "ID da categoria")
	fs.StringVar(&filter.Search, "search", "", "busca por nome ou marca")
	out := fs.String("out", "catalogue.xlsx", "arquivo de saída (export)")
	if err := fs.Parse(args); err != nil {
		return filter, "", errUsage
	}
	return filter, *out, nil
}

func (a *app) products(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.usage()
	}

	switch args[0] {
	case "list":
		filter, _, err := a.filterFlags("products list", args[1:])
		if err != nil {
			return err
		}
		products, err := a.api.Products.List(ctx, filter)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNOME\tMARCA\tPREÇO\tCATEGORIA")
		for _, p := range products {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%s\n", p.ID, p.Name, p.BrandName, p.Price, p.Category.Name)
		}
		return tw.Flush()

	case "get":
		id, _, err := a.idArg(args[1:])
		if err != nil {
			return err
		}
		p, err := a.api.Products.Get(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%d\t%s\t%s\t%.2f\t%s\t%s\n", p.ID, p.Name, p.BrandName, p.Price, p.Category.Name, p.ImageURL)
		return nil

	case "create", "update":
		if err := a.requireAdmin(); err != nil {
			return err
		}
		var id int64
		rest := args[1:]
		if args[0] == "update" {
			var err error
			if id, rest, err = a.idArg(rest); err != nil {
				return err
			}
		}
		fs := a.flags("products " + args[0])
		var p client.Product
		fs.StringVar(&p.Name, "name", "", "nome")
		fs.StringVar(&p.BrandName, "brand", "", "marca")
		fs.Float64Var(&p.Price, "price", 0, "preço")
		fs.StringVar(&p.ImageURL, "image", "", "URL da imagem")
		fs.Int64Var(&p.Category.ID, "category", 0, "ID da categoria")
		if err := fs.Parse(rest); err != nil {
			return errUsage
		}

		var (
			saved client.Product
			err   error
		)
		if id == 0 {
			saved, err = a.api.Products.Create(ctx, p)
		} else {
			saved, err = a.api.Products.Update(ctx, id, p)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "✅ Produto %d salvo: %s\n", saved.ID, saved.Name)
		return nil

	case "delete":
		if err := a.requireAdmin(); err != nil {
			return err
		}
		id, _, err := a.idArg(args[1:])
		if err != nil {
			return err
		}
		if err := a.api.Products.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "✅ Produto %d excluído.\n", id)
		return nil

	case "export":
		filter, out, err := a.filterFlags("products export", args[1:])
		if err != nil {
			return err
		}
		products, err := a.api.Products.List(ctx, filter)
		if err != nil {
			return err
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := export.WriteProducts(f, products); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "✅ %d produtos exportados para %s\n", len(products), out)
		return nil
	}
	return a.usage()
}
