package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"localmart/internal/address"
	"localmart/internal/auth"
	"localmart/internal/user"
	"localmart/internal/utils"
)

func newFlags(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

// isSet reports whether name was given on the command line, so an explicit
// empty value can be told apart from an omitted flag.
func isSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := newFlags("login", a.stderr)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := parse(fs, args); err != nil {
		return err
	}

	u, err := a.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Signed in as %s <%s>\n", u.Name, u.Email)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := newFlags("register", a.stderr)
	var in auth.RegisterInput
	fs.StringVar(&in.Name, "name", "", "full name")
	fs.StringVar(&in.Email, "email", "", "email")
	fs.StringVar(&in.Phone, "phone", "", "10-digit phone")
	fs.StringVar(&in.Password, "password", "", "password")
	if err := parse(fs, args); err != nil {
		return err
	}

	u, err := a.auth.Register(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Welcome, %s!\n", u.Name)
	return nil
}

func (a *app) cmdLogout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Signed out.")
	return nil
}

func (a *app) cmdWhoami(ctx context.Context, _ []string) error {
	u, err := a.auth.Current(ctx)
	if errors.Is(err, auth.ErrNotSignedIn) {
		fmt.Fprintln(a.stdout, "Not signed in.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s <%s> (%s)\n", u.Name, u.Email, u.Role)
	return nil
}

func (a *app) cmdProfile(ctx context.Context, args []string) error {
	fs := newFlags("profile", a.stderr)
	name := fs.String("name", "", "new name")
	email := fs.String("email", "", "new email")
	phone := fs.String("phone", "", "new phone; empty clears it")
	bio := fs.String("bio", "", "short bio")
	dob := fs.String("dob", "", "date of birth, YYYY-MM-DD")
	if err := parse(fs, args); err != nil {
		return err
	}

	var p user.UpdateProfileParams
	if isSet(fs, "name") {
		p.Name = utils.StrPtr(*name)
	}
	if isSet(fs, "email") {
		p.Email = utils.StrPtr(*email)
	}
	if isSet(fs, "phone") {
		p.Phone = utils.StrPtr(*phone)
	}
	if isSet(fs, "bio") {
		p.Bio = utils.StrPtr(*bio)
	}
	if isSet(fs, "dob") {
		t, err := time.Parse(time.DateOnly, *dob)
		if err != nil {
			return errors.New("date of birth must look like 1990-01-31")
		}
		p.DateOfBirth = &t
	}

	var (
		prof *user.Profile
		err  error
	)
	if fs.NFlag() == 0 {
		prof, err = a.users.GetProfile(ctx)
	} else {
		prof, err = a.users.UpdateProfile(ctx, p)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "%s <%s>\n", prof.Name, prof.Email)
	if prof.Phone != "" {
		fmt.Fprintf(a.stdout, "phone: %s\n", prof.Phone)
	}
	if b := utils.PtrString(prof.Bio); b != "" {
		fmt.Fprintf(a.stdout, "bio:   %s\n", b)
	}
	if prof.DateOfBirth != nil {
		fmt.Fprintf(a.stdout, "born:  %s\n", prof.DateOfBirth.Format(time.DateOnly))
	}
	return nil
}

func (a *app) cmdAddress(ctx context.Context, args []string) error {
	sub, rest := "list", args
	if len(args) > 0 {
		sub, rest = args[0], args[1:]
	}

	switch sub {
	case "list":
		list, err := a.addresses.List(ctx)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(a.stdout, "No saved addresses.")
			return nil
		}
		for _, ad := range list {
			mark := " "
			if ad.IsDefault {
				mark = "*"
			}
			fmt.Fprintf(a.stdout, "%s %s  %s\n", mark, ad.ID, ad.OneLine())
		}
		return nil

	case "add":
		fs := newFlags("address add", a.stderr)
		var in address.Input
		landmark := fs.String("landmark", "", "nearby landmark")
		fs.StringVar(&in.Label, "label", "", "label such as Home")
		fs.StringVar(&in.Name, "name", "", "recipient name")
		fs.StringVar(&in.Phone, "phone", "", "recipient phone")
		fs.StringVar(&in.Line1, "line1", "", "house or flat")
		fs.StringVar(&in.Street, "street", "", "street")
		fs.StringVar(&in.Area, "area", "", "area")
		fs.StringVar(&in.City, "city", "", "city")
		fs.StringVar(&in.Pincode, "pincode", "", "6-digit pincode")
		fs.BoolVar(&in.SetAsDefault, "default", false, "make this the default address")
		if err := parse(fs, rest); err != nil {
			return err
		}
		if *landmark != "" {
			in.Landmark = landmark
		}

		ad, err := a.addresses.Create(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Saved %s\n", ad.ID)
		return nil

	case "default":
		if len(rest) != 1 {
			fmt.Fprintln(a.stderr, "usage: localmart address default <id>")
			return errUsage
		}
		if err := a.addresses.SetDefault(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, "Default address updated.")
		return nil

	case "delete":
		if len(rest) != 1 {
			fmt.Fprintln(a.stderr, "usage: localmart address delete <id>")
			return errUsage
		}
		if err := a.addresses.Delete(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, "Address deleted.")
		return nil
	}

	fmt.Fprintf(a.stderr, "unknown address command %q (list, add, default, delete)\n", sub)
	return errUsage
}
