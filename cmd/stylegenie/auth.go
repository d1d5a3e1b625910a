package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/stylegenie/stylegenie-go/internal/domain/auth"
	"github.com/stylegenie/stylegenie-go/internal/session"
)

func runLogin(ctx *commandContext, args []string) error {
	fs := newFlagSet("login")
	role := fs.String("role", string(auth.RoleClient), "Account role: client or stylist")
	email := fs.String("email", "", "Account email (required)")
	password := fs.String("password", "", "Account password (prompted when omitted)")
	out := addOutputFlags(fs, ctx.Config.Output)
	if err := fs.Parse(args); err != nil {
		return err
	}

	parsedRole, err := auth.ParseRole(*role)
	if err != nil {
		return err
	}
	if *email == "" {
		return errors.New("-email is required")
	}
	pass, err := promptSecret(ctx, "password", *password)
	if err != nil {
		return err
	}

	user, err := ctx.App.Session.Login(ctx.Ctx, parsedRole, session.LoginPayload{
		Email:    *email,
		Password: pass,
	})
	if err != nil {
		return err
	}

	if out.wantsJSON() {
		return out.render(ctx.Stdout, user)
	}
	return writef(ctx.Stdout, "Logged in as %s (%s)\n", user.DisplayName(), ctx.App.Session.Role())
}

func runRegister(ctx *commandContext, args []string) error {
	fs := newFlagSet("register")
	role := fs.String("role", string(auth.RoleClient), "Account role: client or stylist")
	email := fs.String("email", "", "Account email (required)")
	username := fs.String("username", "", "Account username (required)")
	password := fs.String("password", "", "Account password (prompted when omitted)")
	phone := fs.String("phone", "", "Phone number")
	firstName := fs.String("first-name", "", "First name")
	lastName := fs.String("last-name", "", "Last name")
	out := addOutputFlags(fs, ctx.Config.Output)
	if err := fs.Parse(args); err != nil {
		return err
	}

	parsedRole, err := auth.ParseRole(*role)
	if err != nil {
		return err
	}
	if *email == "" {
		return errors.New("-email is required")
	}
	if *username == "" {
		return errors.New("-username is required")
	}
	pass, err := promptSecret(ctx, "password", *password)
	if err != nil {
		return err
	}

	result, err := ctx.App.Session.Register(ctx.Ctx, parsedRole, session.RegisterPayload{
		Email:     *email,
		Username:  *username,
		Password:  pass,
		Phone:     *phone,
		FirstName: *firstName,
		LastName:  *lastName,
	})
	if err != nil {
		return err
	}

	if out.wantsJSON() {
		return out.render(ctx.Stdout, result)
	}
	return writef(ctx.Stdout, "Registered %s (%s). Run `stylegenie login` to sign in.\n",
		result.Username, result.Role)
}

func runLogout(ctx *commandContext, args []string) error {
	fs := newFlagSet("logout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx.App.Session.Logout(ctx.Ctx)
	return writeln(ctx.Stdout, "Logged out")
}

func runWhoami(ctx *commandContext, args []string) error {
	fs := newFlagSet("whoami")
	out := addOutputFlags(fs, ctx.Config.Output)
	if err := fs.Parse(args); err != nil {
		return err
	}

	state := ctx.App.Session.State()
	if !state.IsAuthenticated() {
		return errors.New("not logged in")
	}

	if out.wantsJSON() {
		return out.render(ctx.Stdout, state)
	}
	return printWhoami(ctx.Stdout, state, time.Now())
}

func runToken(ctx *commandContext, args []string) error {
	fs := newFlagSet("token")
	out := addOutputFlags(fs, ctx.Config.Output)
	if err := fs.Parse(args); err != nil {
		return err
	}

	tok, err := ctx.App.Session.TokenSource(ctx.Ctx).Token()
	if err != nil {
		return err
	}

	if out.wantsJSON() {
		return out.render(ctx.Stdout, tok)
	}
	// Bare token on stdout so it composes: curl -H "Authorization: Bearer $(stylegenie token)".
	return writeln(ctx.Stdout, tok.AccessToken)
}

func runRefresh(ctx *commandContext, args []string) error {
	fs := newFlagSet("refresh")
	if err := fs.Parse(args); err != nil {
		return err
	}

	token, err := ctx.App.Session.RefreshAccessToken(ctx.Ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return writeln(ctx.Stdout, "Nothing to refresh: not logged in")
	}

	if expiry, ok := session.TokenExpiry(token); ok {
		return writef(ctx.Stdout, "Access token refreshed, valid until %s\n",
			expiry.Local().Format(time.RFC1123))
	}
	return writeln(ctx.Stdout, "Access token refreshed")
}

func runChangePassword(ctx *commandContext, args []string) error {
	fs := newFlagSet("change-password")
	oldPassword := fs.String("old", "", "Current password (prompted when omitted)")
	newPassword := fs.String("new", "", "New password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	oldPass, err := promptSecret(ctx, "current password", *oldPassword)
	if err != nil {
		return err
	}
	newPass, err := promptSecret(ctx, "new password", *newPassword)
	if err != nil {
		return err
	}

	if err := ctx.App.Account.ChangePassword(ctx.Ctx, oldPass, newPass); err != nil {
		return err
	}
	return writeln(ctx.Stdout, "Password changed")
}

func printWhoami(w io.Writer, state auth.State, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	user := state.User
	if user != nil {
		if err := writef(tw, "User\t%s\n", user.DisplayName()); err != nil {
			return err
		}
		if err := writef(tw, "Email\t%s\n", user.Email); err != nil {
			return err
		}
	}
	if err := writef(tw, "Role\t%s\n", state.Role); err != nil {
		return err
	}
	if expiry, ok := session.TokenExpiry(state.Tokens.Access); ok {
		remaining := expiry.Sub(now).Round(time.Second)
		label := fmt.Sprintf("%s (in %s)", expiry.Local().Format(time.RFC1123), remaining)
		if remaining <= 0 {
			label = fmt.Sprintf("%s (expired)", expiry.Local().Format(time.RFC1123))
		}
		if err := writef(tw, "Token expires\t%s\n", label); err != nil {
			return err
		}
	}
	return tw.Flush()
}
