package cli

import (
	"context"
	"fmt"
	"strings"
)

// Register prompts for an email and password and creates an account. It
// does not sign in.
func (a *App) Register(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	if _, err := a.authService.Register(ctx, email, password); err != nil {
		return err
	}
	a.println("Account created. Use 'login' to sign in.")
	return nil
}

// Login prompts for credentials, signs in and opens the user's workspace.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	u, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.openSession(ctx, u); err != nil {
		return err
	}

	a.printf("Welcome, %s\n", u.Email)
	return a.showDeadlinePopup(ctx)
}

// Logout clears the stored session and closes the workspace.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.closeSession()
	a.println("Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	u, err := a.authService.Me(ctx)
	if err != nil {
		return err
	}
	a.printf("%s (id %s)\n", u.Email, u.ID)
	return nil
}

func (a *App) ChangePassword(ctx context.Context, _ []string) error {
	current, err := getPassword("Current password", a.out)
	if err != nil {
		return err
	}
	next, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword("Repeat new password", a.out)
	if err != nil {
		return err
	}
	if next != confirm {
		return fmt.Errorf("new passwords do not match")
	}

	if err := a.authService.ChangePassword(ctx, current, next); err != nil {
		return err
	}
	a.println("Password changed.")
	return nil
}

func (a *App) ChangeEmail(ctx context.Context, _ []string) error {
	current, err := getPassword("Current password", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "New email", a.out)
	if err != nil {
		return err
	}

	u, err := a.authService.ChangeEmail(ctx, current, email)
	if err != nil {
		return err
	}
	a.user = &u
	a.printf("Email changed to %s\n", u.Email)
	return nil
}

// DeleteAccount asks the user to retype their email before removing the
// account with all of its entries, documents and categories.
func (a *App) DeleteAccount(ctx context.Context, _ []string) error {
	confirm, err := getSimpleText(a.reader, "This deletes all your data. Type your email to confirm", a.out)
	if err != nil {
		return err
	}
	if a.user == nil || !strings.EqualFold(strings.TrimSpace(confirm), a.user.Email) {
		a.println("Cancelled.")
		return nil
	}

	if err := a.authService.DeleteAccount(ctx); err != nil {
		return err
	}
	a.closeSession()
	a.println("Account deleted.")
	return nil
}
