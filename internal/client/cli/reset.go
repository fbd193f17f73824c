package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/devboard/internal/common"
)

// ForgotPassword asks for an email and requests reset instructions. The
// confirmation text is the same whether or not the address is registered.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	msg, err := a.auth.RequestPasswordReset(ctx, email)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn(msg)
	return nil
}

// ResetPassword applies a new password using the token from the reset
// email.
func (a *App) ResetPassword(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Reset token", os.Stdout)
	if err != nil {
		return err
	}

	newPassword, err := getPassword("New password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)

	confirm, err := getPassword("Confirm new password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	msg, err := a.auth.ResetPassword(ctx, token, newPassword, confirm)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn(msg)
	return nil
}
