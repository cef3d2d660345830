// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"hawk/cli/internal/backend"
	autherrors "hawk/cli/internal/errors"
	"hawk/cli/internal/httperrors"
	"hawk/cli/internal/logging"
	"hawk/cli/internal/terminal"
	"hawk/cli/internal/viewmodel"
)

var (
	loginUsername string
	passwordStdin bool
	forceLogin    bool
)

// loginCmd exchanges a username and password for an access token.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Sign in to the HawkCD server",
	Long: `The login command sends your username and password to the server's token
endpoint. On success the access and refresh tokens are stored in the OS keychain
and the session details in local storage, so later commands run signed in.

The password is read without echo from the terminal, or from stdin with
--password-stdin. If you are already signed in the command does nothing unless
--force is given.`,
	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		a, err := newApp(ctx, out)
		if err != nil {
			return err
		}
		defer a.Close()

		if d := a.client.Data(); d.IsAuthenticated() && !forceLogin {
			fmt.Fprintf(out, "Already logged in as %s\n", d.UserName())
			return nil
		}

		username, password, err := readCredentials(cmd.InOrStdin(), out, credentialSource{
			username:      loginUsername,
			usernameSet:   cmd.Flags().Changed("username"),
			passwordStdin: passwordStdin,
		})
		if err != nil {
			return err
		}

		pending := a.client.Login(ctx, username, password)
		stop := startInlineSpinner(out, "Signing in", spinnerFrames, 120*time.Millisecond)
		err = pending.Wait(ctx)
		stop()
		if err != nil {
			return loginFailure(a, err)
		}

		user := a.client.Data().UserName()
		a.vm.SetUser(viewmodel.User{Username: user})
		pterm.Success.WithWriter(out).Printfln("Logged in as %s", user)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username (prompted when omitted)")
	loginCmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	loginCmd.Flags().BoolVar(&forceLogin, "force", false, "Sign in again even if a session exists")
}

// credentialSource says where readCredentials takes each value from.
type credentialSource struct {
	username      string
	usernameSet   bool
	passwordStdin bool
}

// readCredentials collects the username and password. Values are passed on
// exactly as entered, empty or padded; only the line terminator is dropped.
func readCredentials(in io.Reader, out io.Writer, src credentialSource) (string, string, error) {
	var p *terminal.Prompter
	if f, ok := in.(*os.File); ok {
		p = terminal.NewPrompter(f, out)
	} else {
		p = terminal.NewReaderPrompter(in, out)
	}

	username := src.username
	if !src.usernameSet {
		if src.passwordStdin {
			return "", "", errors.New("--password-stdin requires --username")
		}
		u, err := p.Ask("Username: ")
		if err != nil {
			return "", "", fmt.Errorf("username: %w", err)
		}
		username = u
	}

	if src.passwordStdin {
		b, err := io.ReadAll(in)
		if err != nil {
			return "", "", fmt.Errorf("read password from stdin: %w", err)
		}
		return username, terminal.TrimLineEnding(string(b)), nil
	}

	password, err := p.Secret("Password: ")
	if err != nil {
		return "", "", fmt.Errorf("password: %w", err)
	}
	return username, password, nil
}

// loginFailure reports a failed login to the user and returns the error that
// sets the exit status.
func loginFailure(a *app, err error) error {
	var re *backend.ResponseError
	switch {
	case errors.As(err, &re):
		reason := describeRejection(re.StatusCode, re.Payload)
		pterm.Error.Printfln("Login rejected: %s", reason)
		return fmt.Errorf("login failed: %s", reason)
	case autherrors.KindOf(err) == autherrors.Transport:
		return httperrors.FormatNetworkError(err, "signing in", a.cfg.ServerURL)
	default:
		return errors.New(logging.PresentError("login failed", err))
	}
}
