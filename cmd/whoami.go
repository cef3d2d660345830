package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"hawk/cli/internal/session"
)

var whoamiOutput string

// whoamiView is what whoami prints.
type whoamiView struct {
	Authenticated bool            `json:"authenticated" yaml:"authenticated"`
	Username      string          `json:"username,omitempty" yaml:"username,omitempty"`
	Email         string          `json:"email,omitempty" yaml:"email,omitempty"`
	Issued        string          `json:"issued,omitempty" yaml:"issued,omitempty"`
	Expires       string          `json:"expires,omitempty" yaml:"expires,omitempty"`
	Server        string          `json:"server" yaml:"server"`
	Route         string          `json:"route,omitempty" yaml:"route,omitempty"`
	Claims        *session.Claims `json:"claims,omitempty" yaml:"claims,omitempty"`
}

// whoamiCmd represents the whoami command for displaying current authentication state.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show current authenticated account",
	Long: `The whoami command displays the account of the stored session without
contacting the server. If the access token is a JWT whose expiry has passed, the
session is ended locally, as 'hawk logout --local' would.`,
	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		a, err := newApp(ctx, out)
		if err != nil {
			return err
		}
		defer a.Close()

		view := whoamiView{Server: a.cfg.ServerURL}
		info, ok, err := a.sessions.TokenInfo(ctx)
		if err != nil {
			a.log.Debug().Err(err).Msg("read session")
		}
		if snap := a.client.Data().Snapshot(); ok && snap.IsAuthenticated {
			view.Authenticated = true
			view.Username = snap.UserName
			view.Email = info.Email
			view.Issued = info.Issued
			view.Expires = info.Expires

			if claims, err := session.ParseClaims(info.AccessToken); err == nil {
				view.Claims = &claims
				if claims.Expired(time.Now()) {
					pterm.Warning.WithWriter(out).Println("Your access token has expired; signing out.")
					if err := a.client.LogoutUser(ctx, info.Username); err != nil {
						a.log.Warn().Err(err).Msg("local logout")
					}
					view = whoamiView{Server: a.cfg.ServerURL}
				}
			}
		}

		if route, err := a.router.Current(ctx); err == nil {
			view.Route = route
		}
		return renderWhoami(out, whoamiOutput, view)
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
	whoamiCmd.Flags().StringVarP(&whoamiOutput, "output", "o", "text", "Output format: text, json or yaml")
}

func renderWhoami(w io.Writer, format string, v whoamiView) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	case "text", "":
	default:
		return fmt.Errorf("unknown output format %q (use text, json or yaml)", format)
	}

	if !v.Authenticated {
		fmt.Fprintln(w, "🔒 You're not logged in yet!")
		fmt.Fprintln(w, "   Run 'hawk login' to get started.")
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "User:    %s\n", v.Username)
	fmt.Fprintf(&b, "Email:   %s\n", v.Email)
	fmt.Fprintf(&b, "Server:  %s\n", v.Server)
	if v.Route != "" {
		fmt.Fprintf(&b, "View:    %s\n", v.Route)
	}
	if v.Issued != "" {
		fmt.Fprintf(&b, "Issued:  %s\n", v.Issued)
	}
	if v.Expires != "" {
		fmt.Fprintf(&b, "Expires: %s", v.Expires)
	}
	fmt.Fprintln(w, pterm.DefaultBox.WithTitle("👤 Current user").WithPadding(1).Sprint(strings.TrimRight(b.String(), "\n")))
	return nil
}
