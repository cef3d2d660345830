// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var logoutLocal bool

// logoutCmd signs the current user out.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out of the HawkCD server",
	Long: `The logout command tells the server that the current user is leaving. Once the
server acknowledges, the tokens are removed from the OS keychain and local
storage is wiped. If the server cannot be reached or refuses, nothing local is
removed and the failure is logged.

With --local the server is not contacted: the tokens are removed and the session
ends on this machine only. Use it when the server is gone or the token has
already expired.`,
	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		a, err := newApp(ctx, out)
		if err != nil {
			return err
		}
		defer a.Close()

		username := a.vm.Username()
		if !a.client.Data().IsAuthenticated() && !logoutLocal {
			fmt.Fprintln(out, "🔒 You're not logged in.")
			return nil
		}

		if logoutLocal {
			if err := a.client.LogoutUser(ctx, username); err != nil {
				pterm.Warning.WithWriter(out).Printfln("Signed out locally with errors: %v", err)
				return nil
			}
			pterm.Success.WithWriter(out).Println("Signed out on this machine")
			return nil
		}

		pending := a.client.Logout(ctx)
		stop := startInlineSpinner(out, "Signing out", spinnerFrames, 120*time.Millisecond)
		err = pending.Wait(ctx)
		stop()
		if err != nil {
			return err
		}

		if a.client.Data().IsAuthenticated() {
			pterm.Warning.WithWriter(out).Println("The server did not acknowledge the logout; your session was kept.")
			fmt.Fprintln(out, "   Run 'hawk logout --local' to remove it from this machine anyway.")
			return fmt.Errorf("logout of %s was not acknowledged", username)
		}
		if left, err := a.local.Keys(ctx); err != nil || len(left) > 0 {
			a.log.Warn().Err(err).Strs("keys", left).Msg("local storage not empty after logout")
		}
		pterm.Success.WithWriter(out).Printfln("Signed out %s", username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
	logoutCmd.Flags().BoolVar(&logoutLocal, "local", false, "End the session on this machine without contacting the server")
}
