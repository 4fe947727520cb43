package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lockin/internal/account"
	"lockin/internal/dashboard"
	"lockin/internal/entity"
	"lockin/internal/render"
	"lockin/internal/stats"
	"lockin/internal/ui"
)

// execute runs the command line and releases the backend and log file
// whether or not the command succeeded.
func execute(args []string, in io.Reader, out io.Writer) error {
	a := &app{}
	defer a.close()
	cmd := newRootCmd(a, in, out)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCmd(a *app, in io.Reader, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lockin",
		Short:         "Planner, notes, goals and habits in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Run(a.dashboard(), a.cfg, a.log)
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $LOCKIN_CONFIG or ~/.config/lockin/config.toml)")
	cmd.PersistentFlags().BoolVar(&a.memory, "memory", false, "keep data in memory only")

	cmd.AddCommand(newStatsCmd(a, out))
	cmd.AddCommand(newListCmd(a, out))
	cmd.AddCommand(newSignupCmd(a, in, out))
	cmd.AddCommand(newLoginCmd(a, in, out))
	cmd.AddCommand(newLogoutCmd(a, out))
	cmd.AddCommand(newWhoamiCmd(a, out))
	return cmd
}

func newStatsCmd(a *app, out io.Writer) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.dashboard().Summary(time.Now())
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}
			_, err = fmt.Fprint(out, stats.Format(s))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newListCmd(a *app, out io.Writer) *cobra.Command {
	kinds := make([]string, 0, len(dashboard.Kinds()))
	for _, k := range dashboard.Kinds() {
		kinds = append(kinds, string(k))
	}
	return &cobra.Command{
		Use:       "list <" + strings.Join(kinds, "|") + ">",
		Short:     "Print one collection",
		Args:      cobra.ExactArgs(1),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := a.dashboard().Tables()
			if err != nil {
				return err
			}
			var views []render.Table
			switch dashboard.Kind(strings.ToLower(args[0])) {
			case dashboard.KindTask:
				views = []render.Table{tables.Planner, tables.Archive}
			case dashboard.KindNote:
				views = []render.Table{tables.Notes}
			case dashboard.KindGoal:
				for _, tier := range entity.Tiers() {
					views = append(views, tables.Goals[tier])
				}
			case dashboard.KindHabit:
				views = []render.Table{tables.Habits}
			default:
				return fmt.Errorf("unknown list %q (want one of %s)", args[0], strings.Join(kinds, ", "))
			}
			for i, v := range views {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprint(out, render.Plain(v))
			}
			return nil
		},
	}
}

func newSignupCmd(a *app, in io.Reader, out io.Writer) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "signup <username>",
		Short: "Create a local account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(password, in, out)
			if err != nil {
				return err
			}
			u, err := a.accounts().Signup(args[0], email, pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Account created for %s\n", u.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (read from stdin when empty)")
	return cmd
}

func newLoginCmd(a *app, in io.Reader, out io.Writer) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username|email>",
		Short: "Sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts := a.accounts()
			warnLegacy(accounts, out)
			pw, err := passwordFrom(password, in, out)
			if err != nil {
				return err
			}
			s, err := accounts.Login(args[0], pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Locking in... signed in as %s\n", s.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password (read from stdin when empty)")
	return cmd
}

func newLogoutCmd(a *app, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.accounts().Logout(); err != nil {
				return err
			}
			fmt.Fprintln(out, "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts := a.accounts()
			warnLegacy(accounts, out)
			s, ok, err := accounts.Current()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Not signed in")
				return nil
			}
			fmt.Fprintf(out, "%s (since %s)\n", s.Username, s.Since.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
}

// warnLegacy tells the user about accounts that cannot log in until they
// sign up again.
func warnLegacy(accounts *account.Accounts, out io.Writer) {
	names, err := accounts.Legacy()
	if err != nil || len(names) == 0 {
		return
	}
	fmt.Fprintf(out, "warning: accounts without a password hash must sign up again: %s\n", strings.Join(names, ", "))
}

func passwordFrom(flag string, in io.Reader, out io.Writer) (string, error) {
	if flag != "" {
		return flag, nil
	}
	fmt.Fprint(out, "Password: ")
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", errors.New("no password given")
	}
	return strings.TrimRight(sc.Text(), "\r"), nil
}
