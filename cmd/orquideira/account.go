// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/pdiddy/orquideira/internal/account"
	"github.com/pdiddy/orquideira/pkg/types"
)

// openSession builds the local session and restores any persisted user.
func openSession() (*account.Session, error) {
	dir, err := account.NewDirectory(bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	sess := account.NewSession(dir, account.NewKeyStore(appCfg.Session.StateDir))
	if err := sess.Init(); err != nil {
		return nil, err
	}
	return sess, nil
}

// passwordFrom returns --password when set and prompts without echo otherwise.
func passwordFrom(cmd *cobra.Command, prompt string) (string, error) {
	if p, _ := cmd.Flags().GetString("password"); p != "" {
		return p, nil
	}
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	return line.PasswordPrompt(prompt)
}

var loginCmd = &cobra.Command{
	Use:   "login <email-or-orcid>",
	Short: "Sign in with an email address or ORCID iD",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !account.ValidateIdentifier(args[0]) {
			return fmt.Errorf("%q is neither an email address nor an ORCID iD (0000-0000-0000-0000)", args[0])
		}
		password, err := passwordFrom(cmd, "Senha: ")
		if err != nil {
			return err
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		u, err := sess.Login(args[0], password)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Bem-vindo, %s!\n", u.Name)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Long: `Register creates a local account from --name, --email, and --orcid, then
signs it in. The password is read from --password or prompted twice.
Accounts created here last only for the current process; the signed-in
user is kept in the session key.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := account.RegisterRequest{}
		req.Name, _ = cmd.Flags().GetString("name")
		req.Email, _ = cmd.Flags().GetString("email")
		req.ORCID, _ = cmd.Flags().GetString("orcid")
		req.Avatar, _ = cmd.Flags().GetString("avatar")

		password, err := passwordFrom(cmd, "Senha: ")
		if err != nil {
			return err
		}
		req.Password = password
		if p, _ := cmd.Flags().GetString("password"); p == "" {
			if req.ConfirmPassword, err = passwordFrom(cmd, "Confirme a senha: "); err != nil {
				return err
			}
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		u, err := sess.Register(req)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Conta criada. Bem-vindo, %s!\n", u.Name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the session key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		if err := sess.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Sessão encerrada.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		u, ok := sess.Current()
		if !ok {
			return account.ErrNotLoggedIn
		}
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		if format != "text" {
			return encode(os.Stdout, format, u)
		}
		fmt.Fprintf(os.Stdout, "%s <%s>\nORCID: %s\n", u.Name, u.Email, u.ORCID)
		return nil
	},
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Show or change notification preferences",
	Long: `Notifications prints the signed-in user's notification toggles. Use --set
key=true|false (repeatable) to change them; the result is saved to
notifications.yaml in the state directory.`,
	Args: cobra.NoArgs,
	RunE: runNotifications,
}

func runNotifications(cmd *cobra.Command, args []string) error {
	sets, _ := cmd.Flags().GetStringArray("set")

	sess, err := openSession()
	if err != nil {
		return err
	}
	u, ok := sess.Current()
	if !ok {
		return account.ErrNotLoggedIn
	}

	store := account.NewPrefsStore(appCfg.Session.StateDir)
	prefs, err := store.Load(u.ID)
	if err != nil {
		return err
	}

	if len(sets) > 0 {
		if err := applySets(&prefs, sets); err != nil {
			return err
		}
		if err := store.Save(u.ID, prefs); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Preferências salvas")
		fmt.Fprintln(os.Stdout)
	}

	for _, p := range account.Prefs {
		mark := " "
		if p.Value(prefs) {
			mark = "x"
		}
		fmt.Fprintf(os.Stdout, "[%s] %-18s %s\n", mark, p.Key, p.Label)
		fmt.Fprintf(os.Stdout, "    %s\n", p.Description)
	}
	return nil
}

// applySets parses key=bool assignments into p.
func applySets(p *types.NotificationPrefs, sets []string) error {
	for _, s := range sets {
		key, val, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q: use key=true or key=false", s)
		}
		on, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return fmt.Errorf("invalid --set %q: %w", s, err)
		}
		if err := account.SetPref(p, strings.TrimSpace(key), on); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	loginCmd.Flags().String("password", "", "password (prompted when omitted)")

	registerCmd.Flags().String("name", "", "full name")
	registerCmd.Flags().String("email", "", "email address")
	registerCmd.Flags().String("orcid", "", "ORCID iD (0000-0000-0000-0000)")
	registerCmd.Flags().String("avatar", "", "avatar image URL")
	registerCmd.Flags().String("password", "", "password (prompted when omitted)")

	addOutputFlags(whoamiCmd)

	notificationsCmd.Flags().StringArray("set", nil, "set a preference, e.g. --set email-digest=false")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(notificationsCmd)
}
