package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"filedesk/internal/auth"
	"filedesk/internal/cli"
	"filedesk/internal/config"
	"filedesk/internal/model"
	"filedesk/internal/sharing"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the filing desk",
		Long:  `Log in as a guest, with an email/password pair, or through one of the mock OAuth providers.`,
	}

	cmd.AddCommand(loginGuestCmd())
	cmd.AddCommand(loginPasswordCmd())
	cmd.AddCommand(loginOAuthCmd("google", "Log in with Google (mock)"))
	cmd.AddCommand(loginOAuthCmd("outlook", "Log in with Outlook (mock)"))

	return cmd
}

func loginGuestCmd() *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "guest",
		Short: "Log in as a guest",
		Long:  `Start a guest session. Guest filing data is cleared again on logout.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if name == "" || email == "" {
				return fmt.Errorf("guest login requires --name and --email")
			}
			if !sharing.ValidEmail(email) {
				return fmt.Errorf("invalid email address %q", email)
			}

			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			user := model.GuestUser{Name: name, EmailAddress: email}
			if err := a.sessions.Login(ctx, user); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Logged in as guest %s <%s>", name, email)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "guest display name")
	cmd.Flags().StringVar(&email, "email", "", "guest email address")

	return cmd
}

func loginPasswordCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Log in with email and password (mock)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("password login requires --email and --password")
			}
			if !sharing.ValidEmail(email) {
				return fmt.Errorf("invalid email address %q", email)
			}

			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			// Mock flow: any non-empty password is accepted. The
			// password never leaves this function.
			user := model.PasswordUser{EmailAddress: email}
			if err := a.sessions.Login(ctx, user); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Logged in as %s", email)))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email address")
	cmd.Flags().StringVar(&password, "password", "", "account password")

	return cmd
}

func loginOAuthCmd(providerName, short string) *cobra.Command {
	return &cobra.Command{
		Use:   providerName,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			clientID := viper.GetString("oauth.client_id")
			clientSecret := viper.GetString("oauth.client_secret")

			var provider auth.Provider
			if providerName == "outlook" {
				provider = auth.OutlookProvider(clientID, clientSecret)
			} else {
				provider = auth.GoogleProvider(clientID, clientSecret)
			}

			fmt.Println(cli.FormatInfo("Mock OAuth flow — no browser round trip happens."))
			fmt.Println(cli.SubtleStyle.Render(provider.AuthURL("state-token")))

			token := provider.MockExchange(time.Now())
			tokenFile := viper.GetString("oauth.token_file")
			if tokenFile == "" {
				tokenFile = "$HOME/.config/filedesk/token.json"
			}
			if err := auth.SaveToken(config.ExpandPath(tokenFile), token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			user := provider.User()
			if err := a.sessions.Login(ctx, user); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Logged in as %s <%s>", user.DisplayName(), user.Email())))
			return nil
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the session",
		Long:  `End the current session. Guest sessions also drop their filing history.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			user, err := a.sessions.Current(ctx)
			if err != nil {
				return err
			}
			if user == nil {
				fmt.Println(cli.FormatInfo("Nobody is logged in."))
				return nil
			}

			if err := a.sessions.Logout(ctx); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Logged out %s", user.Email())))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			user, err := a.sessions.Current(ctx)
			if err != nil {
				return err
			}
			if user == nil {
				fmt.Println(cli.FormatInfo("Nobody is logged in."))
				return nil
			}

			fmt.Printf("%s %s <%s> (%s)\n", cli.UserIcon, user.DisplayName(), user.Email(), user.Method())
			return nil
		},
	}
}
