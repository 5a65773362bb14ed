package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"filedesk/internal/cli"
)

func shareCmd() *cobra.Command {
	var recipients string

	cmd := &cobra.Command{
		Use:   "share <record-id>",
		Short: "Share a filing with other users",
		Long: `Share a filing by email. Multiple recipients can be given comma-separated;
all addresses are validated before anything is shared, and a single bad
address rejects the whole batch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if recipients == "" {
				return fmt.Errorf("share requires --with")
			}

			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			user, err := a.requireUser(ctx)
			if err != nil {
				return err
			}

			entries, err := a.ledger.ShareBatch(ctx, args[0], user.Email(), recipients)
			if err != nil {
				return err
			}

			for _, e := range entries {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Shared with %s", e.ToUserEmail)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&recipients, "with", "", "recipient email addresses, comma-separated")

	return cmd
}

func sharedCmd() *cobra.Command {
	var byMe bool

	cmd := &cobra.Command{
		Use:   "shared",
		Short: "List shared filings",
		Long:  `List filings shared with you, or with --by-me the shares you have granted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			user, err := a.requireUser(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			if byMe {
				shares, err := a.ledger.SharedByMe(ctx, user.Email())
				if err != nil {
					return err
				}
				if len(shares) == 0 {
					fmt.Println(cli.FormatInfo("You have not shared any filings."))
					return nil
				}

				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					cli.TableHeaderStyle.Render("Request ID"),
					cli.TableHeaderStyle.Render("File Name"),
					cli.TableHeaderStyle.Render("Shared With"),
					cli.TableHeaderStyle.Render("Shared At"))
				for _, s := range shares {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
						s.Record.RequestID(),
						s.Record.Filename,
						s.Entry.ToUserEmail,
						s.Entry.SharedAt.Format("2006-01-02 15:04"))
				}
				return nil
			}

			shares, err := a.ledger.SharedWithMe(ctx, user.Email())
			if err != nil {
				return err
			}
			if len(shares) == 0 {
				fmt.Println(cli.FormatInfo("Nothing has been shared with you."))
				return nil
			}

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Request ID"),
				cli.TableHeaderStyle.Render("File Name"),
				cli.TableHeaderStyle.Render("Company"),
				cli.TableHeaderStyle.Render("From"),
				cli.TableHeaderStyle.Render("Shared At"))
			for _, s := range shares {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					s.FileDetails.RequestID(),
					s.FileDetails.Filename,
					s.FileDetails.Details.CompanyName,
					s.FromUserEmail,
					s.SharedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&byMe, "by-me", false, "list shares you have granted instead")

	return cmd
}
