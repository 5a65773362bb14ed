package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"filedesk/internal/cli"
	"filedesk/internal/model"
	"filedesk/internal/session"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your profile",
		Long:  `Show and edit account details, manage the avatar image, and handle plans.`,
	}

	cmd.AddCommand(profileShowCmd())
	cmd.AddCommand(profileUpdateCmd())
	cmd.AddCommand(profileImageCmd())
	cmd.AddCommand(plansCmd())
	cmd.AddCommand(subscribeCmd())
	cmd.AddCommand(paymentsCmd())

	return cmd
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
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

			p, err := a.profiles.Get(ctx, user)
			if err != nil {
				return err
			}

			if err := a.sessions.SetView(ctx, session.ViewProfile); err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Profile"))
			fmt.Printf("  Full Name:  %s\n", p.FullName)
			fmt.Printf("  Email:      %s\n", p.Email)
			fmt.Printf("  Phone:      %s\n", p.Phone)
			fmt.Printf("  Plan:       %s\n", p.Plan)
			return nil
		},
	}
}

func profileUpdateCmd() *cobra.Command {
	var fullName, email, phone string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		Long:  `Update one or more profile fields. Omitted flags leave the field unchanged.`,
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

			p, err := a.profiles.Update(ctx, user, fullName, email, phone)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated profile for %s", p.Email)))
			return nil
		},
	}

	cmd.Flags().StringVar(&fullName, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")

	return cmd
}

func profileImageCmd() *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "image [file]",
		Short: "Set or remove the avatar image",
		Long:  `Store an avatar image (JPEG, PNG, GIF or WebP, up to 5MB), or remove it with --remove.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			if remove {
				if err := a.profiles.RemoveImage(ctx, user); err != nil {
					return err
				}
				fmt.Println(cli.FormatSuccess("Avatar removed"))
				return nil
			}

			if len(args) != 1 {
				return fmt.Errorf("image requires a file argument or --remove")
			}

			data, err := os.ReadFile(args[0]) // #nosec G304
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			if err := a.profiles.SetImage(ctx, user, data); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Avatar updated"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "remove the stored avatar")

	return cmd
}

func plansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List subscription plans",
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, plan := range model.Plans {
				header := fmt.Sprintf("%s  $%.2f", plan.Name, plan.Price)
				if plan.Popular {
					header += "  " + cli.WarningStyle.Render("MOST POPULAR")
				}
				fmt.Println(cli.BoldStyle.Render(header))
				for _, f := range plan.Features {
					fmt.Printf("  - %s\n", f)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func subscribeCmd() *cobra.Command {
	var coupon string

	cmd := &cobra.Command{
		Use:   "subscribe <plan>",
		Short: "Switch to a subscription plan",
		Long:  `Switch plans and record a mock payment. A known coupon code discounts the amount.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			payment, err := a.profiles.Subscribe(ctx, user, args[0], coupon)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Subscribed to %s ($%.2f)", payment.Plan, payment.Amount)))
			return nil
		},
	}

	cmd.Flags().StringVar(&coupon, "coupon", "", "coupon code")

	return cmd
}

func paymentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "payments",
		Short: "Show the payment history",
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

			p, err := a.profiles.Get(ctx, user)
			if err != nil {
				return err
			}
			if len(p.Payments) == 0 {
				fmt.Println(cli.FormatInfo("No payments recorded."))
				return nil
			}

			for _, payment := range p.Payments {
				line := fmt.Sprintf("%s  %-8s $%.2f", payment.PaidAt.Format("2006-01-02"), payment.Plan, payment.Amount)
				if payment.Coupon != "" {
					line += fmt.Sprintf("  (coupon %s)", payment.Coupon)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}
