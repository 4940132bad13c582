package main

import (
	"errors"

	"github.com/aussiebroadwan/gatekeep/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeep/internal/auth/service"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// errRejected marks a business failure already printed to the user.
var errRejected = errors.New("request rejected")

type accountFlags struct {
	email    string
	password string
	role     string
}

// NewSeedAdminCmd creates the seed-admin subcommand.
func NewSeedAdminCmd(flags *rootFlags) *cobra.Command {
	af := &accountFlags{}

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the admin account",
		Long: `Creates an account with the admin role. If the email is already registered
the account is moved to the admin role instead. Running it twice is safe.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeedAdmin(cmd, flags, af)
		},
	}

	cmd.Flags().StringVar(&af.email, "email", "", "admin email address")
	cmd.Flags().StringVar(&af.password, "password", "", "admin password (used only when the account is created)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func runSeedAdmin(cmd *cobra.Command, flags *rootFlags, af *accountFlags) error {
	ctx, admin, done, err := openAdmin(cmd, flags)
	if err != nil {
		return err
	}
	defer done()

	found, err := admin.Accounts.FindByEmail(ctx, af.email)
	if err != nil {
		return oops.Code("LOOKUP_FAILED").With("email", af.email).Wrap(err)
	}

	if found.Success {
		res, err := admin.Accounts.ChangeRole(ctx, found.Value.ID, domain.RoleAdmin)
		if err != nil {
			return oops.Code("CHANGE_ROLE_FAILED").With("email", af.email).Wrap(err)
		}
		if !res.Success && res.Message != service.MsgSameRole {
			return reject(cmd, res.Message)
		}
		cmd.Printf("Admin %s already exists (%s)\n", af.email, found.Value.ID)
		return nil
	}

	if af.password == "" {
		return reject(cmd, service.MsgPasswordEmpty)
	}

	res, err := admin.Accounts.Register(ctx, af.email, []byte(af.password), domain.RoleAdmin)
	if err != nil {
		return oops.Code("REGISTER_FAILED").With("email", af.email).Wrap(err)
	}
	if !res.Success {
		return reject(cmd, res.Message)
	}

	cmd.Printf("Admin %s created (%s)\n", res.Value.Email, res.Value.ID)
	return nil
}

// NewCreateAccountCmd creates the create-account subcommand.
func NewCreateAccountCmd(flags *rootFlags) *cobra.Command {
	af := &accountFlags{}

	cmd := &cobra.Command{
		Use:   "create-account",
		Short: "Create an account with the given role",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, admin, done, err := openAdmin(cmd, flags)
			if err != nil {
				return err
			}
			defer done()

			res, err := admin.Accounts.Register(ctx, af.email, []byte(af.password), af.role)
			if err != nil {
				return oops.Code("REGISTER_FAILED").With("email", af.email).Wrap(err)
			}
			if !res.Success {
				return reject(cmd, res.Message)
			}

			cmd.Printf("Account %s created with role %s (%s)\n", res.Value.Email, res.Value.Role, res.Value.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&af.email, "email", "", "account email address")
	cmd.Flags().StringVar(&af.password, "password", "", "account password")
	cmd.Flags().StringVar(&af.role, "role", domain.RoleUser, "role name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// NewChangeRoleCmd creates the change-role subcommand.
func NewChangeRoleCmd(flags *rootFlags) *cobra.Command {
	af := &accountFlags{}

	cmd := &cobra.Command{
		Use:   "change-role",
		Short: "Move an account to another role",
		Long: `Moves the account registered under --email to --role. Access tokens already
issued keep their old role until they expire.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, admin, done, err := openAdmin(cmd, flags)
			if err != nil {
				return err
			}
			defer done()

			found, err := admin.Accounts.FindByEmail(ctx, af.email)
			if err != nil {
				return oops.Code("LOOKUP_FAILED").With("email", af.email).Wrap(err)
			}
			if !found.Success {
				return reject(cmd, found.Message)
			}

			res, err := admin.Accounts.ChangeRole(ctx, found.Value.ID, af.role)
			if err != nil {
				return oops.Code("CHANGE_ROLE_FAILED").With("email", af.email).Wrap(err)
			}
			if !res.Success {
				return reject(cmd, res.Message)
			}

			cmd.Printf("Account %s now has role %s\n", res.Value.Email, res.Value.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&af.email, "email", "", "account email address")
	cmd.Flags().StringVar(&af.role, "role", "", "new role name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func reject(cmd *cobra.Command, message string) error {
	cmd.PrintErrln(message)
	return errRejected
}
