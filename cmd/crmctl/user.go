package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rental-crm/domain/dto"
	"rental-crm/domain/models"
	"rental-crm/pkg/utils"
)

const generatedPasswordLength = 16

func newUserCmd(open backendFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage CRM accounts",
	}
	cmd.AddCommand(newUserCreateCmd(open))
	return cmd
}

func newUserCreateCmd(open backendFactory) *cobra.Command {
	var (
		req   dto.CreateUserRequest
		admin bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account, ignoring AUTH_ALLOW_REGISTRATION",
		Example: `  crmctl user create --email ops@example.com --username ops \
    --first-name Ops --last-name Team --admin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			generated := req.Password == ""
			if generated {
				password, err := utils.GenerateRandomString(generatedPasswordLength)
				if err != nil {
					return fmt.Errorf("generate password: %w", err)
				}
				req.Password = password
			}
			req.Role = models.RoleUser
			if admin {
				req.Role = models.RoleAdmin
			}

			if err := utils.ValidateStruct(&req); err != nil {
				return invalidFlags(err)
			}

			b, err := open()
			if err != nil {
				return err
			}
			defer b.Close()

			user, err := b.Users().CreateUser(cmd.Context(), &req)
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created %s %s (%s)\n", user.Role, user.Username, user.ID)
			if user.IsAdmin() {
				fmt.Fprintln(out, "This account can add users with POST /api/v1/users")
			}
			if generated {
				fmt.Fprintf(out, "Password: %s\n", req.Password)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Email, "email", "", "login email")
	flags.StringVar(&req.Username, "username", "", "username (3-20 letters or digits)")
	flags.StringVar(&req.FirstName, "first-name", "", "first name")
	flags.StringVar(&req.LastName, "last-name", "", "last name")
	flags.StringVar(&req.Password, "password", "", "password; generated and printed when empty")
	flags.BoolVar(&admin, "admin", false, "grant the admin role")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func invalidFlags(err error) error {
	msgs := make([]string, 0)
	for _, fe := range utils.GetValidationErrors(err) {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return fmt.Errorf("invalid user: %s", strings.Join(msgs, "; "))
}
