package storectl

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/louisbranch/storefront/internal/platform/id"
	"github.com/louisbranch/storefront/internal/services/catalog/storage"
	"github.com/louisbranch/storefront/internal/services/storefront/modules/users"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// UserOptions are the flags of "user create".
type UserOptions struct {
	Username string
	Name     string
	Email    string
	Password string
	Admin    bool
	Cost     int
}

func (o UserOptions) user(now time.Time) (storage.User, error) {
	username := strings.TrimSpace(o.Username)
	if username == "" {
		return storage.User{}, errors.New("--username is required")
	}
	if o.Password == "" {
		return storage.User{}, errors.New("--password is required")
	}
	if len(o.Password) > users.MaxPasswordBytes {
		return storage.User{}, fmt.Errorf("--password must be at most %d bytes", users.MaxPasswordBytes)
	}
	email := strings.TrimSpace(o.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return storage.User{}, fmt.Errorf("invalid --email: %w", err)
		}
	}
	cost := o.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), cost)
	if err != nil {
		return storage.User{}, fmt.Errorf("hash password: %w", err)
	}
	userID, err := id.NewID()
	if err != nil {
		return storage.User{}, err
	}
	name := strings.TrimSpace(o.Name)
	if name == "" {
		name = username
	}
	return storage.User{
		ID:           userID,
		Name:         name,
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Admin:        o.Admin,
		CreatedAt:    now,
	}, nil
}

func newUserCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage storefront accounts",
	}
	cmd.AddCommand(newUserCreateCommand(opts))
	return cmd
}

func newUserCreateCommand(opts *RootOptions) *cobra.Command {
	var userOpts UserOptions
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a customer or admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := userOpts.user(time.Now().UTC())
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.CreateUser(cmd.Context(), user); err != nil {
				if errors.Is(err, storage.ErrAlreadyExists) {
					return fmt.Errorf("username %q exists", user.Username)
				}
				return err
			}
			role := "customer"
			if user.Admin {
				role = "admin"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s %s\n", role, user.Username)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&userOpts.Username, "username", "", "login name")
	flags.StringVar(&userOpts.Name, "name", "", "display name (defaults to username)")
	flags.StringVar(&userOpts.Email, "email", "", "email address")
	flags.StringVar(&userOpts.Password, "password", "", "password")
	flags.BoolVar(&userOpts.Admin, "admin", false, "grant admin access")
	flags.IntVar(&userOpts.Cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}
