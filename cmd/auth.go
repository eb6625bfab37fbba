package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nikogura/portfolio-admin/pkg/storage"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var loginGoogleToken string

//nolint:gochecknoglobals // Cobra boilerplate
var loginAccessToken string

//nolint:gochecknoglobals // Cobra boilerplate
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a backend access token",
	Long: `Exchanges a Google access token for a Portfolio API token and stores it.
The stored token is sent as a bearer token on every request.

Use --access-token to store a backend token you already have.

Example:
  portfolio-admin login --token ya29.a0Af...
  portfolio-admin login --access-token eyJhbGciOi...`,
	RunE: runLogin,
}

//nolint:gochecknoglobals // Cobra boilerplate
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored access token",
	RunE:  runLogout,
}

//nolint:gochecknoglobals // Cobra boilerplate
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the claims of the stored access token",
	Long: `Decodes the stored access token and prints its subject and expiry.
The signature is not checked; only the backend can do that.`,
	RunE: runWhoami,
}

//nolint:gochecknoglobals // Cobra boilerplate
var ownerCmd = &cobra.Command{
	Use:   "owner",
	Short: "Show or change the preferred portfolio owner",
	Long: `Listing requests carry an owner_id filter when a preferred owner is stored.

Example:
  portfolio-admin owner
  portfolio-admin owner set 4f7c...
  portfolio-admin owner clear`,
	RunE: runOwnerShow,
}

//nolint:gochecknoglobals // Cobra boilerplate
var ownerSetCmd = &cobra.Command{
	Use:   "set <owner-id>",
	Short: "Store the preferred owner id",
	Args:  cobra.ExactArgs(1),
	RunE:  runOwnerSet,
}

//nolint:gochecknoglobals // Cobra boilerplate
var ownerClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the preferred owner id",
	RunE:  runOwnerClear,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(ownerCmd)
	ownerCmd.AddCommand(ownerSetCmd)
	ownerCmd.AddCommand(ownerClearCmd)

	loginCmd.Flags().StringVar(&loginGoogleToken, "token", "", "Google access token to exchange")
	loginCmd.Flags().StringVar(&loginAccessToken, "access-token", "", "Backend access token to store as is")
	loginCmd.MarkFlagsMutuallyExclusive("token", "access-token")
	loginCmd.MarkFlagsOneRequired("token", "access-token")
}

func runLogin(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var a *app
	a, err = newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if cmd.Flags().Changed("token") {
		err = checkToken(loginGoogleToken)
		if err != nil {
			return err
		}
	}

	token := strings.TrimSpace(loginAccessToken)
	if loginGoogleToken != "" {
		resp, loginErr := a.svc.Auth.GoogleLogin(ctx, loginGoogleToken)
		if loginErr != nil {
			err = errors.Wrap(loginErr, "google login failed")
			return err
		}
		token = resp.AccessToken
		fmt.Printf("Logged in as %s (%s)\n", resp.User.FullName, resp.User.Email)
	}

	err = checkToken(token)
	if err != nil {
		return err
	}

	err = a.store.Set(storage.KeyAuthToken, token)
	if err != nil {
		return err
	}

	fmt.Println("Access token stored")
	return err
}

func runLogout(cmd *cobra.Command, args []string) (err error) {
	var a *app
	a, err = newApp()
	if err != nil {
		return err
	}
	defer a.close()

	err = a.store.Remove(storage.KeyAuthToken)
	if err != nil {
		return err
	}

	fmt.Println("Access token removed")
	return err
}

func runWhoami(cmd *cobra.Command, args []string) (err error) {
	var a *app
	a, err = newApp()
	if err != nil {
		return err
	}
	defer a.close()

	token := a.store.Get(storage.KeyAuthToken)
	if token == "" {
		fmt.Println("Not logged in")
		return err
	}

	var info tokenInfo
	info, err = describeToken(token)
	if err != nil {
		return err
	}

	fmt.Printf("Subject: %s\n", info.Subject)
	if info.Email != "" {
		fmt.Printf("Email:   %s\n", info.Email)
	}
	if !info.Expires.IsZero() {
		state := "valid"
		if info.Expires.Before(time.Now()) {
			state = "expired"
		}
		fmt.Printf("Expires: %s (%s)\n", info.Expires.Format(time.RFC3339), state)
	}

	return err
}

// checkToken rejects blank tokens so login never stores an empty credential.
func checkToken(token string) (err error) {
	if strings.TrimSpace(token) == "" {
		err = errors.New("token must not be empty")
		return err
	}
	return err
}

// tokenInfo is what whoami prints about a token.
type tokenInfo struct {
	Subject string
	Email   string
	Expires time.Time
}

// describeToken reads the claims of a JWT without verifying it.
func describeToken(token string) (info tokenInfo, err error) {
	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		err = errors.Wrap(err, "stored access token is not a JWT")
		return info, err
	}

	info.Subject, _ = claims.GetSubject()
	if email, ok := claims["email"].(string); ok {
		info.Email = email
	}

	exp, _ := claims.GetExpirationTime()
	if exp != nil {
		info.Expires = exp.Time
	}

	return info, err
}

func runOwnerShow(cmd *cobra.Command, args []string) (err error) {
	var a *app
	a, err = newApp()
	if err != nil {
		return err
	}
	defer a.close()

	owner := a.store.Get(storage.KeyPreferredOwnerID)
	if owner == "" {
		fmt.Println("No preferred owner set")
		return err
	}

	fmt.Println(owner)
	return err
}

func runOwnerSet(cmd *cobra.Command, args []string) (err error) {
	var a *app
	a, err = newApp()
	if err != nil {
		return err
	}
	defer a.close()

	err = a.store.Set(storage.KeyPreferredOwnerID, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Preferred owner set to %s\n", args[0])
	return err
}

func runOwnerClear(cmd *cobra.Command, args []string) (err error) {
	var a *app
	a, err = newApp()
	if err != nil {
		return err
	}
	defer a.close()

	err = a.store.Remove(storage.KeyPreferredOwnerID)
	if err != nil {
		return err
	}

	fmt.Println("Preferred owner cleared")
	return err
}
