package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/myagri/pkg/session"
)

var (
	profileName     string
	profileEmail    string
	profilePhone    string
	profileFarm     string
	profileLocation string
	profileType     string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit the signed-in user",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current user",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sess, closer := openSession()
		defer closer.Close()

		ctx := context.Background()
		u, err := sess.CurrentUser(ctx)
		if err != nil {
			fatal("Failed to read user", err)
		}
		t, err := sess.UserType(ctx)
		if err != nil {
			fatal("Failed to read user type", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Nom:          %s\n", u.Name)
		fmt.Fprintf(out, "Email:        %s\n", u.Email)
		fmt.Fprintf(out, "Téléphone:    %s\n", u.Phone)
		fmt.Fprintf(out, "Exploitation: %s\n", u.Farm)
		fmt.Fprintf(out, "Localisation: %s\n", u.Location)
		fmt.Fprintf(out, "Type:         %s\n", t)
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the profile; omitted flags keep their value",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sess, closer := openSession()
		defer closer.Close()

		ctx := context.Background()
		if cmd.Flags().Changed("type") {
			if err := sess.SetUserType(ctx, session.UserType(profileType)); err != nil {
				fatal("Failed to set user type", err)
			}
		}

		fields := []string{"name", "email", "phone", "farm", "location"}
		changed := false
		for _, f := range fields {
			changed = changed || cmd.Flags().Changed(f)
		}
		if !changed {
			return
		}

		u, err := sess.CurrentUser(ctx)
		if err != nil {
			fatal("Failed to read user", err)
		}
		p := session.Profile{
			FullName: pick(cmd, "name", profileName, u.Name),
			Email:    pick(cmd, "email", profileEmail, u.Email),
			Phone:    pick(cmd, "phone", profilePhone, u.Phone),
			Farm:     pick(cmd, "farm", profileFarm, u.Farm),
			Location: pick(cmd, "location", profileLocation, u.Location),
		}
		if _, err := sess.UpdateProfile(ctx, p); err != nil {
			fatal("Failed to update profile", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Profil mis à jour")
	},
}

var profileSignOutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Forget the current user",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sess, closer := openSession()
		defer closer.Close()

		if err := sess.SignOut(context.Background()); err != nil {
			fatal("Failed to sign out", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Déconnecté")
	},
}

// pick returns the flag value when it was given, the stored value otherwise.
func pick(cmd *cobra.Command, flag, value, stored string) string {
	if cmd.Flags().Changed(flag) {
		return value
	}
	return stored
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd, profileSignOutCmd)

	profileSetCmd.Flags().StringVar(&profileName, "name", "", "Full name")
	profileSetCmd.Flags().StringVar(&profileEmail, "email", "", "Email address")
	profileSetCmd.Flags().StringVar(&profilePhone, "phone", "", "Phone number")
	profileSetCmd.Flags().StringVar(&profileFarm, "farm", "", "Farm name")
	profileSetCmd.Flags().StringVar(&profileLocation, "location", "", "Farm location")
	profileSetCmd.Flags().StringVar(&profileType, "type", "", "User type: farmer or buyer")
}
