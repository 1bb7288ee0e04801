package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	jwtmw "github.com/Get2Core/fs-project/internal/platform/jwt"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print an admin JWT signed with JWT_SECRET",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "token subject (operator name)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("subject")
}

func runToken(cmd *cobra.Command, args []string) error {
	gen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), tokenTTL)
	token, err := gen.GenerateToken(tokenSubject, jwtmw.RoleAdmin)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
