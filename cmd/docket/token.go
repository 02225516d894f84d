package main

import (
	"fmt"

	"github.com/BlackWidow29/Entrevista-Docket/pkg/config"
	"github.com/BlackWidow29/Entrevista-Docket/pkg/jwtutil"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenScope   string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the /api routes",
	Long: `Issue a signed bearer token using JWT_SIGNING_KEY.

Examples:
  # Token for a named caller
  docket token --subject backoffice

  # Call the API with it
  curl -H "Authorization: Bearer $(docket token -s ops)" localhost:8080/api/registries`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		token, err := jwtutil.NewJWTUtil(&cfg.Auth).GenerateToken(tokenSubject, tokenScope)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
		return err
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "docket-cli", "Token subject")
	tokenCmd.Flags().StringVar(&tokenScope, "scope", "api", "Token scope claim")
	rootCmd.AddCommand(tokenCmd)
}
