package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/huanfeng/connhub-cli/internal/i18n"
	"github.com/huanfeng/connhub-cli/pkg/wizard"
)

var requestForm wizard.RequestForm

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Request a new integration",
	Long: `Ask for a connector for an application that is not in the catalog yet.
Requests are listed in the catalog and collect votes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("email") {
			requestForm.Email = cfg.User.Email
		}
		requestForm.Capabilities = upperAll(requestForm.Capabilities)
		if err := requestForm.Validate(); err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()
		if err := newAPIClient().SubmitRequest(ctx, requestForm.Build()); err != nil {
			return err
		}
		fmt.Println(i18n.T("request.submitted", map[string]interface{}{"Name": requestForm.ApplicationName}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(requestCmd)

	f := requestCmd.Flags()
	f.StringVar(&requestForm.ApplicationName, "name", "", "application name")
	f.StringVar(&requestForm.BaseURL, "url", "", "application base URL")
	f.StringSliceVar(&requestForm.Capabilities, "capability", nil, "wanted capability (repeatable)")
	f.StringVar(&requestForm.Description, "description", "", "what the integration should do")
	f.StringVar(&requestForm.SystemVersion, "system-version", "", "application version")
	f.StringVar(&requestForm.Email, "email", "", "contact email (default user.email)")
	f.BoolVar(&requestForm.Collab, "collab", false, "offer to collaborate on the connector")
}
