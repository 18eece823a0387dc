package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/huanfeng/connhub-cli/internal/errors"
	"github.com/huanfeng/connhub-cli/internal/i18n"
	"github.com/huanfeng/connhub-cli/pkg/utils"
)

var (
	voteVoter string
	voteCheck bool
)

var voteCmd = &cobra.Command{
	Use:   "vote <request-id>",
	Short: "Vote for a requested integration",
	Long: `Vote for a requested integration. Every voter counts once per request;
the voter defaults to user.name from the configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		requestID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return apperrors.NewValidationError(apperrors.CodeValidationFailed,
				i18n.T("vote.badID", map[string]interface{}{"ID": args[0]}))
		}
		voter := strings.TrimSpace(voteVoter)
		if voter == "" {
			voter = strings.TrimSpace(cfg.User.Name)
		}
		if voter == "" {
			return apperrors.NewValidationError(apperrors.CodeValidationFailed, i18n.T("vote.noVoter")).
				WithSuggestion(i18n.T("vote.noVoterHint"))
		}

		ctx, cancel := commandContext()
		defer cancel()
		api := newAPIClient()

		if voteCheck {
			voted, err := api.HasVoted(ctx, requestID, voter)
			if err != nil {
				return err
			}
			if voted {
				fmt.Println(i18n.T("vote.alreadyVoted"))
			} else {
				fmt.Println(i18n.T("vote.notVoted"))
			}
			return nil
		}

		count, err := api.VoteCount(ctx, requestID)
		if err != nil {
			utils.Debug("vote count unavailable: %v", err)
			count = -1
		}

		if err := api.Vote(ctx, requestID, voter); err != nil {
			if apperrors.HasCode(err, apperrors.CodeAlreadyVoted) {
				fmt.Println(i18n.T("vote.alreadyVoted"))
				return nil
			}
			return err
		}

		if count >= 0 {
			// the backend counts the new vote asynchronously
			fmt.Println(i18n.T("vote.recorded", map[string]interface{}{"Count": count + 1}))
		} else {
			fmt.Println(i18n.T("vote.recordedNoCount"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(voteCmd)

	voteCmd.Flags().StringVar(&voteVoter, "voter", "", "voter name (default user.name)")
	voteCmd.Flags().BoolVar(&voteCheck, "check", false, "only check whether the voter already voted")
}
