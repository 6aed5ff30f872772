package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sakif/edumentor/internal/service"
)

func newQuestionsCmd(opts *options) *cobra.Command {
	questions := &cobra.Command{
		Use:   "questions",
		Short: "Look up, answer and moderate questions",
	}

	questions.AddCommand(&cobra.Command{
		Use:   "search [TERM]",
		Short: "Find questions by title or details, or list every question",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			var term string
			if len(args) == 1 {
				term = args[0]
			}
			found, err := questionService(a).Search(cmd.Context(), term)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), found)
			}
			rows := make([]string, 0, len(found))
			for _, q := range found {
				rows = append(rows, fmt.Sprintf("%d\t%s\t%s\t%s",
					q.ID, q.Title, q.User.Username, q.DateCreated.Format(time.DateOnly)))
			}
			return printTable(cmd.OutOrStdout(), "ID\tTITLE\tASKED BY\tCREATED", rows)
		}),
	})

	var (
		token  string
		answer service.AnswerParams
	)
	answerCmd := &cobra.Command{
		Use:   "answer QUESTION_ID RESPONSE",
		Short: "Answer a question",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			author, err := a.actor(cmd.Context(), token)
			if err != nil {
				return err
			}
			answer.QuestionID = id
			answer.Response = args[1]
			saved, err := questionService(a).Answer(cmd.Context(), author, answer)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), saved)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "answered question %d (answer %d)\n", id, saved.ID)
			return nil
		}),
	}
	answerCmd.Flags().StringVar(&answer.ImageURL, "image", "", "Image URL attached to the answer")
	tokenFlag(answerCmd, &token)

	var deleteToken string
	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a question you asked, or any question as an admin",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			actor, err := a.actor(cmd.Context(), deleteToken)
			if err != nil {
				return err
			}
			if err := questionService(a).Delete(cmd.Context(), id, actor); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted question %d\n", id)
			return nil
		}),
	}
	tokenFlag(deleteCmd, &deleteToken)

	questions.AddCommand(answerCmd, deleteCmd)
	return questions
}

func questionService(a *app) *service.QuestionService {
	return service.NewQuestionService(a.store.Questions(), a.store.Answers(), a.logger)
}

func newReviewsCmd(opts *options) *cobra.Command {
	reviews := &cobra.Command{
		Use:   "reviews",
		Short: "Rate posts and read their reviews",
	}

	var (
		token  string
		params service.ReviewParams
	)
	add := &cobra.Command{
		Use:   "add POST_ID",
		Short: "Review a post with a 1 to 5 rating",
		Long: `Review a post with a 1 to 5 rating.

Examples:
  edumentor reviews add 3 --rating 5 --message "Clear and short"`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			author, err := a.actor(cmd.Context(), token)
			if err != nil {
				return err
			}
			params.PostID = id
			saved, err := reviewService(a).Create(cmd.Context(), author, params)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), saved)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reviewed post %d (review %d)\n", id, saved.ID)
			return nil
		}),
	}
	add.Flags().IntVar(&params.Rating, "rating", 0, "Rating from 1 to 5")
	add.Flags().StringVar(&params.ReviewMessage, "message", "", "Review text")
	tokenFlag(add, &token)

	list := &cobra.Command{
		Use:   "list POST_ID",
		Short: "Show the reviews of a post",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			found, err := reviewService(a).ForPost(cmd.Context(), id)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), found)
			}
			rows := make([]string, 0, len(found))
			for _, r := range found {
				rows = append(rows, fmt.Sprintf("%d\t%s\t%s", r.Rating, r.User.Username, r.ReviewMessage))
			}
			return printTable(cmd.OutOrStdout(), "RATING\tBY\tMESSAGE", rows)
		}),
	}

	reviews.AddCommand(add, list)
	return reviews
}

func reviewService(a *app) *service.ReviewService {
	return service.NewReviewService(a.store.Reviews(), a.store.Posts(), a.logger)
}
