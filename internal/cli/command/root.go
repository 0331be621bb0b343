// Package command defines the leetcode CLI on top of cobra. Every command
// prints its result as JSON on stdout so editors can consume it directly.
package command

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/wanglun/leetcode.vim/internal/cli/config"
	"github.com/wanglun/leetcode.vim/internal/cli/repl"
	"github.com/wanglun/leetcode.vim/internal/judge/model"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	return newRoot(app, true)
}

func newRoot(app *App, withREPL bool) *cobra.Command {
	root := &cobra.Command{
		Use:           "leetcode",
		Short:         "Browse, test and submit LeetCode problems from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd.Context())
		},
	}
	if withREPL {
		root.PersistentFlags().StringVar(&app.ConfigPath, "config", config.DefaultPath(), "path to a YAML or TOML config file")
		root.PersistentFlags().StringVar(&app.EnvFile, "env-file", ".env", "dotenv file holding LEETCODE_* credentials")
		root.PersistentFlags().BoolVar(&app.Compact, "compact", false, "print JSON on a single line")
	}

	root.AddCommand(
		loginCmd(app),
		logoutCmd(app),
		listCmd(app),
		cacheCmd(app),
		showCmd(app),
		submissionsCmd(app),
		submissionCmd(app),
		testCmd(app),
		submitCmd(app),
		checkTestCmd(app),
		checkSubmissionCmd(app),
		waitTestCmd(app),
		waitSubmissionCmd(app),
	)
	if withREPL {
		root.AddCommand(replCmd(app))
	}
	return root
}

func loginCmd(app *App) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session cookies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.login(cmd.Context(), username, password)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account name, defaults to $"+config.EnvUsername)
	cmd.Flags().StringVarP(&password, "password", "p", "", "password, defaults to $"+config.EnvPassword)
	return cmd
}

func logoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.logout()
		},
	}
}

func listCmd(app *App) *cobra.Command {
	var refresh bool
	var difficulty, status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List problems, from the cache when it is fresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var problems []model.Problem
			var err error
			if refresh {
				problems, err = app.Backend.RefreshProblemList(ctx)
			} else {
				problems, err = app.Backend.ProblemList(ctx)
			}
			if err != nil {
				return err
			}
			return app.print(filterProblems(problems, ParseStringList(difficulty), ParseStringList(status)))
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore the cache and fetch again")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "comma separated difficulties to keep")
	cmd.Flags().StringVar(&status, "state", "", "comma separated states to keep (New, NotAttempted, Accepted)")
	return cmd
}

func cacheCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the problem list cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop the cached problem list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Backend.ClearProblemList(cmd.Context()); err != nil {
				return err
			}
			return app.print(map[string]bool{"cleared": true})
		},
	})
	return cmd
}

func showCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <title-slug>",
		Short: "Show a problem with its code templates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := app.Backend.GetProblem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.print(detail)
		},
	}
}

func submissionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "submissions <title-slug>",
		Short: "List past submissions of a problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			submissions, err := app.Backend.GetSubmissionList(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.print(submissions)
		},
	}
}

func submissionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "submission <submission-id>",
		Short: "Show one past submission with its code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := app.Backend.GetSubmission(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.print(detail)
		},
	}
}

// codeOptions are the flags shared by test and submit.
type codeOptions struct {
	file      string
	lang      string
	problemID string
	input     string
	inputFile string
	wait      bool
}

func (o *codeOptions) bind(cmd *cobra.Command, withInput bool) {
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "source file to judge")
	cmd.Flags().StringVarP(&o.lang, "lang", "l", "", "language slug, guessed from the file extension when empty")
	cmd.Flags().StringVar(&o.problemID, "problem-id", "", "question id, looked up from the slug when empty")
	cmd.Flags().BoolVarP(&o.wait, "wait", "w", false, "poll until the verdict is ready")
	if withInput {
		cmd.Flags().StringVar(&o.input, "input", "", "custom test input, the sample testcase when empty")
		cmd.Flags().StringVar(&o.inputFile, "input-file", "", "read custom test input from a file")
	}
	_ = cmd.MarkFlagRequired("file")
}

var extLangs = map[string]string{
	".c":     "c",
	".cc":    "cpp",
	".cpp":   "cpp",
	".cs":    "csharp",
	".go":    "golang",
	".java":  "java",
	".js":    "javascript",
	".kt":    "kotlin",
	".php":   "php",
	".py":    "python3",
	".rb":    "ruby",
	".rs":    "rust",
	".scala": "scala",
	".swift": "swift",
	".ts":    "typescript",
}

// LangFromPath guesses the language slug from a file extension.
func LangFromPath(path string) (string, bool) {
	lang, ok := extLangs[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

func (a *App) buildRequest(ctx context.Context, slug string, o *codeOptions, withInput bool) (model.SubmissionRequest, error) {
	code, err := ReadFile(o.file)
	if err != nil {
		return model.SubmissionRequest{}, err
	}
	lang := o.lang
	if lang == "" {
		guessed, ok := LangFromPath(o.file)
		if !ok {
			return model.SubmissionRequest{}, fmt.Errorf("cannot guess language of %s, pass --lang", o.file)
		}
		lang = guessed
	}
	input := o.input
	if withInput && o.inputFile != "" {
		if input, err = ReadFile(o.inputFile); err != nil {
			return model.SubmissionRequest{}, err
		}
	}

	problemID := o.problemID
	if problemID == "" || (withInput && input == "") {
		detail, err := a.Backend.GetProblem(ctx, slug)
		if err != nil {
			return model.SubmissionRequest{}, err
		}
		if problemID == "" {
			problemID = detail.QuestionID
		}
		if withInput && input == "" {
			input = detail.Testcase
		}
	}
	return model.SubmissionRequest{
		ProblemID: problemID,
		TitleSlug: slug,
		Lang:      lang,
		Code:      code,
		DataInput: input,
	}, nil
}

func testCmd(app *App) *cobra.Command {
	opts := &codeOptions{}
	cmd := &cobra.Command{
		Use:   "test <title-slug>",
		Short: "Run code against custom input next to the reference solution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req, err := app.buildRequest(ctx, args[0], opts, true)
			if err != nil {
				return err
			}
			job, err := app.Backend.TestCode(ctx, req)
			if err != nil {
				return err
			}
			if !opts.wait {
				return app.print(job)
			}
			actual, expected, err := app.Backend.WaitTestJob(ctx, job)
			if err != nil {
				return err
			}
			return app.print(map[string]interface{}{
				"job":      job,
				"actual":   actual,
				"expected": expected,
			})
		},
	}
	opts.bind(cmd, true)
	return cmd
}

func submitCmd(app *App) *cobra.Command {
	opts := &codeOptions{}
	cmd := &cobra.Command{
		Use:   "submit <title-slug>",
		Short: "Submit code for judging",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req, err := app.buildRequest(ctx, args[0], opts, false)
			if err != nil {
				return err
			}
			id, err := app.Backend.SubmitCode(ctx, req)
			if err != nil {
				return err
			}
			if !opts.wait {
				return app.print(map[string]string{"submission_id": id})
			}
			result, err := app.Backend.WaitSubmission(ctx, id)
			if err != nil {
				return err
			}
			return app.print(map[string]interface{}{"submission_id": id, "result": result})
		},
	}
	opts.bind(cmd, false)
	return cmd
}

func checkTestCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check-test <test-id>",
		Short: "Check a test job once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Backend.CheckTest(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.print(result)
		},
	}
}

func checkSubmissionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check-submission <submission-id>",
		Short: "Check a submission once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Backend.CheckSubmission(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.print(result)
		},
	}
}

func waitTestCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "wait-test <actual-id> [expected-id]",
		Short: "Poll a test job until it finishes",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 {
				result, err := app.Backend.WaitTest(ctx, args[0])
				if err != nil {
					return err
				}
				return app.print(result)
			}
			job := model.TestJob{ActualID: args[0], ExpectedID: args[1]}
			actual, expected, err := app.Backend.WaitTestJob(ctx, job)
			if err != nil {
				return err
			}
			return app.print(map[string]interface{}{"actual": actual, "expected": expected})
		},
	}
}

func waitSubmissionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "wait-submission <submission-id>",
		Short: "Poll a submission until it is judged",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Backend.WaitSubmission(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.print(result)
		},
	}
}

func replCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read commands interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session := repl.New(func() *cobra.Command { return newRoot(app, false) }, cmd.InOrStdin(), cmd.OutOrStdout())
			return session.Run(cmd.Context())
		},
	}
}
