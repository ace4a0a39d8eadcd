package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/spf13/cobra"

	blog_client "blogboard/internal/clients/blog"
	"blogboard/internal/logger"
	"blogboard/internal/model"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Count    int
	Email    string
	Password string
}

// NewSeedCommand creates the seed command, which signs up a throwaway
// author and fills the server with generated posts.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Fill the server with generated posts",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Count, "count", 25, "number of posts to create")
	cmd.Flags().StringVar(&opts.Email, "email", "", "existing account to publish as (signs up a new one when empty)")
	cmd.Flags().StringVar(&opts.Password, "password", "", "password for --email")

	return cmd
}

func runSeed(cmd *cobra.Command, opts *SeedOptions) error {
	log := logger.New(opts.Env)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client := blog_client.NewHTTPClient(opts.ServerURL, log)

	if opts.Email != "" {
		if _, err := client.SignIn(ctx, opts.Email, opts.Password); err != nil {
			return fmt.Errorf("sign in as %s: %w", opts.Email, err)
		}
	} else {
		req := &model.SignUpDTO{
			Email:     gofakeit.Email(),
			Password:  gofakeit.Password(true, true, true, true, false, 16),
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
		}
		identity, err := client.SignUp(ctx, req)
		if err != nil {
			return fmt.Errorf("sign up seed author: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Publishing as %s (%s)\n", req.Email, identity.FirstName)
	}

	for i := 0; i < opts.Count; i++ {
		excerpt := gofakeit.Sentence(12)
		content := strings.Join([]string{
			gofakeit.Paragraph(2, 4, 12, "\n\n"),
			gofakeit.Paragraph(1, 3, 10, "\n\n"),
		}, "\n\n")

		post, err := client.CreatePost(ctx, gofakeit.BookTitle(), &excerpt, content)
		if err != nil {
			return fmt.Errorf("create post %d: %w", i+1, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created #%d %s\n", post.Post.ID, post.Post.Title)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d posts.\n", opts.Count)
	return nil
}
