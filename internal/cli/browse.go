package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"blogboard/internal/browse"
	blog_client "blogboard/internal/clients/blog"
	"blogboard/internal/custom_errors"
	"blogboard/internal/logger"
	"blogboard/internal/model"
	"blogboard/internal/pagination"
)

// BrowseOptions holds flags for the browse command.
type BrowseOptions struct {
	*RootOptions
	PageSize int
	Debounce time.Duration
}

// NewBrowseCommand creates the interactive browse command.
func NewBrowseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BrowseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse posts interactively",
		Long: `Open an interactive session against a blogboard server.

Type "help" at the prompt for the list of commands. Search-as-you-type
is simulated by feeding each argument of the search command as one
keystroke; only the settled term triggers a fetch.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.PageSize, "page-size", 6, "posts per page")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", 500*time.Millisecond, "search quiet period")

	return cmd
}

// session bundles the client-side state of one interactive run.
type session struct {
	client blog_client.Client
	posts  *browse.BlogStore
	users  *browse.UserStore
	pager  *browse.Pager
	in     *bufio.Scanner
	out    io.Writer
}

// sessionTokenPath places the stored session token under the user
// config dir. An empty path means the token stays in memory only.
func sessionTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "blogcli", "session")
}

func runBrowse(cmd *cobra.Command, opts *BrowseOptions) error {
	log := logger.New(opts.Env)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var client *blog_client.HTTPClient
	if tokenPath := sessionTokenPath(); tokenPath != "" {
		client = blog_client.NewPersistentHTTPClient(opts.ServerURL, tokenPath, log)
	} else {
		client = blog_client.NewHTTPClient(opts.ServerURL, log)
	}
	posts := browse.NewBlogStore()
	users := browse.NewUserStore()
	pager := browse.NewPager(client, posts, opts.PageSize, opts.Debounce, log)
	defer pager.Stop()

	if err := browse.InitializeSession(ctx, client, users, log); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Could not restore session, continuing anonymously.")
	}

	s := &session{
		client: client,
		posts:  posts,
		users:  users,
		pager:  pager,
		in:     bufio.NewScanner(cmd.InOrStdin()),
		out:    cmd.OutOrStdout(),
	}

	if err := pager.Load(ctx); err != nil {
		fmt.Fprintln(s.out, "Failed to load posts. Please try again.")
	} else {
		s.render()
	}

	for {
		fmt.Fprint(s.out, "blogboard> ")
		if !s.in.Scan() {
			return s.in.Err()
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmdName, args := fields[0], fields[1:]

		if cmdName == "quit" || cmdName == "exit" {
			return nil
		}
		s.dispatch(ctx, cmdName, args)
	}
}

func (s *session) dispatch(ctx context.Context, name string, args []string) {
	switch name {
	case "help":
		s.printHelp()
	case "search":
		s.doSearch(ctx, args)
	case "page":
		s.doPage(ctx, args)
	case "next":
		s.report(s.pager.NextPage(ctx))
	case "prev":
		s.report(s.pager.PrevPage(ctx))
	case "refresh":
		s.report(s.pager.Refresh(ctx))
	case "open":
		s.doOpen(ctx, args)
	case "new":
		s.doNew(ctx)
	case "edit":
		s.doEdit(ctx, args)
	case "delete":
		s.doDelete(ctx, args)
	case "signup":
		s.doSignUp(ctx)
	case "login":
		s.doLogin(ctx)
	case "logout":
		s.doLogout(ctx)
	case "whoami":
		s.doWhoami()
	default:
		fmt.Fprintf(s.out, "Unknown command %q, type \"help\".\n", name)
	}
}

func (s *session) printHelp() {
	fmt.Fprint(s.out, `Commands:
  search [words...]   filter posts (empty restores the full listing)
  page <n>            jump to page n
  next, prev          navigate pages
  refresh             refetch the current page
  open <id>           show one post in full
  new                 create a post (requires sign-in)
  edit <id>           update a post you own
  delete <id>         delete a post you own
  signup              create an account
  login, logout       manage the session
  whoami              show the signed-in user
  quit                leave
`)
}

// doSearch feeds each argument as a keystroke, so only the final term
// survives the quiet period. No arguments clears the filter.
func (s *session) doSearch(ctx context.Context, args []string) {
	term := strings.Join(args, " ")
	partial := ""
	for _, word := range args {
		if partial == "" {
			partial = word
		} else {
			partial += " " + word
		}
		s.pager.SetSearchTerm(ctx, partial)
	}
	if len(args) == 0 {
		s.pager.SetSearchTerm(ctx, "")
	}
	if s.waitForUpdate() {
		if err := s.pager.LastError(); err != nil {
			fmt.Fprintln(s.out, "Search failed. Please try again.")
			return
		}
		s.render()
		return
	}
	fmt.Fprintf(s.out, "Search for %q timed out.\n", term)
}

func (s *session) waitForUpdate() bool {
	select {
	case <-s.pager.Updates():
		return true
	case <-time.After(10 * time.Second):
		return false
	}
}

func (s *session) doPage(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: page <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(s.out, "Usage: page <n>")
		return
	}
	s.report(s.pager.SetPage(ctx, n))
}

func (s *session) doOpen(ctx context.Context, args []string) {
	id, ok := s.parseID(args)
	if !ok {
		return
	}
	post, err := s.client.GetPost(ctx, id)
	if err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintf(s.out, "\n#%d %s\nby %s on %s\n\n%s\n\n",
		post.Post.ID, post.Post.Title,
		browse.AuthorName(post),
		post.Post.CreatedAt.Time.Format("Jan 2, 2006"),
		post.Post.Content)
}

func (s *session) doNew(ctx context.Context) {
	if !s.users.Current().LoggedIn {
		fmt.Fprintln(s.out, "Sign in to create posts.")
		return
	}
	title := s.prompt("Title: ")
	excerpt := s.prompt("Excerpt (optional): ")
	content := s.prompt("Content: ")

	// Required fields are checked before any request goes out.
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		fmt.Fprintln(s.out, "Title and content are required.")
		return
	}

	var excerptPtr *string
	if strings.TrimSpace(excerpt) != "" {
		excerptPtr = &excerpt
	}
	created, err := s.client.CreatePost(ctx, title, excerptPtr, content)
	if err != nil {
		s.printError(err)
		return
	}
	s.posts.Append(created)
	fmt.Fprintf(s.out, "Created post #%d.\n", created.Post.ID)
	s.render()
}

func (s *session) doEdit(ctx context.Context, args []string) {
	id, ok := s.parseID(args)
	if !ok {
		return
	}
	if !s.users.Current().LoggedIn {
		fmt.Fprintln(s.out, "Sign in to edit posts.")
		return
	}
	if stored := s.posts.Get(id); stored != nil && !s.users.CanModify(stored.Post) {
		fmt.Fprintln(s.out, "You can only edit your own posts.")
		return
	}

	fmt.Fprintln(s.out, "Leave a field empty to keep it unchanged.")
	update := &model.UpdatePostDTO{}
	if title := s.prompt("Title: "); strings.TrimSpace(title) != "" {
		update.Title = &title
	}
	if excerpt := s.prompt("Excerpt: "); strings.TrimSpace(excerpt) != "" {
		update.Excerpt = &excerpt
	}
	if content := s.prompt("Content: "); strings.TrimSpace(content) != "" {
		update.Content = &content
	}
	if update.Title == nil && update.Excerpt == nil && update.Content == nil {
		fmt.Fprintln(s.out, "Nothing to change.")
		return
	}

	if _, err := s.client.UpdatePost(ctx, id, update); err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintf(s.out, "Updated post #%d.\n", id)
	s.report(s.pager.Refresh(ctx))
}

// doDelete removes the post optimistically from the local store and
// rolls back when the server rejects the call.
func (s *session) doDelete(ctx context.Context, args []string) {
	id, ok := s.parseID(args)
	if !ok {
		return
	}
	if !s.users.Current().LoggedIn {
		fmt.Fprintln(s.out, "Sign in to delete posts.")
		return
	}
	if stored := s.posts.Get(id); stored != nil && !s.users.CanModify(stored.Post) {
		fmt.Fprintln(s.out, "You can only delete your own posts.")
		return
	}

	snapshot := s.posts.Posts()
	s.posts.Remove(id)

	if err := s.client.DeletePost(ctx, id); err != nil {
		s.posts.ReplaceAll(snapshot)
		s.printError(err)
		return
	}
	fmt.Fprintf(s.out, "Deleted post #%d.\n", id)
	s.report(s.pager.Refresh(ctx))
}

func (s *session) doSignUp(ctx context.Context) {
	req := &model.SignUpDTO{
		Email:     s.prompt("Email: "),
		Password:  s.prompt("Password: "),
		FirstName: s.prompt("First name: "),
		LastName:  s.prompt("Last name: "),
	}
	identity, err := s.client.SignUp(ctx, req)
	if err != nil {
		s.printError(err)
		return
	}
	s.users.SetUser(*identity)
	fmt.Fprintf(s.out, "Welcome, %s!\n", identity.FirstName)
}

func (s *session) doLogin(ctx context.Context) {
	email := s.prompt("Email: ")
	password := s.prompt("Password: ")
	identity, err := s.client.SignIn(ctx, email, password)
	if err != nil {
		s.printError(err)
		return
	}
	s.users.SetUser(*identity)
	fmt.Fprintf(s.out, "Signed in as %s.\n", identity.Email)
}

func (s *session) doLogout(ctx context.Context) {
	if err := s.client.SignOut(ctx); err != nil && !errors.Is(err, custom_errors.ErrUnauthenticated) {
		s.printError(err)
	}
	s.users.ClearUser()
	fmt.Fprintln(s.out, "Signed out.")
}

func (s *session) doWhoami() {
	current := s.users.Current()
	if !current.LoggedIn {
		fmt.Fprintln(s.out, "Not signed in.")
		return
	}
	fmt.Fprintf(s.out, "%s %s <%s>\n", current.FirstName, current.LastName, current.Email)
}

func (s *session) parseID(args []string) (int64, bool) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Expected a post id.")
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintln(s.out, "Expected a post id.")
		return 0, false
	}
	return id, true
}

func (s *session) prompt(label string) string {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}

func (s *session) report(err error) {
	if err != nil {
		s.printError(err)
		return
	}
	s.render()
}

func (s *session) printError(err error) {
	switch {
	case errors.Is(err, custom_errors.ErrPostNotFound):
		fmt.Fprintln(s.out, "Post not found or removed.")
	case errors.Is(err, custom_errors.ErrUnauthenticated):
		fmt.Fprintln(s.out, "Authentication required.")
	case errors.Is(err, custom_errors.ErrForbidden):
		fmt.Fprintln(s.out, "You do not own this post.")
	case errors.Is(err, custom_errors.ErrPostValidation):
		fmt.Fprintln(s.out, "Invalid input, please check the fields.")
	case errors.Is(err, custom_errors.ErrEmailAlreadyUsed):
		fmt.Fprintln(s.out, "That email is already registered.")
	default:
		fmt.Fprintln(s.out, "Something went wrong. Please try again.")
	}
}

func (s *session) render() {
	listing := s.posts.Posts()
	if term := s.pager.SearchTerm(); term != "" {
		fmt.Fprintf(s.out, "\nResults for %q (%d total)\n", term, s.pager.TotalCount())
	} else {
		fmt.Fprintf(s.out, "\nAll posts (%d total)\n", s.pager.TotalCount())
	}
	if len(listing) == 0 {
		fmt.Fprintln(s.out, "No posts found.")
	}
	for _, p := range listing {
		fmt.Fprintf(s.out, "  #%-4d %s\n        %s · %s\n",
			p.Post.ID, p.Post.Title,
			browse.AuthorName(p),
			browse.Preview(p.Post))
	}
	fmt.Fprintf(s.out, "Page %d/%d  %s\n\n",
		s.pager.Page(), s.pager.TotalPages(), formatButtons(s.pager.Buttons(), s.pager.Page()))
}

func formatButtons(buttons []int, current int) string {
	parts := make([]string, 0, len(buttons))
	for _, b := range buttons {
		switch {
		case b == pagination.Ellipsis:
			parts = append(parts, "...")
		case b == current:
			parts = append(parts, fmt.Sprintf("[%d]", b))
		default:
			parts = append(parts, strconv.Itoa(b))
		}
	}
	return strings.Join(parts, " ")
}
