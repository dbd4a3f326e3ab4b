package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"github.com/todayseafood/seafood/sdk/core"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh/terminal"
)

var cliFlagPostID = &cli.Int64Flag{
	Name:     flagID,
	Aliases:  []string{"i"},
	Usage:    "Operate on the specified post (required)",
	Required: true,
}

var postCommand = &cli.Command{
	Name:  "post",
	Usage: "Manage posts",
	Subcommands: []*cli.Command{
		{
			Name:  "create",
			Usage: "Publish a new post",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     flagTitle,
					Aliases:  []string{"t"},
					Usage:    "Title of the post (required)",
					Required: true,
				},
				&cli.StringFlag{
					Name:     flagArticle,
					Aliases:  []string{"a"},
					Usage:    "Body of the post (required)",
					Required: true,
				},
				&cli.StringFlag{
					Name:    flagCategory,
					Aliases: []string{"c"},
					Usage:   "Category of the post",
				},
				&cli.StringFlag{
					Name:  flagImage,
					Usage: "Attach the image at the specified path",
				},
				cliFlagOutput,
			},
			Action: sessionAction(postCreate),
		},
		{
			Name:  "delete",
			Usage: "Delete one of your posts along with its comments",
			Flags: []cli.Flag{
				cliFlagPostID,
				cliFlagYes,
			},
			Action: sessionAction(postDelete),
		},
		{
			Name:  "get",
			Usage: "Read a post and its first page of comments",
			Flags: []cli.Flag{
				cliFlagPostID,
				cliFlagOutput,
			},
			Action: sessionAction(postGet),
		},
		{
			Name:  "like",
			Usage: "Like a post",
			Flags: []cli.Flag{
				cliFlagPostID,
			},
			Action: sessionAction(postLike),
		},
		{
			Name:  "list",
			Usage: "Retrieve posts, newest first",
			Flags: []cli.Flag{
				cliFlagPage,
				cliFlagSize,
				cliFlagOutput,
			},
			Action: sessionAction(postList),
		},
		{
			Name:  "unlike",
			Usage: "Withdraw your like of a post",
			Flags: []cli.Flag{
				cliFlagPostID,
			},
			Action: sessionAction(postUnlike),
		},
		{
			Name:  "update",
			Usage: "Amend one of your posts",
			Flags: []cli.Flag{
				cliFlagPostID,
				&cli.StringFlag{
					Name:    flagTitle,
					Aliases: []string{"t"},
					Usage:   "Change the title of the post",
				},
				&cli.StringFlag{
					Name:    flagArticle,
					Aliases: []string{"a"},
					Usage:   "Change the body of the post",
				},
				&cli.StringFlag{
					Name:    flagCategory,
					Aliases: []string{"c"},
					Usage:   "Change the category of the post",
				},
				&cli.StringFlag{
					Name:  flagImage,
					Usage: "Replace the post's image with the one at the specified path",
				},
				cliFlagOutput,
			},
			Action: sessionAction(postUpdate),
		},
	},
}

func postList(c *cli.Context, s *session) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	opts := listOptions(c)
	for {
		posts, err := s.client.Core().Posts().List(c.Context, opts)
		if err != nil {
			return err
		}

		if len(posts.Items) == 0 {
			fmt.Println("No posts found.")
			return nil
		}

		if err = printOutput(
			os.Stdout,
			output,
			posts,
			func() *uitable.Table {
				table := uitable.New()
				table.AddRow(
					"ID", "TITLE", "AUTHOR", "LIKES", "COMMENTS", "VIEWS", "AGE", "LIKED?",
				)
				for _, post := range posts.Items {
					table.AddRow(
						post.ID,
						post.Title,
						post.AuthorNickname,
						post.Like,
						post.CommentCount,
						post.Hit,
						age(post.CreatedAt),
						s.state.IsLiked(post.ID),
					)
				}
				return table
			},
		); err != nil {
			return err
		}

		if !posts.HasNext {
			break
		}

		// Exit after one page of output if this isn't a terminal
		if !terminal.IsTerminal(int(os.Stdout.Fd())) {
			break
		}

		var shouldContinue bool
		fmt.Println()
		if err := survey.AskOne(
			&survey.Confirm{
				Message: "More posts remain. Fetch more?",
			},
			&shouldContinue,
		); err != nil {
			return errors.Wrap(
				err,
				"error confirming if user wishes to continue",
			)
		}
		fmt.Println()
		if !shouldContinue {
			break
		}

		opts.Page++
	}

	return nil
}

// postDetail is a Post as shown by `post get`.
type postDetail struct {
	core.Post `json:",inline"`
	Liked     bool           `json:"liked"`
	Comments  []core.Comment `json:"comments"`
	// MoreComments indicates that the Post has more Comments than are shown.
	MoreComments bool `json:"moreComments"`
}

// countView counts a view of the specified Post unless this client already
// did so within localstate.ViewCooldown. Failure to count a view does not
// prevent the Post from being shown.
func countView(ctx context.Context, s *session, id int64) {
	now := time.Now()
	if !s.state.ViewDue(id, now) {
		return
	}
	if err := s.client.Core().Posts().Hit(ctx, id); err != nil {
		s.logger.Debug(
			"view was not counted",
			zap.Int64("post", id),
			zap.Error(err),
		)
		return
	}
	s.state.RecordView(id, now)
}

func getPostDetail(
	ctx context.Context,
	s *session,
	id int64,
) (postDetail, error) {
	detail := postDetail{}
	var comments core.CommentList
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		detail.Post, err = s.client.Core().Posts().Get(ctx, id)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		comments, err = s.client.Core().Comments().List(ctx, id, nil)
		return err
	})
	if err := p.Wait(); err != nil {
		return detail, err
	}
	detail.Liked = s.state.IsLiked(id)
	detail.Comments = comments.Items
	detail.MoreComments = comments.HasNext
	return detail, nil
}

func postGet(c *cli.Context, s *session) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}
	id := c.Int64(flagID)

	countView(c.Context, s, id)
	detail, err := getPostDetail(c.Context, s, id)
	if err != nil {
		return err
	}

	return printOutput(
		os.Stdout,
		output,
		detail,
		func() *uitable.Table {
			table := uitable.New()
			table.Wrap = true
			table.MaxColWidth = 80
			table.AddRow("ID:", detail.ID)
			table.AddRow("TITLE:", detail.Title)
			table.AddRow("CATEGORY:", detail.Category)
			table.AddRow("AUTHOR:", detail.AuthorNickname)
			table.AddRow("AGE:", age(detail.CreatedAt))
			table.AddRow("LIKES:", detail.Like)
			table.AddRow("LIKED?:", detail.Liked)
			table.AddRow("VIEWS:", detail.Hit)
			table.AddRow("IMAGE:", detail.ArticleImage)
			table.AddRow("")
			table.AddRow(detail.Article)
			table.AddRow("")
			table.AddRow(fmt.Sprintf("COMMENTS (%d):", detail.CommentCount))
			for _, comment := range detail.Comments {
				table.AddRow(
					fmt.Sprintf("[%d] %s", comment.ID, comment.AuthorNickname),
					comment.Content,
					age(comment.UpdatedAt),
				)
			}
			if detail.MoreComments {
				table.AddRow(
					fmt.Sprintf(
						"Use `seafood comment list --post %d --page 1` for more.",
						detail.ID,
					),
				)
			}
			return table
		},
	)
}

func postCreate(c *cli.Context, s *session) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}
	userID, err := s.requireLogin()
	if err != nil {
		return err
	}
	title := c.String(flagTitle)
	if err = validateTitle(title); err != nil {
		return err
	}
	image, err := fileFlag(c, flagImage)
	if err != nil {
		return err
	}

	post, err := s.client.Core().Posts().Create(
		c.Context,
		core.NewPost{
			AuthorID:     userID,
			Title:        title,
			Article:      c.String(flagArticle),
			Category:     c.String(flagCategory),
			ArticleImage: image,
		},
	)
	if err != nil {
		return err
	}
	return printOutput(os.Stdout, output, post, postTable(post))
}

func postUpdate(c *cli.Context, s *session) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}
	if _, err := s.requireLogin(); err != nil {
		return err
	}
	id := c.Int64(flagID)
	image, err := fileFlag(c, flagImage)
	if err != nil {
		return err
	}

	// The API server replaces title and article wholesale, so unchanged ones
	// are carried over from the current Post.
	current, err := s.client.Core().Posts().Get(c.Context, id)
	if err != nil {
		return err
	}
	update := core.PostUpdate{
		Title:        current.Title,
		Article:      current.Article,
		Category:     current.Category,
		ArticleImage: image,
	}
	if c.IsSet(flagTitle) {
		update.Title = c.String(flagTitle)
	}
	if c.IsSet(flagArticle) {
		update.Article = c.String(flagArticle)
	}
	if c.IsSet(flagCategory) {
		update.Category = c.String(flagCategory)
	}
	if image != nil {
		update.OldFileName = current.ArticleImage
	}
	if err = validateTitle(update.Title); err != nil {
		return err
	}

	post, err := s.client.Core().Posts().Update(c.Context, id, update)
	if err != nil {
		return err
	}
	return printOutput(os.Stdout, output, post, postTable(post))
}

func postTable(post core.Post) func() *uitable.Table {
	return func() *uitable.Table {
		table := uitable.New()
		table.AddRow("ID", "TITLE", "CATEGORY", "AUTHOR", "AGE")
		table.AddRow(
			post.ID,
			post.Title,
			post.Category,
			post.AuthorNickname,
			age(post.CreatedAt),
		)
		return table
	}
}

func postDelete(c *cli.Context, s *session) error {
	id := c.Int64(flagID)
	if confirmed, err := confirmed(c); err != nil {
		return err
	} else if !confirmed {
		return nil
	}
	if err := s.client.Core().Posts().Delete(c.Context, id); err != nil {
		return err
	}
	s.state.SetLiked(id, false)
	fmt.Printf("Post %d deleted.\n", id)
	return nil
}

func postLike(c *cli.Context, s *session) error {
	return setLiked(c, s, true)
}

func postUnlike(c *cli.Context, s *session) error {
	return setLiked(c, s, false)
}

func setLiked(c *cli.Context, s *session, liked bool) error {
	userID, err := s.requireLogin()
	if err != nil {
		return err
	}
	id := c.Int64(flagID)
	posts := s.client.Core().Posts()
	if liked {
		err = posts.Like(c.Context, id, userID)
	} else {
		err = posts.CancelLike(c.Context, id, userID)
	}
	if err != nil {
		return err
	}
	s.state.SetLiked(id, liked)
	if liked {
		fmt.Printf("You like post %d.\n", id)
	} else {
		fmt.Printf("You no longer like post %d.\n", id)
	}
	return nil
}
