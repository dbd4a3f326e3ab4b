package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/todayseafood/seafood/sdk/core"
	"github.com/urfave/cli/v2"
)

var (
	cliFlagCommentPostID = &cli.Int64Flag{
		Name:     flagPost,
		Usage:    "Operate on comments on the specified post (required)",
		Required: true,
	}

	cliFlagCommentID = &cli.Int64Flag{
		Name:     flagID,
		Aliases:  []string{"i"},
		Usage:    "Operate on the specified comment (required)",
		Required: true,
	}

	cliFlagCommentContent = &cli.StringFlag{
		Name:     flagContent,
		Aliases:  []string{"c"},
		Usage:    "Text of the comment (required)",
		Required: true,
	}
)

var commentCommand = &cli.Command{
	Name:  "comment",
	Usage: "Manage comments on posts",
	Subcommands: []*cli.Command{
		{
			Name:  "create",
			Usage: "Comment on a post",
			Flags: []cli.Flag{
				cliFlagCommentPostID,
				cliFlagCommentContent,
				cliFlagOutput,
			},
			Action: sessionAction(commentCreate),
		},
		{
			Name:  "delete",
			Usage: "Delete one of your comments",
			Flags: []cli.Flag{
				cliFlagCommentPostID,
				cliFlagCommentID,
				cliFlagYes,
			},
			Action: sessionAction(commentDelete),
		},
		{
			Name:  "list",
			Usage: "Retrieve the comments on a post, oldest first",
			Flags: []cli.Flag{
				cliFlagCommentPostID,
				cliFlagPage,
				cliFlagSize,
				cliFlagOutput,
			},
			Action: sessionAction(commentList),
		},
		{
			Name:  "update",
			Usage: "Change the text of one of your comments",
			Flags: []cli.Flag{
				cliFlagCommentPostID,
				cliFlagCommentID,
				cliFlagCommentContent,
				cliFlagOutput,
			},
			Action: sessionAction(commentUpdate),
		},
	},
}

func commentsTable(comments ...core.Comment) func() *uitable.Table {
	return func() *uitable.Table {
		table := uitable.New()
		table.MaxColWidth = 60
		table.AddRow("ID", "AUTHOR", "CONTENT", "AGE")
		for _, comment := range comments {
			table.AddRow(
				comment.ID,
				comment.AuthorNickname,
				comment.Content,
				age(comment.UpdatedAt),
			)
		}
		return table
	}
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("comment must not be empty")
	}
	return nil
}

func commentList(c *cli.Context, s *session) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}
	postID := c.Int64(flagPost)
	opts := listOptions(c)
	comments, err := s.client.Core().Comments().List(c.Context, postID, opts)
	if err != nil {
		return err
	}
	if len(comments.Items) == 0 {
		fmt.Println("No comments found.")
		return nil
	}
	if err = printOutput(
		os.Stdout,
		output,
		comments,
		commentsTable(comments.Items...),
	); err != nil {
		return err
	}
	if comments.HasNext && strings.ToLower(output) == "table" {
		fmt.Printf(
			"\nMore comments remain; use --%s %d to see them.\n",
			flagPage,
			opts.Page+1,
		)
	}
	return nil
}

func commentCreate(c *cli.Context, s *session) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}
	userID, err := s.requireLogin()
	if err != nil {
		return err
	}
	content := c.String(flagContent)
	if err = validateContent(content); err != nil {
		return err
	}
	comment, err := s.client.Core().Comments().Create(
		c.Context,
		c.Int64(flagPost),
		userID,
		content,
	)
	if err != nil {
		return err
	}
	return printOutput(os.Stdout, output, comment, commentsTable(comment))
}

func commentUpdate(c *cli.Context, s *session) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}
	if _, err := s.requireLogin(); err != nil {
		return err
	}
	content := c.String(flagContent)
	if err := validateContent(content); err != nil {
		return err
	}
	comment, err := s.client.Core().Comments().Update(
		c.Context,
		c.Int64(flagPost),
		c.Int64(flagID),
		content,
	)
	if err != nil {
		return err
	}
	return printOutput(os.Stdout, output, comment, commentsTable(comment))
}

func commentDelete(c *cli.Context, s *session) error {
	postID := c.Int64(flagPost)
	id := c.Int64(flagID)
	if confirmed, err := confirmed(c); err != nil {
		return err
	} else if !confirmed {
		return nil
	}
	if err := s.client.Core().Comments().Delete(c.Context, postID, id); err != nil {
		return err
	}
	fmt.Printf("Comment %d deleted.\n", id)
	return nil
}
