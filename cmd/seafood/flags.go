package main

import "github.com/urfave/cli/v2"

const (
	flagArticle      = "article"
	flagCategory     = "category"
	flagContent      = "content"
	flagDebug        = "debug"
	flagEmail        = "email"
	flagID           = "id"
	flagImage        = "image"
	flagInsecure     = "insecure"
	flagNickname     = "nickname"
	flagOutput       = "output"
	flagPage         = "page"
	flagPassword     = "password"
	flagPost         = "post"
	flagProfileImage = "profile-image"
	flagServer       = "server"
	flagSize         = "size"
	flagTitle        = "title"
	flagYes          = "yes"
)

var (
	cliFlagOutput = &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage: "Return output in the specified format; supported formats: table, " +
			"yaml, json",
		Value: "table",
	}

	cliFlagPage = &cli.IntFlag{
		Name:  flagPage,
		Usage: "Retrieve the specified page of results, counting from zero",
	}

	cliFlagSize = &cli.IntFlag{
		Name:  flagSize,
		Usage: "Retrieve the specified number of results per page",
		Value: 10,
	}

	cliFlagYes = &cli.BoolFlag{
		Name:    flagYes,
		Aliases: []string{"y"},
		Usage:   "Non-interactively confirm deletion",
	}
)
