package main

import (
	"fmt"
	"os"

	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/todayseafood/seafood/sdk/authx"
	"github.com/urfave/cli/v2"
)

var userCommand = &cli.Command{
	Name:  "user",
	Usage: "Manage users",
	Subcommands: []*cli.Command{
		{
			Name:      "check-email",
			Usage:     "Check whether an email address is still available",
			ArgsUsage: "EMAIL",
			Action:    sessionAction(userCheckEmail),
		},
		{
			Name:      "check-nickname",
			Usage:     "Check whether a nickname is still available",
			ArgsUsage: "NICKNAME",
			Action:    sessionAction(userCheckNickname),
		},
		{
			Name:  "delete",
			Usage: "Delete your account along with your posts and comments",
			Flags: []cli.Flag{
				cliFlagYes,
			},
			Action: sessionAction(userDelete),
		},
		{
			Name:  "get",
			Usage: "Retrieve a user",
			Flags: []cli.Flag{
				&cli.Int64Flag{
					Name:    flagID,
					Aliases: []string{"i"},
					Usage:   "Retrieve the specified user; defaults to yourself",
				},
				cliFlagOutput,
			},
			Action: sessionAction(userGet),
		},
		{
			Name:  "password",
			Usage: "Change your password",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagPassword,
					Aliases: []string{"p"},
					Usage: "Specify the new password non-interactively; prompted for " +
						"when omitted",
				},
			},
			Action: sessionAction(userPassword),
		},
		{
			Name:  "update",
			Usage: "Change your nickname and/or profile image",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagNickname,
					Aliases: []string{"n"},
					Usage:   "Change your nickname to the one specified",
				},
				&cli.StringFlag{
					Name:  flagProfileImage,
					Usage: "Upload the image at the specified path as the profile image",
				},
				cliFlagOutput,
			},
			Action: sessionAction(userUpdate),
		},
	},
}

func userTable(user authx.User) func() *uitable.Table {
	return func() *uitable.Table {
		table := uitable.New()
		table.AddRow("ID", "EMAIL", "NICKNAME", "PROFILE IMAGE")
		table.AddRow(user.ID, user.Email, user.Nickname, user.ProfileImage)
		return table
	}
}

func userGet(c *cli.Context, s *session) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}
	id := c.Int64(flagID)
	if id == 0 {
		var err error
		if id, err = s.requireLogin(); err != nil {
			return err
		}
	}
	user, err := s.client.Authx().Users().Get(c.Context, id)
	if err != nil {
		return err
	}
	return printOutput(os.Stdout, output, user, userTable(user))
}

func userUpdate(c *cli.Context, s *session) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}
	id, err := s.requireLogin()
	if err != nil {
		return err
	}
	nickname := c.String(flagNickname)
	if nickname != "" {
		if err = validateNickname(nickname); err != nil {
			return err
		}
	}
	profileImage, err := fileFlag(c, flagProfileImage)
	if err != nil {
		return err
	}
	if nickname == "" && profileImage == nil {
		return errors.Errorf(
			"nothing to update; specify --%s and/or --%s",
			flagNickname,
			flagProfileImage,
		)
	}

	update := authx.ProfileUpdate{
		Nickname:     nickname,
		ProfileImage: profileImage,
	}
	if profileImage != nil {
		update.OldFileName = s.state.ProfileImage
	}
	user, err := s.client.Authx().Users().Update(c.Context, id, update)
	if err != nil {
		return err
	}
	if user.Nickname != "" {
		s.state.Nickname = user.Nickname
	}
	if user.ProfileImage != "" {
		s.state.ProfileImage = user.ProfileImage
	}
	return printOutput(os.Stdout, output, user, userTable(user))
}

func userDelete(c *cli.Context, s *session) error {
	id, err := s.requireLogin()
	if err != nil {
		return err
	}
	if confirmed, err := confirmed(c); err != nil {
		return err
	} else if !confirmed {
		return nil
	}
	if err = s.client.Authx().Users().Delete(c.Context, id); err != nil {
		return err
	}
	s.state.Clear()
	fmt.Println("Your account has been deleted.")
	return nil
}

func userPassword(c *cli.Context, s *session) error {
	id, err := s.requireLogin()
	if err != nil {
		return err
	}
	password, err := newPassword(c.String(flagPassword))
	if err != nil {
		return err
	}
	if err = s.client.Authx().Users().UpdatePassword(
		c.Context,
		id,
		password,
	); err != nil {
		return err
	}
	fmt.Println("Your password has been changed.")
	return nil
}

func userCheckEmail(c *cli.Context, s *session) error {
	email := c.Args().First()
	if email == "" {
		return errors.New("an email address is required")
	}
	available, err := s.client.Authx().Users().CheckEmail(c.Context, email)
	if err != nil {
		return err
	}
	printAvailability(email, available)
	return nil
}

func userCheckNickname(c *cli.Context, s *session) error {
	nickname := c.Args().First()
	if err := validateNickname(nickname); err != nil {
		return err
	}
	available, err :=
		s.client.Authx().Users().CheckNickname(c.Context, nickname)
	if err != nil {
		return err
	}
	printAvailability(nickname, available)
	return nil
}

func printAvailability(value string, available bool) {
	if available {
		fmt.Printf("%s is available.\n", value)
		return
	}
	fmt.Printf("%s is already in use.\n", value)
}
