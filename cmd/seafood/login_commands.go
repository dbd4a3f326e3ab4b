package main

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pkg/errors"
	"github.com/todayseafood/seafood/sdk/authx"
	"github.com/urfave/cli/v2"
)

var loginCommand = &cli.Command{
	Name:  "login",
	Usage: "Log in to 오늘의 수산",
	Description: "Use --server the first time; later invocations reuse the " +
		"API server address last logged into.",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagEmail,
			Aliases: []string{"e"},
			Usage:   "Log in with the specified email address",
		},
		&cli.StringFlag{
			Name:    flagPassword,
			Aliases: []string{"p"},
			Usage: "Specify the password for non-interactive login; prompted for " +
				"when omitted",
		},
	},
	Action: sessionAction(login),
}

var logoutCommand = &cli.Command{
	Name:   "logout",
	Usage:  "Log out of 오늘의 수산",
	Action: sessionAction(logout),
}

var signupCommand = &cli.Command{
	Name:  "signup",
	Usage: "Register as a new 오늘의 수산 user",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     flagEmail,
			Aliases:  []string{"e"},
			Usage:    "Register with the specified email address (required)",
			Required: true,
		},
		&cli.StringFlag{
			Name:     flagNickname,
			Aliases:  []string{"n"},
			Usage:    "Register with the specified nickname (required)",
			Required: true,
		},
		&cli.StringFlag{
			Name:    flagPassword,
			Aliases: []string{"p"},
			Usage: "Specify the password for non-interactive signup; prompted for " +
				"when omitted",
		},
		&cli.StringFlag{
			Name:  flagProfileImage,
			Usage: "Upload the image at the specified path as the profile image",
		},
	},
	Action: sessionAction(signup),
}

func login(c *cli.Context, s *session) error {
	email, err := inputOrPrompt(
		c.String(flagEmail),
		&survey.Input{Message: "Email"},
	)
	if err != nil {
		return err
	}
	password, err := inputOrPrompt(
		c.String(flagPassword),
		&survey.Password{Message: "Password"},
	)
	if err != nil {
		return err
	}

	result, err := s.client.Authx().Sessions().Login(c.Context, email, password)
	if err != nil {
		return err
	}
	if !result.LoginSuccess {
		return errors.New("login was not successful")
	}

	s.state.SetUser(result)
	if err := saveConfig(
		s.seafoodHome,
		&config{APIAddress: s.apiAddress},
	); err != nil {
		return errors.Wrap(err, "error persisting configuration")
	}

	fmt.Printf("Logged in as %s.\n", result.Nickname)
	return nil
}

func logout(c *cli.Context, s *session) error {
	err := s.client.Authx().Sessions().Logout(c.Context)
	// Local session state goes regardless of whether the API server heard us
	s.state.Clear()
	if err != nil {
		fmt.Fprintf(
			os.Stderr,
			"The API server could not be told about the logout: %s\n",
			err,
		)
	}
	fmt.Println("Logged out.")
	return nil
}

func signup(c *cli.Context, s *session) error {
	email := c.String(flagEmail)
	nickname := c.String(flagNickname)
	if err := validateNickname(nickname); err != nil {
		return err
	}
	profileImage, err := fileFlag(c, flagProfileImage)
	if err != nil {
		return err
	}

	users := s.client.Authx().Users()
	available, err := users.CheckEmail(c.Context, email)
	if err != nil {
		return err
	}
	if !available {
		return errors.Errorf("email address %s is already registered", email)
	}
	if available, err = users.CheckNickname(c.Context, nickname); err != nil {
		return err
	}
	if !available {
		return errors.Errorf("nickname %s is already taken", nickname)
	}

	password, err := newPassword(c.String(flagPassword))
	if err != nil {
		return err
	}

	if _, err = users.Create(
		c.Context,
		authx.UserSignup{
			Email:        email,
			Password:     password,
			Nickname:     nickname,
			ProfileImage: profileImage,
		},
	); err != nil {
		return err
	}

	fmt.Printf(
		"Registered %s. Use `seafood login` to log in.\n",
		nickname,
	)
	return nil
}
