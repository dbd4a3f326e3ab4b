package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AlecAivazis/survey/v2"
	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/todayseafood/seafood/sdk/meta"
	"github.com/todayseafood/seafood/sdk/restmachinery"
	"github.com/urfave/cli/v2"
	"k8s.io/apimachinery/pkg/util/duration"
)

const (
	maxTitleLength    = 26
	maxNicknameLength = 10
	minPasswordLength = 8
	maxPasswordLength = 20
)

func validateOutputFormat(output string) error {
	switch strings.ToLower(output) {
	case "table", "yaml", "json":
		return nil
	default:
		return errors.Errorf("unknown output format %q", output)
	}
}

// printOutput writes obj to w in the specified format. The table is only
// built when it is needed.
func printOutput(
	w io.Writer,
	output string,
	obj interface{},
	table func() *uitable.Table,
) error {
	switch strings.ToLower(output) {
	case "table":
		fmt.Fprintln(w, table())
	case "yaml":
		yamlBytes, err := yaml.Marshal(obj)
		if err != nil {
			return errors.Wrap(err, "error formatting output")
		}
		fmt.Fprintln(w, string(yamlBytes))
	case "json":
		prettyJSON, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return errors.Wrap(err, "error formatting output")
		}
		fmt.Fprintln(w, string(prettyJSON))
	default:
		return errors.Errorf("unknown output format %q", output)
	}
	return nil
}

func age(t meta.Timestamp) string {
	if t.IsZero() {
		return ""
	}
	return duration.ShortHumanDuration(time.Since(t.Time))
}

func confirmed(c *cli.Context) (bool, error) {
	confirmed := c.Bool(flagYes)
	if confirmed {
		return true, nil
	}
	if err := survey.AskOne(
		&survey.Confirm{
			Message: "This action cannot be undone. Are you sure?",
		},
		&confirmed,
	); err != nil {
		return false, errors.Wrap(err, "error confirming action")
	}
	fmt.Println()
	return confirmed, nil
}

// inputOrPrompt returns value if it is non-empty and otherwise asks for it.
func inputOrPrompt(value string, prompt survey.Prompt) (string, error) {
	for value == "" {
		if err := survey.AskOne(prompt, &value); err != nil {
			return "", err
		}
	}
	return value, nil
}

// newPassword asks for a password twice unless one was supplied.
func newPassword(value string) (string, error) {
	if value != "" {
		return value, validatePassword(value)
	}
	password, err := inputOrPrompt("", &survey.Password{Message: "Password"})
	if err != nil {
		return "", err
	}
	if err = validatePassword(password); err != nil {
		return "", err
	}
	again, err :=
		inputOrPrompt("", &survey.Password{Message: "Confirm password"})
	if err != nil {
		return "", err
	}
	if again != password {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("title must not be empty")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return errors.Errorf(
			"title must be at most %d characters",
			maxTitleLength,
		)
	}
	return nil
}

func validateNickname(nickname string) error {
	if strings.TrimSpace(nickname) == "" {
		return errors.New("nickname must not be empty")
	}
	if utf8.RuneCountInString(nickname) > maxNicknameLength {
		return errors.Errorf(
			"nickname must be at most %d characters",
			maxNicknameLength,
		)
	}
	return nil
}

func validatePassword(password string) error {
	if n := utf8.RuneCountInString(password); n < minPasswordLength ||
		n > maxPasswordLength {
		return errors.Errorf(
			"password must be between %d and %d characters",
			minPasswordLength,
			maxPasswordLength,
		)
	}
	return nil
}

// fileFlag reads the file named by the specified flag, if it was set.
func fileFlag(c *cli.Context, name string) (*restmachinery.File, error) {
	path := c.String(name)
	if path == "" {
		return nil, nil
	}
	return restmachinery.NewFileFromPath(path)
}

// listOptions builds ListOptions from the --page and --size flags.
func listOptions(c *cli.Context) *meta.ListOptions {
	return &meta.ListOptions{
		Page: c.Int(flagPage),
		Size: c.Int(flagSize),
	}
}
