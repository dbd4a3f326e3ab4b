package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var pingCommand = &cli.Command{
	Name:   "ping",
	Usage:  "Check that the API server is up",
	Action: sessionAction(ping),
}

func ping(c *cli.Context, s *session) error {
	if err := s.client.System().Health().Check(c.Context); err != nil {
		return err
	}
	fmt.Printf("The API server at %s is up.\n", s.apiAddress)
	return nil
}
