package main

import (
	"github.com/urfave/cli/v2"

	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

var logout = cli.Command{
	Name:   "logout",
	Usage:  "close the current session",
	Action: logoutAction,
}

func logoutAction(ctx *cli.Context) error {
	resp, err := request(ctx, bus.Logout, nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
