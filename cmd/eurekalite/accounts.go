package main

import (
	"github.com/urfave/cli/v2"

	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

var accounts = cli.Command{
	Name:   "accounts",
	Usage:  "list the accounts stored for the active network",
	Action: accountsAction,
}

func accountsAction(ctx *cli.Context) error {
	resp, err := request(ctx, bus.GetAccounts, nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
