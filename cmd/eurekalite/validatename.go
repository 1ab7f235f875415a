package main

import (
	"github.com/urfave/cli/v2"

	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

var validatename = cli.Command{
	Name:  "validatename",
	Usage: "check whether an account name is free on the active network",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "name",
			Usage:    "the account name to check",
			Required: true,
		},
	},
	Action: validateNameAction,
}

func validateNameAction(ctx *cli.Context) error {
	resp, err := request(ctx, bus.ValidateWalletName, map[string]string{
		"name": ctx.String("name"),
	})
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
