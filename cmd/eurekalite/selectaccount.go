package main

import (
	"github.com/urfave/cli/v2"

	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

var selectaccount = cli.Command{
	Name:  "selectaccount",
	Usage: "log into one of the stored accounts",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "name",
			Usage:    "the name of the account to log into",
			Required: true,
		},
	},
	Action: selectAccountAction,
}

func selectAccountAction(ctx *cli.Context) error {
	resp, err := request(ctx, bus.AccountLogin, map[string]string{
		"selectedWalletName": ctx.String("name"),
	})
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
