package main

import (
	"github.com/urfave/cli/v2"

	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

var login = cli.Command{
	Name:  "login",
	Usage: "start a session with the wallet password",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "password",
			Usage:    "the wallet password",
			Required: true,
		},
	},
	Action: loginAction,
}

func loginAction(ctx *cli.Context) error {
	resp, err := request(ctx, bus.Login, map[string]string{
		"password": ctx.String("password"),
	})
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
