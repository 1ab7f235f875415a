package main

import (
	"github.com/urfave/cli/v2"

	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

var importprivatekey = cli.Command{
	Name:  "importprivatekey",
	Usage: "create an account from a WIF private key and log into it",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "name",
			Usage:    "the account name",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "wif",
			Usage:    "the private key in WIF format",
			Required: true,
		},
	},
	Action: importPrivateKeyAction,
}

func importPrivateKeyAction(ctx *cli.Context) error {
	resp, err := request(ctx, bus.ImportPrivateKey, map[string]string{
		"accountName":        ctx.String("name"),
		"mnemonicPrivateKey": ctx.String("wif"),
	})
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
