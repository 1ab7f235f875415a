package main

import (
	"github.com/urfave/cli/v2"

	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

var importmnemonic = cli.Command{
	Name:  "importmnemonic",
	Usage: "create an account from a mnemonic and log into it",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "name",
			Usage:    "the account name",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "mnemonic",
			Usage:    "the mnemonic phrase, quoted",
			Required: true,
		},
	},
	Action: importMnemonicAction,
}

func importMnemonicAction(ctx *cli.Context) error {
	resp, err := request(ctx, bus.ImportMnemonic, map[string]string{
		"accountName":        ctx.String("name"),
		"mnemonicPrivateKey": ctx.String("mnemonic"),
	})
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
