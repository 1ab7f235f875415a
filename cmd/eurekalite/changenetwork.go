package main

import (
	"github.com/urfave/cli/v2"

	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

var changenetwork = cli.Command{
	Name:  "changenetwork",
	Usage: "switch the active network, closing any open session",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:     "index",
			Usage:    "the network index: 0 mainnet, 1 testnet, 2 regtest",
			Required: true,
		},
	},
	Action: changeNetworkAction,
}

func changeNetworkAction(ctx *cli.Context) error {
	resp, err := request(ctx, bus.ChangeNetwork, map[string]int{
		"networkIndex": ctx.Int("index"),
	})
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
