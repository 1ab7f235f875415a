package main

import (
	"github.com/urfave/cli/v2"

	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

var walletinfo = cli.Command{
	Name:   "walletinfo",
	Usage:  "print the cached balance snapshot of the session wallet",
	Action: walletInfoAction,
}

func walletInfoAction(ctx *cli.Context) error {
	resp, err := request(ctx, bus.GetWalletInfo, nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
