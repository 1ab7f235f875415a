package main

import (
	"github.com/urfave/cli/v2"

	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

var price = cli.Command{
	Name:   "price",
	Usage:  "print the USD value of the session wallet balance",
	Action: priceAction,
}

func priceAction(ctx *cli.Context) error {
	resp, err := request(ctx, bus.GetEurekaCoinUSD, nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
