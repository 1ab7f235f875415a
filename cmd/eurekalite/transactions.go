package main

import (
	"github.com/urfave/cli/v2"

	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

var transactions = cli.Command{
	Name:   "transactions",
	Usage:  "load one more page of transaction history",
	Action: transactionsAction,
}

func transactionsAction(ctx *cli.Context) error {
	resp, err := request(ctx, bus.GetMoreTxs, nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
