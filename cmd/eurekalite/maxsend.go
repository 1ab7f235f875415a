package main

import (
	"github.com/urfave/cli/v2"

	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

var maxsend = cli.Command{
	Name:   "maxsend",
	Usage:  "print the maximum spendable amount after fees",
	Action: maxSendAction,
}

func maxSendAction(ctx *cli.Context) error {
	resp, err := request(ctx, bus.GetMaxEurekaCoinSend, nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
