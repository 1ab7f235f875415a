package main

import (
	"github.com/urfave/cli/v2"

	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

var send = cli.Command{
	Name:  "send",
	Usage: "send coins to an address",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "to",
			Usage:    "the receiver address",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "the amount in whole coins",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "speed",
			Usage: "the transaction speed: slow, normal or fast",
			Value: "normal",
		},
	},
	Action: sendAction,
}

func sendAction(ctx *cli.Context) error {
	resp, err := request(ctx, bus.SendTokens, map[string]interface{}{
		"receiverAddress":  ctx.String("to"),
		"amount":           ctx.String("amount"),
		"transactionSpeed": ctx.String("speed"),
	})
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
