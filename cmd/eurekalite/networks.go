package main

import (
	"github.com/urfave/cli/v2"

	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

var networks = cli.Command{
	Name:   "networks",
	Usage:  "list the available networks and the active selection",
	Action: networksAction,
}

func networksAction(ctx *cli.Context) error {
	resp, err := request(ctx, bus.GetNetworks, nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)

	index, err := request(ctx, bus.GetNetworkIndex, nil)
	if err != nil {
		return err
	}
	printRespJSON(index)
	return nil
}
