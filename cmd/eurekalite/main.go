package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var rpcFlag = cli.StringFlag{
	Name:  "rpcserver",
	Usage: "eurekalited daemon address host:port",
	Value: "localhost:9735",
}

func main() {
	app := cli.NewApp()

	app.Version = formatVersion()
	app.Name = "eurekalite CLI"
	app.Usage = "Command line interface for the eurekalited daemon"
	app.Flags = []cli.Flag{&rpcFlag}
	app.Commands = append(
		app.Commands,
		&accounts,
		&validatename,
		&importmnemonic,
		&importprivatekey,
		&login,
		&selectaccount,
		&logout,
		&walletinfo,
		&send,
		&maxsend,
		&transactions,
		&networks,
		&changenetwork,
		&price,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[eurekalite] %v\n", err)
	os.Exit(1)
}

func formatVersion() string {
	return "0.1.0"
}
