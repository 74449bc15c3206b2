// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"codeberg.org/oliverandrich/donatetracker/internal/config"
	"codeberg.org/oliverandrich/donatetracker/internal/server"
)

func main() {
	cmd := &cli.Command{
		Name:   "donatetracker",
		Usage:  "Start the donation tracking web application",
		Flags:  config.Flags(),
		Action: server.Run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
