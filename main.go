// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/provenanced/storage"
	"github.com/bitmark-inc/provenanced/util"
	"github.com/bitmark-inc/provenanced/version"
)

type metadata struct {
	file    string
	config  *Configuration
	log     *logger.L
	verbose bool
}

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "provenanced"
	app.Usage = "product provenance registry"
	app.Version = version.Version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "",
			Usage: "*configuration file `PATH`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "register",
			Usage:     "register a new product",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner identity `KEY`",
				},
				cli.StringFlag{
					Name:  "product, p",
					Value: "",
					Usage: "*product id `STRING`",
				},
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*product name `STRING`",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: " description `STRING`",
				},
				cli.StringFlag{
					Name:  "origin, g",
					Value: "",
					Usage: "*origin location `STRING`",
				},
				cli.StringFlag{
					Name:  "category, C",
					Value: "",
					Usage: "*category `STRING`",
				},
				cli.StringSliceFlag{
					Name:  "tag, t",
					Usage: " tag `STRING`, repeatable",
				},
				cli.StringSliceFlag{
					Name:  "certification, f",
					Usage: " certification digest `HEX`, repeatable",
				},
				cli.StringSliceFlag{
					Name:  "media, m",
					Usage: " media hash `HEX`, repeatable",
				},
				cli.StringSliceFlag{
					Name:  "custom, x",
					Usage: " custom attribute `KEY=VALUE`, repeatable",
				},
			},
			Action: runRegister,
		},
		{
			Name:      "info",
			Usage:     "display one product",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				productFlag,
			},
			Action: runInfo,
		},
		{
			Name:      "history",
			Usage:     "list the event ids of a product",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				productFlag,
				offsetFlag,
				limitFlag,
			},
			Action: runHistory,
		},
		{
			Name:      "event",
			Usage:     "display one tracking event",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "event, e",
					Value: 0,
					Usage: "*event id `NUMBER`",
				},
			},
			Action: runEvent,
		},
		{
			Name:      "add-event",
			Usage:     "append a tracking event to a product",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "actor, a",
					Value: "",
					Usage: "*actor identity `KEY`",
				},
				productFlag,
				cli.StringFlag{
					Name:  "type, t",
					Value: "",
					Usage: "*event type `SYMBOL`",
				},
				cli.StringFlag{
					Name:  "hash, H",
					Value: "",
					Usage: "*event data hash `HEX`",
				},
				cli.StringFlag{
					Name:  "note, n",
					Value: "",
					Usage: " free text note `STRING`",
				},
			},
			Action: runAddEvent,
		},
		{
			Name:      "transfer",
			Usage:     "transfer a product to a new owner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				ownerFlag,
				productFlag,
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*new owner identity `KEY`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "grant",
			Usage:     "authorize an actor to append events",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				ownerFlag,
				productFlag,
				actorFlag,
			},
			Action: runGrant,
		},
		{
			Name:      "revoke",
			Usage:     "remove an actor's authorization",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				ownerFlag,
				productFlag,
				actorFlag,
			},
			Action: runRevoke,
		},
		{
			Name:      "activate",
			Usage:     "reactivate a product",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				ownerFlag,
				productFlag,
			},
			Action: runActivate,
		},
		{
			Name:      "deactivate",
			Usage:     "deactivate a product, its history is retained",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				ownerFlag,
				productFlag,
			},
			Action: runDeactivate,
		},
		{
			Name:      "authorized",
			Usage:     "check whether an actor may append events",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				productFlag,
				actorFlag,
			},
			Action: runAuthorized,
		},
		{
			Name:      "list",
			Usage:     "list all products in registration order",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				offsetFlag,
				limitFlag,
			},
			Action: runList,
		},
		{
			Name:      "owned",
			Usage:     "list the products registered by an owner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				ownerFlag,
				offsetFlag,
				limitFlag,
			},
			Action: runOwned,
		},
		{
			Name:      "origin",
			Usage:     "list the products from an origin location",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "origin, g",
					Value: "",
					Usage: "*origin location `STRING`",
				},
				offsetFlag,
				limitFlag,
			},
			Action: runOrigin,
		},
		{
			Name:      "typed",
			Usage:     "list a product's events of one type",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				productFlag,
				cli.StringFlag{
					Name:  "type, t",
					Value: "",
					Usage: "*event type `SYMBOL`",
				},
				offsetFlag,
				limitFlag,
			},
			Action: runTyped,
		},
		{
			Name:   "stats",
			Usage:  "display registry counters",
			Action: runStats,
		},
		{
			Name:  "version",
			Usage: "display provenanced version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version.Version)
				return nil
			},
		},
	}

	// open configuration, logging and the database
	app.Before = func(c *cli.Context) error {

		// commands that do not touch the database
		command := c.Args().Get(0)
		if "version" == command || "help" == command || "" == command {
			return nil
		}

		verbose := c.GlobalBool("verbose")
		file := c.GlobalString("config-file")
		if "" == file {
			return fmt.Errorf("missing configuration file, use: --config-file=FILE")
		}
		if !util.EnsureFileExists(file) {
			return fmt.Errorf("configuration file: %q does not exist", file)
		}

		config, err := getConfiguration(file)
		if nil != err {
			return err
		}

		if err := logger.Initialise(config.Logging); nil != err {
			return err
		}
		log := logger.New("main")

		if err := storage.Initialise(config.Database.Name, false); nil != err {
			return err
		}
		log.Infof("database: %s", config.Database.Name)

		c.App.Metadata["config"] = &metadata{
			file:    file,
			config:  config,
			log:     log,
			verbose: verbose,
		}
		return nil
	}

	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		if m.verbose {
			committed, aborted := storage.TransactionCounters()
			fmt.Fprintf(c.App.ErrWriter, "transactions: %d committed, %d aborted\n", committed, aborted)
		}
		storage.Finalise()
		logger.Finalise()
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}

// flags shared by several commands
var (
	ownerFlag = cli.StringFlag{
		Name:  "owner, o",
		Value: "",
		Usage: "*owner identity `KEY`",
	}
	actorFlag = cli.StringFlag{
		Name:  "actor, a",
		Value: "",
		Usage: "*actor identity `KEY`",
	}
	productFlag = cli.StringFlag{
		Name:  "product, p",
		Value: "",
		Usage: "*product id `STRING`",
	}
	offsetFlag = cli.Uint64Flag{
		Name:  "offset, s",
		Value: 0,
		Usage: " start point `NUMBER`",
	}
	limitFlag = cli.Uint64Flag{
		Name:  "limit, l",
		Value: 20,
		Usage: " maximum records to output `NUMBER`",
	}
)
