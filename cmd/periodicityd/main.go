// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// periodicityd is a CLI harness around the periodicity-mining and
// collision-avoidance engine. It stands in for the host simulator during
// development: it reads an observation or a device population from a
// JSON file, runs one mine or avoid pass, and writes the result back out.
// It never opens a socket and never speaks a wire protocol.
package main

import (
	"context"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli"

	"github.com/xtaci/periodicityd/internal/engine"
)

// VERSION is populated via build flags when packaging official binaries.
var VERSION = "SELFBUILD"

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	myApp := cli.NewApp()
	myApp.Name = "periodicityd"
	myApp.Usage = "periodicity mining and collision avoidance engine"
	myApp.Version = VERSION
	myApp.Commands = []cli.Command{
		mineCommand(),
		avoidCommand(),
	}
	if err := myApp.Run(os.Args); err != nil {
		log.Printf("%+v\n", err)
		os.Exit(-1)
	}
}

func mineCommand() cli.Command {
	return cli.Command{
		Name:  "mine",
		Usage: "mine (period, offset) pairs from a single device's observation sequence",
		Flags: []cli.Flag{
			cli.IntFlag{Name: "dr", Value: 0, Usage: "data rate index, 0-5"},
			cli.Float64Flag{Name: "alpha", Value: 0.5, Usage: "false-positive/true-positive trade-off, 0-1"},
			cli.StringFlag{Name: "obs", Usage: "path to a JSON array of 0/1 observation bits"},
			cli.StringFlag{Name: "out", Usage: "path to write the resulting periodicities as JSON"},
			cli.StringFlag{Name: "log", Usage: "specify a log file to output, default goes to stderr"},
			cli.BoolFlag{Name: "quiet", Usage: "suppress informational log lines"},
			cli.StringFlag{Name: "c", Usage: "config from json file, which will override the command from shell"},
		},
		Action: func(c *cli.Context) error {
			config := Config{
				DR:      c.Int("dr"),
				Alpha:   c.Float64("alpha"),
				ObsPath: c.String("obs"),
				OutPath: c.String("out"),
				Log:     c.String("log"),
				Quiet:   c.Bool("quiet"),
			}
			if c.String("c") != "" {
				if err := parseJSONConfig(&config, c.String("c")); err != nil {
					return err
				}
			}
			redirectLog(config.Log)

			if config.Alpha < 0 || config.Alpha > 1 {
				color.Red("alpha %v is out of [0,1], clamping", config.Alpha)
				if config.Alpha < 0 {
					config.Alpha = 0
				} else {
					config.Alpha = 1
				}
			}

			logf(config.Quiet, "dr:", config.DR)
			logf(config.Quiet, "alpha:", config.Alpha)
			logf(config.Quiet, "obs:", config.ObsPath)

			obs, err := loadObservation(config.ObsPath)
			if err != nil {
				return err
			}

			e, err := engine.New()
			if err != nil {
				return err
			}
			defer e.Close()

			pairs, err := e.Mine(context.Background(), obs, engine.DataRate(config.DR), config.Alpha)
			if err != nil {
				return err
			}
			logf(config.Quiet, "mined pairs:", len(pairs))

			return writeJSONOut(config.OutPath, pairs)
		},
	}
}

func avoidCommand() cli.Command {
	return cli.Command{
		Name:  "avoid",
		Usage: "rewrite offsets across a device population to minimise slot collisions",
		Flags: []cli.Flag{
			cli.IntFlag{Name: "dr", Value: 0, Usage: "data rate index, 0-5"},
			cli.StringFlag{Name: "in", Usage: "path to a JSON array of periodicity records"},
			cli.StringFlag{Name: "out", Usage: "path to write the revised periodicity records as JSON"},
			cli.StringFlag{Name: "log", Usage: "specify a log file to output, default goes to stderr"},
			cli.BoolFlag{Name: "quiet", Usage: "suppress informational log lines"},
			cli.StringFlag{Name: "stats-log", Usage: "path to append an occupancy CSV snapshot, aware of timeformat in golang"},
			cli.IntFlag{Name: "stats-period", Value: 60, Usage: "reporting period recorded alongside the occupancy snapshot, in seconds"},
			cli.StringFlag{Name: "c", Usage: "config from json file, which will override the command from shell"},
		},
		Action: func(c *cli.Context) error {
			config := Config{
				DR:          c.Int("dr"),
				InPath:      c.String("in"),
				OutPath:     c.String("out"),
				Log:         c.String("log"),
				Quiet:       c.Bool("quiet"),
				StatsLog:    c.String("stats-log"),
				StatsPeriod: c.Int("stats-period"),
			}
			if c.String("c") != "" {
				if err := parseJSONConfig(&config, c.String("c")); err != nil {
					return err
				}
			}
			redirectLog(config.Log)

			logf(config.Quiet, "dr:", config.DR)
			logf(config.Quiet, "in:", config.InPath)

			records, err := loadPopulation(config.InPath)
			if err != nil {
				return err
			}
			if len(records) == 1 {
				color.Yellow("a single-device population is never moved by the avoider")
			}

			e, err := engine.New()
			if err != nil {
				return err
			}
			defer e.Close()

			dr := engine.DataRate(config.DR)
			if err := e.Avoid(context.Background(), records, dr); err != nil {
				return err
			}

			moved := 0
			for _, r := range records {
				if r.ChangeThisRound != 0 {
					moved++
				}
			}
			logf(config.Quiet, "devices moved this round:", moved, "/", len(records))

			if config.StatsLog != "" {
				n := dr.Slots()
				if err := writeOccupancyStats(config.StatsLog, config.StatsPeriod, occupancy(records, n)); err != nil {
					log.Println("stats-log:", err)
				}
			}

			return writeJSONOut(config.OutPath, records)
		},
	}
}

func redirectLog(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("%+v\n", err)
		return
	}
	log.SetOutput(f)
}

func logf(quiet bool, v ...any) {
	if !quiet {
		log.Println(v...)
	}
}
