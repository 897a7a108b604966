package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	mc "github.com/MolSSI-Education/gomc"
	"github.com/MolSSI-Education/gomc/mcplot"
	"github.com/MolSSI-Education/gomc/traj"
)

//mcrun runs a Metropolis Monte Carlo simulation described by a gcfg
//configuration file, writing the run log, optional snapshots, an optional
//compressed trajectory and an optional energy plot to the save directory.

func main() {
	var (
		configFile    string
		exampleConfig bool
		steps         int
	)
	flag.StringVar(
		&configFile, "Config", "",
		"Configuration file for the run. See -ExampleConfig.",
	)
	flag.BoolVar(
		&exampleConfig, "ExampleConfig", false,
		"Print an example configuration file to stdout and exit.",
	)
	flag.IntVar(
		&steps, "Steps", 0,
		"Overrides the step count of the configuration file, if positive.",
	)
	flag.Parse()

	if exampleConfig {
		fmt.Println(mc.ExampleConfigFile)
		return
	}

	var conf *mc.Config
	var err error
	if configFile == "" {
		conf = mc.DefaultConfig()
	} else {
		conf, err = mc.ReadConfigFile(configFile)
		if err != nil {
			log.Fatal(err.Error())
		}
	}
	if steps > 0 {
		conf.Run.Steps = steps
	}

	sim, err := mc.New(conf.Params())
	if err != nil {
		log.Fatal(err.Error())
	}
	opts := conf.RunOptions()
	if conf.Run.Traj != "" {
		if err := os.MkdirAll(opts.SaveDir, 0755); err != nil {
			log.Fatal(err.Error())
		}
		g := sim.Snapshot()
		w, err := traj.NewWriter(filepath.Join(opts.SaveDir, conf.Run.Traj), g.Len(), g.BoxLength())
		if err != nil {
			log.Fatal(err.Error())
		}
		defer w.Close()
		opts.Traj = w
	}

	if err := sim.Run(conf.Run.Steps, opts); err != nil {
		log.Fatal(err.Error())
	}
	fmt.Printf("Sim takes %10.5f seconds per 1000 steps\n", sim.Performance())

	if conf.Run.Plot != "" {
		trace, err := sim.EnergyTrace()
		if err != nil {
			log.Fatal(err.Error())
		}
		name := filepath.Join(opts.SaveDir, conf.Run.Plot)
		if err := mcplot.EnergyTrace(trace, sim.LogFreq(), name); err != nil {
			log.Fatal(err.Error())
		}
	}
}
