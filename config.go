/*
 * config.go, part of gomc.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package mc

import (
	"gopkg.in/gcfg.v1"
)

const ExampleConfigFile = `[Simulation]

#######################
# Required Parameters #
#######################

# How the initial configuration is generated. Either "random" or "file".
Method = random

# Reduced temperature of the run. Must be positive.
ReducedTemp = 0.9

# Initial maximum trial displacement, in reduced units. With tuning on
# (the default) this only sets the starting point of the controller.
MaxDisplacement = 0.1

# Cutoff radius for the Lennard-Jones interactions, in reduced units.
Cutoff = 3.0

# Required iff Method = random: number of particles and reduced density.
NumParticles = 100
ReducedDen = 0.9

# Required iff Method = file: the configuration file to load.
# FileName = path/to/configuration.txt

#######################
# Optional Parameters #
#######################

# Adapt the maximum displacement towards a ~40% acceptance rate. On unless
# switched off here.
# TuneDisplacement = true

# Seed for the random source. 0 (the default) seeds from the clock; any
# other value makes the run reproducible.
# Seed = 0

[Run]

# Number of MC steps to take.
Steps = 5000

# Logging cadence, in steps. Snapshots, trajectory frames and displacement
# tuning all happen every Freq steps.
Freq = 100

# Directory for the run log, snapshots and plot. Created if missing.
SaveDir = ./results

# Write a numbered snapshot of the configuration every Freq steps.
# SaveSnaps = false

# If set, append a compressed trajectory frame every Freq steps into this
# file (relative to SaveDir). The extension picks the compressor: .zst for
# zstd, .gz for gzip, .fl for flate.
# Traj = traj.zst

# If set, plot the energy trace to this file at the end of the run.
# Plot = energy.png`

//SimulationConfig mirrors the [Simulation] section of a config file: the
//construction surface of the engine.
type SimulationConfig struct {
	Method           string
	ReducedTemp      float64
	MaxDisplacement  float64
	Cutoff           float64
	NumParticles     int
	ReducedDen       float64
	FileName         string
	TuneDisplacement bool
	Seed             int64
}

//RunConfig mirrors the [Run] section of a config file: the invocation
//surface of Run, plus the names of the optional trajectory and plot files.
type RunConfig struct {
	Steps     int
	Freq      int
	SaveDir   string
	SaveSnaps bool
	Traj      string
	Plot      string
}

//Config is the whole configuration of a simulation run, as read from a
//gcfg-style INI file (see ExampleConfigFile).
type Config struct {
	Simulation SimulationConfig
	Run        RunConfig
}

//DefaultConfig returns a Config pre-filled with the same defaults as
//DefaultParams and DefaultRunOptions, so a config file only needs to state
//what differs from them.
func DefaultConfig() *Config {
	p := DefaultParams()
	o := DefaultRunOptions()
	ret := new(Config)
	ret.Simulation = SimulationConfig{
		Method:           p.Method,
		ReducedTemp:      p.ReducedTemp,
		MaxDisplacement:  p.MaxDisplacement,
		Cutoff:           p.Cutoff,
		NumParticles:     p.NumParticles,
		ReducedDen:       p.ReducedDen,
		TuneDisplacement: p.TuneDisplacement,
	}
	ret.Run = RunConfig{
		Steps:     5000,
		Freq:      o.Freq,
		SaveDir:   o.SaveDir,
		SaveSnaps: o.SaveSnaps,
	}
	return ret
}

//ReadConfigFile reads a configuration from the file fileName. Fields not
//given keep their defaults. Syntax or type problems surface as
//BadConfiguration errors; the parameter values themselves are validated
//later, by New and Run.
func ReadConfigFile(fileName string) (*Config, error) {
	c := DefaultConfig()
	if err := gcfg.ReadFileInto(c, fileName); err != nil {
		return nil, mcError{"can't read config file: " + err.Error(), BadConfiguration, []string{"ReadConfigFile"}, true}
	}
	return c, nil
}

//ReadConfigString is ReadConfigFile for an in-memory configuration text.
func ReadConfigString(conf string) (*Config, error) {
	c := DefaultConfig()
	if err := gcfg.ReadStringInto(c, conf); err != nil {
		return nil, mcError{"can't read config: " + err.Error(), BadConfiguration, []string{"ReadConfigString"}, true}
	}
	return c, nil
}

//Params turns the [Simulation] section into engine construction parameters.
func (c *Config) Params() *Params {
	s := c.Simulation
	return &Params{
		Method:           s.Method,
		ReducedTemp:      s.ReducedTemp,
		MaxDisplacement:  s.MaxDisplacement,
		Cutoff:           s.Cutoff,
		NumParticles:     s.NumParticles,
		ReducedDen:       s.ReducedDen,
		FileName:         s.FileName,
		TuneDisplacement: s.TuneDisplacement,
		Seed:             s.Seed,
	}
}

//RunOptions turns the [Run] section into run options. The trajectory
//writer, if any, is the caller's to build and set, as it is an open file.
func (c *Config) RunOptions() *RunOptions {
	r := c.Run
	return &RunOptions{
		Freq:      r.Freq,
		SaveDir:   r.SaveDir,
		SaveSnaps: r.SaveSnaps,
	}
}
