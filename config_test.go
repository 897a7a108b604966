/*
 * config_test.go, part of gomc.
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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExampleConfigParses(t *testing.T) {
	c, err := ReadConfigString(ExampleConfigFile)
	require.NoError(t, err)
	assert.Equal(t, "random", c.Simulation.Method)
	assert.Equal(t, 0.9, c.Simulation.ReducedTemp)
	assert.Equal(t, 3.0, c.Simulation.Cutoff)
	assert.Equal(t, 100, c.Simulation.NumParticles)
	assert.Equal(t, 5000, c.Run.Steps)
	assert.Equal(t, 100, c.Run.Freq)
	assert.Equal(t, "./results", c.Run.SaveDir)
	//The example only uncomments the required fields; everything else must
	//keep its default.
	assert.True(t, c.Simulation.TuneDisplacement)
	assert.False(t, c.Run.SaveSnaps)
	assert.Empty(t, c.Run.Traj)
}

func TestConfigOverridesAndMapping(t *testing.T) {
	conf := `[Simulation]
Method = file
FileName = testdata/sample_config.txt
ReducedTemp = 1.1
MaxDisplacement = 0.2
Cutoff = 4.0
TuneDisplacement = false
Seed = 12345

[Run]
Steps = 250
Freq = 10
SaveDir = /tmp/somewhere
SaveSnaps = true
Traj = traj.gz
Plot = energy.png`
	c, err := ReadConfigString(conf)
	require.NoError(t, err)

	p := c.Params()
	assert.Equal(t, "file", p.Method)
	assert.Equal(t, "testdata/sample_config.txt", p.FileName)
	assert.Equal(t, 1.1, p.ReducedTemp)
	assert.Equal(t, 0.2, p.MaxDisplacement)
	assert.Equal(t, 4.0, p.Cutoff)
	assert.False(t, p.TuneDisplacement)
	assert.Equal(t, int64(12345), p.Seed)

	o := c.RunOptions()
	assert.Equal(t, 10, o.Freq)
	assert.Equal(t, "/tmp/somewhere", o.SaveDir)
	assert.True(t, o.SaveSnaps)
	assert.Equal(t, "traj.gz", c.Run.Traj)
	assert.Equal(t, "energy.png", c.Run.Plot)

	//The parsed construction surface must build a working engine.
	sim, err := New(p)
	require.NoError(t, err)
	assert.Equal(t, 4, sim.Snapshot().Len())
}

func TestConfigFileAndErrors(t *testing.T) {
	name := filepath.Join(t.TempDir(), "run.cfg")
	require.NoError(t, os.WriteFile(name, []byte("[Run]\nSteps = 7\n"), 0644))
	c, err := ReadConfigFile(name)
	require.NoError(t, err)
	assert.Equal(t, 7, c.Run.Steps)
	assert.Equal(t, "random", c.Simulation.Method) //untouched default

	_, err = ReadConfigFile(filepath.Join(t.TempDir(), "missing.cfg"))
	require.Error(t, err)
	assert.Equal(t, BadConfiguration, Kind(err))

	_, err = ReadConfigString("[Simulation]\nReducedTemp = warm\n")
	require.Error(t, err)
	assert.Equal(t, BadConfiguration, Kind(err))

	_, err = ReadConfigString("[Nonsense]\nFoo = 1\n")
	require.Error(t, err)
	assert.Equal(t, BadConfiguration, Kind(err))
}
