/*
 * doc.go, part of gomc.
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

/*Package mc implements a canonical-ensemble Metropolis Monte Carlo simulation
of particles interacting through a truncated Lennard-Jones potential in a
periodic cubic box. Everything is in reduced units (sigma=epsilon=1).


	**gomc Capabilities**

    Generates initial configurations at a given reduced density, or loads
	them from text configuration files, and saves snapshots back in the
	same format.

    Minimum-image distances and coordinate wrapping in a periodic cubic box.

    Truncated Lennard-Jones pair energies with the analytic long-range tail
	correction, evaluated incrementally (O(N) per trial move) during a run.

    The Metropolis step loop: single-particle trial moves, the asymmetric
	acceptance rule, and adaptive tuning of the maximum displacement
	towards a ~40% acceptance rate.

    Runs are resumable: the engine keeps its full state between calls to
	Run, extending the energy trace instead of resetting it.

    Run configuration through gcfg-style INI files (see ExampleConfigFile).

    Compressed snapshot trajectories (subpackage traj) and energy-trace
	plots (subpackage mcplot).


Coordinates are kept in a v3.Matrix, one row per particle, based on the
gonum Dense matrix. The random source driving the run is seedable, so
step-level outcomes can be reproduced exactly.*/
package mc
