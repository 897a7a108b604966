/*
 * errors.go, part of gomc.
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

import "fmt"

//ErrorKind classifies the failures a simulation can report. Every error
//returned by this package carries exactly one kind, so callers can branch
//on the class of failure without parsing messages.
type ErrorKind int

const (
	//BadConfiguration signals missing or contradictory construction
	//arguments (wrong method, non-positive temperature or density...).
	//The simulation never starts.
	BadConfiguration ErrorKind = iota + 1
	//InconsistentData signals a loaded file that disagrees with itself,
	//e.g. the declared particle count does not match the coordinate rows.
	InconsistentData
	//ResourceConflict signals a save target that already exists. The
	//write is aborted and no partial file is left behind.
	ResourceConflict
	//NotRunning signals a query that only makes sense after at least one
	//step has run, such as asking for the energy trace of a fresh engine.
	NotRunning
)

//Error is the interface for errors that all packages in this library implement.
//The Decorate method allows to add and retrieve info from the error, without
//changing its type or wrapping it around something else. The decoration slice
//should contain a list of functions in the calling stack plus, for each
//function, any relevant information, in the format "FunctionName: Extra info".
type Error interface {
	Error() string
	Decorate(string) []string
	Critical() bool
}

//TrajError is the interface for errors in trajectories.
type TrajError interface {
	Error
	FileName() string
	Format() string
}

//LastFrameError is a TrajError that only signals the normal end of a
//trajectory, so it can be filtered in a type switch that looks for this
//interface.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination() //does nothing, just to separate this interface from other TrajErrors
}

//mcError is the concrete error for the mc package. It carries the kind of
//failure along with the usual message/decoration/criticality.
type mcError struct {
	message  string
	kind     ErrorKind
	deco     []string
	critical bool
}

func (err mcError) Error() string {
	return fmt.Sprintf("gomc: %s", err.message)
}

//Decorate will add the dec string to the decoration slice of strings of the
//error, and return the resulting slice.
func (err mcError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored.
func (err mcError) Critical() bool { return err.critical }

//Kind returns the kind of the error.
func (err mcError) Kind() ErrorKind { return err.kind }

//Kind returns the ErrorKind carried by err, or 0 if err is not an error
//produced by this package.
func Kind(err error) ErrorKind {
	type kinder interface {
		Kind() ErrorKind
	}
	if e, ok := err.(kinder); ok {
		return e.Kind()
	}
	return 0
}

//errDecorate asserts that err implements Error and decorates it with the
//caller's name before returning it. Used with any other error it will panic.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

//PanicMsg is a message used for panics. It does satisfy the error interface,
//but for recoverable conditions use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilCoordinates  = PanicMsg("gomc: nil coordinates given")
	ErrIndexOutOfRange = PanicMsg("gomc: particle index out of range")
	ErrZeroDistance    = PanicMsg("gomc: Lennard-Jones potential evaluated at zero distance")
)
