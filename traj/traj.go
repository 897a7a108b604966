package traj

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	v3 "github.com/MolSSI-Education/gomc/v3"
	"github.com/klauspost/compress/zstd"
)

//Package traj reads and writes compressed snapshot trajectories of a Monte
//Carlo run. The format is plain text under the compressor: a header line
//"** natoms boxlength", then one frame per logging interval, each frame one
//line per particle with the coordinates as scaled integers, terminated by a
//"*" line. The file extension picks the compressor: .zst for zstd, .gz for
//gzip, .fl for flate; anything else gets zstd.

const defaultPrec = 4

//Write!
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	natoms    int
	filename  string
	writeable bool
	prec      int
}

//NewWriter opens a trajectory for writing frames of natoms particles in a
//cubic box of edge boxLength. The optional prec is the number of decimals
//kept per coordinate (default 4).
func NewWriter(name string, natoms int, boxLength float64, prec ...int) (*Writer, error) {
	W := new(Writer)
	var err error
	W.prec = defaultPrec
	if len(prec) > 0 && prec[0] > 0 {
		W.prec = prec[0]
	}
	W.f, err = os.Create(name)
	if err != nil {
		return nil, err
	}
	W.h, err = newCompressor(W.f, filepath.Ext(name))
	if err != nil {
		W.f.Close()
		return nil, Error{"can't set up the compressor: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	W.natoms = natoms
	W.filename = name
	W.writeable = true
	fmt.Fprintf(W.h, "** %d %.*f %d\n", natoms, W.prec, boxLength, W.prec)
	return W, nil
}

//WNext writes the next frame of the trajectory from the given coordinates.
func (W *Writer) WNext(coord *v3.Matrix) error {
	if !W.writeable {
		return Error{TrajUnIniWrite, W.filename, []string{"WNext"}, true}
	}
	if coord == nil {
		return Error{NilCoordinates, W.filename, []string{"WNext"}, true}
	}
	v := coord.NVecs()
	if v != W.natoms {
		return Error{fmt.Sprintf("%d coordinates given, but %d expected", v, W.natoms), W.filename, []string{"WNext"}, true}
	}
	var floats [3]float64
	for i := 0; i < v; i++ {
		floats[0] = coord.At(i, 0)
		floats[1] = coord.At(i, 1)
		floats[2] = coord.At(i, 2)
		if _, err := W.h.Write([]byte(coordsEncode(floats, W.prec))); err != nil {
			return Error{err.Error(), W.filename, []string{"WNext"}, true}
		}
	}
	W.h.Write([]byte("*\n"))
	return nil
}

//Len returns the number of atoms per frame.
func (W *Writer) Len() int {
	return W.natoms
}

//Close flushes and closes the trajectory. The Writer can not be used after
//this call. Closing twice is harmless.
func (W *Writer) Close() {
	if W == nil || !W.writeable {
		return
	}
	W.h.Close()
	W.f.Close()
	W.writeable = false
}

func coordsEncode(f [3]float64, prec int) string {
	p := math.Pow(10.0, float64(prec))
	var temp [3]int
	for i, v := range f {
		temp[i] = int(math.RoundToEven(v * p))
	}
	return fmt.Sprintf("%d %d %d\n", temp[0], temp[1], temp[2])
}

func coordsDecode(str string, temp *[3]float64, prec int) error {
	p := math.Pow(10.0, float64(prec))
	s := strings.Fields(str)
	if len(s) != 3 {
		return fmt.Errorf("ill-formed coordinates line: %q", str)
	}
	for i, v := range s {
		f, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("can't parse coordinate %d (%s): %s", i, v, err.Error())
		}
		temp[i] = float64(f) / p
	}
	return nil
}

//Read!
type Reader struct {
	f         *os.File
	z         io.ReadCloser
	h         *bufio.Reader
	natoms    int
	boxLength float64
	filename  string
	prec      int
	readable  bool
}

//zstd.Decoder does not implement io.ReadCloser, as its Close returns
//nothing, hence this wrapper.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.closeql()
	return nil
}

//New opens a trajectory for reading and returns the handle. The header is
//read right away, so Len and BoxLength work before the first Next.
func New(name string) (*Reader, error) {
	R := new(Reader)
	R.natoms = -1
	R.prec = defaultPrec
	R.filename = name
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, err
	}
	R.z, err = newDecompressor(bufio.NewReader(R.f), filepath.Ext(name))
	if err != nil {
		R.f.Close()
		return nil, Error{"can't set up the decompressor: " + err.Error(), name, []string{"New"}, true}
	}
	R.h = bufio.NewReader(R.z)
	str, err := R.h.ReadString('\n')
	if err != nil {
		return nil, Error{"can't read header: " + err.Error(), name, []string{"New"}, true}
	}
	fields := strings.Fields(str)
	if len(fields) < 3 || fields[0] != "**" {
		return nil, Error{fmt.Sprintf("malformed header %q", str), name, []string{"New"}, true}
	}
	R.natoms, err = strconv.Atoi(fields[1])
	if err != nil {
		return nil, Error{"can't read the atom number from the header: " + err.Error(), name, []string{"New"}, true}
	}
	R.boxLength, err = strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return nil, Error{"can't read the box length from the header: " + err.Error(), name, []string{"New"}, true}
	}
	if len(fields) > 3 {
		prec, err := strconv.Atoi(fields[3])
		if err == nil && prec > 0 {
			R.prec = prec
		}
	}
	R.readable = true
	return R, nil
}

//Next puts in c the coordinates for the next frame of the trajectory. A nil
//c skips the frame, still checking it for correctness. At the end of the
//trajectory Next closes the handle and returns a LastFrameError, which is
//not an actual failure.
func (R *Reader) Next(c *v3.Matrix) error {
	if !R.readable {
		return Error{TrajUnIniRead, R.filename, []string{"Next"}, true}
	}
	var temp [3]float64
	for i := 0; i < R.natoms; i++ {
		str, err := R.h.ReadString('\n')
		if err != nil {
			//EOF can only be the normal end of the trajectory when no
			//atoms of this frame have been read yet.
			if err == io.EOF && i == 0 {
				R.Close()
				return newlastFrameError(R.filename, "Next")
			}
			return Error{err.Error(), R.filename, []string{"Next"}, true}
		}
		if err := coordsDecode(str, &temp, R.prec); err != nil {
			return Error{err.Error(), R.filename, []string{"Next"}, true}
		}
		if c == nil {
			continue
		}
		for j, v := range temp {
			c.Set(i, j, v)
		}
	}
	str, err := R.h.ReadString('\n')
	if err != nil {
		return Error{"can't read the frame termination mark: " + err.Error(), R.filename, []string{"Next"}, true}
	}
	if str[0] != '*' {
		return Error{WrongFormat, R.filename, []string{"Next"}, true}
	}
	return nil
}

//Readable returns true if it is possible to call Next on the handle.
func (R *Reader) Readable() bool {
	return R.readable
}

//Len returns the number of atoms in each frame of the trajectory.
func (R *Reader) Len() int {
	return R.natoms
}

//BoxLength returns the edge of the cubic box the frames live in.
func (R *Reader) BoxLength() float64 {
	return R.boxLength
}

//Close closes the handle and marks it unreadable.
func (R *Reader) Close() {
	if !R.readable {
		return
	}
	R.z.Close()
	R.f.Close()
	R.readable = false
}

func newCompressor(w io.Writer, ext string) (io.WriteCloser, error) {
	switch ext {
	case ".gz":
		return gzip.NewWriterLevel(w, gzip.BestCompression)
	case ".fl":
		return flate.NewWriter(w, flate.BestCompression)
	default:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
}

func newDecompressor(r io.Reader, ext string) (io.ReadCloser, error) {
	switch ext {
	case ".gz":
		return gzip.NewReader(r)
	case ".fl":
		return flate.NewReader(r), nil
	default:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return &zstdql{d.Close, d}, nil
	}
}
