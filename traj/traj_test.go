package traj

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"

	mc "github.com/MolSSI-Education/gomc"
	v3 "github.com/MolSSI-Education/gomc/v3"
)

//Writes a few frames with each compressor and reads them back, checking
//that the coordinates survive to the precision the format keeps.
func TestTrajRoundTrip(Te *testing.T) {
	const natoms = 5
	const frames = 3
	const boxLength = 8.0
	rng := rand.New(rand.NewSource(13))
	written := make([]*v3.Matrix, frames)
	for k := range written {
		written[k] = v3.Zeros(natoms)
		for i := 0; i < natoms; i++ {
			for j := 0; j < 3; j++ {
				written[k].Set(i, j, (rng.Float64()-0.5)*boxLength)
			}
		}
	}
	for _, ext := range []string{".zst", ".gz", ".fl"} {
		name := filepath.Join(Te.TempDir(), "test"+ext)
		w, err := NewWriter(name, natoms, boxLength)
		if err != nil {
			Te.Fatal(err)
		}
		for _, frame := range written {
			if err := w.WNext(frame); err != nil {
				Te.Error(err)
			}
		}
		w.Close()
		fmt.Println("Wrote", frames, "frames to", name)

		r, err := New(name)
		if err != nil {
			Te.Fatal(err)
		}
		if r.Len() != natoms {
			Te.Errorf("%s: %d atoms per frame, want %d", ext, r.Len(), natoms)
		}
		if r.BoxLength() != boxLength {
			Te.Errorf("%s: box length %v, want %v", ext, r.BoxLength(), boxLength)
		}
		read := v3.Zeros(natoms)
		k := 0
		for ; ; k++ {
			err := r.Next(read)
			if err != nil {
				if _, ok := err.(mc.LastFrameError); ok {
					break //the normal end of the trajectory
				}
				Te.Fatal(err)
			}
			for i := 0; i < natoms; i++ {
				for j := 0; j < 3; j++ {
					diff := read.At(i, j) - written[k].At(i, j)
					if diff > 0.5e-4 || diff < -0.5e-4 {
						Te.Errorf("%s frame %d (%d,%d): %v read, %v written", ext, k, i, j, read.At(i, j), written[k].At(i, j))
					}
				}
			}
		}
		if k != frames {
			Te.Errorf("%s: read %d frames, want %d", ext, k, frames)
		}
	}
}

func TestTrajMisuse(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "misuse.zst")
	w, err := NewWriter(name, 3, 5.0)
	if err != nil {
		Te.Fatal(err)
	}
	if err := w.WNext(nil); err == nil {
		Te.Error("writing a nil frame did not fail")
	}
	if err := w.WNext(v3.Zeros(7)); err == nil {
		Te.Error("writing a frame of the wrong size did not fail")
	}
	w.WNext(v3.Zeros(3))
	w.Close()
	w.Close() //harmless
	if err := w.WNext(v3.Zeros(3)); err == nil {
		Te.Error("writing after Close did not fail")
	}

	r, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	//A nil matrix skips the frame but still checks it.
	if err := r.Next(nil); err != nil {
		Te.Error(err)
	}
	err = r.Next(nil)
	if _, ok := err.(mc.LastFrameError); !ok {
		Te.Errorf("expected the normal last-frame termination, got %v", err)
	}
	if r.Readable() {
		Te.Error("the handle should not be readable past the last frame")
	}
	if err := r.Next(nil); err == nil {
		Te.Error("reading a closed trajectory did not fail")
	}
}
