// This file is part of Goric.
//
// Goric is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Goric is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Goric.  If not, see <https://www.gnu.org/licenses/>.

package programloader

import (
	"crypto/sha1"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/jtallis/goric/curated"
)

// error messages from the loader.
const (
	LoadError      = "programloader: %v"
	UnexpectedHash = "programloader: unexpected hash value"
)

// Kind of program a Loader refers to.
type Kind string

// List of valid Kind values. KindAuto selects by file extension at load
// time.
const (
	KindAuto Kind = "AUTO"
	KindROM  Kind = "ROM"
	KindDisk Kind = "DISK"
	KindTape Kind = "TAPE"
)

// Loader is used to specify the program to attach to the machine at
/// startup: a ROM override, a disk image to insert, or a tape to quick load.
type Loader struct {
	// filename of program to load
	Filename string

	// KindAuto indicates selection by file extension
	Kind Kind

	// expected hash of the loaded file. empty string indicates that the
	// hash is unknown and need not be validated. after a load operation
	// the value will be the hash of the loaded data
	//
	// for sound data (IsSoundData is true) the hash is of the original
	// file, not the decoded PCM data
	Hash string

	// copy of the loaded data
	Data []byte

	// true when the Data field holds an audio recording of a tape rather
	// than tape bytes
	IsSoundData bool
}

// FileExtensions is the list of file extensions that are recognised by the
// programloader package.
var FileExtensions = [...]string{".ROM", ".DSK", ".MFM", ".TAP", ".WAV", ".MP3"}

// NewLoader is the preferred method of initialisation for the Loader type.
//
// The kind argument will be used to set the Kind field, unless the argument
// is KindAuto. In which case the file extension is used to set the field:
// ".rom" for ROM overrides, ".dsk" and ".mfm" for disk images, ".tap",
// ".wav" and ".mp3" for tapes.
func NewLoader(filename string, kind Kind) Loader {
	ld := Loader{
		Filename: filename,
		Kind:     kind,
	}

	if kind == KindAuto || kind == "" {
		switch strings.ToUpper(path.Ext(filename)) {
		case ".ROM":
			ld.Kind = KindROM
		case ".DSK", ".MFM":
			ld.Kind = KindDisk
		case ".TAP":
			ld.Kind = KindTape
		case ".WAV", ".MP3":
			ld.Kind = KindTape
			ld.IsSoundData = true
		default:
			ld.Kind = KindROM
		}
	}

	return ld
}

// ShortName returns a shortened version of the Loader filename.
func (ld Loader) ShortName() string {
	sn := path.Base(ld.Filename)
	return strings.TrimSuffix(sn, path.Ext(ld.Filename))
}

// HasLoaded returns true if Load() has been successfully called.
func (ld Loader) HasLoaded() bool {
	return len(ld.Data) > 0
}

// Load the program data. Loader filenames with a valid schema will use that
// method to load the data. Currently supported schemes are HTTP and local
// files.
func (ld *Loader) Load() error {
	if len(ld.Data) > 0 {
		return nil
	}

	scheme := "file"

	url, err := url.Parse(ld.Filename)
	if err == nil {
		scheme = url.Scheme
	}

	switch scheme {
	case "http", "https":
		resp, err := http.Get(ld.Filename)
		if err != nil {
			return curated.Errorf(LoadError, err)
		}
		defer resp.Body.Close()

		ld.Data, err = ioutil.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf(LoadError, err)
		}

	case "file", "":
		ld.Data, err = os.ReadFile(ld.Filename)
		if err != nil {
			return curated.Errorf(LoadError, err)
		}

	default:
		return curated.Errorf(LoadError, fmt.Sprintf("unsupported URL scheme (%s)", scheme))
	}

	hash := fmt.Sprintf("%x", sha1.Sum(ld.Data))
	if ld.Hash != "" && ld.Hash != hash {
		return curated.Errorf(UnexpectedHash)
	}
	ld.Hash = hash

	return nil
}
