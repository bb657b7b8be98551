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

package version

import (
	"fmt"
	"runtime/debug"
)

// The name to use when referring to the application
const ApplicationName = "Goric"

// version string taken from the module information in the build. the string
// is "local" when there is no vcs information, which can happen when
// compiling/running with "go run ."
var version string

// revision contains the vcs revision. if the source has been modified but
// has not been committed then the string is suffixed with "+dirty"
var revision string

// Version returns the version string and the vcs revision.
func Version() (string, string) {
	return version, revision
}

func init() {
	version = "local"
	revision = "no revision information"

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	var vcsModified bool

	for _, v := range info.Settings {
		switch v.Key {
		case "vcs":
			version = "unreleased"
		case "vcs.revision":
			revision = v.Value
		case "vcs.modified":
			vcsModified = v.Value == "true"
		}
	}

	if vcsModified && revision != "no revision information" {
		revision = fmt.Sprintf("%s+dirty", revision)
	}
}
