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

// Package paths contains functions to prepare paths to goric resources.
//
// The policy of ResourcePath() is simple: if the base resource path,
// currently defined to be ".goric", is present in the program's current
// directory then that is the base path that will be used. If it is not
// present, then the user's config directory is used. The package uses
// os.UserConfigDir() from the go standard library for this.
//
// On a modern Linux system, ResourcePath("snapshots", "foo") will
// typically return:
//
//	/home/user/.config/goric/snapshots/foo
package paths

import (
	"os"
	"path/filepath"
)

// the base path for all resources. we don't use this value directly
// except in the getBasePath() function.
const baseResourcePath = ".goric"

// ResourcePath returns the resource string (representing the resource to
// be loaded or created) prepended with operating system specific details.
// All folders up to the final path element are created as required; the
// file itself is not touched.
func ResourcePath(resource ...string) (string, error) {
	p := filepath.Join(append([]string{getBasePath()}, resource...)...)

	if _, err := os.Stat(p); err == nil {
		return p, nil
	}

	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return "", err
	}

	return p, nil
}

// getBasePath returns baseResourcePath if it can be found in the current
// directory, or the equivalent in the user's config directory if not.
func getBasePath() string {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return baseResourcePath
	}
	return filepath.Join(cnf, baseResourcePath[1:])
}
