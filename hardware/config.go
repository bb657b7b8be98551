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

package hardware

import (
	"strings"

	"github.com/jtallis/goric/curated"
	"github.com/jtallis/goric/hardware/memory"
	"github.com/jtallis/goric/hardware/ula"
	"github.com/jtallis/goric/programloader"
)

// error messages from configuration validation.
const (
	InvalidVariant = "config: unsupported machine variant (%s)"
	InvalidRAM     = "config: unsupported RAM size"
)

// Config is the machine's fixed configuration, supplied once at creation.
type Config struct {
	// television standard the machine is built for: "PAL" (the default
	// when empty) or "NTSC"
	Variant string

	// how much RAM is fitted
	RAM memory.Size

	// optional program to attach at startup. failure to load it is not
	// fatal; the machine boots bare and the failure is logged
	Startup *programloader.Loader
}

// validate checks the configuration and resolves the variant to a raster
// specification. Configuration errors fail before any machinery is built.
func (cf Config) validate() (ula.Spec, error) {
	var spec ula.Spec

	switch strings.ToUpper(strings.TrimSpace(cf.Variant)) {
	case "", "PAL":
		spec = ula.SpecPAL
	case "NTSC":
		spec = ula.SpecNTSC
	default:
		return ula.Spec{}, curated.Errorf(InvalidVariant, cf.Variant)
	}

	if cf.RAM != memory.RAM48k && cf.RAM != memory.RAM16k {
		return ula.Spec{}, curated.Errorf(InvalidRAM)
	}

	return spec, nil
}
