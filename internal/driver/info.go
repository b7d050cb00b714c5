package driver

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"marker/internal/version"
)

// InfoFlag makes the driver print its Info and exit.
const InfoFlag = "--marker-info"

// Info identifies a driver build. The orchestrator refuses drivers whose
// APIVersion differs from its own.
type Info struct {
	Toolchain  string `msgpack:"toolchain"`
	Version    string `msgpack:"version"`
	APIVersion string `msgpack:"api_version"`
}

// CurrentInfo describes this binary.
func CurrentInfo() Info {
	return Info{
		Toolchain:  version.DefaultToolchain,
		Version:    version.Plain(),
		APIVersion: version.APIVersion,
	}
}

// Compatible reports whether lint crates built for this process can be
// loaded by the described driver.
func (i Info) Compatible() bool {
	return i.APIVersion == version.APIVersion
}

// WriteInfo encodes info to w.
func WriteInfo(w io.Writer, info Info) error {
	return msgpack.NewEncoder(w).Encode(&info)
}

// ReadInfo decodes the output of `<driver> --marker-info`.
func ReadInfo(data []byte) (Info, error) {
	var info Info
	if err := msgpack.NewDecoder(bytes.NewReader(data)).Decode(&info); err != nil {
		return Info{}, fmt.Errorf("driver info: %w", err)
	}
	if info.APIVersion == "" {
		return Info{}, fmt.Errorf("driver info: missing api version")
	}
	return info, nil
}
