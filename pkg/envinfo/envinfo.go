// Package envinfo classifies the host environment: operating system
// family, native package manager, and privilege level. Classification
// never fails; unresolvable signals degrade to the unknown values so
// deployment can proceed best-effort.
package envinfo

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/confsync/confsync/pkg/logging"
	"github.com/confsync/confsync/pkg/types"
)

// osReleasePath is the standard location of the distro identification
// file on Linux.
const osReleasePath = "/etc/os-release"

// archVariants are distros that identify themselves with their own ID
// but are pacman-based Arch derivatives.
var archVariants = map[string]bool{
	"manjaro":     true,
	"endeavouros": true,
	"garuda":      true,
	"artix":       true,
}

// familyManagers maps each OS family to its native package manager.
var familyManagers = map[types.OSFamily]types.PackageManager{
	types.OSMacOS:       types.PMBrew,
	types.OSDebian:      types.PMApt,
	types.OSRHEL:        types.PMYum,
	types.OSFedora:      types.PMDnf,
	types.OSArch:        types.PMPacman,
	types.OSArchVariant: types.PMPacman,
	types.OSAlpine:      types.PMApk,
	types.OSOpenSUSE:    types.PMZypper,
}

// probeOrder is the fixed order in which package manager binaries are
// probed when the family's native manager is absent or the family is
// unknown. The order is fixed so classification is deterministic.
var probeOrder = []types.PackageManager{
	types.PMBrew,
	types.PMApt,
	types.PMDnf,
	types.PMYum,
	types.PMPacman,
	types.PMApk,
	types.PMZypper,
}

// Classify inspects host signals and produces an immutable environment
// descriptor. It reads only host identification data and never errors.
func Classify() types.EnvironmentDescriptor {
	release, _ := parseOSRelease(osReleasePath)
	return classify(runtime.GOOS, release, os.Geteuid(), exec.LookPath)
}

// classify is the pure core of Classify, parameterized for tests.
func classify(goos string, release map[string]string, euid int, lookPath func(string) (string, error)) types.EnvironmentDescriptor {
	logger := logging.GetLogger("envinfo")

	desc := types.EnvironmentDescriptor{
		OSFamily:       types.OSUnknown,
		PackageManager: types.PMUnknown,
		IsElevatedUser: euid == 0,
	}

	switch goos {
	case "darwin":
		desc.OSFamily = types.OSMacOS
	case "linux":
		family, variant := classifyLinux(release)
		desc.OSFamily = family
		desc.VendorVariant = variant
	}

	desc.PackageManager = resolveManager(desc.OSFamily, lookPath)

	logger.Debug().
		Str("osFamily", string(desc.OSFamily)).
		Str("packageManager", string(desc.PackageManager)).
		Bool("elevated", desc.IsElevatedUser).
		Str("vendorVariant", desc.VendorVariant).
		Msg("Host classified")

	return desc
}

// classifyLinux maps os-release identification to an OS family. The ID
// field is checked first, then each ID_LIKE entry, so derivatives that
// declare their parentage classify into the parent family.
func classifyLinux(release map[string]string) (types.OSFamily, string) {
	id := strings.ToLower(release["ID"])

	if archVariants[id] {
		return types.OSArchVariant, id
	}
	if family, ok := familyForID(id); ok {
		return family, ""
	}

	for _, like := range strings.Fields(strings.ToLower(release["ID_LIKE"])) {
		if like == "arch" {
			return types.OSArchVariant, id
		}
		if family, ok := familyForID(like); ok {
			return family, ""
		}
	}

	return types.OSUnknown, ""
}

func familyForID(id string) (types.OSFamily, bool) {
	switch id {
	case "debian", "ubuntu", "linuxmint", "pop", "raspbian":
		return types.OSDebian, true
	case "rhel", "centos", "rocky", "almalinux":
		return types.OSRHEL, true
	case "fedora":
		return types.OSFedora, true
	case "arch":
		return types.OSArch, true
	case "alpine":
		return types.OSAlpine, true
	case "opensuse", "opensuse-leap", "opensuse-tumbleweed", "sles", "suse":
		return types.OSOpenSUSE, true
	}
	return types.OSUnknown, false
}

// resolveManager verifies the family's native manager binary is actually
// present, falling back to probing the known managers in a fixed order.
func resolveManager(family types.OSFamily, lookPath func(string) (string, error)) types.PackageManager {
	if native, ok := familyManagers[family]; ok {
		if _, err := lookPath(string(native)); err == nil {
			return native
		}
	}

	for _, pm := range probeOrder {
		if _, err := lookPath(string(pm)); err == nil {
			return pm
		}
	}

	return types.PMUnknown
}

// parseOSRelease reads a KEY=VALUE file in os-release(5) format. A
// missing or malformed file yields an empty map, not an error; the
// classifier degrades to unknown in that case.
func parseOSRelease(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return map[string]string{}, err
	}
	return parseOSReleaseData(string(data)), nil
}

func parseOSReleaseData(data string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"'`)
		fields[strings.TrimSpace(key)] = value
	}
	return fields
}
