package types

// OSFamily identifies the broad operating system family of the host.
type OSFamily string

const (
	OSMacOS       OSFamily = "macos"
	OSDebian      OSFamily = "debian"
	OSRHEL        OSFamily = "rhel"
	OSFedora      OSFamily = "fedora"
	OSArch        OSFamily = "arch"
	OSArchVariant OSFamily = "arch-variant"
	OSAlpine      OSFamily = "alpine"
	OSOpenSUSE    OSFamily = "opensuse"
	OSUnknown     OSFamily = "unknown"
)

// PackageManager identifies the host's native package manager.
type PackageManager string

const (
	PMBrew    PackageManager = "brew"
	PMApt     PackageManager = "apt"
	PMYum     PackageManager = "yum"
	PMDnf     PackageManager = "dnf"
	PMPacman  PackageManager = "pacman"
	PMApk     PackageManager = "apk"
	PMZypper  PackageManager = "zypper"
	PMUnknown PackageManager = "unknown"
)

// EnvironmentDescriptor is the immutable result of host classification.
// It is computed once per run and threaded read-only into any component
// that needs platform context. The deployment engine itself only uses it
// for log annotation and the final report; platform-specific behavior
// lives in the package manager adapter.
type EnvironmentDescriptor struct {
	OSFamily       OSFamily       `json:"osFamily" yaml:"osFamily"`
	PackageManager PackageManager `json:"packageManager" yaml:"packageManager"`
	IsElevatedUser bool           `json:"isElevatedUser" yaml:"isElevatedUser"`

	// VendorVariant carries the distro ID for vendor derivatives
	// (e.g. "manjaro" when OSFamily is arch-variant). Empty otherwise.
	VendorVariant string `json:"vendorVariant,omitempty" yaml:"vendorVariant,omitempty"`
}

// IsKnown reports whether classification resolved at least the OS family.
func (e EnvironmentDescriptor) IsKnown() bool {
	return e.OSFamily != OSUnknown
}
