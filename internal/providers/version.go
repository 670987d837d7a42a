package providers

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/roach88/buildlens/internal/datum"
	"github.com/roach88/buildlens/internal/profile"
)

var releasePattern = regexp.MustCompile(`^release (\d+)\.(\d+)\.(\d+)(.*)$`)

// BazelVersion is the version of Bazel that wrote the profile.
type BazelVersion struct {
	Raw    string
	Major  int
	Minor  int
	Patch  int
	Suffix string
	parsed bool
}

// ParseBazelVersion parses strings of the form "release 7.1.0rc2". Anything
// else is kept verbatim in Raw.
func ParseBazelVersion(raw string) *BazelVersion {
	v := &BazelVersion{Raw: raw}
	m := releasePattern.FindStringSubmatch(raw)
	if m == nil {
		return v
	}
	v.Major, _ = strconv.Atoi(m[1])
	v.Minor, _ = strconv.Atoi(m[2])
	v.Patch, _ = strconv.Atoi(m[3])
	v.Suffix = m[4]
	v.parsed = true
	return v
}

// Parsed reports whether Raw matched the release format.
func (v *BazelVersion) Parsed() bool { return v.parsed }

// AtLeast reports whether the version is major.minor or newer. Unparsed
// versions never are.
func (v *BazelVersion) AtLeast(major, minor int) bool {
	if !v.parsed {
		return false
	}
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

func (*BazelVersion) Description() string { return "The Bazel version that produced the profile." }

func (v *BazelVersion) Summary() string {
	if v.parsed {
		return fmt.Sprintf("%d.%d.%d%s", v.Major, v.Minor, v.Patch, v.Suffix)
	}
	return v.Raw
}

func (v *BazelVersion) IsEmpty() bool { return v.Raw == "" }

func (*BazelVersion) EmptyReason() string {
	return "The profile does not record a Bazel version."
}

// BazelVersionProvider reads the version from the profile's otherData.
type BazelVersionProvider struct {
	datum.Base
}

// NewBazelVersionProvider creates a BazelVersionProvider.
func NewBazelVersionProvider() *BazelVersionProvider {
	return &BazelVersionProvider{Base: datum.NewBase("BazelVersionProvider")}
}

func (p *BazelVersionProvider) Bindings() []datum.Binding {
	return []datum.Binding{datum.BindMemoized(p.version)}
}

func (p *BazelVersionProvider) version() (*BazelVersion, error) {
	bp, err := datum.Get[*profile.BazelProfile](p.Registry())
	if err != nil {
		return nil, err
	}
	raw, _ := bp.OtherData(profile.OtherDataBazelVersion)
	return ParseBazelVersion(raw), nil
}
