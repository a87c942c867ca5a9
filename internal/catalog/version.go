package catalog

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SupportedVersions is the dataset version range this engine can compute with.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

func checkVersion(raw, constraint string) (*semver.Version, error) {
	if raw == "" {
		return nil, configError(nil, "dataset manifest has no version")
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, configError(err, "parsing dataset version %q", raw)
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return nil, configError(err, "parsing version constraint %q", constraint)
	}
	if !c.Check(v) {
		return nil, configError(fmt.Errorf("version %s does not satisfy %q", v, constraint), "incompatible dataset")
	}
	return v, nil
}
