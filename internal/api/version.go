package api

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ServerMeta is the backend's self-description from GET /meta.
type ServerMeta struct {
	Version          string `json:"version"`
	MinClientVersion string `json:"min_client_version"`
}

// ServerMeta fetches the backend's version metadata.
func (c *Client) ServerMeta(ctx context.Context) (*ServerMeta, error) {
	var meta ServerMeta
	env, err := c.do(ctx, "GET", "/meta", nil, nil)
	if err != nil {
		return nil, err
	}
	if err := decodeData(env, "meta", &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// CheckCompatibility verifies that clientVersion satisfies the backend's
// minimum client version. An empty or unparseable minimum is treated as
// "no constraint" since older backends don't report one. Development
// builds (non-semver client versions) skip the check.
func CheckCompatibility(meta *ServerMeta, clientVersion string) error {
	if meta == nil || meta.MinClientVersion == "" {
		return nil
	}

	minVer, err := semver.NewVersion(meta.MinClientVersion)
	if err != nil {
		return nil
	}

	current, err := semver.NewVersion(clientVersion)
	if err != nil {
		return nil
	}

	if current.LessThan(minVer) {
		return fmt.Errorf("backend %s requires CLI >= %s, running %s: please upgrade",
			meta.Version, meta.MinClientVersion, clientVersion)
	}
	return nil
}
