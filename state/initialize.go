package state

import (
	"time"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		// Shown in place of any texture we cannot resolve, unless strict
		// mode is requested. Rasterized by the assets package on demand.
		MissingTexture: []byte(`<svg viewBox="0 0 16 16" xmlns="http://www.w3.org/2000/svg">
  <rect x="0" y="0" width="8" height="8" fill="#f800f8"/>
  <rect x="8" y="0" width="8" height="8" fill="#000000"/>
  <rect x="0" y="8" width="8" height="8" fill="#000000"/>
  <rect x="8" y="8" width="8" height="8" fill="#f800f8"/>
</svg>`),
	}
}
