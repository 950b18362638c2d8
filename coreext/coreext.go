// Package coreext registers the refl standard library. Import it for side
// effects before creating a VM.
package coreext

import (
	// importing for side effects
	_ "github.com/rofleksey/refl/coreext/date"
	_ "github.com/rofleksey/refl/coreext/duration"
	_ "github.com/rofleksey/refl/coreext/path"
	_ "github.com/rofleksey/refl/coreext/system"
	_ "github.com/rofleksey/refl/coreext/text"
)
