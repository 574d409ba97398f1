package commons_abc

import (
	"github.com/krazyTry/commons-abc-go/commons_abc/helpers"
)

var (
	CommonsAbcProgramID = helpers.CommonsAbcProgramID
	TokenProgramID      = helpers.TokenProgramID
)

const (
	CurveConfigAccountName = "CurveConfig"

	// CurveConfigSize is the persisted record length, discriminator included.
	CurveConfigSize = 8 + 4*8 + 4*32 + 1 + 32 + 32

	// CurveConfigAuthorityOffset locates Authority inside the record.
	CurveConfigAuthorityOffset = 8 + 4*8 + 4*32 + 1
)
