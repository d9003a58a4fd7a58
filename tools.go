// +build tools

package tools

import (
	_ "github.com/cespare/reflex"
	_ "github.com/mgechev/revive"
)
