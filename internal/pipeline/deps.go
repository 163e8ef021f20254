package pipeline

import (
	"io"

	"github.com/backmassage/fontsrt/internal/fontmeta"
	"github.com/backmassage/fontsrt/internal/logging"
	"github.com/backmassage/fontsrt/internal/mover"
)

// Confirmer answers yes/no questions. Implemented by the prompt package.
type Confirmer interface {
	Confirm(question string, defaultYes bool) (bool, error)
}

// Deps are the collaborators a run needs.
type Deps struct {
	Reader fontmeta.Reader
	Log    *logging.Logger
	Mover  *mover.Mover
	Prompt Confirmer // nil means never ask.
	Out    io.Writer // Summary tables; nil disables them.
}
