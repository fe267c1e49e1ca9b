package domain

import "github.com/rotisserie/eris"

// ErrInvalidArgument marks a contract violation by the caller, such as an
// empty candidate list or a non-positive radius. Check with eris.Is.
var ErrInvalidArgument = eris.New("invalid argument")
