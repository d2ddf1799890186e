package recall

import "runemind/internal/domain/game"

// Request narrows the journal listing. An empty Kind means every kind;
// a non-positive Limit takes the default page size.
type Request struct {
	Kind  string
	Limit int
}

type Response struct {
	Records []game.MemoryRecord
}
