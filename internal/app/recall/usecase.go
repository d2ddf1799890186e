package recall

import (
	"context"
	"errors"
	"fmt"

	"runemind/internal/app/ports"
	"runemind/internal/domain/game"
)

var ErrInvalidRequest = errors.New("invalid recall request")

const (
	defaultLimit = 20
	maxLimit     = 100
)

// UseCase answers "what has the agent been through" queries over the
// reflective journal.
type UseCase struct {
	Journal ports.MemoryJournal
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if req.Kind == "" {
		records, err := u.Journal.ListRecent(ctx, limit)
		if err != nil {
			return Response{}, fmt.Errorf("recall: list recent: %w", err)
		}
		return Response{Records: records}, nil
	}
	kind, err := parseKind(req.Kind)
	if err != nil {
		return Response{}, err
	}
	records, err := u.Journal.ListByKind(ctx, kind, limit)
	if err != nil {
		return Response{}, fmt.Errorf("recall: list by kind: %w", err)
	}
	return Response{Records: records}, nil
}

func parseKind(s string) (game.MemoryKind, error) {
	kind, err := game.ParseMemoryKind(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return kind, nil
}
