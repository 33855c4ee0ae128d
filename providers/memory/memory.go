package memory

import (
	"context"

	"github.com/leofalp/aistream/providers/ai"
)

// Store keeps the turns of one conversation, oldest first. Read methods
// return errors so persistent implementations can surface failures.
type Store interface {
	Append(ctx context.Context, turns ...ai.Turn)
	Turns(ctx context.Context) ([]ai.Turn, error)
	Last(ctx context.Context, n int) ([]ai.Turn, error)
	PopLast(ctx context.Context) (*ai.Turn, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context)
}
