package schedule

import (
	"context"

	"github.com/daliphone/money-marketing-room/internal/models"
)

// Source is where the board reads its snapshot from.
type Source interface {
	Snapshot(ctx context.Context) (models.Table, error)
}

// Board ties one read cycle together: snapshot, normalize, resolve.
type Board struct {
	source Source
	norm   *Normalizer
	clock  Clock
}

func NewBoard(source Source, norm *Normalizer, clock Clock) *Board {
	return &Board{source: source, norm: norm, clock: clock}
}

// Today is the reference date used when a caller does not pick one.
func (b *Board) Today() models.Date {
	return Today(b.clock)
}

// Records reads and normalizes the current snapshot.
func (b *Board) Records(ctx context.Context) ([]models.ScheduleRecord, error) {
	table, err := b.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return b.norm.Normalize(table)
}

// Views resolves the current snapshot against today.
func (b *Board) Views(ctx context.Context, today models.Date) (Views, error) {
	records, err := b.Records(ctx)
	if err != nil {
		return Views{}, err
	}
	return Resolve(records, today), nil
}
