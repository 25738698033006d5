// Package roster attaches unique equipment master data to characters.
package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/redive/internal/data"
	"github.com/udisondev/redive/internal/model"
)

// Source provides unique equipment records by unit ID.
// Implemented by *data.Table and *db.UniqueEquipmentRepository.
type Source interface {
	data.EnhanceLookup
	UniqueEquipment(ctx context.Context, unitID int32) (*data.RawUniqueEquipmentData, error)
}

// Loader attaches unique equipment to charas.
type Loader struct {
	src     Source
	workers int
}

// NewLoader creates a Loader running at most workers lookups at once.
func NewLoader(src Source, workers int) *Loader {
	if workers <= 0 {
		workers = 1
	}
	return &Loader{src: src, workers: workers}
}

// Attach sets UniqueEquipment on every chara that has one and returns how many were set.
// Charas without unique equipment are skipped. The first other error cancels the batch.
func (l *Loader) Attach(ctx context.Context, charas []*model.Chara) (int, error) {
	var attached atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	for _, c := range charas {
		if c == nil {
			continue
		}
		g.Go(func() error {
			ok, err := l.attach(gctx, c)
			if ok {
				attached.Add(1)
			}
			return err
		})
	}

	err := g.Wait()
	return int(attached.Load()), err
}

func (l *Loader) attach(ctx context.Context, c *model.Chara) (bool, error) {
	raw, err := l.src.UniqueEquipment(ctx, c.UnitID)
	if errors.Is(err, data.ErrNotFound) {
		slog.Debug("unit has no unique equipment", "unit_id", c.UnitID)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading unique equipment for unit %d: %w", c.UnitID, err)
	}

	if err := raw.SetCharaUniqueEquipment(ctx, c, l.src); err != nil {
		if errors.Is(err, data.ErrNotFound) {
			slog.Warn("unique equipment without enhance rates", "unit_id", c.UnitID, "equipment_id", raw.EquipmentID)
			return false, nil
		}
		return false, err
	}

	slog.Debug("attached unique equipment",
		"unit_id", c.UnitID,
		"equipment_id", raw.EquipmentID,
		"max_level", c.MaxUniqueEquipmentLevel)
	return true, nil
}
