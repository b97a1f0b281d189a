package worker

import (
	"context"
	"time"

	"github.com/eventpass/eventpass/pkg/storage"

	"github.com/sirupsen/logrus"
)

// ArtifactLedger is the slice of the registration repository the
// sweeper needs: which artifact filenames are still referenced.
type ArtifactLedger interface {
	ListArtifacts(ctx context.Context) ([]string, error)
}

// ArtifactSweeper removes QR images whose registration no longer
// exists: cascaded event deletes and crashed registrations leave the
// image behind. Files younger than one sweep interval are spared,
// since the image is written before the registration row and an
// in-flight registration must not lose its code.
type ArtifactSweeper struct {
	regRepo   ArtifactLedger
	artifacts storage.FileStorage
	interval  time.Duration
}

func NewArtifactSweeper(regRepo ArtifactLedger, artifacts storage.FileStorage, interval time.Duration) *ArtifactSweeper {
	return &ArtifactSweeper{
		regRepo:   regRepo,
		artifacts: artifacts,
		interval:  interval,
	}
}

func (w *ArtifactSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Artifact sweeper started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Artifact sweeper stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ArtifactSweeper) sweep(ctx context.Context) {
	stored, err := w.artifacts.List()
	if err != nil {
		logrus.Errorf("Failed to list stored artifacts: %v", err)
		return
	}

	if len(stored) == 0 {
		return
	}

	referenced, err := w.regRepo.ListArtifacts(ctx)
	if err != nil {
		logrus.Errorf("Failed to list referenced artifacts: %v", err)
		return
	}

	refSet := make(map[string]struct{}, len(referenced))
	for _, name := range referenced {
		refSet[name] = struct{}{}
	}

	removed := 0
	failed := 0

	for _, name := range stored {
		select {
		case <-ctx.Done():
			logrus.Info("Sweep interrupted by context cancellation")
			return
		default:
		}

		if _, ok := refSet[name]; ok {
			continue
		}

		// grace period for the image-before-row write order
		modTime, err := w.artifacts.ModTime(name)
		if err != nil {
			// already gone or unreadable, next pass decides
			continue
		}
		if time.Since(modTime) < w.interval {
			continue
		}

		if err := w.artifacts.Delete(name); err != nil {
			logrus.Errorf("Failed to delete orphaned artifact %s: %v", name, err)
			failed++
			continue
		}

		logrus.Debugf("Deleted orphaned artifact %s", name)
		removed++
	}

	if removed > 0 || failed > 0 {
		logrus.Infof("Artifact sweep completed: %d removed, %d failed", removed, failed)
	}
}
