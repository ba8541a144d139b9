package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driving"
	"github.com/gyf304/sqlite3-fts5-html/internal/logger"
)

// Ensure SyncOrchestrator implements the interface.
var _ driving.SyncOrchestrator = (*SyncOrchestrator)(nil)

// SyncOrchestrator feeds documents from connectors into an index service.
type SyncOrchestrator struct {
	index driving.IndexService
}

// NewSyncOrchestrator creates a new sync orchestrator.
func NewSyncOrchestrator(index driving.IndexService) *SyncOrchestrator {
	return &SyncOrchestrator{index: index}
}

// Sync indexes every document the connector reads.
func (o *SyncOrchestrator) Sync(
	ctx context.Context, connector driven.Connector, progress driving.ProgressFunc,
) (*driving.SyncStatus, error) {
	if err := connector.Validate(ctx); err != nil {
		return nil, err
	}

	status := &driving.SyncStatus{}
	docsCh, errsCh := connector.FullSync(ctx)
	var connectorErrs []error

	for docsCh != nil || errsCh != nil {
		select {
		case <-ctx.Done():
			return status, ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			logger.Debug("Connector error: %v", err)
			connectorErrs = append(connectorErrs, err)

		case rawDoc, ok := <-docsCh:
			if !ok {
				docsCh = nil
				continue
			}
			logger.Debug("Processing: %s", rawDoc.URI)
			o.apply(ctx, domain.RawDocumentChange{Type: domain.ChangeCreated, Document: rawDoc}, status, progress)
		}
	}

	logger.Info("Sync complete: %d indexed, %d failed", status.Processed(), status.Failed)
	if len(connectorErrs) > 0 {
		return status, fmt.Errorf("connector: %w", errors.Join(connectorErrs...))
	}
	return status, nil
}

// Watch applies connector changes until ctx is cancelled.
func (o *SyncOrchestrator) Watch(
	ctx context.Context, connector driven.Connector, progress driving.ProgressFunc,
) error {
	changesCh, err := connector.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	status := &driving.SyncStatus{}
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changesCh:
			if !ok {
				return nil
			}
			o.apply(ctx, change, status, progress)
		}
	}
}

// apply indexes or removes one changed document and records the outcome.
func (o *SyncOrchestrator) apply(
	ctx context.Context,
	change domain.RawDocumentChange,
	status *driving.SyncStatus,
	progress driving.ProgressFunc,
) {
	uri := change.Document.URI
	kind := change.Type
	var err error

	switch change.Type {
	case domain.ChangeDeleted:
		logger.Debug("Deleting: %s", uri)
		err = o.index.Remove(ctx, uri)
		if errors.Is(err, domain.ErrNotFound) {
			return
		}
		if err == nil {
			status.Deleted++
		}
	default:
		var result *driving.IndexResult
		result, err = o.index.Index(ctx, &change.Document)
		if err == nil {
			kind = result.Change
			if kind == domain.ChangeUpdated {
				status.Updated++
			} else {
				status.Created++
			}
		}
	}

	if err != nil {
		status.Failed++
		logger.Debug("Failed to process %s: %v", uri, err)
	}
	if progress != nil {
		progress(uri, kind, err)
	}
}
