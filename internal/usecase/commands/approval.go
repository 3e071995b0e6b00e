package commands

import (
	"context"
	"fmt"

	"roombook/internal/domain/booking"
	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/errs"
	"roombook/internal/usecase/queries"
	"roombook/internal/usecase/shared"

	"github.com/google/uuid"
)

type ApproveLaneParams struct {
	RequestID uuid.UUID
	Actor     uuid.UUID
	Lane      booking.Lane
	// ResourceID pins a specific resource; when nil the optimal selector
	// picks the least-capacity free one.
	ResourceID *uuid.UUID
	Note       string
}

type RejectLaneParams struct {
	RequestID uuid.UUID
	Actor     uuid.UUID
	Lane      booking.Lane
	Note      string
}

type ApprovalCommands interface {
	// ApproveLane runs the whole transition as one transaction: lock the
	// request row, validate the lane is still pending, re-check the
	// resource against approved holders, write sub-status + assignment +
	// audit record, commit. Concurrent approvals of the same lane
	// serialize on the row lock; the loser gets ErrRequestFinalized.
	ApproveLane(ctx context.Context, params ApproveLaneParams) (*queries.RequestView, error)
	RejectLane(ctx context.Context, params RejectLaneParams) (*queries.RequestView, error)
}

type approvalCommandsImpl struct {
	requestRepo  RequestRepository
	resourceRepo ResourceRepository
	auditRepo    AuditRepository
	availability queries.AvailabilityQueries
	requestViews queries.RequestQueries
	notifier     Notifier
	uow          shared.UnitOfWork
	clock        clock.Clock
}

func NewApprovalCommands(
	requestRepo RequestRepository,
	resourceRepo ResourceRepository,
	auditRepo AuditRepository,
	availability queries.AvailabilityQueries,
	requestViews queries.RequestQueries,
	notifier Notifier,
	uow shared.UnitOfWork,
	clock clock.Clock,
) ApprovalCommands {
	return &approvalCommandsImpl{
		requestRepo:  requestRepo,
		resourceRepo: resourceRepo,
		auditRepo:    auditRepo,
		availability: availability,
		requestViews: requestViews,
		notifier:     notifier,
		uow:          uow,
		clock:        clock,
	}
}

func (c *approvalCommandsImpl) ApproveLane(ctx context.Context, params ApproveLaneParams) (*queries.RequestView, error) {
	now := c.clock.Now()

	var req *booking.Request
	err := c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		found, err := c.loadForUpdate(ctx, tx, params.RequestID)
		if err != nil {
			return err
		}
		// Checked again by the entity; checked here first so a finalized
		// lane fails before any resource resolution.
		if found.LaneStatus(params.Lane) != booking.LanePending {
			return errs.ErrRequestFinalized
		}

		resourceID, err := c.resolveResource(ctx, params, found)
		if err != nil {
			return err
		}

		// No two approved reservations may hold the same resource for an
		// overlapping window. Pending overlap is tolerated; approved is not.
		conflicted, err := c.requestRepo.HasApprovedOverlap(ctx, tx, resourceID, params.Lane, found.Date(), found.Window(), found.ID())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if conflicted {
			return errs.ErrResourceConflict
		}

		prev := found.LaneStatus(params.Lane)
		if err := found.ApproveLane(params.Lane, params.Actor, resourceID, now); err != nil {
			return mapDomainErr(err)
		}

		if err := c.requestRepo.Update(ctx, tx, found); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		entry := booking.NewAuditEntry(found.ID(), params.Actor, params.Lane, prev.String(), booking.LaneApproved.String(), params.Note, now)
		if err := c.auditRepo.Append(ctx, tx, entry); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		req = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.notifyTransition(ctx, req, params.Lane, booking.LaneApproved)

	return c.requestViews.GetByID(ctx, params.RequestID)
}

func (c *approvalCommandsImpl) RejectLane(ctx context.Context, params RejectLaneParams) (*queries.RequestView, error) {
	now := c.clock.Now()

	var req *booking.Request
	err := c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		found, err := c.loadForUpdate(ctx, tx, params.RequestID)
		if err != nil {
			return err
		}

		prev := found.LaneStatus(params.Lane)
		if err := found.RejectLane(params.Lane, params.Actor, now); err != nil {
			return mapDomainErr(err)
		}

		if err := c.requestRepo.Update(ctx, tx, found); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		entry := booking.NewAuditEntry(found.ID(), params.Actor, params.Lane, prev.String(), booking.LaneRejected.String(), params.Note, now)
		if err := c.auditRepo.Append(ctx, tx, entry); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		req = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.notifyTransition(ctx, req, params.Lane, booking.LaneRejected)

	return c.requestViews.GetByID(ctx, params.RequestID)
}

func (c *approvalCommandsImpl) loadForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Request, error) {
	req, err := c.requestRepo.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRequestNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return req, nil
}

// resolveResource picks the resource to assign: a pinned id from the actor,
// the tentative assignment from filing time, or a fresh optimal selection.
func (c *approvalCommandsImpl) resolveResource(ctx context.Context, params ApproveLaneParams, req *booking.Request) (uuid.UUID, error) {
	kind := laneResourceKind(params.Lane)

	if params.ResourceID != nil {
		res, err := c.resourceRepo.FindByID(ctx, *params.ResourceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return uuid.Nil, errs.ErrResourceNotFound
			}
			return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if res.Kind() != kind {
			return uuid.Nil, errs.ErrResourceNotFound
		}
		if !res.IsActive() {
			return uuid.Nil, errs.ErrResourceInactive
		}
		if res.Capacity() < req.Capacity() {
			return uuid.Nil, errs.ErrResourceTooSmall
		}
		return res.ID(), nil
	}

	if tentative := req.AssignedID(params.Lane); tentative != nil {
		return *tentative, nil
	}

	found, err := c.availability.FindOptimal(ctx, queries.AvailabilitySpec{
		Kind:     kind,
		Date:     req.Date(),
		Window:   req.Window(),
		Capacity: req.Capacity(),
	})
	if err != nil {
		return uuid.Nil, err
	}
	if found == nil {
		return uuid.Nil, errs.ErrNoResourceAvailable
	}
	return found.ID, nil
}

func (c *approvalCommandsImpl) notifyTransition(ctx context.Context, req *booking.Request, lane booking.Lane, outcome booking.LaneStatus) {
	message := fmt.Sprintf("%s lane %s; request is now %s", lane, outcome, req.Status())
	if err := c.notifier.Notify(ctx, req.UserID(), req.ID(), message, notifyCategoryApproval); err != nil {
		// Best-effort only; the approval stays committed.
		slogNotifyFailure(req.UserID(), req.ID(), err)
	}
}
