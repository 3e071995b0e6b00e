package commands

import (
	"context"
	"log/slog"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/resource"
	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/errs"
	"roombook/internal/usecase/queries"
	"roombook/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	notifyCategoryRequest  = "request"
	notifyCategoryApproval = "approval"
)

type CreateRequestParams struct {
	UserID   uuid.UUID
	Date     time.Time
	Window   booking.TimeWindow
	Capacity int32
	Kind     booking.RequestKind
	Note     string
}

type CreateRequestResult struct {
	Request  *queries.RequestView
	Decision *queries.Decision
}

type RequestCommands interface {
	// CreateRequest files a request with both lanes pending (per kind) and
	// records the evaluator's tentative assignments so pending requests
	// participate in conflict detection.
	CreateRequest(ctx context.Context, params CreateRequestParams) (*CreateRequestResult, error)
	// CancelRequest is owner-only and reachable only from overall pending.
	CancelRequest(ctx context.Context, requestID, actor uuid.UUID) (*queries.RequestView, error)
}

type requestCommandsImpl struct {
	requestRepo  RequestRepository
	auditRepo    AuditRepository
	evaluator    queries.EvaluationQueries
	requestViews queries.RequestQueries
	notifier     Notifier
	uow          shared.UnitOfWork
	clock        clock.Clock
}

func NewRequestCommands(
	requestRepo RequestRepository,
	auditRepo AuditRepository,
	evaluator queries.EvaluationQueries,
	requestViews queries.RequestQueries,
	notifier Notifier,
	uow shared.UnitOfWork,
	clock clock.Clock,
) RequestCommands {
	return &requestCommandsImpl{
		requestRepo:  requestRepo,
		auditRepo:    auditRepo,
		evaluator:    evaluator,
		requestViews: requestViews,
		notifier:     notifier,
		uow:          uow,
		clock:        clock,
	}
}

func (c *requestCommandsImpl) CreateRequest(ctx context.Context, params CreateRequestParams) (*CreateRequestResult, error) {
	req, err := booking.NewRequest(params.UserID, params.Date, params.Window, params.Capacity, params.Kind, params.Note)
	if err != nil {
		return nil, mapDomainErr(err)
	}

	// Snapshot evaluation; a race with a concurrent approval can only cost
	// a tentative assignment, never an approved double-booking.
	decision, err := c.evaluator.Evaluate(ctx, queries.EvaluationSpec{
		Kind:     params.Kind,
		Date:     params.Date,
		Window:   params.Window,
		Capacity: params.Capacity,
	})
	if err != nil {
		return nil, err
	}
	if decision.Room != nil {
		req.SetTentativeAssignment(booking.LaneRoom, decision.Room.ID)
	}
	if decision.Zoom != nil {
		req.SetTentativeAssignment(booking.LaneZoom, decision.Zoom.ID)
	}

	now := c.clock.Now()
	err = c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := c.requestRepo.Create(ctx, tx, req); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		entry := booking.NewAuditEntry(req.ID(), params.UserID, "", "", booking.StatusPending.String(), "request filed", now)
		if err := c.auditRepo.Append(ctx, tx, entry); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.notify(ctx, params.UserID, req.ID(), "booking request received", notifyCategoryRequest)

	view, err := c.requestViews.GetByID(ctx, req.ID())
	if err != nil {
		return nil, err
	}
	return &CreateRequestResult{Request: view, Decision: decision}, nil
}

func (c *requestCommandsImpl) CancelRequest(ctx context.Context, requestID, actor uuid.UUID) (*queries.RequestView, error) {
	now := c.clock.Now()

	var req *booking.Request
	err := c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		found, err := c.requestRepo.FindByIDForUpdate(ctx, tx, requestID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrRequestNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		prev := found.Status()
		if err := found.Cancel(actor, now); err != nil {
			return mapDomainErr(err)
		}

		if err := c.requestRepo.Update(ctx, tx, found); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		entry := booking.NewAuditEntry(found.ID(), actor, "", prev.String(), found.Status().String(), "cancelled by owner", now)
		if err := c.auditRepo.Append(ctx, tx, entry); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		req = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.notify(ctx, req.UserID(), req.ID(), "booking request cancelled", notifyCategoryRequest)

	return c.requestViews.GetByID(ctx, requestID)
}

// notify is fire-and-forget: a failed delivery never rolls back or fails a
// committed transition.
func (c *requestCommandsImpl) notify(ctx context.Context, userID, requestID uuid.UUID, message, category string) {
	if err := c.notifier.Notify(ctx, userID, requestID, message, category); err != nil {
		slogNotifyFailure(userID, requestID, err)
	}
}

func slogNotifyFailure(userID, requestID uuid.UUID, err error) {
	slog.Warn("notification delivery failed",
		"user_id", userID, "request_id", requestID, "error", err)
}

func mapDomainErr(err error) error {
	switch err {
	case booking.ErrInvalidCapacity:
		return errs.ErrInvalidCapacity
	case booking.ErrInvalidRequestKind:
		return errs.ErrInvalidRequestKind
	case booking.ErrInvalidWindow, booking.ErrInvalidTimeOfDay:
		return errs.ErrInvalidTimeWindow
	case booking.ErrLaneFinalized, booking.ErrLaneNotRequired:
		return errs.ErrRequestFinalized
	case booking.ErrNotCancellable:
		return errs.ErrRequestNotCancellable
	case booking.ErrNotOwner:
		return errs.ErrNotRequestOwner
	default:
		return err
	}
}

func laneResourceKind(lane booking.Lane) resource.Kind {
	if lane == booking.LaneRoom {
		return resource.KindRoom
	}
	return resource.KindZoom
}
