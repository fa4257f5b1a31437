package leave

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/harborhr/hr-backend-go/internal/domain/leave"
	"github.com/harborhr/hr-backend-go/internal/domain/notification"
	"github.com/harborhr/hr-backend-go/internal/pkg/database"
	"github.com/harborhr/hr-backend-go/internal/pkg/storage"
	"github.com/harborhr/hr-backend-go/internal/pkg/workdays"
)

// ApplicationService drives leave applications through their lifecycle:
// pending -> approved | rejected, approved -> recalled. Approve and Recall
// mutate the balance ledger and the application row inside one transaction,
// with the debit's conditional update carrying the balance re-check.
type ApplicationService struct {
	leave.LeaveApplicationRepository
	leave.LeavePlanRepository
	leave.LeaveBalanceRepository

	tx        database.TxManager
	policy    workdays.Policy
	publisher notification.Publisher
	files     storage.FileStorage
}

func NewApplicationService(
	applicationRepository leave.LeaveApplicationRepository,
	planRepository leave.LeavePlanRepository,
	balanceRepository leave.LeaveBalanceRepository,
	tx database.TxManager,
	policy workdays.Policy,
	publisher notification.Publisher,
	files storage.FileStorage,
) *ApplicationService {
	return &ApplicationService{
		LeaveApplicationRepository: applicationRepository,
		LeavePlanRepository:        planRepository,
		LeaveBalanceRepository:     balanceRepository,
		tx:                         tx,
		policy:                     policy,
		publisher:                  publisher,
		files:                      files,
	}
}

func (s *ApplicationService) Submit(ctx context.Context, req leave.SubmitApplicationRequest) (leave.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ApplicationResponse{}, err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.ApplicationResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.ApplicationResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}
	if endDate.Before(startDate) {
		return leave.ApplicationResponse{}, leave.ErrInvalidDateRange
	}

	plan, err := s.LeavePlanRepository.GetByID(ctx, req.LeavePlanID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if !plan.IsActive {
		return leave.ApplicationResponse{}, leave.ErrPlanInactive
	}

	duration := s.policy.CountChargeable(startDate, endDate)
	if duration == 0 {
		return leave.ApplicationResponse{}, leave.ErrZeroChargeableDays
	}

	// Early balance check for immediate feedback. The approve-time debit is
	// the authoritative re-check.
	balance, err := s.LeaveBalanceRepository.GetByEmployeeAndPlan(ctx, req.EmployeeID, req.LeavePlanID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if balance.RemainingDays < duration {
		return leave.ApplicationResponse{}, leave.ErrInsufficientBalance
	}

	app := leave.LeaveApplication{
		ID:           uuid.New().String(),
		EmployeeID:   req.EmployeeID,
		LeavePlanID:  req.LeavePlanID,
		StartDate:    startDate,
		EndDate:      endDate,
		DurationDays: duration,
		Reason:       req.Reason,
		Status:       leave.StatusPending,
		AppliedAt:    time.Now(),
	}

	if req.File != nil && req.FileHeader != nil && s.files != nil {
		path := fmt.Sprintf("leave-attachments/%s%s", app.ID, filepath.Ext(req.FileHeader.Filename))
		stored, err := s.files.Upload(ctx, req.File, path, req.FileHeader.Header.Get("Content-Type"))
		if err != nil {
			return leave.ApplicationResponse{}, fmt.Errorf("failed to upload attachment: %w", err)
		}
		app.AttachmentURL = &stored
	}

	created, err := s.LeaveApplicationRepository.Create(ctx, app)
	if err != nil {
		return leave.ApplicationResponse{}, fmt.Errorf("failed to create leave application: %w", err)
	}

	return leave.ToApplicationResponse(created), nil
}

// Approve marks the application approved and debits the balance in one
// transaction. Both writes are conditional: the status update only applies
// to a still-pending row, and the debit only applies while the balance
// covers the duration. The balance is re-read inside the transaction before
// either write, so a precondition failure aborts with nothing mutated and
// two concurrent approvals can never overdraw a ledger row or charge the
// same application twice.
func (s *ApplicationService) Approve(ctx context.Context, applicationID, reviewerID string) (leave.ApplicationResponse, error) {
	app, err := s.LeaveApplicationRepository.GetByID(ctx, applicationID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if app.Status != leave.StatusPending {
		return leave.ApplicationResponse{}, leave.ErrAlreadyProcessed
	}

	reviewedAt := time.Now()
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		balance, err := s.LeaveBalanceRepository.GetByEmployeeAndPlan(ctx, app.EmployeeID, app.LeavePlanID)
		if err != nil {
			return err
		}
		if balance.RemainingDays < app.DurationDays {
			return leave.ErrInsufficientBalance
		}
		if err := s.LeaveApplicationRepository.UpdateReview(ctx, app.ID, leave.StatusPending, leave.StatusApproved, reviewerID, reviewedAt); err != nil {
			return err
		}
		return s.LeaveBalanceRepository.Debit(ctx, app.EmployeeID, app.LeavePlanID, app.DurationDays)
	})
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	app.Status = leave.StatusApproved
	app.ReviewedBy = &reviewerID
	app.ReviewedAt = &reviewedAt

	s.publisher.Publish(ctx, notification.Notification{
		RecipientID: app.EmployeeID,
		Type:        notification.TypeLeaveApproved,
		Title:       "Leave approved",
		Message:     fmt.Sprintf("Your leave from %s to %s has been approved.", app.StartDate.Format("2006-01-02"), app.EndDate.Format("2006-01-02")),
		Data:        map[string]interface{}{"application_id": app.ID},
	})

	return leave.ToApplicationResponse(app), nil
}

func (s *ApplicationService) Reject(ctx context.Context, req leave.ReviewApplicationRequest) (leave.ApplicationResponse, error) {
	if req.Reason == "" {
		return leave.ApplicationResponse{}, leave.ErrReasonRequired
	}

	app, err := s.LeaveApplicationRepository.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if app.Status != leave.StatusPending {
		return leave.ApplicationResponse{}, leave.ErrAlreadyProcessed
	}

	reviewedAt := time.Now()
	if err := s.LeaveApplicationRepository.UpdateReview(ctx, app.ID, leave.StatusPending, leave.StatusRejected, req.ReviewerID, reviewedAt); err != nil {
		return leave.ApplicationResponse{}, fmt.Errorf("failed to update leave application: %w", err)
	}

	app.Status = leave.StatusRejected
	app.ReviewedBy = &req.ReviewerID
	app.ReviewedAt = &reviewedAt

	s.publisher.Publish(ctx, notification.Notification{
		RecipientID: app.EmployeeID,
		Type:        notification.TypeLeaveRejected,
		Title:       "Leave rejected",
		Message:     fmt.Sprintf("Your leave request was rejected: %s", req.Reason),
		Data:        map[string]interface{}{"application_id": app.ID},
	})

	return leave.ToApplicationResponse(app), nil
}

// Recall ends an approved leave early. The employee resumes work on the
// resumption date; days through the day before stay charged, days from the
// resumption date to the original end are refunded to the balance. A
// resumption date past the original end is allowed: the recall is recorded
// with a zero refund. The refund, the status change, and the recall audit
// fields are written in one transaction.
func (s *ApplicationService) Recall(ctx context.Context, req leave.RecallApplicationRequest) (leave.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ApplicationResponse{}, err
	}

	app, err := s.LeaveApplicationRepository.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if app.Status != leave.StatusApproved {
		return leave.ApplicationResponse{}, leave.ErrNotApproved
	}

	plan, err := s.LeavePlanRepository.GetByID(ctx, app.LeavePlanID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if !plan.AllowRecall {
		return leave.ApplicationResponse{}, leave.ErrPlanNotRecallable
	}

	resumption, err := time.Parse("2006-01-02", req.ResumptionDate)
	if err != nil {
		return leave.ApplicationResponse{}, fmt.Errorf("failed to parse resumption date: %w", err)
	}
	if resumption.Before(app.StartDate) {
		return leave.ApplicationResponse{}, leave.ErrInvalidResumptionDate
	}

	// Split the original range at the resumption date. Used and refunded
	// days always sum to the originally charged duration; a resumption past
	// the end leaves the whole range used and refunds nothing.
	lastDayOnLeave := resumption.AddDate(0, 0, -1)
	if lastDayOnLeave.After(app.EndDate) {
		lastDayOnLeave = app.EndDate
	}
	daysUsed := s.policy.CountChargeable(app.StartDate, lastDayOnLeave)
	daysRefunded := s.policy.CountChargeable(resumption, app.EndDate)

	reviewedAt := time.Now()
	rec := leave.RecallUpdate{
		ReviewedBy:   req.ReviewerID,
		ReviewedAt:   reviewedAt,
		RecallDate:   resumption,
		RecallReason: req.Reason,
		DaysUsed:     daysUsed,
		DaysRefunded: daysRefunded,
	}

	// The guarded status update goes first: if another reviewer already
	// moved the application on, the transaction aborts before any credit.
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.LeaveApplicationRepository.UpdateRecall(ctx, app.ID, rec); err != nil {
			return err
		}
		if daysRefunded > 0 {
			return s.LeaveBalanceRepository.Credit(ctx, app.EmployeeID, app.LeavePlanID, daysRefunded)
		}
		return nil
	})
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	app.Status = leave.StatusRecalled
	app.ReviewedBy = &rec.ReviewedBy
	app.ReviewedAt = &rec.ReviewedAt
	app.RecallDate = &rec.RecallDate
	app.RecallReason = &rec.RecallReason
	app.DaysUsed = &rec.DaysUsed
	app.DaysRefunded = &rec.DaysRefunded

	s.publisher.Publish(ctx, notification.Notification{
		RecipientID: app.EmployeeID,
		Type:        notification.TypeLeaveRecalled,
		Title:       "Leave recalled",
		Message:     fmt.Sprintf("You are recalled from leave; please resume work on %s. %d day(s) refunded.", resumption.Format("2006-01-02"), daysRefunded),
		Data:        map[string]interface{}{"application_id": app.ID},
	})

	return leave.ToApplicationResponse(app), nil
}

func (s *ApplicationService) ListMine(ctx context.Context, employeeID string) ([]leave.ApplicationResponse, error) {
	apps, err := s.LeaveApplicationRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}
	return toResponses(apps), nil
}

func (s *ApplicationService) ListAll(ctx context.Context) ([]leave.ApplicationResponse, error) {
	apps, err := s.LeaveApplicationRepository.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}
	return toResponses(apps), nil
}

// ListOngoingRecallable returns approved applications covering today whose
// plan allows recall, for the admin recall view.
func (s *ApplicationService) ListOngoingRecallable(ctx context.Context) ([]leave.ApplicationResponse, error) {
	apps, err := s.LeaveApplicationRepository.ListOngoingRecallable(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list recallable leave applications: %w", err)
	}
	return toResponses(apps), nil
}

func (s *ApplicationService) Get(ctx context.Context, id string) (leave.ApplicationResponse, error) {
	app, err := s.LeaveApplicationRepository.GetByID(ctx, id)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	return leave.ToApplicationResponse(app), nil
}

func toResponses(apps []leave.LeaveApplication) []leave.ApplicationResponse {
	responses := make([]leave.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, leave.ToApplicationResponse(app))
	}
	return responses
}
