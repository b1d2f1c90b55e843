package booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"meetly/logger"
	bookingModel "meetly/models/booking"
	"meetly/services/bookingflow"
	"meetly/types"
	bookingTypes "meetly/types/booking"
	"meetly/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// requestLogger queues request/response snapshots for async persistence.
// Implemented by logger.AsyncLogger.
type requestLogger interface {
	Log(entry types.LogEntry)
}

// BookingController handles booking-related HTTP requests
type BookingController struct {
	DB     *gorm.DB
	Logger requestLogger
	Flow   *bookingflow.Service
}

// NewBookingController creates a new booking controller
func NewBookingController(db *gorm.DB, asyncLogger requestLogger, flow *bookingflow.Service) *BookingController {
	return &BookingController{
		DB:     db,
		Logger: asyncLogger,
		Flow:   flow,
	}
}

// sendResponseWithLog writes the response, then queues a log entry with the
// request and response snapshots.
func (bc *BookingController) sendResponseWithLog(c *fiber.Ctx, status int, resp types.ApiResponse) error {
	err := c.Status(status).JSON(resp)
	if bc.Logger != nil {
		respBody, _ := json.Marshal(resp)
		bc.Logger.Log(types.LogEntry{
			Method:          c.Method(),
			URL:             c.OriginalURL(),
			RequestBody:     string(c.Body()),
			ResponseBody:    string(respBody),
			RequestHeaders:  string(c.Request().Header.Header()),
			ResponseHeaders: string(c.Response().Header.Header()),
			StatusCode:      status,
			CreatedAt:       time.Now(),
		})
	}
	return err
}

// Store books a slot: it runs the full booking orchestration workflow and
// maps terminal workflow failures to HTTP statuses.
func (bc *BookingController) Store(c *fiber.Ctx) error {
	var req bookingTypes.BookingCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := req.Validate(); err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	result, err := bc.Flow.CreateBooking(c.Context(), req)
	if err != nil {
		logger.Error("Error creating booking", err)
		return bc.sendResponseWithLog(c, statusForWorkflowError(err), types.ApiResponse{
			Status:  statusForWorkflowError(err),
			Message: workflowErrorMessage(err),
		})
	}

	return bc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Booking created successfully",
		Data:    result,
	})
}

// Index lists the authenticated host's meetings. type=upcoming (default),
// past, or today.
func (bc *BookingController) Index(c *fiber.Ctx) error {
	identityID, err := utils.IdentityIDFromContext(c)
	if err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	userInfo, err := utils.GetUserByIdentityID(identityID)
	if err != nil {
		status := fiber.StatusInternalServerError
		msg := "Database error"
		if err.Error() == "user not found" {
			status = fiber.StatusUnauthorized
			msg = "User not found"
		}
		return bc.sendResponseWithLog(c, status, types.ApiResponse{
			Status:  status,
			Message: msg,
		})
	}

	query := bc.DB.
		Preload("Event").
		Preload("Event.User").
		Where("user_id = ?", userInfo.ID)

	switch c.Query("type", "upcoming") {
	case "past":
		query = query.Where("start_time < ?", time.Now()).Order("start_time DESC")
	case "today":
		query = query.
			Where("start_time BETWEEN ? AND ?", now.BeginningOfDay(), now.EndOfDay()).
			Order("start_time ASC")
	default:
		query = query.Where("start_time >= ?", time.Now()).Order("start_time ASC")
	}

	var meetings []bookingModel.Booking
	if err := query.Find(&meetings).Error; err != nil {
		logger.Error("Failed to load meetings", err)
		return bc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Meetings retrieved successfully",
		Data:    meetings,
	})
}

// Show returns one meeting's details, including enrichment fields, for the
// host who owns it.
func (bc *BookingController) Show(c *fiber.Ctx) error {
	identityID, err := utils.IdentityIDFromContext(c)
	if err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	userInfo, err := utils.GetUserByIdentityID(identityID)
	if err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
		})
	}

	meetingID, err := parseMeetingID(c.Params("id"))
	if err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid meeting id",
		})
	}

	var meeting bookingModel.Booking
	err = bc.DB.
		Preload("Event").
		Preload("Event.User").
		First(&meeting, meetingID).Error
	if err != nil {
		status, msg := meetingLookupFailure(err)
		if status == fiber.StatusInternalServerError {
			logger.Error("Failed to load meeting", err)
		}
		return bc.sendResponseWithLog(c, status, types.ApiResponse{
			Status:  status,
			Message: msg,
		})
	}
	if meeting.UserID != userInfo.ID {
		return bc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Meeting not found or unauthorized",
		})
	}

	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Meeting retrieved successfully",
		Data:    meeting,
	})
}

// Cancel runs the cancellation workflow: delete the provider event where
// possible, then remove the local booking row.
func (bc *BookingController) Cancel(c *fiber.Ctx) error {
	identityID, err := utils.IdentityIDFromContext(c)
	if err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	meetingID, err := parseMeetingID(c.Params("id"))
	if err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid meeting id",
		})
	}

	if err := bc.Flow.CancelBooking(c.Context(), identityID, meetingID); err != nil {
		logger.Error(fmt.Sprintf("Error cancelling meeting %d", meetingID), err)
		return bc.sendResponseWithLog(c, statusForWorkflowError(err), types.ApiResponse{
			Status:  statusForWorkflowError(err),
			Message: workflowErrorMessage(err),
		})
	}

	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Meeting cancelled successfully",
		Data:    fiber.Map{"success": true},
	})
}

// parseMeetingID parses a path parameter into a booking id. Bit size 32
// matches uint on 32-bit platforms, so out-of-range ids are rejected here
// instead of truncated.
func parseMeetingID(param string) (uint, error) {
	id, err := strconv.ParseUint(param, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// meetingLookupFailure keeps genuine database failures distinct from a
// missing or foreign row.
func meetingLookupFailure(err error) (int, string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.StatusNotFound, "Meeting not found or unauthorized"
	}
	return fiber.StatusInternalServerError, "Database error"
}

func statusForWorkflowError(err error) int {
	switch bookingflow.KindOf(err) {
	case bookingflow.KindNotFound:
		return fiber.StatusNotFound
	case bookingflow.KindUnauthorized:
		return fiber.StatusUnauthorized
	case bookingflow.KindCredentialMissing:
		return fiber.StatusBadRequest
	case bookingflow.KindCredentialRefreshFailed, bookingflow.KindCalendarError:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func workflowErrorMessage(err error) string {
	var wfErr *bookingflow.Error
	if errors.As(err, &wfErr) {
		return wfErr.Message
	}
	return "Internal server error"
}
