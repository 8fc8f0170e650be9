package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coursemarket/course-api/internal/api/metrics"
	"github.com/coursemarket/course-api/internal/core/ports"
)

type PurchaseHandler struct {
	service ports.PurchaseService
}

func NewPurchaseHandler(service ports.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

// Purchase records a course in the caller's ledger.
//
// @Summary      Purchase course
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        courseId  path      string  true  "Course id"
// @Success      200       {object}  messageResponse
// @Failure      401       {object}  messageResponse
// @Failure      403       {object}  messageResponse
// @Failure      404       {object}  messageResponse
// @Router       /users/courses/{courseId} [post]
func (h *PurchaseHandler) Purchase(c echo.Context) error {
	username, err := currentUsername(c)
	if err != nil {
		return err
	}

	result, err := h.service.Purchase(c.Request().Context(), username, c.Param("courseId"))
	if err != nil {
		return err
	}

	if result.AlreadyPurchased {
		metrics.PurchasesTotal.WithLabelValues("already_purchased").Inc()
		return c.JSON(http.StatusOK, messageResponse{Message: "Course already purchased"})
	}
	metrics.PurchasesTotal.WithLabelValues("purchased").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Course purchased successfully"})
}

// PurchasedCourses lists the ids of the caller's purchased courses.
//
// @Summary      Purchased courses
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  purchasedCoursesResponse
// @Failure      404  {object}  messageResponse
// @Router       /users/purchasedCourses [get]
func (h *PurchaseHandler) PurchasedCourses(c echo.Context) error {
	username, err := currentUsername(c)
	if err != nil {
		return err
	}

	ids, err := h.service.PurchasedCourses(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, purchasedCoursesResponse{PurchasedCourses: ids})
}
