package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coursemarket/course-api/internal/api/metrics"
	"github.com/coursemarket/course-api/internal/core/ports"
)

// CourseHandler handles HTTP requests for the course catalog.
type CourseHandler struct {
	service ports.CourseService
}

func NewCourseHandler(service ports.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// Create adds a course to the catalog.
//
// @Summary      Create course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCourseRequest  true  "Course"
// @Success      200   {object}  createCourseResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /admin/courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}

	course, err := h.service.CreateCourse(c.Request().Context(), ports.CreateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       float64(req.Price),
		ImageLink:   req.ImageLink,
		Published:   req.Published,
	})
	if err != nil {
		return err
	}

	metrics.CoursesWrittenTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusOK, createCourseResponse{
		Message:  "Course created successfully",
		CourseID: course.ID,
	})
}

// Update replaces the supplied fields of an existing course.
//
// @Summary      Update course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        courseId  path      string               true  "Course id"
// @Param        body      body      updateCourseRequest  true  "Fields to change"
// @Success      200       {object}  updateCourseResponse
// @Failure      400       {object}  messageResponse
// @Failure      404       {object}  messageResponse
// @Router       /admin/courses/{courseId} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	var req updateCourseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}

	course, err := h.service.UpdateCourse(c.Request().Context(), c.Param("courseId"), req.changes())
	if err != nil {
		return err
	}

	metrics.CoursesWrittenTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, updateCourseResponse{
		Message: "Course updated successfully",
		Course:  *course,
	})
}

// List returns the whole catalog.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  courseListResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /admin/courses [get]
// @Router       /users/courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	courses, err := h.service.ListCourses(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courseListResponse{Courses: courses})
}
