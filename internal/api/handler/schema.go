package handler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/coursemarket/course-api/internal/core/domain"
)

// --- Auth ---

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// --- Courses ---

// coursePrice accepts a JSON number or a numeric string such as "10".
type coursePrice float64

func (p *coursePrice) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*p = coursePrice(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("price must be a number")
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("price %q is not numeric", s)
	}
	*p = coursePrice(f)
	return nil
}

type createCourseRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       coursePrice `json:"price" swaggertype:"number"`
	ImageLink   string      `json:"imageLink"`
	Published   bool        `json:"published"`
}

// updateCourseRequest distinguishes absent fields (nil) from zero values.
type updateCourseRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Price       *coursePrice `json:"price" swaggertype:"number"`
	ImageLink   *string      `json:"imageLink"`
	Published   *bool        `json:"published"`
}

func (r updateCourseRequest) changes() domain.CourseChanges {
	var price *float64
	if r.Price != nil {
		v := float64(*r.Price)
		price = &v
	}
	return domain.CourseChanges{
		Title:       r.Title,
		Description: r.Description,
		Price:       price,
		ImageLink:   r.ImageLink,
		Published:   r.Published,
	}
}

type createCourseResponse struct {
	Message  string `json:"message"`
	CourseID string `json:"courseId"`
}

type updateCourseResponse struct {
	Message string        `json:"message"`
	Course  domain.Course `json:"course"`
}

type courseListResponse struct {
	Courses []domain.Course `json:"courses"`
}

// --- Purchases ---

type messageResponse struct {
	Message string `json:"message"`
}

type purchasedCoursesResponse struct {
	PurchasedCourses []string `json:"purchasedCourses"`
}
