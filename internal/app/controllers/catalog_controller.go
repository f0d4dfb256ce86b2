package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/creditbridge/internal/app/models/dto"
	"github.com/yigit/creditbridge/internal/app/services"
	"github.com/yigit/creditbridge/internal/middleware"
)

// CatalogController serves the school and course lists behind the request form
type CatalogController struct {
	catalogService services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// ListSchools returns every transfer school
// @Summary List transfer schools
// @Description Every school in the catalog except the home institution, ordered by name
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.School} "Schools"
// @Router /schools [get]
func (c *CatalogController) ListSchools(ctx *gin.Context) {
	schools, err := c.catalogService.ListTransferSchools(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(schools))
}

// ListSchoolCourses returns the courses of one school
// @Summary List school courses
// @Tags catalog
// @Produce json
// @Param id path int true "School ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Router /schools/{id}/courses [get]
func (c *CatalogController) ListSchoolCourses(ctx *gin.Context) {
	schoolID, ok := parseIDParam(ctx, "id", "School")
	if !ok {
		return
	}

	courses, err := c.catalogService.ListCoursesForSchool(ctx.Request.Context(), schoolID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// ListHomeCourses returns the courses credit can be transferred into
// @Summary List home institution courses
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses"
// @Router /home-courses [get]
func (c *CatalogController) ListHomeCourses(ctx *gin.Context) {
	courses, err := c.catalogService.ListHomeCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// CreateSchool adds a school to the catalog, returning the existing entry if
// one with the same identity is already there
// @Summary Create school
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSchoolRequest true "School"
// @Success 201 {object} dto.APIResponse{data=models.School} "School"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /schools [post]
func (c *CatalogController) CreateSchool(ctx *gin.Context) {
	var req dto.CreateSchoolRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	school, err := c.catalogService.CreateSchool(ctx.Request.Context(), req.Identity())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(school))
}

// CreateCourse adds a course to a school
// @Summary Create course
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "School ID"
// @Param request body dto.CreateCourseRequest true "Course"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Router /schools/{id}/courses [post]
func (c *CatalogController) CreateCourse(ctx *gin.Context) {
	schoolID, ok := parseIDParam(ctx, "id", "School")
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.catalogService.CreateCourse(ctx.Request.Context(), schoolID, req.Identity())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(course))
}
