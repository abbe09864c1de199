package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mustez-hero/KeyMap-DB-AI/internal/responses"
	"github.com/Mustez-hero/KeyMap-DB-AI/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject handles POST /api/v1/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), req)
	if err != nil {
		log.Printf("ERROR in CreateProject handler: %v", err)
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to create project")
		return
	}

	responses.Success(c, http.StatusCreated, project, "Project created")
}

// GetProject handles GET /api/v1/projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectService.GetProjectByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			responses.Fail(c, http.StatusNotFound, err, "Project not found")
		case errors.Is(err, services.ErrInvalidRequest):
			responses.Fail(c, http.StatusBadRequest, err, "Invalid project ID")
		default:
			log.Printf("ERROR in GetProject handler: %v", err)
			responses.Fail(c, http.StatusInternalServerError, err, "Failed to fetch project")
		}
		return
	}

	responses.Success(c, http.StatusOK, project, "Project retrieved")
}

// ListProjects handles GET /api/v1/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects(c.Request.Context())
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to fetch projects")
		return
	}

	responses.Success(c, http.StatusOK, projects, "Projects retrieved")
}

// UpdateProject handles PUT /api/v1/projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	err := h.projectService.UpdateProject(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoFieldsToUpdate):
			responses.Fail(c, http.StatusBadRequest, err, "No valid fields to update")
		case errors.Is(err, services.ErrProjectNotFound):
			responses.Fail(c, http.StatusNotFound, err, "Project not found")
		case errors.Is(err, services.ErrInvalidRequest):
			responses.Fail(c, http.StatusBadRequest, err, "Invalid project ID")
		default:
			log.Printf("ERROR in UpdateProject handler: %v", err)
			responses.Fail(c, http.StatusInternalServerError, err, "Failed to update project")
		}
		return
	}

	responses.Success(c, http.StatusOK, nil, "Project updated")
}

// DeleteProject handles DELETE /api/v1/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	err := h.projectService.DeleteProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			responses.Fail(c, http.StatusNotFound, err, "Project not found")
		case errors.Is(err, services.ErrInvalidRequest):
			responses.Fail(c, http.StatusBadRequest, err, "Invalid project ID")
		default:
			log.Printf("ERROR in DeleteProject handler: %v", err)
			responses.Fail(c, http.StatusInternalServerError, err, "Failed to delete project")
		}
		return
	}

	responses.Success(c, http.StatusOK, nil, "Project deleted successfully")
}
