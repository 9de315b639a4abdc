package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garelabs/gare-backend/internal/data/repos"
	"github.com/garelabs/gare-backend/internal/domain"
	"github.com/garelabs/gare-backend/internal/http/response"
	"github.com/garelabs/gare-backend/internal/services"
)

type RelationshipHandler struct {
	relationshipService services.RelationshipService
	networkService      services.NetworkService
}

func NewRelationshipHandler(relationshipService services.RelationshipService, networkService services.NetworkService) *RelationshipHandler {
	return &RelationshipHandler{relationshipService: relationshipService, networkService: networkService}
}

func (rh *RelationshipHandler) Create(c *gin.Context) {
	var edge domain.Relationship
	if err := c.ShouldBindJSON(&edge); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	created, err := rh.relationshipService.Create(c.Request.Context(), &edge)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, created)
}

func (rh *RelationshipHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errInvalidID)
		return
	}
	edge, err := rh.relationshipService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, edge)
}

// GET /relacionamentos?pessoa_id=3&tipo=irm
func (rh *RelationshipHandler) List(c *gin.Context) {
	filter := repos.RelationshipFilter{
		PersonID: uintQuery(c, "pessoa_id"),
		Label:    c.Query("tipo"),
	}
	edges, err := rh.relationshipService.List(c.Request.Context(), filter)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"total": len(edges), "relacionamentos": edges})
}

func (rh *RelationshipHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errInvalidID)
		return
	}
	var edge domain.Relationship
	if err := c.ShouldBindJSON(&edge); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	updated, err := rh.relationshipService.Update(c.Request.Context(), id, &edge)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, updated)
}

func (rh *RelationshipHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errInvalidID)
		return
	}
	if err := rh.relationshipService.Delete(c.Request.Context(), id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /relacionamentos/por-pessoa?pessoa_id=3
func (rh *RelationshipHandler) ByPerson(c *gin.Context) {
	personID := uintQuery(c, "pessoa_id")
	if personID == 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errInvalidID)
		return
	}
	edges, err := rh.relationshipService.ListByPerson(c.Request.Context(), personID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, edges)
}

// GET /pessoas-fisicas/:id/relacionamentos
func (rh *RelationshipHandler) ByPersonParam(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errInvalidID)
		return
	}
	edges, err := rh.relationshipService.ListByPerson(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, edges)
}

// POST /relacionamentos/analisar-rede
// body: { "pessoa_id": 3, "profundidade": 2 }
func (rh *RelationshipHandler) AnalyzeNetwork(c *gin.Context) {
	var req struct {
		PersonID uint `json:"pessoa_id"`
		Depth    *int `json:"profundidade"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	depth := services.DefaultNetworkDepth
	if req.Depth != nil {
		depth = *req.Depth
	}
	result, err := rh.networkService.Expand(c.Request.Context(), req.PersonID, depth)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, result)
}
