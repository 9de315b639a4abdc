package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garelabs/gare-backend/internal/domain"
	"github.com/garelabs/gare-backend/internal/http/response"
	"github.com/garelabs/gare-backend/internal/services"
)

var errInvalidID = errors.New("identificador inválido")

type PersonHandler struct {
	personService     services.PersonService
	suggestionService services.SuggestionService
}

func NewPersonHandler(personService services.PersonService, suggestionService services.SuggestionService) *PersonHandler {
	return &PersonHandler{personService: personService, suggestionService: suggestionService}
}

type individualRequest struct {
	domain.Individual
	CaseCode  string            `json:"goa"`
	Addresses []*domain.Address `json:"enderecos"`
}

func (ph *PersonHandler) Create(c *gin.Context) {
	var req individualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	facet, err := ph.personService.CreateIndividual(c.Request.Context(), &req.Individual, req.CaseCode, req.Addresses)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, facet)
}

func (ph *PersonHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errInvalidID)
		return
	}
	detail, err := ph.personService.GetIndividual(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, detail)
}

func (ph *PersonHandler) List(c *gin.Context) {
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	people, err := ph.personService.ListIndividuals(c.Request.Context(), limit, offset)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"total": len(people), "pessoas": people})
}

func (ph *PersonHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errInvalidID)
		return
	}
	var req individualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	facet, err := ph.personService.UpdateIndividual(c.Request.Context(), id, &req.Individual, req.CaseCode)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, facet)
}

func (ph *PersonHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errInvalidID)
		return
	}
	if err := ph.personService.DeleteIndividual(c.Request.Context(), id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ph *PersonHandler) Count(c *gin.Context) {
	counts, err := ph.personService.Counts(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"total": counts.Individuals})
}

func (ph *PersonHandler) Counts(c *gin.Context) {
	counts, err := ph.personService.Counts(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, counts)
}

// GET /pessoas-fisicas/validate-goa?goa=GOAINV001&excluir_id=7
func (ph *PersonHandler) ValidateCaseCode(c *gin.Context) {
	report, err := ph.personService.CheckCaseCode(c.Request.Context(), c.Query("goa"), domain.KindIndividual, uintQuery(c, "excluir_id"))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, report)
}

// GET /pessoas-fisicas/validate-name?nome=...&excluir_id=7
func (ph *PersonHandler) ValidateName(c *gin.Context) {
	report, err := ph.suggestionService.CheckDuplicateName(c.Request.Context(), c.Query("nome"), uintQuery(c, "excluir_id"))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, report)
}

func (ph *PersonHandler) Suggestions(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errInvalidID)
		return
	}
	report, err := ph.suggestionService.Suggest(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, report)
}
