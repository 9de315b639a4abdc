package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garelabs/gare-backend/internal/domain"
	"github.com/garelabs/gare-backend/internal/http/response"
	"github.com/garelabs/gare-backend/internal/services"
)

type OrganizationHandler struct {
	personService  services.PersonService
	partnerService services.PartnerService
}

func NewOrganizationHandler(personService services.PersonService, partnerService services.PartnerService) *OrganizationHandler {
	return &OrganizationHandler{personService: personService, partnerService: partnerService}
}

type legalEntityRequest struct {
	domain.LegalEntity
	CaseCode  string                   `json:"goa"`
	Addresses []*domain.Address        `json:"enderecos"`
	Contacts  []*domain.CompanyContact `json:"contatos"`
	Partners  json.RawMessage          `json:"socios"`
}

func (oh *OrganizationHandler) Create(c *gin.Context) {
	var req legalEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	facet, err := oh.personService.CreateLegalEntity(c.Request.Context(), &req.LegalEntity, req.CaseCode, req.Addresses, req.Contacts)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	payload := gin.H{"dados": facet}
	if hasPartnerPayload(req.Partners) {
		report, err := oh.partnerService.ImportBatch(c.Request.Context(), facet.PersonID, req.Partners, "cadastro")
		if err != nil {
			payload["socios_erro"] = err.Error()
		} else {
			payload["socios"] = report
		}
	}
	response.RespondCreated(c, payload)
}

func (oh *OrganizationHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errInvalidID)
		return
	}
	detail, err := oh.personService.GetLegalEntity(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, detail)
}

func (oh *OrganizationHandler) List(c *gin.Context) {
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	companies, err := oh.personService.ListLegalEntities(c.Request.Context(), limit, offset)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"total": len(companies), "empresas": companies})
}

func (oh *OrganizationHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errInvalidID)
		return
	}
	var req legalEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	facet, err := oh.personService.UpdateLegalEntity(c.Request.Context(), id, &req.LegalEntity, req.CaseCode)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	payload := gin.H{"dados": facet}
	if hasPartnerPayload(req.Partners) {
		report, err := oh.partnerService.ImportBatch(c.Request.Context(), id, req.Partners, "cadastro")
		if err != nil {
			payload["socios_erro"] = err.Error()
		} else {
			payload["socios"] = report
		}
	}
	response.RespondOK(c, payload)
}

func (oh *OrganizationHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errInvalidID)
		return
	}
	if err := oh.personService.DeleteLegalEntity(c.Request.Context(), id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (oh *OrganizationHandler) Count(c *gin.Context) {
	counts, err := oh.personService.Counts(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"total": counts.LegalEntities})
}

// GET /pessoas-juridicas/validate-goa?goa=GOAINV001&excluir_id=7
func (oh *OrganizationHandler) ValidateCaseCode(c *gin.Context) {
	report, err := oh.personService.CheckCaseCode(c.Request.Context(), c.Query("goa"), domain.KindLegalEntity, uintQuery(c, "excluir_id"))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, report)
}

func (oh *OrganizationHandler) ListPartners(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errInvalidID)
		return
	}
	partners, err := oh.partnerService.ListByCompany(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"empresa_id": id, "total": len(partners), "socios": partners})
}

// POST /pessoas-juridicas/:id/socios/importar
// body: { "socios": [...] | {...}, "fonte": "receita" }
func (oh *OrganizationHandler) ImportPartners(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errInvalidID)
		return
	}
	var req struct {
		Partners json.RawMessage `json:"socios"`
		Source   string          `json:"fonte"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Source == "" {
		req.Source = "importacao"
	}
	report, err := oh.partnerService.ImportBatch(c.Request.Context(), id, req.Partners, req.Source)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, report)
}

func hasPartnerPayload(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
