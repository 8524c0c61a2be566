package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roach88/consulta/internal/entity"
	"github.com/roach88/consulta/internal/service"
)

// PerfilHandler serves the /perfis routes.
type PerfilHandler struct {
	perfis   *service.Perfis
	maxLimit int
}

// NewPerfilHandler creates a new perfil handler.
func NewPerfilHandler(perfis *service.Perfis, maxLimit int) *PerfilHandler {
	return &PerfilHandler{perfis: perfis, maxLimit: maxLimit}
}

// Criar creates a perfil.
func (h *PerfilHandler) Criar(c *gin.Context) {
	var novo entity.NovoPerfil
	if err := c.ShouldBindJSON(&novo); err != nil {
		validationFailed(c, err)
		return
	}

	perfil, err := h.perfis.Criar(c.Request.Context(), novo)
	if err != nil {
		respondError(c, err, "Perfil não encontrado")
		return
	}
	ok(c, http.StatusCreated, "Perfil criado", perfil)
}

// Listar returns every perfil.
func (h *PerfilHandler) Listar(c *gin.Context) {
	perfis, err := h.perfis.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err, "Perfil não encontrado")
		return
	}
	listed(c, perfis, "Perfis consultados com sucesso!", "Nenhum perfil encontrado.")
}

// ConsultaFiltrada runs a filtered query over perfis.
func (h *PerfilHandler) ConsultaFiltrada(c *gin.Context) {
	req, valid := bindRequest(c, h.maxLimit)
	if !valid {
		return
	}

	perfis, err := h.perfis.Consultar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Perfil não encontrado")
		return
	}
	listed(c, perfis, "Perfis consultados com sucesso!", "Nenhum perfil encontrado.")
}
