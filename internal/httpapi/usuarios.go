package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/roach88/consulta/internal/auth"
	"github.com/roach88/consulta/internal/entity"
	"github.com/roach88/consulta/internal/service"
)

const msgUsuarioNaoEncontrado = "Usuário não encontrado"

// UsuarioHandler serves the /usuarios routes.
type UsuarioHandler struct {
	usuarios *service.Usuarios
	tokens   *auth.Tokens
	maxLimit int
}

// NewUsuarioHandler creates a new usuario handler.
func NewUsuarioHandler(usuarios *service.Usuarios, tokens *auth.Tokens, maxLimit int) *UsuarioHandler {
	return &UsuarioHandler{usuarios: usuarios, tokens: tokens, maxLimit: maxLimit}
}

// loginRequest accepts an OAuth2 password form or a JSON body.
type loginRequest struct {
	Login string `form:"username" json:"login" binding:"required"`
	Senha string `form:"password" json:"senha" binding:"required"`
}

// Login exchanges credentials for a bearer token.
func (h *UsuarioHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		validationFailed(c, err)
		return
	}

	usuario, err := h.usuarios.Autenticar(c.Request.Context(), req.Login, req.Senha)
	if err != nil {
		respondError(c, err, msgUsuarioNaoEncontrado)
		return
	}

	token, err := h.tokens.Issue(usuario.Login, usuario.Perfil)
	if err != nil {
		respondError(c, err, msgUsuarioNaoEncontrado)
		return
	}

	ok(c, http.StatusOK, "Login realizado com sucesso.", gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me returns the claims of the authenticated caller.
func (h *UsuarioHandler) Me(c *gin.Context) {
	claims, _ := c.Get(claimsKey)
	ok(c, http.StatusOK, "", gin.H{"usuario": claims})
}

// Criar creates a usuario.
func (h *UsuarioHandler) Criar(c *gin.Context) {
	var novo entity.NovoUsuario
	if err := c.ShouldBindJSON(&novo); err != nil {
		validationFailed(c, err)
		return
	}

	usuario, err := h.usuarios.Criar(c.Request.Context(), novo)
	if err != nil {
		respondError(c, err, msgUsuarioNaoEncontrado)
		return
	}

	ok(c, http.StatusCreated, "Usuário criado com sucesso.", usuario)
}

// Listar returns every usuario.
func (h *UsuarioHandler) Listar(c *gin.Context) {
	usuarios, err := h.usuarios.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err, msgUsuarioNaoEncontrado)
		return
	}
	listed(c, usuarios, "Usuários consultados com sucesso!", "Nenhum usuário encontrado.")
}

// Buscar returns one usuario by id.
func (h *UsuarioHandler) Buscar(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	usuario, err := h.usuarios.Buscar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, msgUsuarioNaoEncontrado)
		return
	}
	ok(c, http.StatusOK, "", usuario)
}

// Atualizar applies a partial update.
func (h *UsuarioHandler) Atualizar(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	var patch entity.UsuarioPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		validationFailed(c, err)
		return
	}

	usuario, err := h.usuarios.Atualizar(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err, msgUsuarioNaoEncontrado)
		return
	}
	ok(c, http.StatusOK, "Usuário atualizado com sucesso.", usuario)
}

// Remover deletes a usuario.
func (h *UsuarioHandler) Remover(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	if err := h.usuarios.Remover(c.Request.Context(), id); err != nil {
		respondError(c, err, msgUsuarioNaoEncontrado)
		return
	}
	ok(c, http.StatusOK, "Usuário removido com sucesso.", gin.H{"id": id})
}

// ConsultaFiltrada runs a filtered query over usuarios.
func (h *UsuarioHandler) ConsultaFiltrada(c *gin.Context) {
	req, valid := bindRequest(c, h.maxLimit)
	if !valid {
		return
	}

	usuarios, err := h.usuarios.Consultar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, msgUsuarioNaoEncontrado)
		return
	}
	listed(c, usuarios, "Usuários consultados com sucesso!", "Nenhum usuário encontrado.")
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		validationFailed(c, err)
		return 0, false
	}
	return id, true
}
