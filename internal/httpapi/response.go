package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roach88/consulta/internal/auth"
	"github.com/roach88/consulta/internal/filter"
	"github.com/roach88/consulta/internal/query"
	"github.com/roach88/consulta/internal/store"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	msgValidacao    = "Houve um problema na validação dos campos, verifique os dados enviados e tente novamente."
	msgIntegridade  = "Erro de integridade do banco."
	msgCredenciais  = "Credenciais inválidas"
	msgNaoAutentic  = "Não autenticado"
	msgTokenInvalid = "Token inválido"
	msgConsulta     = "Erro ao executar a consulta."
	msgInterno      = "Erro interno do servidor."
	msgLimite       = "Limite de requisições excedido."
)

// Response is the envelope of every API response.
type Response struct {
	Status   string  `json:"status"`
	Mensagem *string `json:"mensagem"`
	Dados    any     `json:"dados"`
}

func ok(c *gin.Context, code int, mensagem string, dados any) {
	c.JSON(code, envelope(statusSuccess, mensagem, dados))
}

func fail(c *gin.Context, code int, mensagem string, dados any) {
	c.AbortWithStatusJSON(code, envelope(statusError, mensagem, dados))
}

func envelope(status, mensagem string, dados any) Response {
	r := Response{Status: status, Dados: dados}
	if mensagem != "" {
		r.Mensagem = &mensagem
	}
	return r
}

// respondError maps service errors to status codes. notFound is the message
// used for store.ErrNotFound.
func respondError(c *gin.Context, err error, notFound string) {
	var qe *query.Error
	switch {
	case errors.As(err, &qe) && qe.Code != query.ErrCodeStoreError:
		dados := gin.H{
			"codigo":   qe.Code,
			"coluna":   qe.Column,
			"operador": qe.Operator,
		}
		if qe.Code == query.ErrCodeUnknownOperator {
			dados["operadores"] = filter.Operators
		}
		fail(c, http.StatusUnprocessableEntity, qe.Message, dados)
	case errors.As(err, &qe):
		slog.Error("query failed", "error", err, "request_id", c.GetString(requestIDKey))
		fail(c, http.StatusInternalServerError, msgConsulta, nil)
	case store.IsConflict(err):
		fail(c, http.StatusBadRequest, msgIntegridade, err.Error())
	case store.IsNotFound(err):
		fail(c, http.StatusNotFound, notFound, nil)
	case errors.Is(err, auth.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, msgCredenciais, nil)
	default:
		slog.Error("request failed", "error", err, "request_id", c.GetString(requestIDKey))
		fail(c, http.StatusInternalServerError, msgInterno, nil)
	}
}

func validationFailed(c *gin.Context, err error) {
	fail(c, http.StatusUnprocessableEntity, msgValidacao, err.Error())
}
